package utils

import (
	"edupath/config"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

func sendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridAPIKey == "" {
		logrus.Warnf("Sendgrid API key not set, skipping email %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail(config.AppConfig.EmailFromName, config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		logrus.Errorf("Error sending email %q to %s: %v", subject, toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		logrus.Errorf("Sendgrid rejected email %q to %s: %d %s", subject, toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
	}

	logrus.Infof("Email %q sent to %s", subject, toEmail)
	return nil
}

// SendWelcomeEmail notifies a learner that onboarding is complete.
func SendWelcomeEmail(email, name, accessType string, trialDays int) error {
	intro := "Your account is ready. Complete your payment to unlock all course content."
	if accessType == "free" {
		intro = fmt.Sprintf("Your %d-day free trial has started. Explore the first modules of your track now.", trialDays)
	}

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Welcome to EduPath!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">%s</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Happy Learning!</p>
				</div>
			</body>
		</html>
	`, name, intro)

	return sendEmail(email, name, "Welcome to EduPath", body)
}

// SendTrialReminderEmail warns a learner that their free trial is about to end.
func SendTrialReminderEmail(email, name string, expiresAt time.Time) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Your trial is ending soon</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your free trial ends on <strong>%s</strong>. Upgrade now to keep full access to your track.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">EduPath Team</p>
				</div>
			</body>
		</html>
	`, name, expiresAt.Format("January 2, 2006"))

	return sendEmail(email, name, "Your EduPath trial is ending soon", body)
}

// SendPaymentReceiptEmail confirms a successful payment.
func SendPaymentReceiptEmail(email, name string, amount float64, currency, reference string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Payment Successful</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">We received your payment of <strong>%s %.2f</strong>. Your account now has full access to all courses.</p>
					<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
						<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Transaction Reference:</p>
						<h3 style="color: #2196F3; margin: 0;">%s</h3>
					</div>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">EduPath Team</p>
				</div>
			</body>
		</html>
	`, name, currency, amount, reference)

	return sendEmail(email, name, "Payment Confirmation - EduPath", body)
}
