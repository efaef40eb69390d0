package models

import "gorm.io/gorm"

// LearnerProfile holds onboarding personal info, keyed 1:1 by user id
type LearnerProfile struct {
	gorm.Model
	UserID    string `json:"user_id" gorm:"index;not null"`
	FullName  string `json:"full_name" gorm:"default:''"`
	Email     string `json:"email" gorm:"default:''"`
	Country   string `json:"country" gorm:"default:''"`
	IsDeleted bool   `gorm:"default:false"`
}

// TechBackground captures the learner's technical starting point
type TechBackground struct {
	gorm.Model
	UserID          string `json:"user_id" gorm:"index;not null"`
	ExperienceLevel string `json:"experience_level" gorm:"default:''"` // none, beginner, intermediate, advanced
	Device          string `json:"device" gorm:"default:''"`           // smartphone, laptop, desktop, tablet
	InternetQuality string `json:"internet_quality" gorm:"default:''"` // poor, fair, good, excellent
	IsDeleted       bool   `gorm:"default:false"`
}

// LearningCommitment captures time commitment collected at onboarding
type LearningCommitment struct {
	gorm.Model
	UserID       string `json:"user_id" gorm:"index;not null"`
	HoursPerWeek string `json:"hours_per_week" gorm:"default:''"`
	StudyTime    string `json:"study_time" gorm:"default:''"`
	LearningGoal string `json:"learning_goal" gorm:"default:''"`
	WhyLearn     string `json:"why_learn" gorm:"type:text"`
	IsDeleted    bool   `gorm:"default:false"`
}

// DisciplineCheck captures the self-assessment step of onboarding
type DisciplineCheck struct {
	gorm.Model
	UserID                string `json:"user_id" gorm:"index;not null"`
	FollowsDeadlines      bool   `json:"follows_deadlines" gorm:"default:false"`
	PracticesConsistently bool   `json:"practices_consistently" gorm:"default:false"`
	OpenToFeedback        bool   `json:"open_to_feedback" gorm:"default:false"`
	IsDeleted             bool   `gorm:"default:false"`
}
