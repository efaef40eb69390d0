package course

import "gorm.io/gorm"

// Lesson represents a single unit of content within a module
type Lesson struct {
	gorm.Model
	ModuleID              uint   `json:"module_id" gorm:"index;not null"`
	CourseID              uint   `json:"course_id" gorm:"index;not null"`
	Title                 string `json:"title"`
	LessonType            string `json:"lesson_type" gorm:"default:'video'"` // video, project, quiz
	OrderIndex            int    `json:"order_index" gorm:"default:0"`
	Content               string `json:"content" gorm:"type:text"`
	VideoURL              string `json:"video_url"`
	FileURL               string `json:"file_url"`
	FileName              string `json:"file_name"`
	AssignmentDescription string `json:"assignment_description" gorm:"type:text"`
	IsDeleted             bool   `gorm:"default:false"`
}

// StudentProgress tracks lesson completion, one row per (user, lesson)
type StudentProgress struct {
	gorm.Model
	UserID             string `json:"user_id" gorm:"index;not null"`
	LessonID           uint   `json:"lesson_id" gorm:"index;not null"`
	Completed          bool   `json:"completed" gorm:"default:false"`
	ProgressPercentage int    `json:"progress_percentage" gorm:"default:0"`
	IsDeleted          bool   `gorm:"default:false"`
}
