package course

import "gorm.io/gorm"

// Module represents a section within a course
type Module struct {
	gorm.Model
	CourseID      uint     `json:"course_id" gorm:"index;not null"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	OrderIndex    int      `json:"order_index" gorm:"default:0"` // Module order in course
	IsFreePreview bool     `json:"is_free_preview" gorm:"default:false"`
	Lessons       []Lesson `json:"lessons" gorm:"foreignKey:ModuleID"`
	IsDeleted     bool     `gorm:"default:false"`
}
