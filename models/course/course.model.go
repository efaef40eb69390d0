package course

import "gorm.io/gorm"

// Course represents a learning course within a track
type Course struct {
	gorm.Model
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Track           string   `json:"track" gorm:"index;default:'foundation'"` // frontend, backend, fullstack, foundation
	IsPublished     bool     `json:"is_published" gorm:"default:false"`
	FreeModuleLimit int      `json:"free_module_limit" gorm:"default:5"` // per-course free access cutoff
	Modules         []Module `json:"modules" gorm:"foreignKey:CourseID"`
	IsDeleted       bool     `gorm:"default:false"`
}
