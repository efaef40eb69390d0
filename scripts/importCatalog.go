package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"edupath/config"
	"edupath/database"
	courseModels "edupath/models/course"
)

// Bulk imports a course catalog from Catalog.csv: one row per lesson with
// columns course_title, track, free_module_limit, module_title, module_index,
// is_free_preview, lesson_title, lesson_type, lesson_index, content,
// video_url. Courses and modules are created on first sight and reused for
// later rows, so the file can be re-run after edits.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("Catalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	db := database.Database.Db
	courseCache := make(map[string]courseModels.Course)
	moduleCache := make(map[string]courseModels.Module)

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%100 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		courseTitle := getField(row, headerIndex, "course_title")
		moduleTitle := getField(row, headerIndex, "module_title")
		lessonTitle := getField(row, headerIndex, "lesson_title")
		if courseTitle == "" || moduleTitle == "" || lessonTitle == "" {
			skipped++
			continue
		}

		course, ok := courseCache[courseTitle]
		if !ok {
			if err := db.Where("title = ? AND is_deleted = false", courseTitle).First(&course).Error; err != nil {
				course = courseModels.Course{
					Title:           courseTitle,
					Track:           getField(row, headerIndex, "track"),
					FreeModuleLimit: parseInt(getField(row, headerIndex, "free_module_limit")),
				}
				if err := db.Create(&course).Error; err != nil {
					log.Printf("Error inserting course %q: %v", courseTitle, err)
					skipped++
					continue
				}
			}
			courseCache[courseTitle] = course
		}

		moduleKey := courseTitle + "/" + moduleTitle
		module, ok := moduleCache[moduleKey]
		if !ok {
			if err := db.Where("course_id = ? AND title = ? AND is_deleted = false", course.ID, moduleTitle).First(&module).Error; err != nil {
				module = courseModels.Module{
					CourseID:      course.ID,
					Title:         moduleTitle,
					OrderIndex:    parseInt(getField(row, headerIndex, "module_index")),
					IsFreePreview: parseBool(getField(row, headerIndex, "is_free_preview")),
				}
				if err := db.Create(&module).Error; err != nil {
					log.Printf("Error inserting module %q: %v", moduleKey, err)
					skipped++
					continue
				}
			}
			moduleCache[moduleKey] = module
		}

		lesson := courseModels.Lesson{
			ModuleID:   module.ID,
			CourseID:   course.ID,
			Title:      lessonTitle,
			LessonType: getField(row, headerIndex, "lesson_type"),
			OrderIndex: parseInt(getField(row, headerIndex, "lesson_index")),
			Content:    getField(row, headerIndex, "content"),
			VideoURL:   getField(row, headerIndex, "video_url"),
		}
		if lesson.LessonType == "" {
			lesson.LessonType = "video"
		}

		var existing courseModels.Lesson
		result := db.Where("module_id = ? AND title = ?", module.ID, lessonTitle).First(&existing)
		if result.Error != nil {
			if err := db.Create(&lesson).Error; err != nil {
				log.Printf("Error inserting lesson %q: %v", lessonTitle, err)
				continue
			}
			inserted++
		} else {
			existing.LessonType = lesson.LessonType
			existing.OrderIndex = lesson.OrderIndex
			existing.Content = lesson.Content
			existing.VideoURL = lesson.VideoURL

			if err := db.Save(&existing).Error; err != nil {
				log.Printf("Error updating lesson %q: %v", lessonTitle, err)
				continue
			}
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
	log.Printf("Total processed: %d", inserted+updated+skipped)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}
