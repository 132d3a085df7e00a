package model

import "time"

// Assignment is a lecturer-authored unit of work with a time window and an
// owned set of multiple-choice questions.
// swagger:model Assignment
type Assignment struct {
	BaseModel
	LecturerID  uint       `gorm:"index;not null" json:"lecturerId"`
	CourseName  string     `gorm:"size:255;not null" json:"courseName"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	StartDate   time.Time  `gorm:"not null" json:"startDate"`
	EndDate     time.Time  `gorm:"not null" json:"endDate"`
	Questions   []Question `gorm:"foreignKey:AssignmentID" json:"questions"`
}

func (Assignment) TableName() string {
	return "assignments"
}
