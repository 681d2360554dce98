package models

import "time"

type Assignment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CourseCode  int       `json:"course_code" gorm:"not null;index" validate:"required"`
	Title       string    `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Description string    `json:"description" gorm:"type:text;not null" validate:"required"`
	PostedAt    time.Time `json:"datetime" gorm:"column:datetime;not null;index;autoCreateTime;<-:create"`
	Deadline    time.Time `json:"deadline" gorm:"not null" validate:"required"`
	File        *string   `json:"file" gorm:"size:255"`
	Marks       float64   `json:"marks" gorm:"type:decimal(6,2);not null" validate:"gte=0,lt=10000"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a Assignment) String() string {
	return a.Title
}

func (a Assignment) PostDate() string {
	return FormatDisplayTime(a.PostedAt)
}

func (a Assignment) DueDate() string {
	return FormatDisplayTime(a.Deadline)
}

func (a Assignment) StoredFiles() []string {
	if a.File == nil || *a.File == "" {
		return nil
	}
	return []string{*a.File}
}
