package models

import "time"

type Material struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CourseCode  int       `json:"course_code" gorm:"not null;index" validate:"required"`
	Description string    `json:"description" gorm:"type:text;not null" validate:"required,max=2000"`
	PostedAt    time.Time `json:"datetime" gorm:"column:datetime;not null;index;autoCreateTime;<-:create"`
	File        *string   `json:"file" gorm:"size:255"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
}

func (Material) TableName() string {
	return "materials"
}

func (m Material) String() string {
	return m.Description
}

func (m Material) PostDate() string {
	return FormatDisplayTime(m.PostedAt)
}

func (m Material) StoredFiles() []string {
	if m.File == nil || *m.File == "" {
		return nil
	}
	return []string{*m.File}
}
