package models

import "time"

type Announcement struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CourseCode  int       `json:"course_code" gorm:"not null;index" validate:"required"`
	PostedAt    time.Time `json:"datetime" gorm:"column:datetime;not null;index;autoCreateTime;<-:create"`
	Description string    `json:"description" gorm:"type:text;not null" validate:"required"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
}

func (Announcement) TableName() string {
	return "announcements"
}

func (a Announcement) String() string {
	return a.PostDate()
}

func (a Announcement) PostDate() string {
	return FormatDisplayTime(a.PostedAt)
}
