package models

import "time"

// Submission is unique per (assignment, student).
type Submission struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	AssignmentID uint      `json:"assignment_id" gorm:"not null;uniqueIndex:idx_submission_assignment_student" validate:"required"`
	StudentID    int       `json:"student_id" gorm:"not null;index;uniqueIndex:idx_submission_assignment_student" validate:"required"`
	File         *string   `json:"file" gorm:"size:255"`
	SubmittedAt  time.Time `json:"datetime" gorm:"column:datetime;not null;index;autoCreateTime;<-:create"`
	Marks        *float64  `json:"marks" gorm:"type:decimal(6,2)" validate:"omitempty,gte=0,lt=10000"`
	Status       *string   `json:"status" gorm:"size:100" validate:"omitempty,max=100"`

	// Relations
	Assignment *Assignment `json:"assignment,omitempty" gorm:"foreignKey:AssignmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
	Student    *Student    `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s Submission) String() string {
	if s.Student == nil || s.Assignment == nil {
		return ""
	}
	return s.Student.Name + " - " + s.Assignment.Title
}

func (s Submission) FileName() string {
	if s.File == nil {
		return ""
	}
	return baseName(*s.File)
}

// TimeDifference reports how long before the deadline the work was handed
// in. Assignment must be preloaded.
func (s Submission) TimeDifference() string {
	if s.Assignment == nil {
		return ""
	}
	return FormatTimeDifference(s.Assignment.Deadline, s.SubmittedAt)
}

func (s Submission) SubmissionDate() string {
	return FormatDisplayTime(s.SubmittedAt)
}

func (s Submission) StoredFiles() []string {
	if s.File == nil || *s.File == "" {
		return nil
	}
	return []string{*s.File}
}
