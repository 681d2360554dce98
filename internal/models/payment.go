package models

import (
	"fmt"
	"time"
)

// Payment amount is never taken from the caller; the repository copies the
// course price into it on every write.
type Payment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CourseCode  int       `json:"course_code" gorm:"not null;index" validate:"required"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description string    `json:"description" gorm:"not null;size:200" validate:"max=200"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null;autoCreateTime;<-:create"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p Payment) String() string {
	return fmt.Sprintf("Payment - %d", p.ID)
}
