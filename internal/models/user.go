package models

import "time"

// User is the login account. Student and Faculty rows are the role
// profiles of an account and point back at it through UserID.
type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Username string   `json:"username" gorm:"uniqueIndex;not null;size:50" validate:"required,max=50"`
	Password string   `json:"-" gorm:"not null;size:128" validate:"required,max=128"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	FullName string   `json:"full_name" gorm:"not null;size:100" validate:"required,max=100"`
	UserType UserType `json:"user_type" gorm:"not null;size:2" validate:"required,user_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u User) String() string {
	return u.Username
}
