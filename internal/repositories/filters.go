package repositories

import (
	"time"

	"github.com/SAP-F-2025/elearning-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ListFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type StudentFilters struct {
	DepartmentID *int                    `json:"department_id"`
	Membership   *models.MembershipLevel `json:"membership"`
	Query        string                  `json:"query"` // name or email
	Limit        int                     `json:"limit"`
	Offset       int                     `json:"offset"`
}

type FacultyFilters struct {
	DepartmentID *int   `json:"department_id"`
	Query        string `json:"query"`
	Limit        int    `json:"limit"`
	Offset       int    `json:"offset"`
}

type CourseFilters struct {
	DepartmentID    *int                    `json:"department_id"`
	FacultyID       *int                    `json:"faculty_id"`
	MembershipLevel *models.MembershipLevel `json:"membership_level"`
	Query           string                  `json:"query"`
	Limit           int                     `json:"limit"`
	Offset          int                     `json:"offset"`
}

// CourseContentFilters applies to announcements, assignments and materials.
type CourseContentFilters struct {
	CourseCode *int       `json:"course_code"`
	DateFrom   *time.Time `json:"date_from"`
	DateTo     *time.Time `json:"date_to"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

type SubmissionFilters struct {
	AssignmentID *uint   `json:"assignment_id"`
	StudentID    *int    `json:"student_id"`
	Status       *string `json:"status"`
	Limit        int     `json:"limit"`
	Offset       int     `json:"offset"`
}

type PaymentFilters struct {
	CourseCode *int       `json:"course_code"`
	DateFrom   *time.Time `json:"date_from"`
	DateTo     *time.Time `json:"date_to"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

type UserFilters struct {
	UserType *models.UserType `json:"user_type"`
	Query    string           `json:"query"` // username, name or email
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}
