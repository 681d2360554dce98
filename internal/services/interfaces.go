package services

import (
	"context"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
	"github.com/SAP-F-2025/elearning-service/internal/storage"
)

// ===== REQUEST/RESPONSE DTOs =====

// DepartmentSummary carries the live counts of a department
type DepartmentSummary struct {
	Department   *models.Department `json:"department"`
	StudentCount int64              `json:"student_count"`
	FacultyCount int64              `json:"faculty_count"`
	CourseCount  int64              `json:"course_count"`
}

type RegisterStudentRequest struct {
	Username     string                 `json:"username" validate:"required,max=50"`
	Password     string                 `json:"password" validate:"required"`
	Email        string                 `json:"email" validate:"required,email,max=100"`
	FullName     string                 `json:"full_name" validate:"required,max=100"`
	StudentID    int                    `json:"student_id" validate:"required"`
	DepartmentID int                    `json:"department_id" validate:"required"`
	Membership   models.MembershipLevel `json:"membership" validate:"omitempty,membership_level"`
	Photo        *storage.Upload        `json:"-" validate:"-"`
}

type RegisterFacultyRequest struct {
	Username     string          `json:"username" validate:"required,max=50"`
	Password     string          `json:"password" validate:"required"`
	Email        string          `json:"email" validate:"required,email,max=100"`
	FullName     string          `json:"full_name" validate:"required,max=100"`
	FacultyID    int             `json:"faculty_id" validate:"required"`
	DepartmentID int             `json:"department_id" validate:"required"`
	Photo        *storage.Upload `json:"-" validate:"-"`
}

// Account is a user together with the profile registration created for it.
// Exactly one of Student and Faculty is set.
type Account struct {
	User    *models.User    `json:"user"`
	Student *models.Student `json:"student,omitempty"`
	Faculty *models.Faculty `json:"faculty,omitempty"`
}

type GradeRequest struct {
	Marks  float64 `json:"marks" validate:"gte=0"`
	Status *string `json:"status" validate:"omitempty,max=100"`
}

// ===== SERVICE INTERFACES =====

type DepartmentService interface {
	Create(ctx context.Context, department *models.Department) (*models.Department, error)
	GetByID(ctx context.Context, id int) (*models.Department, error)
	Update(ctx context.Context, department *models.Department) (*models.Department, error)
	// Delete removes the department with its students, faculty and courses
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filters repositories.ListFilters) ([]*models.Department, int64, error)

	StudentCount(ctx context.Context, id int) (int64, error)
	FacultyCount(ctx context.Context, id int) (int64, error)
	CourseCount(ctx context.Context, id int) (int64, error)
	Summary(ctx context.Context, id int) (*DepartmentSummary, error)
}

type StudentService interface {
	// Create stores photo under profile_pics; without one the placeholder is used
	Create(ctx context.Context, student *models.Student, photo *storage.Upload) (*models.Student, error)
	GetByID(ctx context.Context, id int) (*models.Student, error)
	Update(ctx context.Context, student *models.Student, photo *storage.Upload) (*models.Student, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error)

	Enroll(ctx context.Context, studentID, courseCode int) error
	Unenroll(ctx context.Context, studentID, courseCode int) error
	Courses(ctx context.Context, studentID int) ([]*models.Course, error)
}

type FacultyService interface {
	Create(ctx context.Context, faculty *models.Faculty, photo *storage.Upload) (*models.Faculty, error)
	GetByID(ctx context.Context, id int) (*models.Faculty, error)
	Update(ctx context.Context, faculty *models.Faculty, photo *storage.Upload) (*models.Faculty, error)
	// Delete leaves the faculty's courses in place with no faculty
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filters repositories.FacultyFilters) ([]*models.Faculty, int64, error)
}

type CourseService interface {
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	GetByCode(ctx context.Context, code int) (*models.Course, error)
	GetWithDetails(ctx context.Context, code int) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) (*models.Course, error)
	Delete(ctx context.Context, code int) error
	List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error)

	AssignFaculty(ctx context.Context, code int, facultyID *int) error
	Students(ctx context.Context, code int) ([]*models.Student, error)
}

type PaymentService interface {
	// Create ignores the caller's Amount and charges the course price
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error)
}

type AnnouncementService interface {
	Create(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error)
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	Update(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.CourseContentFilters) ([]*models.Announcement, int64, error)
	ListByCourse(ctx context.Context, courseCode int) ([]*models.Announcement, error)
}

type AssignmentService interface {
	Create(ctx context.Context, assignment *models.Assignment, file *storage.Upload) (*models.Assignment, error)
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment, file *storage.Upload) (*models.Assignment, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.CourseContentFilters) ([]*models.Assignment, int64, error)
	ListByCourse(ctx context.Context, courseCode int) ([]*models.Assignment, error)
}

type SubmissionService interface {
	Create(ctx context.Context, submission *models.Submission, file *storage.Upload) (*models.Submission, error)
	GetByID(ctx context.Context, id uint) (*models.Submission, error)
	Update(ctx context.Context, submission *models.Submission, file *storage.Upload) (*models.Submission, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error)

	Grade(ctx context.Context, id uint, req *GradeRequest) (*models.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error)
	ListByStudent(ctx context.Context, studentID int) ([]*models.Submission, error)
}

type MaterialService interface {
	Create(ctx context.Context, material *models.Material, file *storage.Upload) (*models.Material, error)
	GetByID(ctx context.Context, id uint) (*models.Material, error)
	Update(ctx context.Context, material *models.Material, file *storage.Upload) (*models.Material, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.CourseContentFilters) ([]*models.Material, int64, error)
	ListByCourse(ctx context.Context, courseCode int) ([]*models.Material, error)
}

type MembershipService interface {
	Create(ctx context.Context, membership *models.Membership) (*models.Membership, error)
	GetByID(ctx context.Context, id uint) (*models.Membership, error)
	Update(ctx context.Context, membership *models.Membership) (*models.Membership, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Membership, error)

	// SeedDefaults inserts the Bronze, Silver and Gold plans into an empty catalog
	SeedDefaults(ctx context.Context) error
}

type AccountService interface {
	RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*Account, error)
	RegisterFaculty(ctx context.Context, req *RegisterFacultyRequest) (*Account, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Delete(ctx context.Context, userID uint) error
}

type ReportService interface {
	// SubmissionSheet renders the submissions of an assignment as XLSX
	SubmissionSheet(ctx context.Context, assignmentID uint) ([]byte, error)
}

type ServiceManager interface {
	// Core service getters
	Department() DepartmentService
	Student() StudentService
	Faculty() FacultyService
	Course() CourseService
	Payment() PaymentService
	Announcement() AnnouncementService
	Assignment() AssignmentService
	Submission() SubmissionService
	Material() MaterialService
	Membership() MembershipService

	// Additional service getters
	Account() AccountService
	Report() ReportService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
