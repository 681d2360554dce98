package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/models"
)

// Every method takes an optional transaction; nil runs on the repository's
// own connection.

type DepartmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, department *models.Department) error
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*models.Department, error)
	Update(ctx context.Context, tx *gorm.DB, department *models.Department) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
	List(ctx context.Context, tx *gorm.DB, filters ListFilters) ([]*models.Department, int64, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id int) (bool, error)

	// Counts are computed on every call
	CountStudents(ctx context.Context, tx *gorm.DB, id int) (int64, error)
	CountFaculty(ctx context.Context, tx *gorm.DB, id int) (int64, error)
	CountCourses(ctx context.Context, tx *gorm.DB, id int) (int64, error)
}

type StudentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, student *models.Student) error
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*models.Student, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.Student, error)
	Update(ctx context.Context, tx *gorm.DB, student *models.Student) error
	List(ctx context.Context, tx *gorm.DB, filters StudentFilters) ([]*models.Student, int64, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id int) (bool, error)

	ListByDepartment(ctx context.Context, tx *gorm.DB, departmentID int) ([]*models.Student, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []int) error

	// Enrolment (many-to-many with courses)
	Enroll(ctx context.Context, tx *gorm.DB, studentID int, courseCode int) error
	Unenroll(ctx context.Context, tx *gorm.DB, studentID int, courseCode int) error
	Courses(ctx context.Context, tx *gorm.DB, studentID int) ([]*models.Course, error)
	ClearEnrollments(ctx context.Context, tx *gorm.DB, studentIDs []int) error
}

type FacultyRepository interface {
	Create(ctx context.Context, tx *gorm.DB, faculty *models.Faculty) error
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*models.Faculty, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.Faculty, error)
	Update(ctx context.Context, tx *gorm.DB, faculty *models.Faculty) error
	List(ctx context.Context, tx *gorm.DB, filters FacultyFilters) ([]*models.Faculty, int64, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id int) (bool, error)

	ListByDepartment(ctx context.Context, tx *gorm.DB, departmentID int) ([]*models.Faculty, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []int) error
}

type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByCode(ctx context.Context, tx *gorm.DB, code int) (*models.Course, error)
	GetByCodeWithDetails(ctx context.Context, tx *gorm.DB, code int) (*models.Course, error)
	Update(ctx context.Context, tx *gorm.DB, course *models.Course) error
	List(ctx context.Context, tx *gorm.DB, filters CourseFilters) ([]*models.Course, int64, error)
	ExistsByCode(ctx context.Context, tx *gorm.DB, code int) (bool, error)

	ListCodesByDepartment(ctx context.Context, tx *gorm.DB, departmentID int) ([]int, error)
	DeleteByCodes(ctx context.Context, tx *gorm.DB, codes []int) error

	// ClearFaculty sets faculty_id to NULL on every course taught by the given faculty
	ClearFaculty(ctx context.Context, tx *gorm.DB, facultyIDs []int) (int64, error)
	SetFaculty(ctx context.Context, tx *gorm.DB, code int, facultyID *int) error

	Students(ctx context.Context, tx *gorm.DB, code int) ([]*models.Student, error)
	ClearEnrollments(ctx context.Context, tx *gorm.DB, codes []int) error
}

type PaymentRepository interface {
	// Create and Update overwrite Amount with the course price
	Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	Update(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Payment, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters PaymentFilters) ([]*models.Payment, int64, error)
	DeleteByCourses(ctx context.Context, tx *gorm.DB, codes []int) error
}

type AnnouncementRepository interface {
	Create(ctx context.Context, tx *gorm.DB, announcement *models.Announcement) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Announcement, error)
	Update(ctx context.Context, tx *gorm.DB, announcement *models.Announcement) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters CourseContentFilters) ([]*models.Announcement, int64, error)
	DeleteByCourses(ctx context.Context, tx *gorm.DB, codes []int) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error)
	Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error
	List(ctx context.Context, tx *gorm.DB, filters CourseContentFilters) ([]*models.Assignment, int64, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error)

	ListByCourses(ctx context.Context, tx *gorm.DB, codes []int) ([]*models.Assignment, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error
}

type SubmissionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID uint, studentID int) (*models.Submission, error)
	Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error
	List(ctx context.Context, tx *gorm.DB, filters SubmissionFilters) ([]*models.Submission, int64, error)

	ListByAssignments(ctx context.Context, tx *gorm.DB, assignmentIDs []uint) ([]*models.Submission, error)
	ListByStudents(ctx context.Context, tx *gorm.DB, studentIDs []int) ([]*models.Submission, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error
}

type MaterialRepository interface {
	Create(ctx context.Context, tx *gorm.DB, material *models.Material) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Material, error)
	Update(ctx context.Context, tx *gorm.DB, material *models.Material) error
	List(ctx context.Context, tx *gorm.DB, filters CourseContentFilters) ([]*models.Material, int64, error)

	ListByCourses(ctx context.Context, tx *gorm.DB, codes []int) ([]*models.Material, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error
}

type MembershipRepository interface {
	Create(ctx context.Context, tx *gorm.DB, membership *models.Membership) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Membership, error)
	Update(ctx context.Context, tx *gorm.DB, membership *models.Membership) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB) ([]*models.Membership, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	List(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}
