package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

type studentRepository struct {
	baseRepository
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &studentRepository{baseRepository: baseRepository{db: db}}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *studentRepository) Create(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(student).Error; err != nil {
		return handleDBError(err, "create student")
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*models.Student, error) {
	db := r.getDB(tx)
	var student models.Student
	if err := db.WithContext(ctx).
		Preload("Department").
		First(&student, "student_id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get student by id")
	}
	return &student, nil
}

func (r *studentRepository) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.Student, error) {
	db := r.getDB(tx)
	var student models.Student
	if err := db.WithContext(ctx).First(&student, "user_id = ?", userID).Error; err != nil {
		return nil, handleDBError(err, "get student by user id")
	}
	return &student, nil
}

func (r *studentRepository) Update(ctx context.Context, tx *gorm.DB, student *models.Student) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(student).Error; err != nil {
		return handleDBError(err, "update student")
	}
	return nil
}

// ===== QUERY OPERATIONS =====

func (r *studentRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	db := r.getDB(tx)
	var students []*models.Student
	var total int64

	query := db.WithContext(ctx).Model(&models.Student{})
	if filters.DepartmentID != nil {
		query = query.Where("department_id = ?", *filters.DepartmentID)
	}
	if filters.Membership != nil {
		query = query.Where("membership = ?", *filters.Membership)
	}
	if filters.Query != "" {
		pattern := likePattern(filters.Query)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count students")
	}

	query = applyPagination(query.Order("student_id ASC"), filters.Limit, filters.Offset)
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, handleDBError(err, "list students")
	}

	return students, total, nil
}

func (r *studentRepository) ExistsByID(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.Student{}).Where("student_id = ?", id).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check student exists")
	}
	return count > 0, nil
}

func (r *studentRepository) ListByDepartment(ctx context.Context, tx *gorm.DB, departmentID int) ([]*models.Student, error) {
	db := r.getDB(tx)
	var students []*models.Student
	if err := db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("student_id ASC").
		Find(&students).Error; err != nil {
		return nil, handleDBError(err, "list students by department")
	}
	return students, nil
}

func (r *studentRepository) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Where("student_id IN ?", ids).Delete(&models.Student{}).Error; err != nil {
		return handleDBError(err, "delete students")
	}
	return nil
}

// ===== ENROLMENT =====

func (r *studentRepository) Enroll(ctx context.Context, tx *gorm.DB, studentID int, courseCode int) error {
	db := r.getDB(tx)
	row := studentCourse{StudentID: studentID, CourseCode: courseCode}
	// Enrolling twice is a no-op
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return handleDBError(err, "enroll student")
	}
	return nil
}

func (r *studentRepository) Unenroll(ctx context.Context, tx *gorm.DB, studentID int, courseCode int) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Where("student_id = ? AND course_code = ?", studentID, courseCode).
		Delete(&studentCourse{}).Error; err != nil {
		return handleDBError(err, "unenroll student")
	}
	return nil
}

func (r *studentRepository) Courses(ctx context.Context, tx *gorm.DB, studentID int) ([]*models.Course, error) {
	db := r.getDB(tx)
	var courses []*models.Course
	if err := db.WithContext(ctx).
		Joins("JOIN student_courses sc ON sc.course_code = courses.code").
		Where("sc.student_id = ?", studentID).
		Order("courses.code ASC").
		Find(&courses).Error; err != nil {
		return nil, handleDBError(err, "list student courses")
	}
	return courses, nil
}

func (r *studentRepository) ClearEnrollments(ctx context.Context, tx *gorm.DB, studentIDs []int) error {
	if len(studentIDs) == 0 {
		return nil
	}
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Where("student_id IN ?", studentIDs).Delete(&studentCourse{}).Error; err != nil {
		return handleDBError(err, "clear student enrollments")
	}
	return nil
}
