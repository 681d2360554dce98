package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/elearning-service/internal/cache"
	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

type courseRepository struct {
	baseRepository
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CourseRepository {
	return &courseRepository{
		baseRepository: baseRepository{db: db},
		cacheManager:   cacheManager,
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *courseRepository) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(course).Error; err != nil {
		return handleDBError(err, "create course")
	}
	return nil
}

// GetByCode reads through the cache unless a transaction is given
func (r *courseRepository) GetByCode(ctx context.Context, tx *gorm.DB, code int) (*models.Course, error) {
	if tx != nil {
		return r.getByCode(ctx, tx, code)
	}

	var course models.Course
	err := r.cacheManager.Course.CacheOrExecute(ctx, fmt.Sprintf("code:%d", code), &course, func() (interface{}, error) {
		return r.getByCode(ctx, nil, code)
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) getByCode(ctx context.Context, tx *gorm.DB, code int) (*models.Course, error) {
	db := r.getDB(tx)
	var course models.Course
	if err := db.WithContext(ctx).First(&course, "code = ?", code).Error; err != nil {
		return nil, handleDBError(err, "get course by code")
	}
	return &course, nil
}

func (r *courseRepository) GetByCodeWithDetails(ctx context.Context, tx *gorm.DB, code int) (*models.Course, error) {
	db := r.getDB(tx)
	var course models.Course
	if err := db.WithContext(ctx).
		Preload("Department").
		Preload("Faculty").
		First(&course, "code = ?", code).Error; err != nil {
		return nil, handleDBError(err, "get course with details")
	}
	return &course, nil
}

func (r *courseRepository) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(course).Error; err != nil {
		return handleDBError(err, "update course")
	}

	r.cacheManager.InvalidateCourse(ctx, course.Code)
	return nil
}

// ===== QUERY OPERATIONS =====

func (r *courseRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	db := r.getDB(tx)
	var courses []*models.Course
	var total int64

	query := db.WithContext(ctx).Model(&models.Course{})
	if filters.DepartmentID != nil {
		query = query.Where("department_id = ?", *filters.DepartmentID)
	}
	if filters.FacultyID != nil {
		query = query.Where("faculty_id = ?", *filters.FacultyID)
	}
	if filters.MembershipLevel != nil {
		query = query.Where("membership_level = ?", *filters.MembershipLevel)
	}
	if filters.Query != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(filters.Query))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count courses")
	}

	query = applyPagination(query.Order("code ASC"), filters.Limit, filters.Offset)
	if err := query.Find(&courses).Error; err != nil {
		return nil, 0, handleDBError(err, "list courses")
	}

	return courses, total, nil
}

// ExistsByCode remembers hits outside a transaction
func (r *courseRepository) ExistsByCode(ctx context.Context, tx *gorm.DB, code int) (bool, error) {
	if tx != nil {
		return r.existsByCode(ctx, tx, code)
	}
	return r.cacheManager.Exists.RememberExists(ctx, fmt.Sprintf("course:%d", code), func() (bool, error) {
		return r.existsByCode(ctx, nil, code)
	})
}

func (r *courseRepository) existsByCode(ctx context.Context, tx *gorm.DB, code int) (bool, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.Course{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check course exists")
	}
	return count > 0, nil
}

func (r *courseRepository) ListCodesByDepartment(ctx context.Context, tx *gorm.DB, departmentID int) ([]int, error) {
	db := r.getDB(tx)
	var codes []int
	if err := db.WithContext(ctx).
		Model(&models.Course{}).
		Where("department_id = ?", departmentID).
		Order("code ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, handleDBError(err, "list course codes by department")
	}
	return codes, nil
}

func (r *courseRepository) DeleteByCodes(ctx context.Context, tx *gorm.DB, codes []int) error {
	if len(codes) == 0 {
		return nil
	}
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Where("code IN ?", codes).Delete(&models.Course{}).Error; err != nil {
		return handleDBError(err, "delete courses")
	}

	for _, code := range codes {
		r.cacheManager.InvalidateCourse(ctx, code)
	}
	return nil
}

// ===== FACULTY ASSIGNMENT =====

func (r *courseRepository) ClearFaculty(ctx context.Context, tx *gorm.DB, facultyIDs []int) (int64, error) {
	if len(facultyIDs) == 0 {
		return 0, nil
	}
	db := r.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.Course{}).
		Where("faculty_id IN ?", facultyIDs).
		Update("faculty_id", nil)
	if result.Error != nil {
		return 0, handleDBError(result.Error, "clear course faculty")
	}

	if result.RowsAffected > 0 {
		r.cacheManager.InvalidateAllCourses(ctx)
	}
	return result.RowsAffected, nil
}

func (r *courseRepository) SetFaculty(ctx context.Context, tx *gorm.DB, code int, facultyID *int) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.Course{}).
		Where("code = ?", code).
		Update("faculty_id", facultyID)
	if result.Error != nil {
		return handleDBError(result.Error, "set course faculty")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "set course faculty")
	}

	r.cacheManager.InvalidateCourse(ctx, code)
	return nil
}

// ===== ENROLMENT =====

func (r *courseRepository) Students(ctx context.Context, tx *gorm.DB, code int) ([]*models.Student, error) {
	db := r.getDB(tx)
	var students []*models.Student
	if err := db.WithContext(ctx).
		Joins("JOIN student_courses sc ON sc.student_id = students.student_id").
		Where("sc.course_code = ?", code).
		Order("students.student_id ASC").
		Find(&students).Error; err != nil {
		return nil, handleDBError(err, "list course students")
	}
	return students, nil
}

func (r *courseRepository) ClearEnrollments(ctx context.Context, tx *gorm.DB, codes []int) error {
	if len(codes) == 0 {
		return nil
	}
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Where("course_code IN ?", codes).Delete(&studentCourse{}).Error; err != nil {
		return handleDBError(err, "clear course enrollments")
	}
	return nil
}
