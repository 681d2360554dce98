package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/cache"
	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

type departmentRepository struct {
	baseRepository
	cacheManager *cache.CacheManager
}

func NewDepartmentPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.DepartmentRepository {
	return &departmentRepository{
		baseRepository: baseRepository{db: db},
		cacheManager:   cacheManager,
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *departmentRepository) Create(ctx context.Context, tx *gorm.DB, department *models.Department) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(department).Error; err != nil {
		return handleDBError(err, "create department")
	}
	return nil
}

// GetByID reads through the cache unless a transaction is given
func (r *departmentRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*models.Department, error) {
	if tx != nil {
		return r.getByID(ctx, tx, id)
	}

	var department models.Department
	err := r.cacheManager.Department.CacheOrExecute(ctx, fmt.Sprintf("id:%d", id), &department, func() (interface{}, error) {
		return r.getByID(ctx, nil, id)
	})
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) getByID(ctx context.Context, tx *gorm.DB, id int) (*models.Department, error) {
	db := r.getDB(tx)
	var department models.Department
	if err := db.WithContext(ctx).First(&department, "department_id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get department by id")
	}
	return &department, nil
}

func (r *departmentRepository) Update(ctx context.Context, tx *gorm.DB, department *models.Department) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(department).Error; err != nil {
		return handleDBError(err, "update department")
	}

	r.cacheManager.InvalidateDepartment(ctx, department.ID)
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Department{}, "department_id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete department")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete department")
	}

	r.cacheManager.InvalidateDepartment(ctx, id)
	return nil
}

// ===== QUERY OPERATIONS =====

func (r *departmentRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Department, int64, error) {
	db := r.getDB(tx)
	var departments []*models.Department
	var total int64

	query := db.WithContext(ctx).Model(&models.Department{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count departments")
	}

	sortKeyToColumn := map[string]string{
		"department_id": "department_id",
		"name":          "name",
	}
	// Ascending by id unless asked otherwise
	if filters.SortOrder == "" {
		filters.SortOrder = "asc"
	}
	query = applyPaginationAndSorting(query, sortKeyToColumn, "department_id", filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)

	if err := query.Find(&departments).Error; err != nil {
		return nil, 0, handleDBError(err, "list departments")
	}

	return departments, total, nil
}

// ExistsByID remembers hits outside a transaction
func (r *departmentRepository) ExistsByID(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	if tx != nil {
		return r.existsByID(ctx, tx, id)
	}
	return r.cacheManager.Exists.RememberExists(ctx, fmt.Sprintf("department:%d", id), func() (bool, error) {
		return r.existsByID(ctx, nil, id)
	})
}

func (r *departmentRepository) existsByID(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.Department{}).Where("department_id = ?", id).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check department exists")
	}
	return count > 0, nil
}

// ===== COUNTS =====

func (r *departmentRepository) CountStudents(ctx context.Context, tx *gorm.DB, id int) (int64, error) {
	return r.countWhereDepartment(ctx, tx, &models.Student{}, id, "count department students")
}

func (r *departmentRepository) CountFaculty(ctx context.Context, tx *gorm.DB, id int) (int64, error) {
	return r.countWhereDepartment(ctx, tx, &models.Faculty{}, id, "count department faculty")
}

func (r *departmentRepository) CountCourses(ctx context.Context, tx *gorm.DB, id int) (int64, error) {
	return r.countWhereDepartment(ctx, tx, &models.Course{}, id, "count department courses")
}

func (r *departmentRepository) countWhereDepartment(ctx context.Context, tx *gorm.DB, model interface{}, id int, operation string) (int64, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("department_id = ?", id).Count(&count).Error; err != nil {
		return 0, handleDBError(err, operation)
	}
	return count, nil
}
