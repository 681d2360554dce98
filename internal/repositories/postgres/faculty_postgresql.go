package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

type facultyRepository struct {
	baseRepository
}

func NewFacultyPostgreSQL(db *gorm.DB) repositories.FacultyRepository {
	return &facultyRepository{baseRepository: baseRepository{db: db}}
}

func (r *facultyRepository) Create(ctx context.Context, tx *gorm.DB, faculty *models.Faculty) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(faculty).Error; err != nil {
		return handleDBError(err, "create faculty")
	}
	return nil
}

func (r *facultyRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*models.Faculty, error) {
	db := r.getDB(tx)
	var faculty models.Faculty
	if err := db.WithContext(ctx).
		Preload("Department").
		First(&faculty, "faculty_id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get faculty by id")
	}
	return &faculty, nil
}

func (r *facultyRepository) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.Faculty, error) {
	db := r.getDB(tx)
	var faculty models.Faculty
	if err := db.WithContext(ctx).First(&faculty, "user_id = ?", userID).Error; err != nil {
		return nil, handleDBError(err, "get faculty by user id")
	}
	return &faculty, nil
}

func (r *facultyRepository) Update(ctx context.Context, tx *gorm.DB, faculty *models.Faculty) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(faculty).Error; err != nil {
		return handleDBError(err, "update faculty")
	}
	return nil
}

func (r *facultyRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.FacultyFilters) ([]*models.Faculty, int64, error) {
	db := r.getDB(tx)
	var faculty []*models.Faculty
	var total int64

	query := db.WithContext(ctx).Model(&models.Faculty{})
	if filters.DepartmentID != nil {
		query = query.Where("department_id = ?", *filters.DepartmentID)
	}
	if filters.Query != "" {
		pattern := likePattern(filters.Query)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count faculty")
	}

	query = applyPagination(query.Order("faculty_id ASC"), filters.Limit, filters.Offset)
	if err := query.Find(&faculty).Error; err != nil {
		return nil, 0, handleDBError(err, "list faculty")
	}

	return faculty, total, nil
}

func (r *facultyRepository) ExistsByID(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.Faculty{}).Where("faculty_id = ?", id).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check faculty exists")
	}
	return count > 0, nil
}

func (r *facultyRepository) ListByDepartment(ctx context.Context, tx *gorm.DB, departmentID int) ([]*models.Faculty, error) {
	db := r.getDB(tx)
	var faculty []*models.Faculty
	if err := db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("faculty_id ASC").
		Find(&faculty).Error; err != nil {
		return nil, handleDBError(err, "list faculty by department")
	}
	return faculty, nil
}

func (r *facultyRepository) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Where("faculty_id IN ?", ids).Delete(&models.Faculty{}).Error; err != nil {
		return handleDBError(err, "delete faculty")
	}
	return nil
}
