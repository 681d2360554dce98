package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

type assignmentRepository struct {
	baseRepository
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &assignmentRepository{baseRepository: baseRepository{db: db}}
}

func (r *assignmentRepository) Create(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(assignment).Error; err != nil {
		return handleDBError(err, "create assignment")
	}
	return nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assignment, error) {
	db := r.getDB(tx)
	var assignment models.Assignment
	if err := db.WithContext(ctx).Preload("Course").First(&assignment, id).Error; err != nil {
		return nil, handleDBError(err, "get assignment by id")
	}
	return &assignment, nil
}

func (r *assignmentRepository) Update(ctx context.Context, tx *gorm.DB, assignment *models.Assignment) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(assignment).Error; err != nil {
		return handleDBError(err, "update assignment")
	}
	return nil
}

// List returns assignments newest first
func (r *assignmentRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseContentFilters) ([]*models.Assignment, int64, error) {
	db := r.getDB(tx)
	var assignments []*models.Assignment
	var total int64

	query := applyCourseContentFilters(db.WithContext(ctx).Model(&models.Assignment{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count assignments")
	}

	query = applyPagination(orderBy(query, "datetime", true), filters.Limit, filters.Offset)
	if err := query.Find(&assignments).Error; err != nil {
		return nil, 0, handleDBError(err, "list assignments")
	}

	return assignments, total, nil
}

func (r *assignmentRepository) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.Assignment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check assignment exists")
	}
	return count > 0, nil
}

func (r *assignmentRepository) ListByCourses(ctx context.Context, tx *gorm.DB, codes []int) ([]*models.Assignment, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	db := r.getDB(tx)
	var assignments []*models.Assignment
	if err := db.WithContext(ctx).Where("course_code IN ?", codes).Order("id ASC").Find(&assignments).Error; err != nil {
		return nil, handleDBError(err, "list assignments by course")
	}
	return assignments, nil
}

func (r *assignmentRepository) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Assignment{}).Error; err != nil {
		return handleDBError(err, "delete assignments")
	}
	return nil
}
