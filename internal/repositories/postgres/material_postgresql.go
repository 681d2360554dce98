package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

type materialRepository struct {
	baseRepository
}

func NewMaterialPostgreSQL(db *gorm.DB) repositories.MaterialRepository {
	return &materialRepository{baseRepository: baseRepository{db: db}}
}

func (r *materialRepository) Create(ctx context.Context, tx *gorm.DB, material *models.Material) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(material).Error; err != nil {
		return handleDBError(err, "create material")
	}
	return nil
}

func (r *materialRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Material, error) {
	db := r.getDB(tx)
	var material models.Material
	if err := db.WithContext(ctx).First(&material, id).Error; err != nil {
		return nil, handleDBError(err, "get material by id")
	}
	return &material, nil
}

func (r *materialRepository) Update(ctx context.Context, tx *gorm.DB, material *models.Material) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(material).Error; err != nil {
		return handleDBError(err, "update material")
	}
	return nil
}

// List returns materials newest first
func (r *materialRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseContentFilters) ([]*models.Material, int64, error) {
	db := r.getDB(tx)
	var materials []*models.Material
	var total int64

	query := applyCourseContentFilters(db.WithContext(ctx).Model(&models.Material{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count materials")
	}

	query = applyPagination(orderBy(query, "datetime", true), filters.Limit, filters.Offset)
	if err := query.Find(&materials).Error; err != nil {
		return nil, 0, handleDBError(err, "list materials")
	}

	return materials, total, nil
}

func (r *materialRepository) ListByCourses(ctx context.Context, tx *gorm.DB, codes []int) ([]*models.Material, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	db := r.getDB(tx)
	var materials []*models.Material
	if err := db.WithContext(ctx).Where("course_code IN ?", codes).Order("id ASC").Find(&materials).Error; err != nil {
		return nil, handleDBError(err, "list materials by course")
	}
	return materials, nil
}

func (r *materialRepository) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Material{}).Error; err != nil {
		return handleDBError(err, "delete materials")
	}
	return nil
}
