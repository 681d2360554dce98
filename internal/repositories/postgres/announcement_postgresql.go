package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

type announcementRepository struct {
	baseRepository
}

func NewAnnouncementPostgreSQL(db *gorm.DB) repositories.AnnouncementRepository {
	return &announcementRepository{baseRepository: baseRepository{db: db}}
}

func (r *announcementRepository) Create(ctx context.Context, tx *gorm.DB, announcement *models.Announcement) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(announcement).Error; err != nil {
		return handleDBError(err, "create announcement")
	}
	return nil
}

func (r *announcementRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Announcement, error) {
	db := r.getDB(tx)
	var announcement models.Announcement
	if err := db.WithContext(ctx).First(&announcement, id).Error; err != nil {
		return nil, handleDBError(err, "get announcement by id")
	}
	return &announcement, nil
}

func (r *announcementRepository) Update(ctx context.Context, tx *gorm.DB, announcement *models.Announcement) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(announcement).Error; err != nil {
		return handleDBError(err, "update announcement")
	}
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete announcement")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete announcement")
	}
	return nil
}

// List returns announcements newest first
func (r *announcementRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseContentFilters) ([]*models.Announcement, int64, error) {
	db := r.getDB(tx)
	var announcements []*models.Announcement
	var total int64

	query := applyCourseContentFilters(db.WithContext(ctx).Model(&models.Announcement{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count announcements")
	}

	query = applyPagination(orderBy(query, "datetime", true), filters.Limit, filters.Offset)
	if err := query.Find(&announcements).Error; err != nil {
		return nil, 0, handleDBError(err, "list announcements")
	}

	return announcements, total, nil
}

func (r *announcementRepository) DeleteByCourses(ctx context.Context, tx *gorm.DB, codes []int) error {
	if len(codes) == 0 {
		return nil
	}
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Where("course_code IN ?", codes).Delete(&models.Announcement{}).Error; err != nil {
		return handleDBError(err, "delete announcements by course")
	}
	return nil
}
