package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/cache"
	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

const membershipListKey = "list:all"

type membershipRepository struct {
	baseRepository
	cacheManager *cache.CacheManager
}

func NewMembershipPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.MembershipRepository {
	return &membershipRepository{
		baseRepository: baseRepository{db: db},
		cacheManager:   cacheManager,
	}
}

func (r *membershipRepository) Create(ctx context.Context, tx *gorm.DB, membership *models.Membership) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(membership).Error; err != nil {
		return handleDBError(err, "create membership")
	}

	r.cacheManager.InvalidateMemberships(ctx)
	return nil
}

func (r *membershipRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Membership, error) {
	db := r.getDB(tx)
	var membership models.Membership
	if err := db.WithContext(ctx).First(&membership, id).Error; err != nil {
		return nil, handleDBError(err, "get membership by id")
	}
	return &membership, nil
}

func (r *membershipRepository) Update(ctx context.Context, tx *gorm.DB, membership *models.Membership) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(membership).Error; err != nil {
		return handleDBError(err, "update membership")
	}

	r.cacheManager.InvalidateMemberships(ctx)
	return nil
}

func (r *membershipRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Membership{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete membership")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete membership")
	}

	r.cacheManager.InvalidateMemberships(ctx)
	return nil
}

// List returns the whole catalog ordered by price, cached when no
// transaction is given
func (r *membershipRepository) List(ctx context.Context, tx *gorm.DB) ([]*models.Membership, error) {
	if tx != nil {
		return r.list(ctx, tx)
	}

	var memberships []*models.Membership
	err := r.cacheManager.Membership.CacheOrExecute(ctx, membershipListKey, &memberships, func() (interface{}, error) {
		return r.list(ctx, nil)
	})
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *membershipRepository) list(ctx context.Context, tx *gorm.DB) ([]*models.Membership, error) {
	db := r.getDB(tx)
	var memberships []*models.Membership
	if err := db.WithContext(ctx).Order("price ASC").Order("id ASC").Find(&memberships).Error; err != nil {
		return nil, handleDBError(err, "list memberships")
	}
	return memberships, nil
}

func (r *membershipRepository) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.Membership{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count memberships")
	}
	return count, nil
}
