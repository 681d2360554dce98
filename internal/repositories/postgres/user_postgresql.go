package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

type userRepository struct {
	baseRepository
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &userRepository{baseRepository: baseRepository{db: db}}
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, handleDBError(err, "get user by id")
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, handleDBError(err, "get user by username")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, handleDBError(err, "get user by email")
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return handleDBError(err, "update user")
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete user")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete user")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	db := r.getDB(tx)
	var users []*models.User
	var total int64

	query := db.WithContext(ctx).Model(&models.User{})
	if filters.UserType != nil {
		query = query.Where("user_type = ?", *filters.UserType)
	}
	if filters.Query != "" {
		pattern := likePattern(filters.Query)
		query = query.Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count users")
	}

	query = applyPagination(query.Order("id ASC"), filters.Limit, filters.Offset)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, handleDBError(err, "list users")
	}

	return users, total, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check username exists")
	}
	return count > 0, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check email exists")
	}
	return count > 0, nil
}
