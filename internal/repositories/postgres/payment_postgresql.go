package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

type paymentRepository struct {
	baseRepository
}

func NewPaymentPostgreSQL(db *gorm.DB) repositories.PaymentRepository {
	return &paymentRepository{baseRepository: baseRepository{db: db}}
}

// Create stores the payment with Amount taken from the course price
func (r *paymentRepository) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	db := r.getDB(tx)
	if err := r.applyCoursePrice(ctx, db, payment); err != nil {
		return err
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(payment).Error; err != nil {
		return handleDBError(err, "create payment")
	}
	return nil
}

// Update re-reads the course price so the amount follows the current price
func (r *paymentRepository) Update(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	db := r.getDB(tx)
	if err := r.applyCoursePrice(ctx, db, payment); err != nil {
		return err
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(payment).Error; err != nil {
		return handleDBError(err, "update payment")
	}
	return nil
}

// applyCoursePrice always reads from the database; the cached course may be
// older than the transaction.
func (r *paymentRepository) applyCoursePrice(ctx context.Context, db *gorm.DB, payment *models.Payment) error {
	var course models.Course
	if err := db.WithContext(ctx).
		Select("code", "price").
		First(&course, "code = ?", payment.CourseCode).Error; err != nil {
		return handleDBError(err, "get course price")
	}
	payment.Amount = float64(course.Price)
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Payment, error) {
	db := r.getDB(tx)
	var payment models.Payment
	if err := db.WithContext(ctx).Preload("Course").First(&payment, id).Error; err != nil {
		return nil, handleDBError(err, "get payment by id")
	}
	return &payment, nil
}

func (r *paymentRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Payment{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete payment")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete payment")
	}
	return nil
}

func (r *paymentRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.PaymentFilters) ([]*models.Payment, int64, error) {
	db := r.getDB(tx)
	var payments []*models.Payment
	var total int64

	query := db.WithContext(ctx).Model(&models.Payment{})
	if filters.CourseCode != nil {
		query = query.Where("course_code = ?", *filters.CourseCode)
	}
	if filters.DateFrom != nil {
		query = query.Where(clause.Gte{Column: clause.Column{Name: "timestamp"}, Value: *filters.DateFrom})
	}
	if filters.DateTo != nil {
		query = query.Where(clause.Lte{Column: clause.Column{Name: "timestamp"}, Value: *filters.DateTo})
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count payments")
	}

	query = applyPagination(orderBy(query, "timestamp", true), filters.Limit, filters.Offset)
	if err := query.Find(&payments).Error; err != nil {
		return nil, 0, handleDBError(err, "list payments")
	}

	return payments, total, nil
}

func (r *paymentRepository) DeleteByCourses(ctx context.Context, tx *gorm.DB, codes []int) error {
	if len(codes) == 0 {
		return nil
	}
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Where("course_code IN ?", codes).Delete(&models.Payment{}).Error; err != nil {
		return handleDBError(err, "delete payments by course")
	}
	return nil
}
