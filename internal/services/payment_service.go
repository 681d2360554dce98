package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/events"
	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

const entityPayment = "payment"

type paymentService struct {
	serviceDeps
}

func NewPaymentService(deps Dependencies) PaymentService {
	return &paymentService{serviceDeps: newServiceDeps(deps)}
}

func (s *paymentService) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	s.logger.Info("Recording payment", "course_code", payment.CourseCode)

	if err := s.validate(entityPayment, payment); err != nil {
		return nil, err
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.Course().ExistsByCode(ctx, tx, payment.CourseCode)
		if err := requireFound(exists, err, entityCourse, payment.CourseCode); err != nil {
			return err
		}
		return s.repo.Payment().Create(ctx, tx, payment)
	})
	if err != nil {
		s.logger.Error("Failed to record payment", "course_code", payment.CourseCode, "error", err)
		return nil, translateRepoError(err, entityPayment, payment.ID)
	}

	s.logger.Info("Payment recorded successfully", "payment_id", payment.ID, "amount", payment.Amount)
	s.publish(ctx, events.TopicPaymentRecorded, events.NewEvent("recorded", entityPayment, payment.ID, map[string]interface{}{
		"course_code": payment.CourseCode,
		"amount":      payment.Amount,
	}))
	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.repo.Payment().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateRepoError(err, entityPayment, id)
	}
	return payment, nil
}

// Update rewrites the payment; the amount is recomputed from the current
// course price
func (s *paymentService) Update(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	s.logger.Info("Updating payment", "payment_id", payment.ID)

	if err := s.validate(entityPayment, payment); err != nil {
		return nil, err
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		current, err := s.repo.Payment().GetByID(ctx, tx, payment.ID)
		if err != nil {
			return err
		}
		payment.Timestamp = current.Timestamp

		exists, err := s.repo.Course().ExistsByCode(ctx, tx, payment.CourseCode)
		if err := requireFound(exists, err, entityCourse, payment.CourseCode); err != nil {
			return err
		}
		return s.repo.Payment().Update(ctx, tx, payment)
	})
	if err != nil {
		return nil, translateRepoError(err, entityPayment, payment.ID)
	}

	s.logger.Info("Payment updated successfully", "payment_id", payment.ID)
	return payment, nil
}

func (s *paymentService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting payment", "payment_id", id)

	if err := s.repo.Payment().Delete(ctx, nil, id); err != nil {
		return translateRepoError(err, entityPayment, id)
	}

	s.publish(ctx, events.TopicRecordDeleted, events.NewEvent("deleted", entityPayment, id, nil))
	return nil
}

func (s *paymentService) List(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error) {
	payments, total, err := s.repo.Payment().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, translateRepoError(err, entityPayment, nil)
	}
	return payments, total, nil
}
