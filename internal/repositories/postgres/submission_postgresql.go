package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

type submissionRepository struct {
	baseRepository
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &submissionRepository{baseRepository: baseRepository{db: db}}
}

// Create fails with ErrDuplicateKey when the student already submitted
// for the assignment
func (r *submissionRepository) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(submission).Error; err != nil {
		return handleDBError(err, "create submission")
	}
	return nil
}

func (r *submissionRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	db := r.getDB(tx)
	var submission models.Submission
	if err := db.WithContext(ctx).
		Preload("Assignment").
		Preload("Student").
		First(&submission, id).Error; err != nil {
		return nil, handleDBError(err, "get submission by id")
	}
	return &submission, nil
}

func (r *submissionRepository) GetByAssignmentAndStudent(ctx context.Context, tx *gorm.DB, assignmentID uint, studentID int) (*models.Submission, error) {
	db := r.getDB(tx)
	var submission models.Submission
	if err := db.WithContext(ctx).
		Preload("Assignment").
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error; err != nil {
		return nil, handleDBError(err, "get submission by assignment and student")
	}
	return &submission, nil
}

func (r *submissionRepository) Update(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(submission).Error; err != nil {
		return handleDBError(err, "update submission")
	}
	return nil
}

// List returns submissions oldest first with assignment and student loaded
func (r *submissionRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	db := r.getDB(tx)
	var submissions []*models.Submission
	var total int64

	query := db.WithContext(ctx).Model(&models.Submission{})
	if filters.AssignmentID != nil {
		query = query.Where("assignment_id = ?", *filters.AssignmentID)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count submissions")
	}

	query = applyPagination(orderBy(query, "datetime", false), filters.Limit, filters.Offset).
		Preload("Assignment").
		Preload("Student")
	if err := query.Find(&submissions).Error; err != nil {
		return nil, 0, handleDBError(err, "list submissions")
	}

	return submissions, total, nil
}

func (r *submissionRepository) ListByAssignments(ctx context.Context, tx *gorm.DB, assignmentIDs []uint) ([]*models.Submission, error) {
	if len(assignmentIDs) == 0 {
		return nil, nil
	}
	db := r.getDB(tx)
	var submissions []*models.Submission
	if err := db.WithContext(ctx).Where("assignment_id IN ?", assignmentIDs).Order("id ASC").Find(&submissions).Error; err != nil {
		return nil, handleDBError(err, "list submissions by assignment")
	}
	return submissions, nil
}

func (r *submissionRepository) ListByStudents(ctx context.Context, tx *gorm.DB, studentIDs []int) ([]*models.Submission, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	db := r.getDB(tx)
	var submissions []*models.Submission
	if err := db.WithContext(ctx).Where("student_id IN ?", studentIDs).Order("id ASC").Find(&submissions).Error; err != nil {
		return nil, handleDBError(err, "list submissions by student")
	}
	return submissions, nil
}

func (r *submissionRepository) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Submission{}).Error; err != nil {
		return handleDBError(err, "delete submissions")
	}
	return nil
}
