package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/events"
	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
	"github.com/SAP-F-2025/elearning-service/internal/storage"
)

const entitySubmission = "submission"

type submissionService struct {
	serviceDeps
}

func NewSubmissionService(deps Dependencies) SubmissionService {
	return &submissionService{serviceDeps: newServiceDeps(deps)}
}

// ===== CORE CRUD OPERATIONS =====

// Create records a student's work for an assignment. A second submission
// for the same pair fails with a unique ConstraintViolation.
func (s *submissionService) Create(ctx context.Context, submission *models.Submission, file *storage.Upload) (*models.Submission, error) {
	s.logger.Info("Creating submission",
		"assignment_id", submission.AssignmentID,
		"student_id", submission.StudentID)

	if err := s.validate(entitySubmission, submission); err != nil {
		return nil, err
	}

	path, err := s.saveUpload(ctx, storage.NamespaceSubmissions, file)
	if err != nil {
		return nil, err
	}
	if path != "" {
		submission.File = &path
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		if err := s.requireParents(ctx, tx, submission); err != nil {
			return err
		}
		return s.repo.Submission().Create(ctx, tx, submission)
	})
	if err != nil {
		s.discardUpload(ctx, path)
		s.logger.Error("Failed to create submission",
			"assignment_id", submission.AssignmentID,
			"student_id", submission.StudentID,
			"error", err)
		return nil, translateRepoError(err, entitySubmission, submission.ID)
	}

	s.logger.Info("Submission created successfully", "submission_id", submission.ID)
	s.publish(ctx, events.TopicSubmissionReceived, events.NewEvent("received", entitySubmission, submission.ID, map[string]interface{}{
		"assignment_id": submission.AssignmentID,
		"student_id":    submission.StudentID,
		"file":          derefString(submission.File),
	}))
	return submission, nil
}

func (s *submissionService) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	submission, err := s.repo.Submission().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateRepoError(err, entitySubmission, id)
	}
	return submission, nil
}

func (s *submissionService) Update(ctx context.Context, submission *models.Submission, file *storage.Upload) (*models.Submission, error) {
	s.logger.Info("Updating submission", "submission_id", submission.ID)

	if err := s.validate(entitySubmission, submission); err != nil {
		return nil, err
	}

	path, err := s.saveUpload(ctx, storage.NamespaceSubmissions, file)
	if err != nil {
		return nil, err
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		current, err := s.repo.Submission().GetByID(ctx, tx, submission.ID)
		if err != nil {
			return err
		}
		submission.SubmittedAt = current.SubmittedAt

		var stale []string
		switch {
		case path != "":
			stale = current.StoredFiles()
			submission.File = &path
		case submission.File == nil:
			submission.File = current.File
		}

		if err := s.requireParents(ctx, tx, submission); err != nil {
			return err
		}
		if err := s.repo.Submission().Update(ctx, tx, submission); err != nil {
			return err
		}
		return s.removeFiles(ctx, stale)
	})
	if err != nil {
		s.discardUpload(ctx, path)
		return nil, translateRepoError(err, entitySubmission, submission.ID)
	}

	s.logger.Info("Submission updated successfully", "submission_id", submission.ID)
	return submission, nil
}

func (s *submissionService) Delete(ctx context.Context, id uint) error {
	return s.runDelete(ctx, entitySubmission, id, func(tx *gorm.DB, plan *deletePlan) error {
		submission, err := s.repo.Submission().GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		plan.addSubmissions([]*models.Submission{submission})
		return nil
	})
}

func (s *submissionService) List(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	submissions, total, err := s.repo.Submission().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, translateRepoError(err, entitySubmission, nil)
	}
	return submissions, total, nil
}

// ===== GRADING =====

// Grade stores marks and a free-text status. Marks may not exceed the
// assignment's maximum.
func (s *submissionService) Grade(ctx context.Context, id uint, req *GradeRequest) (*models.Submission, error) {
	s.logger.Info("Grading submission", "submission_id", id, "marks", req.Marks)

	if err := s.validate(entitySubmission, req); err != nil {
		return nil, err
	}

	var submission *models.Submission
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		var err error
		submission, err = s.repo.Submission().GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.validator.ValidateGrade(req.Marks, submission.Assignment); err != nil {
			return newValidationFailure(entitySubmission, err)
		}

		marks := req.Marks
		submission.Marks = &marks
		submission.Status = req.Status
		return s.repo.Submission().Update(ctx, tx, submission)
	})
	if err != nil {
		s.logger.Error("Failed to grade submission", "submission_id", id, "error", err)
		return nil, translateRepoError(err, entitySubmission, id)
	}

	s.logger.Info("Submission graded successfully", "submission_id", id)
	return submission, nil
}

// ===== QUERY OPERATIONS =====

func (s *submissionService) ListByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error) {
	exists, err := s.repo.Assignment().ExistsByID(ctx, nil, assignmentID)
	if err := requireFound(exists, err, entityAssignment, assignmentID); err != nil {
		return nil, translateRepoError(err, entityAssignment, assignmentID)
	}

	submissions, _, err := s.List(ctx, repositories.SubmissionFilters{AssignmentID: &assignmentID})
	return submissions, err
}

func (s *submissionService) ListByStudent(ctx context.Context, studentID int) ([]*models.Submission, error) {
	exists, err := s.repo.Student().ExistsByID(ctx, nil, studentID)
	if err := requireFound(exists, err, entityStudent, studentID); err != nil {
		return nil, translateRepoError(err, entityStudent, studentID)
	}

	submissions, _, err := s.List(ctx, repositories.SubmissionFilters{StudentID: &studentID})
	return submissions, err
}

func (s *submissionService) requireParents(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	exists, err := s.repo.Assignment().ExistsByID(ctx, tx, submission.AssignmentID)
	if err := requireFound(exists, err, entityAssignment, submission.AssignmentID); err != nil {
		return err
	}
	exists, err = s.repo.Student().ExistsByID(ctx, tx, submission.StudentID)
	if err := requireFound(exists, err, entityStudent, submission.StudentID); err != nil {
		return err
	}
	return s.checkMarks(ctx, tx, submission)
}

// checkMarks holds stored marks to the same bounds Grade enforces
func (s *submissionService) checkMarks(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	if submission.Marks == nil {
		return nil
	}
	assignment, err := s.repo.Assignment().GetByID(ctx, tx, submission.AssignmentID)
	if err != nil {
		return err
	}
	if err := s.validator.ValidateGrade(*submission.Marks, assignment); err != nil {
		return newValidationFailure(entitySubmission, err)
	}
	return nil
}
