package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
	"github.com/SAP-F-2025/elearning-service/internal/storage"
)

const entityAssignment = "assignment"

type assignmentService struct {
	serviceDeps
}

func NewAssignmentService(deps Dependencies) AssignmentService {
	return &assignmentService{serviceDeps: newServiceDeps(deps)}
}

func (s *assignmentService) Create(ctx context.Context, assignment *models.Assignment, file *storage.Upload) (*models.Assignment, error) {
	s.logger.Info("Creating assignment", "course_code", assignment.CourseCode, "title", assignment.Title)

	if err := s.validate(entityAssignment, assignment); err != nil {
		return nil, err
	}

	path, err := s.saveUpload(ctx, storage.NamespaceAssignments, file)
	if err != nil {
		return nil, err
	}
	if path != "" {
		assignment.File = &path
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.Course().ExistsByCode(ctx, tx, assignment.CourseCode)
		if err := requireFound(exists, err, entityCourse, assignment.CourseCode); err != nil {
			return err
		}
		return s.repo.Assignment().Create(ctx, tx, assignment)
	})
	if err != nil {
		s.discardUpload(ctx, path)
		s.logger.Error("Failed to create assignment", "course_code", assignment.CourseCode, "error", err)
		return nil, translateRepoError(err, entityAssignment, assignment.ID)
	}

	s.logger.Info("Assignment created successfully", "assignment_id", assignment.ID)
	return assignment, nil
}

func (s *assignmentService) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateRepoError(err, entityAssignment, id)
	}
	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, assignment *models.Assignment, file *storage.Upload) (*models.Assignment, error) {
	s.logger.Info("Updating assignment", "assignment_id", assignment.ID)

	if err := s.validate(entityAssignment, assignment); err != nil {
		return nil, err
	}

	path, err := s.saveUpload(ctx, storage.NamespaceAssignments, file)
	if err != nil {
		return nil, err
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		current, err := s.repo.Assignment().GetByID(ctx, tx, assignment.ID)
		if err != nil {
			return err
		}
		assignment.PostedAt = current.PostedAt

		var stale []string
		switch {
		case path != "":
			stale = current.StoredFiles()
			assignment.File = &path
		case assignment.File == nil:
			assignment.File = current.File
		}

		exists, err := s.repo.Course().ExistsByCode(ctx, tx, assignment.CourseCode)
		if err := requireFound(exists, err, entityCourse, assignment.CourseCode); err != nil {
			return err
		}
		if err := s.repo.Assignment().Update(ctx, tx, assignment); err != nil {
			return err
		}
		return s.removeFiles(ctx, stale)
	})
	if err != nil {
		s.discardUpload(ctx, path)
		return nil, translateRepoError(err, entityAssignment, assignment.ID)
	}

	s.logger.Info("Assignment updated successfully", "assignment_id", assignment.ID)
	return assignment, nil
}

// Delete removes the assignment, its submissions and all of their files
func (s *assignmentService) Delete(ctx context.Context, id uint) error {
	return s.runDelete(ctx, entityAssignment, id, func(tx *gorm.DB, plan *deletePlan) error {
		assignment, err := s.repo.Assignment().GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		return s.planAssignments(ctx, tx, plan, []*models.Assignment{assignment})
	})
}

func (s *assignmentService) List(ctx context.Context, filters repositories.CourseContentFilters) ([]*models.Assignment, int64, error) {
	assignments, total, err := s.repo.Assignment().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, translateRepoError(err, entityAssignment, nil)
	}
	return assignments, total, nil
}

func (s *assignmentService) ListByCourse(ctx context.Context, courseCode int) ([]*models.Assignment, error) {
	assignments, _, err := s.List(ctx, repositories.CourseContentFilters{CourseCode: &courseCode})
	return assignments, err
}
