package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

const entityDepartment = "department"

type departmentService struct {
	serviceDeps
}

func NewDepartmentService(deps Dependencies) DepartmentService {
	return &departmentService{serviceDeps: newServiceDeps(deps)}
}

// ===== CORE CRUD OPERATIONS =====

func (s *departmentService) Create(ctx context.Context, department *models.Department) (*models.Department, error) {
	s.logger.Info("Creating department", "department_id", department.ID, "name", department.Name)

	if err := s.validate(entityDepartment, department); err != nil {
		return nil, err
	}

	if err := s.repo.Department().Create(ctx, nil, department); err != nil {
		s.logger.Error("Failed to create department", "department_id", department.ID, "error", err)
		return nil, translateRepoError(err, entityDepartment, department.ID)
	}

	s.logger.Info("Department created successfully", "department_id", department.ID)
	return department, nil
}

func (s *departmentService) GetByID(ctx context.Context, id int) (*models.Department, error) {
	department, err := s.repo.Department().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateRepoError(err, entityDepartment, id)
	}
	return department, nil
}

func (s *departmentService) Update(ctx context.Context, department *models.Department) (*models.Department, error) {
	s.logger.Info("Updating department", "department_id", department.ID)

	if err := s.validate(entityDepartment, department); err != nil {
		return nil, err
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.Department().ExistsByID(ctx, tx, department.ID)
		if err := requireFound(exists, err, entityDepartment, department.ID); err != nil {
			return err
		}
		return s.repo.Department().Update(ctx, tx, department)
	})
	if err != nil {
		return nil, translateRepoError(err, entityDepartment, department.ID)
	}

	s.invalidateDepartment(ctx, department.ID)
	s.logger.Info("Department updated successfully", "department_id", department.ID)
	return department, nil
}

func (s *departmentService) Delete(ctx context.Context, id int) error {
	return s.runDelete(ctx, entityDepartment, id, func(tx *gorm.DB, plan *deletePlan) error {
		if _, err := s.repo.Department().GetByID(ctx, tx, id); err != nil {
			return err
		}
		return s.planDepartment(ctx, tx, plan, id)
	})
}

func (s *departmentService) List(ctx context.Context, filters repositories.ListFilters) ([]*models.Department, int64, error) {
	departments, total, err := s.repo.Department().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, translateRepoError(err, entityDepartment, nil)
	}
	return departments, total, nil
}

// ===== COUNTS =====

func (s *departmentService) StudentCount(ctx context.Context, id int) (int64, error) {
	if err := s.ensureExists(ctx, id); err != nil {
		return 0, err
	}
	count, err := s.repo.Department().CountStudents(ctx, nil, id)
	return count, translateRepoError(err, entityDepartment, id)
}

func (s *departmentService) FacultyCount(ctx context.Context, id int) (int64, error) {
	if err := s.ensureExists(ctx, id); err != nil {
		return 0, err
	}
	count, err := s.repo.Department().CountFaculty(ctx, nil, id)
	return count, translateRepoError(err, entityDepartment, id)
}

func (s *departmentService) CourseCount(ctx context.Context, id int) (int64, error) {
	if err := s.ensureExists(ctx, id); err != nil {
		return 0, err
	}
	count, err := s.repo.Department().CountCourses(ctx, nil, id)
	return count, translateRepoError(err, entityDepartment, id)
}

// Summary reads the department and its three counts in one transaction
func (s *departmentService) Summary(ctx context.Context, id int) (*DepartmentSummary, error) {
	summary := &DepartmentSummary{}
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		department, err := s.repo.Department().GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		summary.Department = department

		if summary.StudentCount, err = s.repo.Department().CountStudents(ctx, tx, id); err != nil {
			return err
		}
		if summary.FacultyCount, err = s.repo.Department().CountFaculty(ctx, tx, id); err != nil {
			return err
		}
		summary.CourseCount, err = s.repo.Department().CountCourses(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, translateRepoError(err, entityDepartment, id)
	}

	summary.Department.StudentCount = summary.StudentCount
	summary.Department.FacultyCount = summary.FacultyCount
	summary.Department.CourseCount = summary.CourseCount
	return summary, nil
}

func (s *departmentService) ensureExists(ctx context.Context, id int) error {
	exists, err := s.repo.Department().ExistsByID(ctx, nil, id)
	return translateRepoError(requireFound(exists, err, entityDepartment, id), entityDepartment, id)
}
