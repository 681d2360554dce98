package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
	"github.com/SAP-F-2025/elearning-service/internal/storage"
)

const entityFaculty = "faculty"

type facultyService struct {
	serviceDeps
}

func NewFacultyService(deps Dependencies) FacultyService {
	return &facultyService{serviceDeps: newServiceDeps(deps)}
}

func (s *facultyService) Create(ctx context.Context, faculty *models.Faculty, photo *storage.Upload) (*models.Faculty, error) {
	s.logger.Info("Creating faculty", "faculty_id", faculty.ID, "department_id", faculty.DepartmentID)

	if faculty.Photo == "" {
		faculty.Photo = s.assets.FacultyPhoto
	}
	if faculty.Role == "" {
		faculty.Role = models.DefaultFacultyRole
	}
	if err := s.validate(entityFaculty, faculty); err != nil {
		return nil, err
	}

	path, err := s.saveUpload(ctx, storage.NamespaceProfilePics, photo)
	if err != nil {
		return nil, err
	}
	if path != "" {
		faculty.Photo = path
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.Department().ExistsByID(ctx, tx, faculty.DepartmentID)
		if err := requireFound(exists, err, entityDepartment, faculty.DepartmentID); err != nil {
			return err
		}
		return s.repo.Faculty().Create(ctx, tx, faculty)
	})
	if err != nil {
		s.discardUpload(ctx, path)
		s.logger.Error("Failed to create faculty", "faculty_id", faculty.ID, "error", err)
		return nil, translateRepoError(err, entityFaculty, faculty.ID)
	}

	s.logger.Info("Faculty created successfully", "faculty_id", faculty.ID)
	return faculty, nil
}

func (s *facultyService) GetByID(ctx context.Context, id int) (*models.Faculty, error) {
	faculty, err := s.repo.Faculty().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateRepoError(err, entityFaculty, id)
	}
	return faculty, nil
}

func (s *facultyService) Update(ctx context.Context, faculty *models.Faculty, photo *storage.Upload) (*models.Faculty, error) {
	s.logger.Info("Updating faculty", "faculty_id", faculty.ID)

	path, err := s.saveUpload(ctx, storage.NamespaceProfilePics, photo)
	if err != nil {
		return nil, err
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		current, err := s.repo.Faculty().GetByID(ctx, tx, faculty.ID)
		if err != nil {
			return err
		}
		if faculty.Password == "" {
			faculty.Password = current.Password
		}
		if faculty.Photo == "" {
			faculty.Photo = current.Photo
		}
		if faculty.Email == nil {
			faculty.Email = current.Email
		}
		if faculty.Role == "" {
			faculty.Role = current.Role
		}
		if faculty.UserID == nil {
			faculty.UserID = current.UserID
		}
		if faculty.DepartmentID == 0 {
			faculty.DepartmentID = current.DepartmentID
		}

		var stale []string
		if path != "" {
			stale = current.StoredFiles()
			faculty.Photo = path
		}

		if err := s.validate(entityFaculty, faculty); err != nil {
			return err
		}
		exists, err := s.repo.Department().ExistsByID(ctx, tx, faculty.DepartmentID)
		if err := requireFound(exists, err, entityDepartment, faculty.DepartmentID); err != nil {
			return err
		}
		if err := s.repo.Faculty().Update(ctx, tx, faculty); err != nil {
			return err
		}
		return s.removeFiles(ctx, stale)
	})
	if err != nil {
		s.discardUpload(ctx, path)
		s.logger.Error("Failed to update faculty", "faculty_id", faculty.ID, "error", err)
		return nil, translateRepoError(err, entityFaculty, faculty.ID)
	}

	s.logger.Info("Faculty updated successfully", "faculty_id", faculty.ID)
	return faculty, nil
}

// Delete removes the faculty and its photo. Courses it taught stay with no
// faculty.
func (s *facultyService) Delete(ctx context.Context, id int) error {
	return s.runDelete(ctx, entityFaculty, id, func(tx *gorm.DB, plan *deletePlan) error {
		faculty, err := s.repo.Faculty().GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		s.planFaculty(plan, []*models.Faculty{faculty})
		return nil
	})
}

func (s *facultyService) List(ctx context.Context, filters repositories.FacultyFilters) ([]*models.Faculty, int64, error) {
	faculty, total, err := s.repo.Faculty().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, translateRepoError(err, entityFaculty, nil)
	}
	return faculty, total, nil
}
