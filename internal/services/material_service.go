package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
	"github.com/SAP-F-2025/elearning-service/internal/storage"
)

const entityMaterial = "material"

type materialService struct {
	serviceDeps
}

func NewMaterialService(deps Dependencies) MaterialService {
	return &materialService{serviceDeps: newServiceDeps(deps)}
}

func (s *materialService) Create(ctx context.Context, material *models.Material, file *storage.Upload) (*models.Material, error) {
	s.logger.Info("Creating material", "course_code", material.CourseCode)

	if err := s.validate(entityMaterial, material); err != nil {
		return nil, err
	}

	path, err := s.saveUpload(ctx, storage.NamespaceMaterials, file)
	if err != nil {
		return nil, err
	}
	if path != "" {
		material.File = &path
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.Course().ExistsByCode(ctx, tx, material.CourseCode)
		if err := requireFound(exists, err, entityCourse, material.CourseCode); err != nil {
			return err
		}
		return s.repo.Material().Create(ctx, tx, material)
	})
	if err != nil {
		s.discardUpload(ctx, path)
		s.logger.Error("Failed to create material", "course_code", material.CourseCode, "error", err)
		return nil, translateRepoError(err, entityMaterial, material.ID)
	}

	s.logger.Info("Material created successfully", "material_id", material.ID)
	return material, nil
}

func (s *materialService) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	material, err := s.repo.Material().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateRepoError(err, entityMaterial, id)
	}
	return material, nil
}

func (s *materialService) Update(ctx context.Context, material *models.Material, file *storage.Upload) (*models.Material, error) {
	if err := s.validate(entityMaterial, material); err != nil {
		return nil, err
	}

	path, err := s.saveUpload(ctx, storage.NamespaceMaterials, file)
	if err != nil {
		return nil, err
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		current, err := s.repo.Material().GetByID(ctx, tx, material.ID)
		if err != nil {
			return err
		}
		material.PostedAt = current.PostedAt

		var stale []string
		switch {
		case path != "":
			stale = current.StoredFiles()
			material.File = &path
		case material.File == nil:
			material.File = current.File
		}

		exists, err := s.repo.Course().ExistsByCode(ctx, tx, material.CourseCode)
		if err := requireFound(exists, err, entityCourse, material.CourseCode); err != nil {
			return err
		}
		if err := s.repo.Material().Update(ctx, tx, material); err != nil {
			return err
		}
		return s.removeFiles(ctx, stale)
	})
	if err != nil {
		s.discardUpload(ctx, path)
		return nil, translateRepoError(err, entityMaterial, material.ID)
	}

	s.logger.Info("Material updated successfully", "material_id", material.ID)
	return material, nil
}

func (s *materialService) Delete(ctx context.Context, id uint) error {
	return s.runDelete(ctx, entityMaterial, id, func(tx *gorm.DB, plan *deletePlan) error {
		material, err := s.repo.Material().GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		s.planMaterials(plan, []*models.Material{material})
		return nil
	})
}

func (s *materialService) List(ctx context.Context, filters repositories.CourseContentFilters) ([]*models.Material, int64, error) {
	materials, total, err := s.repo.Material().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, translateRepoError(err, entityMaterial, nil)
	}
	return materials, total, nil
}

func (s *materialService) ListByCourse(ctx context.Context, courseCode int) ([]*models.Material, error) {
	materials, _, err := s.List(ctx, repositories.CourseContentFilters{CourseCode: &courseCode})
	return materials, err
}
