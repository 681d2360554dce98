package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

const entityCourse = "course"

type courseService struct {
	serviceDeps
}

func NewCourseService(deps Dependencies) CourseService {
	return &courseService{serviceDeps: newServiceDeps(deps)}
}

// ===== CORE CRUD OPERATIONS =====

func (s *courseService) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	s.logger.Info("Creating course", "code", course.Code, "name", course.Name, "department_id", course.DepartmentID)

	applyCourseDefaults(course)
	if err := s.validate(entityCourse, course); err != nil {
		return nil, err
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		if err := s.requireParents(ctx, tx, course); err != nil {
			return err
		}
		return s.repo.Course().Create(ctx, tx, course)
	})
	if err != nil {
		s.logger.Error("Failed to create course", "code", course.Code, "error", err)
		return nil, translateRepoError(err, entityCourse, course.Code)
	}

	s.logger.Info("Course created successfully", "code", course.Code)
	return course, nil
}

func (s *courseService) GetByCode(ctx context.Context, code int) (*models.Course, error) {
	course, err := s.repo.Course().GetByCode(ctx, nil, code)
	if err != nil {
		return nil, translateRepoError(err, entityCourse, code)
	}
	return course, nil
}

func (s *courseService) GetWithDetails(ctx context.Context, code int) (*models.Course, error) {
	course, err := s.repo.Course().GetByCodeWithDetails(ctx, nil, code)
	if err != nil {
		return nil, translateRepoError(err, entityCourse, code)
	}
	return course, nil
}

// Update writes the course. Payments already recorded keep their amount.
func (s *courseService) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	s.logger.Info("Updating course", "code", course.Code)

	applyCourseDefaults(course)
	if err := s.validate(entityCourse, course); err != nil {
		return nil, err
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.Course().ExistsByCode(ctx, tx, course.Code)
		if err := requireFound(exists, err, entityCourse, course.Code); err != nil {
			return err
		}
		if err := s.requireParents(ctx, tx, course); err != nil {
			return err
		}
		return s.repo.Course().Update(ctx, tx, course)
	})
	if err != nil {
		s.logger.Error("Failed to update course", "code", course.Code, "error", err)
		return nil, translateRepoError(err, entityCourse, course.Code)
	}

	s.invalidateCourses(ctx)
	s.logger.Info("Course updated successfully", "code", course.Code)
	return course, nil
}

// applyCourseDefaults treats a zero price or empty description as unset on
// both Create and Update
func applyCourseDefaults(course *models.Course) {
	if course.Price == 0 {
		course.Price = models.DefaultCoursePrice
	}
	if course.Description == "" {
		course.Description = models.DefaultCourseDescription
	}
}

// Delete removes the course with its content, payments and enrolments
func (s *courseService) Delete(ctx context.Context, code int) error {
	return s.runDelete(ctx, entityCourse, code, func(tx *gorm.DB, plan *deletePlan) error {
		if _, err := s.repo.Course().GetByCode(ctx, tx, code); err != nil {
			return err
		}
		return s.planCourses(ctx, tx, plan, []int{code})
	})
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	courses, total, err := s.repo.Course().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, translateRepoError(err, entityCourse, nil)
	}
	return courses, total, nil
}

// ===== RELATIONS =====

// AssignFaculty sets or, with nil, clears the course's faculty
func (s *courseService) AssignFaculty(ctx context.Context, code int, facultyID *int) error {
	s.logger.Info("Assigning course faculty", "code", code, "faculty_id", facultyID)

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		if facultyID != nil {
			exists, err := s.repo.Faculty().ExistsByID(ctx, tx, *facultyID)
			if err := requireFound(exists, err, entityFaculty, *facultyID); err != nil {
				return err
			}
		}
		return s.repo.Course().SetFaculty(ctx, tx, code, facultyID)
	})
	if err != nil {
		return translateRepoError(err, entityCourse, code)
	}

	s.invalidateCourses(ctx)
	return nil
}

func (s *courseService) Students(ctx context.Context, code int) ([]*models.Student, error) {
	exists, err := s.repo.Course().ExistsByCode(ctx, nil, code)
	if err := requireFound(exists, err, entityCourse, code); err != nil {
		return nil, translateRepoError(err, entityCourse, code)
	}

	students, err := s.repo.Course().Students(ctx, nil, code)
	if err != nil {
		return nil, translateRepoError(err, entityCourse, code)
	}
	return students, nil
}

func (s *courseService) requireParents(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	exists, err := s.repo.Department().ExistsByID(ctx, tx, course.DepartmentID)
	if err := requireFound(exists, err, entityDepartment, course.DepartmentID); err != nil {
		return err
	}
	if course.FacultyID == nil {
		return nil
	}
	exists, err = s.repo.Faculty().ExistsByID(ctx, tx, *course.FacultyID)
	return requireFound(exists, err, entityFaculty, *course.FacultyID)
}
