package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
	"github.com/SAP-F-2025/elearning-service/internal/storage"
)

const entityStudent = "student"

type studentService struct {
	serviceDeps
}

func NewStudentService(deps Dependencies) StudentService {
	return &studentService{serviceDeps: newServiceDeps(deps)}
}

// ===== CORE CRUD OPERATIONS =====

func (s *studentService) Create(ctx context.Context, student *models.Student, photo *storage.Upload) (*models.Student, error) {
	s.logger.Info("Creating student", "student_id", student.ID, "department_id", student.DepartmentID)

	s.applyDefaults(student)
	if err := s.validate(entityStudent, student); err != nil {
		return nil, err
	}

	path, err := s.saveUpload(ctx, storage.NamespaceProfilePics, photo)
	if err != nil {
		return nil, err
	}
	if path != "" {
		student.Photo = path
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.Department().ExistsByID(ctx, tx, student.DepartmentID)
		if err := requireFound(exists, err, entityDepartment, student.DepartmentID); err != nil {
			return err
		}
		return s.repo.Student().Create(ctx, tx, student)
	})
	if err != nil {
		s.discardUpload(ctx, path)
		s.logger.Error("Failed to create student", "student_id", student.ID, "error", err)
		return nil, translateRepoError(err, entityStudent, student.ID)
	}

	s.logger.Info("Student created successfully", "student_id", student.ID)
	return student, nil
}

func (s *studentService) GetByID(ctx context.Context, id int) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateRepoError(err, entityStudent, id)
	}
	return student, nil
}

// Update writes the student. A new photo replaces the stored one, which is
// removed unless it is the placeholder.
func (s *studentService) Update(ctx context.Context, student *models.Student, photo *storage.Upload) (*models.Student, error) {
	s.logger.Info("Updating student", "student_id", student.ID)

	path, err := s.saveUpload(ctx, storage.NamespaceProfilePics, photo)
	if err != nil {
		return nil, err
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		current, err := s.repo.Student().GetByID(ctx, tx, student.ID)
		if err != nil {
			return err
		}
		s.mergeCurrent(student, current)

		var stale []string
		if path != "" {
			stale = current.StoredFiles()
			student.Photo = path
		}

		if err := s.validate(entityStudent, student); err != nil {
			return err
		}
		exists, err := s.repo.Department().ExistsByID(ctx, tx, student.DepartmentID)
		if err := requireFound(exists, err, entityDepartment, student.DepartmentID); err != nil {
			return err
		}
		if err := s.repo.Student().Update(ctx, tx, student); err != nil {
			return err
		}
		return s.removeFiles(ctx, stale)
	})
	if err != nil {
		s.discardUpload(ctx, path)
		s.logger.Error("Failed to update student", "student_id", student.ID, "error", err)
		return nil, translateRepoError(err, entityStudent, student.ID)
	}

	s.logger.Info("Student updated successfully", "student_id", student.ID)
	return student, nil
}

// Delete removes the student, its submissions and enrolments, and their files
func (s *studentService) Delete(ctx context.Context, id int) error {
	return s.runDelete(ctx, entityStudent, id, func(tx *gorm.DB, plan *deletePlan) error {
		student, err := s.repo.Student().GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		return s.planStudents(ctx, tx, plan, []*models.Student{student})
	})
}

func (s *studentService) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	students, total, err := s.repo.Student().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, translateRepoError(err, entityStudent, nil)
	}
	return students, total, nil
}

// ===== ENROLMENT =====

func (s *studentService) Enroll(ctx context.Context, studentID, courseCode int) error {
	s.logger.Info("Enrolling student", "student_id", studentID, "course_code", courseCode)

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		if err := s.requireStudentAndCourse(ctx, tx, studentID, courseCode); err != nil {
			return err
		}
		return s.repo.Student().Enroll(ctx, tx, studentID, courseCode)
	})
	if err != nil {
		return translateRepoError(err, entityStudent, studentID)
	}
	return nil
}

func (s *studentService) Unenroll(ctx context.Context, studentID, courseCode int) error {
	s.logger.Info("Unenrolling student", "student_id", studentID, "course_code", courseCode)

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		if err := s.requireStudentAndCourse(ctx, tx, studentID, courseCode); err != nil {
			return err
		}
		return s.repo.Student().Unenroll(ctx, tx, studentID, courseCode)
	})
	if err != nil {
		return translateRepoError(err, entityStudent, studentID)
	}
	return nil
}

func (s *studentService) Courses(ctx context.Context, studentID int) ([]*models.Course, error) {
	exists, err := s.repo.Student().ExistsByID(ctx, nil, studentID)
	if err := requireFound(exists, err, entityStudent, studentID); err != nil {
		return nil, translateRepoError(err, entityStudent, studentID)
	}

	courses, err := s.repo.Student().Courses(ctx, nil, studentID)
	if err != nil {
		return nil, translateRepoError(err, entityStudent, studentID)
	}
	return courses, nil
}

// ===== HELPERS =====

func (s *studentService) applyDefaults(student *models.Student) {
	if student.Photo == "" {
		student.Photo = s.assets.StudentPhoto
	}
	if student.Role == "" {
		student.Role = models.DefaultStudentRole
	}
	if student.Membership == "" {
		student.Membership = models.MembershipBronze
	}
}

// mergeCurrent keeps stored values the caller left empty
func (s *studentService) mergeCurrent(student, current *models.Student) {
	if student.Password == "" {
		student.Password = current.Password
	}
	if student.Photo == "" {
		student.Photo = current.Photo
	}
	if student.Email == nil {
		student.Email = current.Email
	}
	if student.UserID == nil {
		student.UserID = current.UserID
	}
	if student.DepartmentID == 0 {
		student.DepartmentID = current.DepartmentID
	}
	if student.Role == "" {
		student.Role = current.Role
	}
	if student.Membership == "" {
		student.Membership = current.Membership
	}
}

func (s *studentService) requireStudentAndCourse(ctx context.Context, tx *gorm.DB, studentID, courseCode int) error {
	exists, err := s.repo.Student().ExistsByID(ctx, tx, studentID)
	if err := requireFound(exists, err, entityStudent, studentID); err != nil {
		return err
	}
	exists, err = s.repo.Course().ExistsByCode(ctx, tx, courseCode)
	return requireFound(exists, err, entityCourse, courseCode)
}
