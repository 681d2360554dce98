package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
	"github.com/SAP-F-2025/elearning-service/internal/storage"
)

const entityUser = "user"

// accountService keeps a User and its role profile in step. Registration
// writes both rows in one transaction with the same password hash.
type accountService struct {
	serviceDeps
}

func NewAccountService(deps Dependencies) AccountService {
	return &accountService{serviceDeps: newServiceDeps(deps)}
}

func (s *accountService) RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*Account, error) {
	s.logger.Info("Registering student account", "username", req.Username, "student_id", req.StudentID)

	hash, err := s.hashPassword(req, req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Password: hash,
		Email:    req.Email,
		FullName: req.FullName,
		UserType: models.UserTypeStudent,
	}
	student := &models.Student{
		ID:           req.StudentID,
		Name:         req.FullName,
		Email:        stringPtr(req.Email),
		Password:     hash,
		Membership:   req.Membership,
		Role:         models.DefaultStudentRole,
		Photo:        s.assets.StudentPhoto,
		DepartmentID: req.DepartmentID,
	}
	if student.Membership == "" {
		student.Membership = models.MembershipBronze
	}

	err = s.register(ctx, user, storage.NamespaceProfilePics, req.Photo, func(tx *gorm.DB, photo string) error {
		if photo != "" {
			student.Photo = photo
		}
		student.UserID = &user.ID
		if err := s.validate(entityStudent, student); err != nil {
			return err
		}
		exists, err := s.repo.Department().ExistsByID(ctx, tx, student.DepartmentID)
		if err := requireFound(exists, err, entityDepartment, student.DepartmentID); err != nil {
			return err
		}
		if err := s.repo.Student().Create(ctx, tx, student); err != nil {
			return translateRepoError(err, entityStudent, student.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student account registered successfully", "user_id", user.ID, "student_id", student.ID)
	return &Account{User: user, Student: student}, nil
}

func (s *accountService) RegisterFaculty(ctx context.Context, req *RegisterFacultyRequest) (*Account, error) {
	s.logger.Info("Registering faculty account", "username", req.Username, "faculty_id", req.FacultyID)

	hash, err := s.hashPassword(req, req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Password: hash,
		Email:    req.Email,
		FullName: req.FullName,
		UserType: models.UserTypeFaculty,
	}
	faculty := &models.Faculty{
		ID:           req.FacultyID,
		Name:         req.FullName,
		Email:        stringPtr(req.Email),
		Password:     hash,
		Role:         models.DefaultFacultyRole,
		Photo:        s.assets.FacultyPhoto,
		DepartmentID: req.DepartmentID,
	}

	err = s.register(ctx, user, storage.NamespaceProfilePics, req.Photo, func(tx *gorm.DB, photo string) error {
		if photo != "" {
			faculty.Photo = photo
		}
		faculty.UserID = &user.ID
		if err := s.validate(entityFaculty, faculty); err != nil {
			return err
		}
		exists, err := s.repo.Department().ExistsByID(ctx, tx, faculty.DepartmentID)
		if err := requireFound(exists, err, entityDepartment, faculty.DepartmentID); err != nil {
			return err
		}
		if err := s.repo.Faculty().Create(ctx, tx, faculty); err != nil {
			return translateRepoError(err, entityFaculty, faculty.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Faculty account registered successfully", "user_id", user.ID, "faculty_id", faculty.ID)
	return &Account{User: user, Faculty: faculty}, nil
}

// Authenticate checks a username and password against the stored hash. Both
// an unknown user and a wrong password return ErrInvalidCredentials.
func (s *accountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.User().GetByUsername(ctx, nil, username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, translateRepoError(err, entityUser, username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the account's profile, with its files and dependent rows,
// and then the account itself
func (s *accountService) Delete(ctx context.Context, userID uint) error {
	return s.runDelete(ctx, entityUser, userID, func(tx *gorm.DB, plan *deletePlan) error {
		user, err := s.repo.User().GetByID(ctx, tx, userID)
		if err != nil {
			return err
		}
		plan.userID = &user.ID

		student, err := s.repo.Student().GetByUserID(ctx, tx, userID)
		switch {
		case err == nil:
			if err := s.planStudents(ctx, tx, plan, []*models.Student{student}); err != nil {
				return err
			}
		case !repositories.IsNotFoundError(err):
			return err
		}

		faculty, err := s.repo.Faculty().GetByUserID(ctx, tx, userID)
		switch {
		case err == nil:
			s.planFaculty(plan, []*models.Faculty{faculty})
		case !repositories.IsNotFoundError(err):
			return err
		}
		return nil
	})
}

// ===== HELPERS =====

func (s *accountService) hashPassword(req interface{}, password string) (string, error) {
	if err := s.validate(entityUser, req); err != nil {
		return "", err
	}
	if err := s.validator.ValidatePassword(password); err != nil {
		return "", newValidationFailure(entityUser, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// register creates the user then the profile in one transaction
func (s *accountService) register(ctx context.Context, user *models.User, namespace storage.Namespace, upload *storage.Upload, createProfile func(tx *gorm.DB, photo string) error) error {
	if err := s.validate(entityUser, user); err != nil {
		return err
	}

	photo, err := s.saveUpload(ctx, namespace, upload)
	if err != nil {
		return err
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.User().Create(ctx, tx, user); err != nil {
			return translateRepoError(err, entityUser, user.Username)
		}
		return createProfile(tx, photo)
	})
	if err != nil {
		s.discardUpload(ctx, photo)
		s.logger.Error("Failed to register account", "username", user.Username, "error", err)
		return translateRepoError(err, entityUser, user.Username)
	}
	return nil
}
