package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/events"
	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

const entityAnnouncement = "announcement"

type announcementService struct {
	serviceDeps
}

func NewAnnouncementService(deps Dependencies) AnnouncementService {
	return &announcementService{serviceDeps: newServiceDeps(deps)}
}

func (s *announcementService) Create(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error) {
	s.logger.Info("Creating announcement", "course_code", announcement.CourseCode)

	if err := s.validate(entityAnnouncement, announcement); err != nil {
		return nil, err
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.Course().ExistsByCode(ctx, tx, announcement.CourseCode)
		if err := requireFound(exists, err, entityCourse, announcement.CourseCode); err != nil {
			return err
		}
		return s.repo.Announcement().Create(ctx, tx, announcement)
	})
	if err != nil {
		return nil, translateRepoError(err, entityAnnouncement, announcement.ID)
	}

	s.logger.Info("Announcement created successfully", "announcement_id", announcement.ID)
	return announcement, nil
}

func (s *announcementService) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	announcement, err := s.repo.Announcement().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateRepoError(err, entityAnnouncement, id)
	}
	return announcement, nil
}

func (s *announcementService) Update(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error) {
	if err := s.validate(entityAnnouncement, announcement); err != nil {
		return nil, err
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		current, err := s.repo.Announcement().GetByID(ctx, tx, announcement.ID)
		if err != nil {
			return err
		}
		announcement.PostedAt = current.PostedAt

		exists, err := s.repo.Course().ExistsByCode(ctx, tx, announcement.CourseCode)
		if err := requireFound(exists, err, entityCourse, announcement.CourseCode); err != nil {
			return err
		}
		return s.repo.Announcement().Update(ctx, tx, announcement)
	})
	if err != nil {
		return nil, translateRepoError(err, entityAnnouncement, announcement.ID)
	}

	s.logger.Info("Announcement updated successfully", "announcement_id", announcement.ID)
	return announcement, nil
}

func (s *announcementService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting announcement", "announcement_id", id)

	if err := s.repo.Announcement().Delete(ctx, nil, id); err != nil {
		return translateRepoError(err, entityAnnouncement, id)
	}

	s.publish(ctx, events.TopicRecordDeleted, events.NewEvent("deleted", entityAnnouncement, id, nil))
	return nil
}

func (s *announcementService) List(ctx context.Context, filters repositories.CourseContentFilters) ([]*models.Announcement, int64, error) {
	announcements, total, err := s.repo.Announcement().List(ctx, nil, filters)
	if err != nil {
		return nil, 0, translateRepoError(err, entityAnnouncement, nil)
	}
	return announcements, total, nil
}

// ListByCourse returns every announcement of a course, newest first
func (s *announcementService) ListByCourse(ctx context.Context, courseCode int) ([]*models.Announcement, error) {
	announcements, _, err := s.List(ctx, repositories.CourseContentFilters{CourseCode: &courseCode})
	return announcements, err
}
