package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/elearning-service/internal/events"
	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

func TestDepartmentDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	ctx := env.ctx

	files := []string{c.faculty.Photo, c.student.Photo, *c.assignment.File, *c.submission.File, *c.material.File}

	require.NoError(t, NewDepartmentService(env.deps).Delete(ctx, c.department.ID))

	for _, p := range files {
		assert.False(t, env.exists(t, p), p)
	}

	_, err := NewDepartmentService(env.deps).GetByID(ctx, c.department.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = NewStudentService(env.deps).GetByID(ctx, c.student.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = NewFacultyService(env.deps).GetByID(ctx, c.faculty.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = NewCourseService(env.deps).GetByCode(ctx, c.course.Code)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = NewSubmissionService(env.deps).GetByID(ctx, c.submission.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = NewPaymentService(env.deps).GetByID(ctx, c.payment.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	// The other department keeps its course with no faculty assigned
	guest, err := NewCourseService(env.deps).GetByCode(ctx, c.guest.Code)
	require.NoError(t, err)
	assert.Nil(t, guest.FacultyID)

	students, err := NewCourseService(env.deps).Students(ctx, c.guest.Code)
	require.NoError(t, err)
	assert.Empty(t, students)

	published := env.publisher.GetPublishedEvents()
	last := published[len(published)-1]
	assert.Equal(t, events.TopicRecordDeleted, last.Topic)
	assert.Equal(t, "department", last.Event.Entity)
	assert.Equal(t, 1, last.Event.Data["students"])
	assert.Equal(t, 5, last.Event.Data["files"])
}

func TestFacultyDeleteKeepsCourses(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	ctx := env.ctx

	require.NoError(t, NewFacultyService(env.deps).Delete(ctx, c.faculty.ID))
	assert.False(t, env.exists(t, c.faculty.Photo))

	for _, code := range []int{c.course.Code, c.guest.Code} {
		course, err := NewCourseService(env.deps).GetByCode(ctx, code)
		require.NoError(t, err)
		assert.Nil(t, course.FacultyID, "course %d", code)
	}

	// Course content is untouched
	assert.True(t, env.exists(t, *c.assignment.File))
	assert.True(t, env.exists(t, *c.material.File))
}

func TestCourseDeleteRemovesContent(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	ctx := env.ctx

	require.NoError(t, NewCourseService(env.deps).Delete(ctx, c.course.Code))

	assert.False(t, env.exists(t, *c.assignment.File))
	assert.False(t, env.exists(t, *c.submission.File))
	assert.False(t, env.exists(t, *c.material.File))
	assert.True(t, env.exists(t, c.student.Photo))

	announcements, err := NewAnnouncementService(env.deps).ListByCourse(ctx, c.course.Code)
	require.NoError(t, err)
	assert.Empty(t, announcements)

	courses, err := NewStudentService(env.deps).Courses(ctx, c.student.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, c.guest.Code, courses[0].Code)
}

func TestPlaceholderPhotoIsNeverDeleted(t *testing.T) {
	env := newTestEnv(t)
	env.writePlaceholders(t)
	ctx := env.ctx

	_, err := NewDepartmentService(env.deps).Create(ctx, &models.Department{ID: 1, Name: "Physics"})
	require.NoError(t, err)

	students := NewStudentService(env.deps)
	student, err := students.Create(ctx, &models.Student{ID: 7, Name: "Marie", Password: "secret", DepartmentID: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.MembershipBronze, student.Membership)
	assert.Equal(t, env.deps.Assets.StudentPhoto, student.Photo)

	// Replacing the placeholder keeps it on disk
	updated, err := students.Update(ctx, &models.Student{ID: 7, Name: "Marie Curie"}, upload("marie.png", "m"))
	require.NoError(t, err)
	first := updated.Photo
	assert.NotEqual(t, env.deps.Assets.StudentPhoto, first)
	assert.True(t, env.exists(t, env.deps.Assets.StudentPhoto))
	assert.Equal(t, "secret", updated.Password)

	// Replacing an uploaded photo removes it
	updated, err = students.Update(ctx, &models.Student{ID: 7, Name: "Marie Curie"}, upload("marie2.png", "m2"))
	require.NoError(t, err)
	assert.False(t, env.exists(t, first))
	assert.True(t, env.exists(t, updated.Photo))

	faculty, err := NewFacultyService(env.deps).Create(ctx, &models.Faculty{ID: 3, Name: "Pierre", Password: "secret", DepartmentID: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, env.deps.Assets.FacultyPhoto, faculty.Photo)

	require.NoError(t, NewDepartmentService(env.deps).Delete(ctx, 1))
	assert.True(t, env.exists(t, env.deps.Assets.StudentPhoto))
	assert.True(t, env.exists(t, env.deps.Assets.FacultyPhoto))
	assert.False(t, env.exists(t, updated.Photo))
}

func TestDeleteAbortsOnStorageFailure(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	ctx := env.ctx

	deps := env.withStorage(failingStorage{FileStorage: env.store})
	published := len(env.publisher.GetPublishedEvents())

	err := NewStudentService(deps).Delete(ctx, c.student.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorageFailure))
	assert.True(t, errors.Is(err, errDiskFailure))

	// The rows survive and nothing was announced
	student, err := NewStudentService(env.deps).GetByID(ctx, c.student.ID)
	require.NoError(t, err)
	assert.Equal(t, c.student.Photo, student.Photo)
	_, err = NewSubmissionService(env.deps).GetByID(ctx, c.submission.ID)
	require.NoError(t, err)
	assert.True(t, env.exists(t, c.student.Photo))
	assert.Len(t, env.publisher.GetPublishedEvents(), published)
}

func TestDeleteMissingRecord(t *testing.T) {
	env := newTestEnv(t)

	err := NewDepartmentService(env.deps).Delete(env.ctx, 42)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, repositories.IsNotFoundError(err))

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "department", notFound.Entity)
}
