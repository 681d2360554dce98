package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/elearning-service/internal/models"
)

func TestEnrolment(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	students := NewStudentService(env.deps)
	courses := NewCourseService(env.deps)

	enrolled, err := students.Courses(env.ctx, c.student.ID)
	require.NoError(t, err)
	assert.Len(t, enrolled, 2)

	require.NoError(t, students.Unenroll(env.ctx, c.student.ID, c.guest.Code))

	enrolled, err = students.Courses(env.ctx, c.student.ID)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, c.course.Code, enrolled[0].Code)

	roster, err := courses.Students(env.ctx, c.guest.Code)
	require.NoError(t, err)
	assert.Empty(t, roster)

	roster, err = courses.Students(env.ctx, c.course.Code)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, c.student.ID, roster[0].ID)

	err = students.Enroll(env.ctx, c.student.ID, 999)
	assert.True(t, errors.Is(err, ErrNotFound))
	err = students.Enroll(env.ctx, 9999, c.course.Code)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = courses.Students(env.ctx, 999)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = students.Courses(env.ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAssignFaculty(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	courses := NewCourseService(env.deps)

	require.NoError(t, courses.AssignFaculty(env.ctx, c.course.Code, nil))
	course, err := courses.GetByCode(env.ctx, c.course.Code)
	require.NoError(t, err)
	assert.Nil(t, course.FacultyID)

	facultyID := c.faculty.ID
	require.NoError(t, courses.AssignFaculty(env.ctx, c.course.Code, &facultyID))
	course, err = courses.GetByCode(env.ctx, c.course.Code)
	require.NoError(t, err)
	require.NotNil(t, course.FacultyID)
	assert.Equal(t, facultyID, *course.FacultyID)

	missing := 404
	err = courses.AssignFaculty(env.ctx, c.course.Code, &missing)
	assert.True(t, errors.Is(err, ErrNotFound))
	err = courses.AssignFaculty(env.ctx, 999, nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCourseContentListings(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	announcements := NewAnnouncementService(env.deps)
	materials := NewMaterialService(env.deps)

	_, err := announcements.Create(env.ctx, &models.Announcement{CourseCode: c.course.Code, Description: "Exam moved"})
	require.NoError(t, err)
	_, err = announcements.Create(env.ctx, &models.Announcement{CourseCode: 999, Description: "Nowhere"})
	assert.True(t, errors.Is(err, ErrNotFound))

	list, err := announcements.ListByCourse(env.ctx, c.course.Code)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = announcements.ListByCourse(env.ctx, c.guest.Code)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, announcements.Delete(env.ctx, newestAnnouncementID(t, announcements, env, c.course.Code)))
	list, err = announcements.ListByCourse(env.ctx, c.course.Code)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	notes, err := materials.ListByCourse(env.ctx, c.course.Code)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, c.material.ID, notes[0].ID)

	require.NoError(t, materials.Delete(env.ctx, c.material.ID))
	assert.False(t, env.exists(t, *c.material.File))

	notes, err = materials.ListByCourse(env.ctx, c.course.Code)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

// newestAnnouncementID returns the id of the newest announcement of a course
func newestAnnouncementID(t *testing.T, s AnnouncementService, env *testEnv, code int) uint {
	t.Helper()
	list, err := s.ListByCourse(env.ctx, code)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	return list[0].ID
}

func TestCourseUpdateKeepsPriceDefault(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	courses := NewCourseService(env.deps)

	course := *c.course
	course.Price = 0
	course.Description = ""
	_, err := courses.Update(env.ctx, &course)
	require.NoError(t, err)

	stored, err := courses.GetByCode(env.ctx, c.course.Code)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCoursePrice, stored.Price)
	assert.Equal(t, models.DefaultCourseDescription, stored.Description)

	course.Price = 75
	_, err = courses.Update(env.ctx, &course)
	require.NoError(t, err)
	stored, err = courses.GetByCode(env.ctx, c.course.Code)
	require.NoError(t, err)
	assert.Equal(t, 75, stored.Price)
}
