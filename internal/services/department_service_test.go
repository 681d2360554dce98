package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

func TestDepartmentCounts(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	ctx := env.ctx
	svc := NewDepartmentService(env.deps)

	_, err := NewStudentService(env.deps).Create(ctx, &models.Student{ID: 1001, Name: "Grace", Password: "secret", DepartmentID: 1}, nil)
	require.NoError(t, err)

	students, err := svc.StudentCount(ctx, c.department.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), students)

	faculty, err := svc.FacultyCount(ctx, c.department.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), faculty)

	courses, err := svc.CourseCount(ctx, c.other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), courses)

	summary, err := svc.Summary(ctx, c.department.ID)
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", summary.Department.Name)
	assert.Equal(t, int64(2), summary.StudentCount)
	assert.Equal(t, int64(1), summary.FacultyCount)
	assert.Equal(t, int64(1), summary.CourseCount)
	assert.Equal(t, summary.StudentCount, summary.Department.StudentCount)

	empty, err := svc.Create(ctx, &models.Department{ID: 3, Name: "History"})
	require.NoError(t, err)
	summary, err = svc.Summary(ctx, empty.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.StudentCount+summary.FacultyCount+summary.CourseCount)

	_, err = svc.StudentCount(ctx, 99)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDepartmentCreateRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDepartmentService(env.deps)

	_, err := svc.Create(env.ctx, &models.Department{ID: 1, Name: "Biology"})
	require.NoError(t, err)

	_, err = svc.Create(env.ctx, &models.Department{ID: 1, Name: "Chemistry"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstraintViolation))

	var cv *ConstraintViolationError
	require.True(t, errors.As(err, &cv))
	assert.Equal(t, ConstraintUnique, cv.Constraint)

	_, err = svc.Create(env.ctx, &models.Department{ID: 2})
	assert.True(t, IsValidationError(err))
}

func TestDepartmentUpdateAndList(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(t, env)
	svc := NewDepartmentService(env.deps)

	description := "Proofs and numbers"
	updated, err := svc.Update(env.ctx, &models.Department{ID: 2, Name: "Pure Mathematics", Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "Pure Mathematics", updated.String())

	got, err := svc.GetByID(env.ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Pure Mathematics", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, description, *got.Description)

	list, total, err := svc.List(env.ctx, repositories.ListFilters{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	_, err = svc.Update(env.ctx, &models.Department{ID: 77, Name: "Ghost"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStudentCreateRequiresDepartment(t *testing.T) {
	env := newTestEnv(t)

	_, err := NewStudentService(env.deps).Create(env.ctx, &models.Student{
		ID: 5, Name: "Orphan", Password: "secret", DepartmentID: 9,
	}, upload("orphan.png", "o"))
	require.Error(t, err)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "department", notFound.Entity)

	// The upload saved before the failed insert is discarded
	assert.Zero(t, env.countFiles(t, "profile_pics"))
}
