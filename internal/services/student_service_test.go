package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/elearning-service/internal/models"
)

func TestProfileUpdateKeepsEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx

	_, err := NewDepartmentService(env.deps).Create(ctx, &models.Department{ID: 1, Name: "Physics"})
	require.NoError(t, err)

	studentEmail := "marie@example.com"
	students := NewStudentService(env.deps)
	_, err = students.Create(ctx, &models.Student{ID: 7, Name: "Marie", Email: &studentEmail, Password: "secret", DepartmentID: 1}, nil)
	require.NoError(t, err)

	_, err = students.Update(ctx, &models.Student{ID: 7, Name: "Marie Curie"}, nil)
	require.NoError(t, err)
	student, err := students.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Marie Curie", student.Name)
	require.NotNil(t, student.Email)
	assert.Equal(t, studentEmail, *student.Email)

	changed := "curie@example.com"
	_, err = students.Update(ctx, &models.Student{ID: 7, Name: "Marie Curie", Email: &changed}, nil)
	require.NoError(t, err)
	student, err = students.GetByID(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, student.Email)
	assert.Equal(t, changed, *student.Email)

	facultyEmail := "pierre@example.com"
	faculties := NewFacultyService(env.deps)
	_, err = faculties.Create(ctx, &models.Faculty{ID: 3, Name: "Pierre", Email: &facultyEmail, Password: "secret", DepartmentID: 1}, nil)
	require.NoError(t, err)

	_, err = faculties.Update(ctx, &models.Faculty{ID: 3, Name: "Pierre Curie"}, nil)
	require.NoError(t, err)
	faculty, err := faculties.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Pierre Curie", faculty.Name)
	require.NotNil(t, faculty.Email)
	assert.Equal(t, facultyEmail, *faculty.Email)
}
