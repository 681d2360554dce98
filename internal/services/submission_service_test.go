package services

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/elearning-service/internal/events"
	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

func TestSubmissionIsUniquePerStudent(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)

	_, err := NewSubmissionService(env.deps).Create(env.ctx, &models.Submission{
		AssignmentID: c.assignment.ID,
		StudentID:    c.student.ID,
	}, upload("again.zip", "again"))
	require.Error(t, err)

	var cv *ConstraintViolationError
	require.True(t, errors.As(err, &cv))
	assert.Equal(t, ConstraintUnique, cv.Constraint)
	assert.Equal(t, 1, env.countFiles(t, "submissions"))
}

func TestSubmissionPublishesEvent(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)

	var received []events.PublishedEvent
	for _, p := range env.publisher.GetPublishedEvents() {
		if p.Topic == events.TopicSubmissionReceived {
			received = append(received, p)
		}
	}
	require.Len(t, received, 1)
	assert.Equal(t, strconv.FormatUint(uint64(c.submission.ID), 10), received[0].Event.EntityID)
	assert.Equal(t, c.assignment.ID, received[0].Event.Data["assignment_id"])
	assert.Equal(t, *c.submission.File, received[0].Event.Data["file"])
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	env.publisher.FailWith(errors.New("broker down"))

	student, err := NewStudentService(env.deps).Create(env.ctx, &models.Student{
		ID: 2000, Name: "Ken", Password: "secret", DepartmentID: c.department.ID,
	}, nil)
	require.NoError(t, err)

	sub, err := NewSubmissionService(env.deps).Create(env.ctx, &models.Submission{
		AssignmentID: c.assignment.ID,
		StudentID:    student.ID,
	}, nil)
	require.NoError(t, err)
	assert.NotZero(t, sub.ID)
	assert.Nil(t, sub.File)
}

func TestGradeSubmission(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	svc := NewSubmissionService(env.deps)

	status := "Reviewed"
	graded, err := svc.Grade(env.ctx, c.submission.ID, &GradeRequest{Marks: 8.5, Status: &status})
	require.NoError(t, err)
	require.NotNil(t, graded.Marks)
	assert.Equal(t, 8.5, *graded.Marks)

	stored, err := svc.GetByID(env.ctx, c.submission.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Marks)
	assert.Equal(t, 8.5, *stored.Marks)
	assert.Equal(t, "Reviewed", *stored.Status)
	assert.Equal(t, *c.submission.File, *stored.File)

	_, err = svc.Grade(env.ctx, c.submission.ID, &GradeRequest{Marks: 11})
	assert.True(t, IsValidationError(err))

	_, err = svc.Grade(env.ctx, c.submission.ID, &GradeRequest{Marks: -1})
	assert.True(t, IsValidationError(err))

	_, err = svc.Grade(env.ctx, 9999, &GradeRequest{Marks: 1})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSubmissionQueries(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	svc := NewSubmissionService(env.deps)

	byAssignment, err := svc.ListByAssignment(env.ctx, c.assignment.ID)
	require.NoError(t, err)
	require.Len(t, byAssignment, 1)

	byStudent, err := svc.ListByStudent(env.ctx, c.student.ID)
	require.NoError(t, err)
	require.Len(t, byStudent, 1)
	assert.Equal(t, byAssignment[0].ID, byStudent[0].ID)

	_, err = svc.ListByAssignment(env.ctx, 404)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = svc.ListByStudent(env.ctx, 404)
	assert.True(t, errors.Is(err, ErrNotFound))

	status := "Late"
	list, total, err := svc.List(env.ctx, repositories.SubmissionFilters{Status: &status})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestSubmissionUpdateReplacesFile(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	svc := NewSubmissionService(env.deps)

	old := *c.submission.File
	updated, err := svc.Update(env.ctx, &models.Submission{
		ID:           c.submission.ID,
		AssignmentID: c.assignment.ID,
		StudentID:    c.student.ID,
	}, upload("fixed.zip", "fixed"))
	require.NoError(t, err)

	assert.False(t, env.exists(t, old))
	assert.True(t, env.exists(t, *updated.File))
	assert.NotEqual(t, old, *updated.File)
	assert.True(t, strings.HasSuffix(updated.FileName(), ".zip"))
}

func TestAssignmentDeleteRemovesSubmissions(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)

	require.NoError(t, NewAssignmentService(env.deps).Delete(env.ctx, c.assignment.ID))

	assert.False(t, env.exists(t, *c.assignment.File))
	assert.False(t, env.exists(t, *c.submission.File))
	_, err := NewSubmissionService(env.deps).GetByID(env.ctx, c.submission.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	// The material of the same course is kept
	_, err = NewMaterialService(env.deps).GetByID(env.ctx, c.material.ID)
	require.NoError(t, err)
}

func TestSubmissionSheet(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)

	data, err := NewReportService(env.deps.Repo, env.deps.Logger).SubmissionSheet(env.ctx, c.assignment.ID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(submissionSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Student ID", rows[0][0])
	assert.Equal(t, "Status", rows[0][6])
	assert.Equal(t, strconv.Itoa(c.student.ID), rows[1][0])
	assert.Contains(t, rows[1][3], "days")
	assert.NotContains(t, rows[1][3], "late by")

	_, err = NewReportService(env.deps.Repo, env.deps.Logger).SubmissionSheet(env.ctx, 404)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSubmissionUpdateChecksMarks(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)
	svc := NewSubmissionService(env.deps)

	over := c.assignment.Marks + 1
	_, err := svc.Update(env.ctx, &models.Submission{
		ID:           c.submission.ID,
		AssignmentID: c.assignment.ID,
		StudentID:    c.student.ID,
		Marks:        &over,
	}, upload("regraded.zip", "regraded"))
	assert.True(t, IsValidationError(err))
	assert.True(t, env.exists(t, *c.submission.File))
	assert.Equal(t, 1, env.countFiles(t, "submissions"))

	stored, err := svc.GetByID(env.ctx, c.submission.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Marks)

	within := c.assignment.Marks - 1
	updated, err := svc.Update(env.ctx, &models.Submission{
		ID:           c.submission.ID,
		AssignmentID: c.assignment.ID,
		StudentID:    c.student.ID,
		Marks:        &within,
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.Marks)
	assert.Equal(t, within, *updated.Marks)

	_, err = svc.Create(env.ctx, &models.Submission{
		AssignmentID: c.assignment.ID,
		StudentID:    c.student.ID,
		Marks:        &over,
	}, nil)
	assert.True(t, IsValidationError(err))
}
