package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/elearning-service/internal/events"
	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/elearning-service/internal/storage"
	"github.com/SAP-F-2025/elearning-service/internal/validator"
)

type testEnv struct {
	ctx       context.Context
	db        *gorm.DB
	root      string
	store     *storage.LocalStorage
	publisher *events.MockEventPublisher
	deps      Dependencies
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, postgres.Migrate(db))

	root := t.TempDir()
	store, err := storage.NewLocalStorage(root)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := events.NewMockEventPublisher(log)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})

	return &testEnv{
		ctx:       context.Background(),
		db:        db,
		root:      root,
		store:     store,
		publisher: publisher,
		deps: Dependencies{
			Repo:      repo,
			DB:        db,
			Logger:    log,
			Validator: validator.New(),
			Storage:   store,
			Assets:    storage.DefaultAssets(),
			Publisher: publisher,
			Cache:     repo.CacheManager(),
		},
	}
}

// withStorage returns a copy of the dependencies using another file store
func (e *testEnv) withStorage(fs storage.FileStorage) Dependencies {
	deps := e.deps
	deps.Storage = fs
	return deps
}

func (e *testEnv) writePlaceholders(t *testing.T) {
	t.Helper()
	for _, p := range []string{storage.DefaultStudentPhoto, storage.DefaultFacultyPhoto} {
		full := filepath.Join(e.root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("png"), 0o644))
	}
}

func (e *testEnv) exists(t *testing.T, path string) bool {
	t.Helper()
	ok, err := e.store.Exists(e.ctx, path)
	require.NoError(t, err)
	return ok
}

func (e *testEnv) countFiles(t *testing.T, namespace storage.Namespace) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(e.root, string(namespace)))
	if errors.Is(err, os.ErrNotExist) {
		return 0
	}
	require.NoError(t, err)
	return len(entries)
}

func (e *testEnv) topics() []string {
	var topics []string
	for _, p := range e.publisher.GetPublishedEvents() {
		topics = append(topics, p.Topic)
	}
	return topics
}

func upload(name, body string) *storage.Upload {
	return &storage.Upload{Filename: name, Content: strings.NewReader(body)}
}

// failingStorage saves normally and fails every delete
type failingStorage struct {
	storage.FileStorage
}

var errDiskFailure = errors.New("disk failure")

func (failingStorage) Delete(context.Context, string) error {
	return errDiskFailure
}

type catalog struct {
	department *models.Department
	other      *models.Department
	faculty    *models.Faculty
	course     *models.Course
	guest      *models.Course
	student    *models.Student
	assignment *models.Assignment
	submission *models.Submission
	material   *models.Material
	payment    *models.Payment
}

// seedCatalog builds a department with one of everything, each owning a
// stored file, plus a second department whose course is taught by the
// same faculty member
func seedCatalog(t *testing.T, e *testEnv) catalog {
	t.Helper()
	ctx := e.ctx

	departments := NewDepartmentService(e.deps)
	dept, err := departments.Create(ctx, &models.Department{ID: 1, Name: "Computer Science"})
	require.NoError(t, err)
	other, err := departments.Create(ctx, &models.Department{ID: 2, Name: "Mathematics"})
	require.NoError(t, err)

	faculty, err := NewFacultyService(e.deps).Create(ctx, &models.Faculty{
		ID:           10,
		Name:         "Ada Lovelace",
		Password:     "secret",
		DepartmentID: 1,
	}, upload("ada.png", "ada"))
	require.NoError(t, err)

	facultyID := faculty.ID
	courses := NewCourseService(e.deps)
	course, err := courses.Create(ctx, &models.Course{
		Code: 101, Name: "Algorithms", Price: 250, DepartmentID: 1, FacultyID: &facultyID, StudentKey: 1, FacultyKey: 2,
	})
	require.NoError(t, err)
	guest, err := courses.Create(ctx, &models.Course{
		Code: 201, Name: "Logic", DepartmentID: 2, FacultyID: &facultyID, StudentKey: 3, FacultyKey: 4,
	})
	require.NoError(t, err)

	students := NewStudentService(e.deps)
	student, err := students.Create(ctx, &models.Student{
		ID:           1000,
		Name:         "Linus",
		Password:     "secret",
		DepartmentID: 1,
	}, upload("linus.jpg", "linus"))
	require.NoError(t, err)
	require.NoError(t, students.Enroll(ctx, student.ID, course.Code))
	require.NoError(t, students.Enroll(ctx, student.ID, guest.Code))

	assignment, err := NewAssignmentService(e.deps).Create(ctx, &models.Assignment{
		CourseCode:  101,
		Title:       "Sorting",
		Description: "Sort things",
		Deadline:    time.Now().Add(48 * time.Hour),
		Marks:       10,
	}, upload("brief.pdf", "brief"))
	require.NoError(t, err)

	submission, err := NewSubmissionService(e.deps).Create(ctx, &models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
	}, upload("answer.zip", "answer"))
	require.NoError(t, err)

	material, err := NewMaterialService(e.deps).Create(ctx, &models.Material{
		CourseCode:  101,
		Description: "Lecture notes",
	}, upload("notes.pdf", "notes"))
	require.NoError(t, err)

	_, err = NewAnnouncementService(e.deps).Create(ctx, &models.Announcement{CourseCode: 101, Description: "Welcome"})
	require.NoError(t, err)

	payment, err := NewPaymentService(e.deps).Create(ctx, &models.Payment{CourseCode: 101, Description: "fee"})
	require.NoError(t, err)

	return catalog{
		department: dept,
		other:      other,
		faculty:    faculty,
		course:     course,
		guest:      guest,
		student:    student,
		assignment: assignment,
		submission: submission,
		material:   material,
		payment:    payment,
	}
}

func TestSeedCatalogStoresFiles(t *testing.T) {
	env := newTestEnv(t)
	c := seedCatalog(t, env)

	assert.True(t, strings.HasPrefix(c.faculty.Photo, "profile_pics/"))
	assert.True(t, strings.HasSuffix(c.student.Photo, ".jpg"))
	for _, p := range []string{c.faculty.Photo, c.student.Photo, *c.assignment.File, *c.submission.File, *c.material.File} {
		assert.True(t, env.exists(t, p), p)
	}
	assert.Equal(t, 250.0, c.payment.Amount)
	assert.Equal(t, models.DefaultCoursePrice, c.guest.Price)
}
