package services

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/cache"
	"github.com/SAP-F-2025/elearning-service/internal/events"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
	"github.com/SAP-F-2025/elearning-service/internal/storage"
	"github.com/SAP-F-2025/elearning-service/internal/validator"
)

// Dependencies are the collaborators every service is built from. Cache and
// Publisher may be nil.
type Dependencies struct {
	Repo      repositories.Repository
	DB        *gorm.DB
	Logger    *slog.Logger
	Validator *validator.Validator
	Storage   storage.FileStorage
	Assets    storage.Assets
	Publisher events.EventPublisher
	Cache     *cache.CacheManager
}

func newServiceDeps(d Dependencies) serviceDeps {
	return serviceDeps{
		repo:      d.Repo,
		db:        d.DB,
		logger:    d.Logger,
		validator: d.Validator,
		storage:   d.Storage,
		assets:    d.Assets,
		publisher: d.Publisher,
		cache:     d.Cache,
	}
}

// serviceDeps is embedded by every service
type serviceDeps struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	storage   storage.FileStorage
	assets    storage.Assets
	publisher events.EventPublisher
	cache     *cache.CacheManager
}

// withTx executes a function within a transaction
func (d *serviceDeps) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.db.WithContext(ctx).Transaction(fn)
}

func (d *serviceDeps) validate(entity string, v interface{}) error {
	return newValidationFailure(entity, d.validator.Validate(v))
}

// publish sends an event after commit. Failures are logged only.
func (d *serviceDeps) publish(ctx context.Context, topic string, event events.Event) {
	if d.publisher == nil {
		return
	}
	if err := d.publisher.Publish(ctx, topic, event); err != nil {
		d.logger.Error("Failed to publish event",
			"error", err,
			"topic", topic,
			"entity", event.Entity,
			"entity_id", event.EntityID)
	}
}

// saveUpload stores an upload and returns its path. A nil upload stores
// nothing.
func (d *serviceDeps) saveUpload(ctx context.Context, namespace storage.Namespace, upload *storage.Upload) (string, error) {
	if upload == nil || upload.Content == nil {
		return "", nil
	}
	path, err := d.storage.Save(ctx, namespace, upload.Filename, upload.Content)
	if err != nil {
		return "", NewStorageFailureError(string(namespace)+"/"+upload.Filename, "save", err)
	}
	return path, nil
}

// discardUpload removes a file saved for a write that did not commit
func (d *serviceDeps) discardUpload(ctx context.Context, path string) {
	if path == "" || d.assets.IsDefault(path) {
		return
	}
	if err := d.storage.Delete(ctx, path); err != nil {
		d.logger.Error("Failed to discard orphaned upload", "error", err, "path", path)
	}
}

// removeFiles deletes stored files, skipping placeholders. The first failure
// is returned as a StorageFailureError.
func (d *serviceDeps) removeFiles(ctx context.Context, paths []string) error {
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		p = storage.CleanPath(p)
		if p == "" || d.assets.IsDefault(p) {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}

		if err := d.storage.Delete(ctx, p); err != nil {
			return NewStorageFailureError(p, "delete", err)
		}
		d.logger.Debug("Removed stored file", "path", p)
	}
	return nil
}

func (d *serviceDeps) invalidateCourses(ctx context.Context) {
	if d.cache != nil {
		d.cache.InvalidateAllCourses(ctx)
	}
}

func (d *serviceDeps) invalidateDepartment(ctx context.Context, id int) {
	if d.cache != nil {
		d.cache.InvalidateDepartment(ctx, id)
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
