package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Namespace is the folder an upload is stored under
type Namespace string

const (
	NamespaceProfilePics Namespace = "profile_pics"
	NamespaceAssignments Namespace = "assignments"
	NamespaceSubmissions Namespace = "submissions"
	NamespaceMaterials   Namespace = "materials"
)

// Default placeholder photos
const (
	DefaultStudentPhoto = "profile_pics/default_student.png"
	DefaultFacultyPhoto = "profile_pics/default_faculty.png"
)

var ErrInvalidPath = errors.New("invalid storage path")

// FileStorage stores uploaded files under slash separated relative paths.
// Delete of a missing path succeeds.
type FileStorage interface {
	Save(ctx context.Context, namespace Namespace, filename string, content io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}

// Upload is a file handed to a service alongside the record it belongs to
type Upload struct {
	Filename string
	Content  io.Reader
}

// Assets holds the placeholder paths new profiles start with
type Assets struct {
	StudentPhoto string
	FacultyPhoto string
}

func DefaultAssets() Assets {
	return Assets{
		StudentPhoto: DefaultStudentPhoto,
		FacultyPhoto: DefaultFacultyPhoto,
	}
}

// IsDefault reports whether p is one of the shared placeholders, which are
// never deleted
func (a Assets) IsDefault(p string) bool {
	p = CleanPath(p)
	if p == "" {
		return false
	}
	return p == CleanPath(a.StudentPhoto) || p == CleanPath(a.FacultyPhoto)
}

// NewKey returns "<namespace>/<uuid><ext>" for an uploaded filename
func NewKey(namespace Namespace, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return string(namespace) + "/" + uuid.NewString() + ext
}

// CleanPath normalises a stored path to its relative slash form
func CleanPath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
