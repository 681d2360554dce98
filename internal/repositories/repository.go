package repositories

import "context"

// Repository groups all repository interfaces
type Repository interface {
	// Organisation
	Department() DepartmentRepository
	Student() StudentRepository
	Faculty() FacultyRepository
	User() UserRepository

	// Courses and their content
	Course() CourseRepository
	Payment() PaymentRepository
	Announcement() AnnouncementRepository
	Assignment() AssignmentRepository
	Submission() SubmissionRepository
	Material() MaterialRepository

	// Catalog
	Membership() MembershipRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
