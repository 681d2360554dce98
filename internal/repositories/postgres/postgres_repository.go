package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/cache"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	// Repository instances
	department   repositories.DepartmentRepository
	student      repositories.StudentRepository
	faculty      repositories.FacultyRepository
	user         repositories.UserRepository
	course       repositories.CourseRepository
	payment      repositories.PaymentRepository
	announcement repositories.AnnouncementRepository
	assignment   repositories.AssignmentRepository
	submission   repositories.SubmissionRepository
	material     repositories.MaterialRepository
	membership   repositories.MembershipRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a new repository manager with all sub-repositories
func NewPostgreSQLRepository(config RepositoryConfig) *PostgreSQLRepository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	return &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,

		// Read-mostly tables go through the cache
		department: NewDepartmentPostgreSQL(config.DB, cacheManager),
		course:     NewCoursePostgreSQL(config.DB, cacheManager),
		membership: NewMembershipPostgreSQL(config.DB, cacheManager),

		student:      NewStudentPostgreSQL(config.DB),
		faculty:      NewFacultyPostgreSQL(config.DB),
		user:         NewUserPostgreSQL(config.DB),
		payment:      NewPaymentPostgreSQL(config.DB),
		announcement: NewAnnouncementPostgreSQL(config.DB),
		assignment:   NewAssignmentPostgreSQL(config.DB),
		submission:   NewSubmissionPostgreSQL(config.DB),
		material:     NewMaterialPostgreSQL(config.DB),
	}
}

func (r *PostgreSQLRepository) Department() repositories.DepartmentRepository {
	return r.department
}

func (r *PostgreSQLRepository) Student() repositories.StudentRepository {
	return r.student
}

func (r *PostgreSQLRepository) Faculty() repositories.FacultyRepository {
	return r.faculty
}

func (r *PostgreSQLRepository) User() repositories.UserRepository {
	return r.user
}

func (r *PostgreSQLRepository) Course() repositories.CourseRepository {
	return r.course
}

func (r *PostgreSQLRepository) Payment() repositories.PaymentRepository {
	return r.payment
}

func (r *PostgreSQLRepository) Announcement() repositories.AnnouncementRepository {
	return r.announcement
}

func (r *PostgreSQLRepository) Assignment() repositories.AssignmentRepository {
	return r.assignment
}

func (r *PostgreSQLRepository) Submission() repositories.SubmissionRepository {
	return r.submission
}

func (r *PostgreSQLRepository) Material() repositories.MaterialRepository {
	return r.material
}

func (r *PostgreSQLRepository) Membership() repositories.MembershipRepository {
	return r.membership
}

// CacheManager exposes the cache so services can invalidate after commit
func (r *PostgreSQLRepository) CacheManager() *cache.CacheManager {
	return r.cacheManager
}

// Ping checks the health of database and cache connections
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// RepositoryManager implements the RepositoryManager interface
type RepositoryManager struct {
	config RepositoryConfig
	repo   *PostgreSQLRepository
}

// NewRepositoryManager creates a new repository manager
func NewRepositoryManager(config RepositoryConfig) *RepositoryManager {
	return &RepositoryManager{
		config: config,
	}
}

// Initialize initializes all repositories and connections
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if rm.config.RedisClient != nil {
		if _, err := rm.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("Redis connection failed: %w", err)
		}
	}

	rm.repo = NewPostgreSQLRepository(rm.config)

	return nil
}

// GetRepository returns the repository instance
func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

// CacheManager returns the cache manager of the initialized repository
func (rm *RepositoryManager) CacheManager() *cache.CacheManager {
	if rm.repo == nil {
		return cache.NewCacheManager(nil)
	}
	return rm.repo.CacheManager()
}

// HealthCheck checks the health of all repository connections
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	return rm.repo.Ping(ctx)
}

// Shutdown gracefully shuts down all repository connections
func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}

	return rm.repo.Close()
}

var (
	_ repositories.Repository        = (*PostgreSQLRepository)(nil)
	_ repositories.RepositoryManager = (*RepositoryManager)(nil)
)
