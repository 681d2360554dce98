package services

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	// SeedMemberships fills an empty membership catalog during Initialize
	SeedMemberships bool

	// Global settings
	DefaultTimeout time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	deps   Dependencies
	config ServiceManagerConfig

	// Service instances
	departmentService   DepartmentService
	studentService      StudentService
	facultyService      FacultyService
	courseService       CourseService
	paymentService      PaymentService
	announcementService AnnouncementService
	assignmentService   AssignmentService
	submissionService   SubmissionService
	materialService     MaterialService
	membershipService   MembershipService
	accountService      AccountService
	reportService       ReportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(deps Dependencies, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		deps:   deps,
		config: config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(deps Dependencies) ServiceManager {
	return NewServiceManager(deps, ServiceManagerConfig{
		SeedMemberships: true,
		DefaultTimeout:  30 * time.Second,
	})
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := sm.validateDependencies(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	sm.deps.Logger.Info("Initializing service manager")
	sm.initializeServices()

	if sm.config.SeedMemberships {
		if err := sm.membershipService.SeedDefaults(ctx); err != nil {
			return fmt.Errorf("failed to seed memberships: %w", err)
		}
	}

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) validateDependencies() error {
	switch {
	case sm.deps.Logger == nil:
		return fmt.Errorf("logger is required")
	case sm.deps.Repo == nil:
		return fmt.Errorf("repository is required")
	case sm.deps.DB == nil:
		return fmt.Errorf("database is required")
	case sm.deps.Validator == nil:
		return fmt.Errorf("validator is required")
	case sm.deps.Storage == nil:
		return fmt.Errorf("file storage is required")
	}
	return nil
}

// initializeServices creates all service instances
func (sm *serviceManager) initializeServices() {
	sm.departmentService = NewDepartmentService(sm.deps)
	sm.studentService = NewStudentService(sm.deps)
	sm.facultyService = NewFacultyService(sm.deps)
	sm.courseService = NewCourseService(sm.deps)
	sm.paymentService = NewPaymentService(sm.deps)
	sm.announcementService = NewAnnouncementService(sm.deps)
	sm.assignmentService = NewAssignmentService(sm.deps)
	sm.submissionService = NewSubmissionService(sm.deps)
	sm.materialService = NewMaterialService(sm.deps)
	sm.membershipService = NewMembershipService(sm.deps)
	sm.accountService = NewAccountService(sm.deps)
	sm.reportService = NewReportService(sm.deps.Repo, sm.deps.Logger)

	sm.deps.Logger.Debug("All services created")
}

// ===== SERVICE GETTERS =====

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

func (sm *serviceManager) Department() DepartmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.departmentService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.studentService
}

func (sm *serviceManager) Faculty() FacultyService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.facultyService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.courseService
}

func (sm *serviceManager) Payment() PaymentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.paymentService
}

func (sm *serviceManager) Announcement() AnnouncementService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.announcementService
}

func (sm *serviceManager) Assignment() AssignmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.assignmentService
}

func (sm *serviceManager) Submission() SubmissionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.submissionService
}

func (sm *serviceManager) Material() MaterialService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.materialService
}

func (sm *serviceManager) Membership() MembershipService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.membershipService
}

func (sm *serviceManager) Account() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.accountService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.reportService
}

// ===== HEALTH AND LIFECYCLE =====

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	if sm.deps.Cache != nil && sm.deps.Cache.Enabled() {
		if err := sm.deps.Cache.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache health check failed: %w", err)
		}
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	// Closes the database and Redis connections
	if sm.deps.Repo != nil {
		if err := sm.deps.Repo.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close repository", "error", err)
		}
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")

	return nil
}

// ===== UTILITY METHODS =====

// GetConfig returns the service manager configuration
func (sm *serviceManager) GetConfig() ServiceManagerConfig {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.config
}

// IsInitialized returns whether the service manager has been initialized
func (sm *serviceManager) IsInitialized() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.initialized
}

// IsShutdown returns whether the service manager has been shut down
func (sm *serviceManager) IsShutdown() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.shutdown
}

// WithTimeout creates a context with the default timeout
func (sm *serviceManager) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	timeout := sm.config.DefaultTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(parent, timeout)
}
