package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// InvalidateDepartment drops the cached department row and its existence hit
func (cm *CacheManager) InvalidateDepartment(ctx context.Context, id int) {
	dropKeys(ctx, cm.Department, fmt.Sprintf("id:%d", id))
	dropKeys(ctx, cm.Exists, fmt.Sprintf("department:%d", id))
}

// InvalidateCourse drops a cached course row and its existence hit
func (cm *CacheManager) InvalidateCourse(ctx context.Context, code int) {
	dropKeys(ctx, cm.Course, fmt.Sprintf("code:%d", code))
	dropKeys(ctx, cm.Exists, fmt.Sprintf("course:%d", code))
}

// InvalidateAllCourses is used after cascades that touch an unknown set of
// courses
func (cm *CacheManager) InvalidateAllCourses(ctx context.Context) {
	dropPattern(ctx, cm.Course, "*")
	dropPattern(ctx, cm.Exists, "course:*")
}

// InvalidateMemberships drops the cached catalog
func (cm *CacheManager) InvalidateMemberships(ctx context.Context) {
	dropPattern(ctx, cm.Membership, "*")
}

// ClearAll removes every key owned by the service
func (cm *CacheManager) ClearAll(ctx context.Context) error {
	var lastErr error
	for _, helper := range []*CacheHelper{cm.Department, cm.Course, cm.Membership, cm.Exists} {
		if err := helper.InvalidatePattern(ctx, "*"); err != nil {
			slog.ErrorContext(ctx, "Failed to clear cache prefix", "error", err, "prefix", helper.prefix)
			lastErr = err
		}
	}
	return lastErr
}

// Invalidation errors are logged, never returned.

func dropKeys(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys", "error", err, "prefix", helper.prefix, "keys", keys)
	}
}

func dropPattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern", "error", err, "prefix", helper.prefix, "pattern", pattern)
	}
}
