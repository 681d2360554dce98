package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRow struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newTestManager(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheManager(client), mr
}

func TestCacheOrExecuteStoresResult(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedRow{ID: 7, Name: "Physics"}, nil
	}

	var first cachedRow
	require.NoError(t, cm.Department.CacheOrExecute(ctx, "id:7", &first, fetch))
	assert.Equal(t, "Physics", first.Name)
	assert.True(t, mr.Exists("department:id:7"))
	assert.Equal(t, DepartmentCacheConfig.TTL, mr.TTL("department:id:7"))

	var second cachedRow
	require.NoError(t, cm.Department.CacheOrExecute(ctx, "id:7", &second, fetch))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestCacheOrExecutePropagatesFetchError(t *testing.T) {
	cm, mr := newTestManager(t)
	boom := errors.New("boom")

	var dest cachedRow
	err := cm.Course.CacheOrExecute(context.Background(), "code:1", &dest, func() (interface{}, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("course:code:1"))
}

func TestRememberExistsStoresHitsOnly(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	found := false
	calls := 0
	check := func() (bool, error) {
		calls++
		return found, nil
	}

	ok, err := cm.Exists.RememberExists(ctx, "department:1", check)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("exists:department:1"))

	found = true
	ok, err = cm.Exists.RememberExists(ctx, "department:1", check)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, calls)
	assert.Equal(t, ExistsCacheConfig.TTL, mr.TTL("exists:department:1"))

	found = false
	ok, err = cm.Exists.RememberExists(ctx, "department:1", check)
	require.NoError(t, err)
	assert.True(t, ok, "hit served from cache")
	assert.Equal(t, 2, calls)

	cm.InvalidateDepartment(ctx, 1)
	ok, err = cm.Exists.RememberExists(ctx, "department:1", check)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, calls)

	boom := errors.New("db down")
	_, err = cm.Exists.RememberExists(ctx, "course:5", func() (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestInvalidation(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, cm.Course.Set(ctx, "code:1", cachedRow{ID: 1}))
	require.NoError(t, cm.Course.Set(ctx, "code:2", cachedRow{ID: 2}))
	require.NoError(t, cm.Department.Set(ctx, "id:1", cachedRow{ID: 1}))
	require.NoError(t, cm.Membership.Set(ctx, "all", []cachedRow{{ID: 1}}))
	require.NoError(t, mr.Set("exists:course:1", "1"))
	require.NoError(t, mr.Set("exists:course:2", "1"))
	require.NoError(t, mr.Set("exists:department:1", "1"))

	cm.InvalidateCourse(ctx, 1)
	assert.False(t, mr.Exists("course:code:1"))
	assert.False(t, mr.Exists("exists:course:1"))
	assert.True(t, mr.Exists("course:code:2"))

	cm.InvalidateAllCourses(ctx)
	assert.False(t, mr.Exists("course:code:2"))
	assert.False(t, mr.Exists("exists:course:2"))
	assert.True(t, mr.Exists("exists:department:1"))
	assert.True(t, mr.Exists("department:id:1"))

	cm.InvalidateMemberships(ctx)
	assert.False(t, mr.Exists("membership:all"))

	require.NoError(t, cm.ClearAll(ctx))
	assert.False(t, mr.Exists("department:id:1"))
	assert.False(t, mr.Exists("exists:department:1"))
}

func TestNilClientDegradesGracefully(t *testing.T) {
	cm := NewCacheManager(nil)
	ctx := context.Background()

	assert.False(t, cm.Enabled())
	assert.ErrorIs(t, cm.HealthCheck(ctx), ErrCacheNotAvailable)
	assert.NoError(t, cm.Membership.Set(ctx, "all", []cachedRow{}))
	assert.NoError(t, cm.ClearAll(ctx))
	cm.InvalidateAllCourses(ctx)

	var dest cachedRow
	require.NoError(t, cm.Department.CacheOrExecute(ctx, "id:1", &dest, func() (interface{}, error) {
		return cachedRow{ID: 1, Name: "Maths"}, nil
	}))
	assert.Equal(t, "Maths", dest.Name)

	calls := 0
	for i := 0; i < 2; i++ {
		ok, err := cm.Exists.RememberExists(ctx, "course:1", func() (bool, error) {
			calls++
			return true, nil
		})
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, 2, calls)
}

func TestHealthCheck(t *testing.T) {
	cm, mr := newTestManager(t)
	require.NoError(t, cm.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, cm.HealthCheck(context.Background()))
}
