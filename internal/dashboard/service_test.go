package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRONANANI/ezana/backend/internal/contracts"
	"github.com/CRONANANI/ezana/backend/internal/scoringconfig"
	"github.com/CRONANANI/ezana/backend/pkg/logger"
)

// =============================================================================
// Fakes
// =============================================================================

type fakeLoader struct {
	snapshots map[string]*contracts.PortfolioSnapshot
	loads     int
}

func (f *fakeLoader) LoadSnapshot(_ context.Context, id string, asOf time.Time) (*contracts.PortfolioSnapshot, error) {
	f.loads++
	snap, ok := f.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", contracts.ErrPortfolioNotFound, id)
	}
	snap.AsOf = asOf
	return snap, nil
}

func (f *fakeLoader) ListPortfolioIDs(_ context.Context) ([]string, error) {
	return []string{"p1", "missing", "p2"}, nil
}

type fakeStore struct {
	saved []*contracts.DashboardCardsSummary
	err   error
}

func (f *fakeStore) SaveSummary(_ context.Context, s *contracts.DashboardCardsSummary) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, s)
	return nil
}

type fakeCache struct {
	items  map[string][]byte
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if f.getErr != nil {
		return false, f.getErr
	}
	data, ok := f.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.items[key] = data
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.items, key)
	return nil
}

func newTestService(loader *fakeLoader, store *fakeStore, cache *fakeCache) *Service {
	builder := NewBuilder(scoringconfig.Default()).WithIDGenerator(sequentialIDs())
	svc := NewService(loader, store, cache, builder, time.Minute, logger.Nop())
	svc.now = func() time.Time { return testAsOf }
	return svc
}

func newTestLoader() *fakeLoader {
	return &fakeLoader{snapshots: map[string]*contracts.PortfolioSnapshot{
		"p1": testSnapshot("p1"),
		"p2": testSnapshot("p2"),
	}}
}

// =============================================================================
// Tests
// =============================================================================

func TestService_GetSummary_CachesOnMiss(t *testing.T) {
	loader := newTestLoader()
	cache := newFakeCache()
	svc := newTestService(loader, &fakeStore{}, cache)
	ctx := context.Background()

	first, err := svc.GetSummary(ctx, "p1")
	require.NoError(t, err)
	assert.Contains(t, cache.items, "dashboard:p1")

	second, err := svc.GetSummary(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, loader.loads)
	assert.Equal(t, first.PortfolioHealthScore, second.PortfolioHealthScore)
	assert.Equal(t, first.HealthStatus, second.HealthStatus)
}

func TestService_GetSummary_CacheErrorFallsBack(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	svc := newTestService(newTestLoader(), &fakeStore{}, cache)

	summary, err := svc.GetSummary(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", summary.PortfolioID)
}

func TestService_GetSummary_NotFound(t *testing.T) {
	svc := newTestService(newTestLoader(), &fakeStore{}, newFakeCache())

	_, err := svc.GetSummary(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrPortfolioNotFound)
}

func TestService_Refresh(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache()
	svc := newTestService(newTestLoader(), store, cache)

	summary, err := svc.Refresh(context.Background(), "p2")
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	assert.Equal(t, summary, store.saved[0])
	assert.Contains(t, cache.items, "dashboard:p2")
}

func TestService_Refresh_StoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	cache := newFakeCache()
	svc := newTestService(newTestLoader(), store, cache)

	_, err := svc.Refresh(context.Background(), "p1")
	require.Error(t, err)
	assert.NotContains(t, cache.items, "dashboard:p1")
}

func TestService_RefreshAll_ContinuesOnFailure(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(newTestLoader(), store, newFakeCache())

	result, err := svc.RefreshAll(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrPortfolioNotFound)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Refreshed)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, store.saved, 2)
}

func TestService_RefreshAll_CancelledContext(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(newTestLoader(), store, newFakeCache())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.RefreshAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Refreshed)
	assert.Empty(t, store.saved)
}

func TestService_Invalidate(t *testing.T) {
	cache := newFakeCache()
	svc := newTestService(newTestLoader(), &fakeStore{}, cache)

	_, err := svc.GetSummary(context.Background(), "p1")
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(context.Background(), "p1"))
	assert.NotContains(t, cache.items, "dashboard:p1")
}
