package producer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"swipestack/internal/generator"
)

// fakeStore keeps profiles in insertion order, so index 0 is the oldest.
type fakeStore struct {
	profiles []generator.Profile
	swipes   map[string]int // session -> swipe count

	insertCalls int
	failInserts map[int]error // 1-based insert call -> error
	countErr    error
	maxErr      error
	deleteErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{swipes: map[string]int{}, failInserts: map[int]error{}}
}

func (f *fakeStore) CountProfiles(context.Context) (int, error) {
	return len(f.profiles), f.countErr
}

func (f *fakeStore) MaxSessionSwipes(context.Context) (int, error) {
	if f.maxErr != nil {
		return 0, f.maxErr
	}
	max := 0
	for _, n := range f.swipes {
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (f *fakeStore) InsertProfile(_ context.Context, id, data, imageURL string) error {
	f.insertCalls++
	if err := f.failInserts[f.insertCalls]; err != nil {
		return err
	}
	f.profiles = append(f.profiles, generator.Profile{ID: id, Data: data, ImageURL: imageURL})
	return nil
}

func (f *fakeStore) DeleteOldestProfiles(_ context.Context, n int) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if n > len(f.profiles) {
		n = len(f.profiles)
	}
	f.profiles = f.profiles[n:]
	return int64(n), nil
}

func (f *fakeStore) ids() []string {
	ids := make([]string, len(f.profiles))
	for i, p := range f.profiles {
		ids[i] = p.ID
	}
	return ids
}

// fakeSource hands out profiles with sequential ids: gen-1, gen-2, ...
type fakeSource struct{ n int }

func (s *fakeSource) Generate(context.Context) generator.Profile {
	s.n++
	return generator.Profile{
		ID:       fmt.Sprintf("gen-%d", s.n),
		Data:     `{"name": "Test"}`,
		ImageURL: "https://gen.pollinations.ai/image/test",
	}
}

func newTestController(store *fakeStore, minBuffer, hardCap, batchSize int, notify func(Stats)) *Controller {
	c := New(store, &fakeSource{}, minBuffer, hardCap, batchSize, notify)
	c.limiter = rate.NewLimiter(rate.Inf, 1) // no pacing in tests
	return c
}

func seedProfiles(store *fakeStore, n int) {
	for i := 0; i < n; i++ {
		store.profiles = append(store.profiles, generator.Profile{ID: fmt.Sprintf("old-%d", i)})
	}
}

func TestRunSkipsWhenBufferSufficient(t *testing.T) {
	store := newFakeStore()
	seedProfiles(store, 60)
	store.swipes["alice"] = 5 // buffer 55 >= 50

	c := newTestController(store, 50, 500, 5, nil)
	report := c.Run(context.Background())

	assert.True(t, report.Skipped)
	assert.Equal(t, 0, report.Generated)
	assert.Equal(t, 200, report.StatusCode())
	assert.Equal(t, "Skipped", report.Body())
	assert.Equal(t, 0, store.insertCalls)
}

func TestRunGeneratesOnEmptyStore(t *testing.T) {
	store := newFakeStore()
	store.swipes["alice"] = 0 // one session, zero swipes: buffer 0

	c := newTestController(store, 50, 500, 5, nil)
	report := c.Run(context.Background())

	assert.False(t, report.Skipped)
	assert.Equal(t, 5, report.Generated)
	assert.Equal(t, int64(0), report.Recycled)

	n, err := store.CountProfiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestRunGeneratesExactlyOneBatch(t *testing.T) {
	store := newFakeStore()
	seedProfiles(store, 10)
	store.swipes["heavy"] = 400 // buffer deeply negative

	c := newTestController(store, 50, 500, 5, nil)
	report := c.Run(context.Background())

	assert.Equal(t, 5, report.Generated)
	assert.Equal(t, 15, len(store.profiles))
}

func TestRunRecyclesOldestOverCap(t *testing.T) {
	store := newFakeStore()
	seedProfiles(store, 498)
	store.swipes["heavy"] = 460 // buffer 38 < 50

	c := newTestController(store, 50, 500, 5, nil)
	report := c.Run(context.Background())

	assert.Equal(t, 5, report.Generated)
	assert.Equal(t, int64(3), report.Recycled)
	assert.Equal(t, 500, len(store.profiles))

	// Exactly the three oldest are gone; the fresh batch survives.
	ids := store.ids()
	assert.Equal(t, "old-3", ids[0])
	assert.Contains(t, ids, "gen-5")
	assert.NotContains(t, ids, "old-0")
	assert.NotContains(t, ids, "old-1")
	assert.NotContains(t, ids, "old-2")
}

func TestRunNoRecycleUnderCap(t *testing.T) {
	store := newFakeStore()
	seedProfiles(store, 20)
	store.swipes["alice"] = 10

	c := newTestController(store, 50, 500, 5, nil)
	report := c.Run(context.Background())

	assert.Equal(t, int64(0), report.Recycled)
	assert.Equal(t, 25, len(store.profiles))
}

func TestRunContinuesPastPerItemFailure(t *testing.T) {
	store := newFakeStore()
	store.failInserts[2] = fmt.Errorf("connection reset")

	c := newTestController(store, 50, 500, 5, nil)
	report := c.Run(context.Background())

	assert.Equal(t, 4, report.Generated)
	assert.Equal(t, 200, report.StatusCode())
	assert.Equal(t, 4, len(store.profiles))
}

func TestRunReportsStatsFailure(t *testing.T) {
	store := newFakeStore()
	store.countErr = fmt.Errorf("db down")

	c := newTestController(store, 50, 500, 5, nil)
	report := c.Run(context.Background())

	require.Error(t, report.Err)
	assert.Equal(t, 500, report.StatusCode())
	assert.Contains(t, report.Body(), "db down")
}

func TestRunNotifiesAfterGeneration(t *testing.T) {
	store := newFakeStore()

	var got *Stats
	c := newTestController(store, 50, 500, 5, func(s Stats) { got = &s })
	c.Run(context.Background())

	require.NotNil(t, got)
	assert.Equal(t, 5, got.TotalProfiles)
	assert.Equal(t, 5, got.BufferRemaining)
}

func TestRunDoesNotNotifyOnSkip(t *testing.T) {
	store := newFakeStore()
	seedProfiles(store, 100)

	called := false
	c := newTestController(store, 50, 500, 5, func(Stats) { called = true })
	report := c.Run(context.Background())

	assert.True(t, report.Skipped)
	assert.False(t, called)
}

func TestPoolStatsBuffer(t *testing.T) {
	store := newFakeStore()
	seedProfiles(store, 30)
	store.swipes["a"] = 12
	store.swipes["b"] = 7

	c := newTestController(store, 50, 500, 5, nil)
	stats, err := c.PoolStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 30, stats.TotalProfiles)
	assert.Equal(t, 12, stats.MaxSessionSwipe)
	assert.Equal(t, 18, stats.BufferRemaining)
}
