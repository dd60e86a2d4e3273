// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citecheck/pkg/types"
)

func testCfg() types.CacheConfig {
	return types.CacheConfig{Enabled: true, TTL: time.Hour, MaxSize: 100}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "crossref|doi:10.1000/xyz", Key(types.SourceCrossref, "doi:10.1000/xyz"))
}

func TestDoStoresAndHits(t *testing.T) {
	c := New[string](testCfg())
	var calls int32
	fetch := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	}

	v, err := c.Do(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = c.Do(context.Background(), "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.True(t, stats.Enabled)
	assert.Equal(t, 100, stats.MaxSize)
	assert.Equal(t, time.Hour, stats.TTL)
}

func TestTTLExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[int](types.CacheConfig{Enabled: true, TTL: time.Minute, MaxSize: 10})
	c.now = clock.Now

	c.Set("k", 7)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	clock.Advance(59 * time.Second)
	_, ok = c.Get("k")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry must expire at the TTL")
	assert.Equal(t, 0, c.Len())
}

func TestSingleFlight(t *testing.T) {
	c := New[string](testCfg())
	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	const n = 16
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Do(context.Background(), "same-key", fetch)
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "only one fetch per key")
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
	}
}

func TestSingleFlightSharesFailure(t *testing.T) {
	c := New[string](testCfg())
	boom := errors.New("rate limited")
	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "", boom
	}

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Do(context.Background(), "k", fetch)
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, 0, c.Len(), "failures are not cached")

	// A later call retries the fetch.
	before := atomic.LoadInt32(&calls)
	_, err := c.Do(context.Background(), "k", fetch)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before+1, atomic.LoadInt32(&calls))
}

func TestDistinctKeysFetchSeparately(t *testing.T) {
	c := New[string](testCfg())
	var calls int32
	fetch := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v", nil
	}

	_, err := c.Do(context.Background(), Key(types.SourceArxiv, "title:x"), fetch)
	require.NoError(t, err)
	_, err = c.Do(context.Background(), Key(types.SourceCrossref, "title:x"), fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestEvictsOldestWhenFull(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[int](types.CacheConfig{Enabled: true, TTL: time.Hour, MaxSize: 2})
	c.now = clock.Now

	c.Set("a", 1)
	clock.Advance(time.Second)
	c.Set("b", 2)
	clock.Advance(time.Second)
	c.Set("c", 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry evicted")
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestDisabledCacheStillCollapsesButDoesNotStore(t *testing.T) {
	c := New[string](types.CacheConfig{Enabled: false})
	var calls int32
	fetch := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v", nil
	}

	_, err := c.Do(context.Background(), "k", fetch)
	require.NoError(t, err)
	_, err = c.Do(context.Background(), "k", fetch)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Stats().Enabled)
}

func TestWaiterHonoursOwnContext(t *testing.T) {
	c := New[string](testCfg())
	release := make(chan struct{})
	defer close(release)

	go func() {
		_, _ = c.Do(context.Background(), "slow", func(context.Context) (string, error) {
			<-release
			return "late", nil
		})
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Do(ctx, "slow", func(context.Context) (string, error) {
		t.Error("second caller must not start its own fetch")
		return "", nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
