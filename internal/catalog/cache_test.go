package catalog_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opencatalog/catalogctl/internal/catalog"
)

func countingFetch(calls *int32, result []catalog.Project, err error) catalog.FetchFunc {
	return func() ([]catalog.Project, error) {
		atomic.AddInt32(calls, 1)
		return result, err
	}
}

func TestCache_FreshHitSkipsFetch(t *testing.T) {
	var calls int32
	c := catalog.NewCache(countingFetch(&calls, sampleProjects(), nil), time.Hour)

	for i := 0; i < 5; i++ {
		got, err := c.Get(false)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("got %d projects", len(got))
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times within expiry, want 1", calls)
	}
}

func TestCache_ForceRefreshAlwaysFetches(t *testing.T) {
	var calls int32
	c := catalog.NewCache(countingFetch(&calls, sampleProjects(), nil), time.Hour)

	if _, err := c.Get(false); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := c.Get(true); err != nil {
		t.Fatalf("Get(force): %v", err)
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2", calls)
	}
}

func TestCache_ExpiryTriggersRefetch(t *testing.T) {
	var calls int32
	c := catalog.NewCache(countingFetch(&calls, sampleProjects(), nil), 10*time.Millisecond)

	if _, err := c.Get(false); err != nil {
		t.Fatalf("Get: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := c.Get(false); err != nil {
		t.Fatalf("Get after expiry: %v", err)
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2", calls)
	}
}

func TestCache_InvalidateForcesNextFetch(t *testing.T) {
	var calls int32
	c := catalog.NewCache(countingFetch(&calls, sampleProjects(), nil), time.Hour)

	if _, err := c.Get(false); err != nil {
		t.Fatalf("Get: %v", err)
	}
	c.Invalidate()
	if _, err := c.Get(false); err != nil {
		t.Fatalf("Get after invalidate: %v", err)
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2", calls)
	}
}

func TestCache_FailedRefreshKeepsStaleData(t *testing.T) {
	var failing atomic.Bool
	var calls int32
	fetch := func() ([]catalog.Project, error) {
		atomic.AddInt32(&calls, 1)
		if failing.Load() {
			return nil, errors.New("remote down")
		}
		return sampleProjects(), nil
	}
	c := catalog.NewCache(fetch, time.Hour)

	if _, err := c.Get(false); err != nil {
		t.Fatalf("initial Get: %v", err)
	}

	failing.Store(true)
	if _, err := c.Get(true); err == nil {
		t.Fatal("expected error from failed refresh")
	}

	// Stale snapshot must still be served once the fetch stops being forced.
	failing.Store(false)
	got, err := c.Get(false)
	if err != nil {
		t.Fatalf("Get after failed refresh: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("stale data lost: got %d projects", len(got))
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2 (stale hit must not refetch)", calls)
	}
}

func TestCache_ConcurrentMissesCoalesce(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	fetch := func() ([]catalog.Project, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return sampleProjects(), nil
	}
	c := catalog.NewCache(fetch, time.Hour)

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Get(false)
			if err != nil {
				t.Errorf("Get: %v", err)
			}
			if len(got) != 3 {
				t.Errorf("got %d projects", len(got))
			}
		}()
	}
	// Let the goroutines pile up on the in-flight fetch before releasing it.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls != 1 {
		t.Errorf("fetch called %d times for %d concurrent misses, want 1", calls, n)
	}
}

func TestCache_PrimeWithinExpiry(t *testing.T) {
	var calls int32
	c := catalog.NewCache(countingFetch(&calls, nil, errors.New("should not fetch")), time.Hour)

	c.Prime(sampleProjects(), time.Now().Add(-time.Minute))
	got, err := c.Get(false)
	if err != nil {
		t.Fatalf("Get after Prime: %v", err)
	}
	if len(got) != 3 || calls != 0 {
		t.Errorf("primed snapshot not used: %d projects, %d fetches", len(got), calls)
	}
}

func TestCache_PrimeExpiredIgnored(t *testing.T) {
	var calls int32
	c := catalog.NewCache(countingFetch(&calls, sampleProjects(), nil), time.Hour)

	c.Prime(sampleProjects()[:1], time.Now().Add(-2*time.Hour))
	got, err := c.Get(false)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if calls != 1 {
		t.Errorf("expired prime should not prevent fetch, calls = %d", calls)
	}
	if len(got) != 3 {
		t.Errorf("got %d projects, want 3", len(got))
	}
}

func TestCache_SnapshotEmpty(t *testing.T) {
	c := catalog.NewCache(countingFetch(new(int32), nil, nil), time.Hour)
	if _, _, ok := c.Snapshot(); ok {
		t.Error("Snapshot ok for empty cache")
	}
}
