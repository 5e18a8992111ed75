package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func counting[V any](calls *atomic.Int32, v V) func() V {
	return func() V {
		calls.Add(1)
		return v
	}
}

func TestGetOrCompute_TTL(t *testing.T) {
	clock := newFakeClock()
	c := New[string, string]("stats", 10*time.Minute, WithClock(clock.Now))
	var calls atomic.Int32

	assert.Equal(t, "v1", c.GetOrCompute("alice", counting(&calls, "v1")))
	assert.EqualValues(t, 1, calls.Load())

	clock.Advance(10*time.Minute - time.Nanosecond)
	assert.Equal(t, "v1", c.GetOrCompute("alice", counting(&calls, "v2")))
	assert.EqualValues(t, 1, calls.Load(), "live entry must not recompute")

	clock.Advance(time.Nanosecond)
	assert.Equal(t, "v2", c.GetOrCompute("alice", counting(&calls, "v2")))
	assert.EqualValues(t, 2, calls.Load(), "expired entry must recompute")
}

func TestGetOrCompute_CachesFailures(t *testing.T) {
	clock := newFakeClock()
	c := New[string, *int]("ban", time.Minute, WithClock(clock.Now))
	var calls atomic.Int32

	assert.Nil(t, c.GetOrCompute("42", counting[*int](&calls, nil)))
	assert.Nil(t, c.GetOrCompute("42", counting[*int](&calls, nil)))
	assert.EqualValues(t, 1, calls.Load())

	clock.Advance(time.Minute)
	assert.Nil(t, c.GetOrCompute("42", counting[*int](&calls, nil)))
	assert.EqualValues(t, 2, calls.Load())
}

func TestGetOrCompute_KeysAreIndependent(t *testing.T) {
	c := New[string, string]("identity", time.Minute)
	var calls atomic.Int32

	assert.Equal(t, "a", c.GetOrCompute("a", counting(&calls, "a")))
	assert.Equal(t, "b", c.GetOrCompute("b", counting(&calls, "b")))
	assert.EqualValues(t, 2, calls.Load())
}

func TestGetOrCompute_SeparateCachesDoNotShareKeys(t *testing.T) {
	byName := New[string, string]("identity", time.Minute)
	byPersona := New[string, string]("stats", time.Minute)

	byName.GetOrCompute("1004", func() string { return "identity" })
	assert.Equal(t, "stats", byPersona.GetOrCompute("1004", func() string { return "stats" }))
}

func TestGetOrCompute_ExpiredEntriesAreEvictedOnLookup(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int]("banlog", time.Minute, WithClock(clock.Now))

	c.GetOrCompute("a", func() int { return 1 })
	c.GetOrCompute("b", func() int { return 2 })
	require.Equal(t, 2, c.Stats().Entries)

	clock.Advance(2 * time.Minute)
	_, ok := c.get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Stats().Entries)
}

func TestGetOrCompute_CoalescesConcurrentMisses(t *testing.T) {
	c := New[string, int]("stats", time.Minute)
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	compute := func() int {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return 7
	}

	var wg sync.WaitGroup
	results := make([]int, 8)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = c.GetOrCompute("k", compute)
	}()
	<-started

	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.GetOrCompute("k", compute)
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, r := range results {
		assert.Equal(t, 7, r)
	}
}

func TestGetOrCompute_ConcurrentAccess(t *testing.T) {
	c := New[string, string]("stats", time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 32; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("p%d", (g+i)%17)
				got := c.GetOrCompute(key, func() string { return "value-" + key })
				assert.Equal(t, "value-"+key, got)
			}
		}(g)
	}
	wg.Wait()

	st := c.Stats()
	assert.Equal(t, 17, st.Entries)
	assert.EqualValues(t, 32*200, st.Hits+st.Misses)
}

func TestStats(t *testing.T) {
	c := New[string, int]("identity", time.Minute)
	assert.Zero(t, c.Stats().HitRate)

	c.GetOrCompute("a", func() int { return 1 })
	c.GetOrCompute("a", func() int { return 1 })

	st := c.Stats()
	assert.Equal(t, "identity", st.Name)
	assert.EqualValues(t, 1, st.Hits)
	assert.EqualValues(t, 1, st.Misses)
	assert.InDelta(t, 0.5, st.HitRate, 1e-9)
}
