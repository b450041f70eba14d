package feature

import (
	"testing"
	"time"
)

func cached(name string, computedAt time.Time, ttl time.Duration, value float64) Cached {
	return Cached{
		Value: value,
		Meta:  Metadata{Name: name, Version: DefaultVersion, ComputedAt: computedAt, TTL: ttl},
	}
}

func TestCacheGetAbsent(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("u1:streak_length:1.0", testNow); ok {
		t.Error("expected miss for never-written key")
	}
}

func TestCachePutGet(t *testing.T) {
	c := NewCache()
	key := Key("u1", "streak_length", "")

	c.Put(key, cached("streak_length", testNow, time.Hour, 3))
	e, ok := c.Get(key, testNow.Add(30*time.Minute))
	if !ok {
		t.Fatal("expected hit within ttl")
	}
	if e.Value != 3 {
		t.Errorf("value = %v, want 3", e.Value)
	}

	// Last write wins.
	c.Put(key, cached("streak_length", testNow, time.Hour, 4))
	e, _ = c.Get(key, testNow)
	if e.Value != 4 {
		t.Errorf("value after overwrite = %v, want 4", e.Value)
	}
}

func TestCacheLazyExpiry(t *testing.T) {
	c := NewCache()
	key := Key("u1", "engagement_score", "")
	c.Put(key, cached("engagement_score", testNow, time.Hour, 0.4))

	if _, ok := c.Get(key, testNow.Add(61*time.Minute)); ok {
		t.Error("expected miss after ttl elapsed")
	}
	// The expired entry lingers in the map; only the read path hides it.
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 (no proactive sweep)", c.Len())
	}
}

func TestCacheInvalidateUser(t *testing.T) {
	c := NewCache()
	c.Put(Key("u1", "streak_length", ""), cached("streak_length", testNow, time.Hour, 1))
	c.Put(Key("u1", "engagement_score", ""), cached("engagement_score", testNow, time.Hour, 2))
	c.Put(Key("u10", "streak_length", ""), cached("streak_length", testNow, time.Hour, 3))

	c.InvalidateUser("u1")

	if _, ok := c.Get(Key("u1", "streak_length", ""), testNow); ok {
		t.Error("u1 streak_length should be gone")
	}
	if _, ok := c.Get(Key("u1", "engagement_score", ""), testNow); ok {
		t.Error("u1 engagement_score should be gone")
	}
	// The prefix must not swallow other users, u10 included.
	if _, ok := c.Get(Key("u10", "streak_length", ""), testNow); !ok {
		t.Error("u10 entry should survive u1 invalidation")
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache()
	c.Put(Key("u1", "streak_length", ""), cached("streak_length", testNow, time.Hour, 1))
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
}

func TestCacheSnapshotLiveOnly(t *testing.T) {
	c := NewCache()
	c.Put("u1:a:1.0", cached("a", testNow, time.Hour, 1))
	c.Put("u1:b:1.0", cached("b", testNow.Add(-2*time.Hour), time.Hour, 2))

	snap := c.Snapshot(testNow)
	if len(snap) != 1 {
		t.Fatalf("snapshot size = %d, want 1", len(snap))
	}
	if _, ok := snap["u1:a:1.0"]; !ok {
		t.Error("live entry missing from snapshot")
	}
}
