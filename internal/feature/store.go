package feature

import (
	"log"
	"sync"
	"time"

	"github.com/lazypower/cadence/internal/activity"
	"github.com/lazypower/cadence/internal/kvstore"
)

const (
	// DefaultTTL applies to every feature without an explicit override.
	DefaultTTL = time.Hour

	// DefaultSnapshotKey is the key-value slot holding the serialized
	// cache snapshot.
	DefaultSnapshotKey = "cadence.feature_cache"
)

// Store computes, caches, and serves named scalar features derived
// from user activity. It owns a TTL cache and a computation registry,
// and snapshots the cache through a key-value adapter so warm values
// survive restarts. Construct one per process (or per test) and share
// it; all methods are safe for concurrent use.
type Store struct {
	cache    *Cache
	registry *Registry
	kv       kvstore.Store
	now      func() time.Time

	defaultTTL   time.Duration
	ttlOverrides map[string]time.Duration
	snapshotKey  string

	mu          sync.Mutex
	initialized bool
	saves       sync.WaitGroup
}

// Option configures a Store at construction.
type Option func(*Store)

// WithClock injects the time source. Every feature computation samples
// it exactly once, which makes computations replayable in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDefaultTTL overrides the one-hour default freshness window.
func WithDefaultTTL(d time.Duration) Option {
	return func(s *Store) { s.defaultTTL = d }
}

// WithTTLOverride pins a per-feature freshness window.
func WithTTLOverride(name string, d time.Duration) Option {
	return func(s *Store) { s.ttlOverrides[name] = d }
}

// WithSnapshotKey overrides the key-value slot used for persistence.
func WithSnapshotKey(key string) Option {
	return func(s *Store) { s.snapshotKey = key }
}

// New creates a Store over the given persistence adapter. Call
// Initialize before serving features.
func New(kv kvstore.Store, opts ...Option) *Store {
	s := &Store{
		cache:        NewCache(),
		registry:     NewRegistry(),
		kv:           kv,
		now:          time.Now,
		defaultTTL:   DefaultTTL,
		ttlOverrides: make(map[string]time.Duration),
		snapshotKey:  DefaultSnapshotKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted snapshot and registers the built-in
// features. Idempotent: repeat calls are no-ops. Load problems are
// logged and degrade to an empty cache; they never fail startup.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return
	}

	s.loadSnapshot()

	for name, step := range builtins() {
		s.registry.Register(name, step)
	}
	s.initialized = true
}

func (s *Store) loadSnapshot() {
	raw, ok, err := s.kv.GetString(s.snapshotKey)
	if err != nil {
		log.Printf("feature store: snapshot read: %v", err)
		return
	}
	if !ok {
		return
	}

	entries, skipped, err := decodeSnapshot(raw, s.now())
	if err != nil {
		log.Printf("feature store: snapshot unreadable, starting empty: %v", err)
		return
	}
	for k, e := range entries {
		s.cache.Put(k, e)
	}
	if skipped > 0 {
		log.Printf("feature store: snapshot load skipped %d stale or corrupt entries", skipped)
	}
}

// RegisterFeature binds a computation pipeline to a feature name,
// replacing any existing pipeline of the same name.
func (s *Store) RegisterFeature(name string, steps ...Step) {
	s.registry.Register(name, steps...)
}

// GetFeature returns the named feature for the activity at the default
// version, computing and caching it when no live entry exists.
func (s *Store) GetFeature(name string, a activity.UserActivity) (float64, error) {
	return s.GetFeatureVersion(name, a, DefaultVersion)
}

// GetFeatureVersion is GetFeature with an explicit version pin. A
// cache hit returns without recomputation; a miss or expired entry
// recomputes, caches with fresh metadata, and kicks off a best-effort
// snapshot save that the caller never waits on.
func (s *Store) GetFeatureVersion(name string, a activity.UserActivity, version string) (float64, error) {
	if version == "" {
		version = DefaultVersion
	}
	now := s.now()
	key := Key(a.UserID, name, version)

	if e, ok := s.cache.Get(key, now); ok {
		return e.Value, nil
	}

	value, err := s.registry.Compute(name, a, now)
	if err != nil {
		return 0, err
	}

	s.cache.Put(key, Cached{
		Value: value,
		Meta: Metadata{
			Name:       name,
			Version:    version,
			ComputedAt: now,
			TTL:        s.ttlFor(name),
		},
	})
	s.saveAsync()
	return value, nil
}

// GetFeatureVector computes each named feature independently. A
// failure on any single name is logged and reported as 0.0 in the
// result; the call itself never fails.
func (s *Store) GetFeatureVector(names []string, a activity.UserActivity) map[string]float64 {
	out := make(map[string]float64, len(names))
	for _, name := range names {
		v, err := s.GetFeature(name, a)
		if err != nil {
			log.Printf("feature store: compute %s: %v", name, err)
			v = 0
		}
		out[name] = v
	}
	return out
}

// InvalidateFeature drops the cached value for one (user, feature)
// pair at the default version.
func (s *Store) InvalidateFeature(userID, name string) {
	s.InvalidateFeatureVersion(userID, name, DefaultVersion)
}

// InvalidateFeatureVersion drops the cached value for one
// (user, feature, version) triple.
func (s *Store) InvalidateFeatureVersion(userID, name, version string) {
	s.cache.Invalidate(Key(userID, name, version))
	s.saveAsync()
}

// InvalidateUserFeatures drops every cached value belonging to the
// user.
func (s *Store) InvalidateUserFeatures(userID string) {
	s.cache.InvalidateUser(userID)
	s.saveAsync()
}

// ClearCache empties the in-memory cache and erases the persisted
// snapshot.
func (s *Store) ClearCache() {
	s.cache.Clear()
	if err := s.kv.Remove(s.snapshotKey); err != nil {
		log.Printf("feature store: snapshot remove: %v", err)
	}
}

// Flush blocks until in-flight snapshot saves have finished. Useful
// before process exit and in tests; normal callers never need it.
func (s *Store) Flush() {
	s.saves.Wait()
}

func (s *Store) ttlFor(name string) time.Duration {
	if d, ok := s.ttlOverrides[name]; ok {
		return d
	}
	return s.defaultTTL
}

// saveAsync serializes the entire live cache and hands it to the
// adapter without blocking the caller. Failures are logged, never
// surfaced: the in-memory cache keeps serving, merely unsynced.
func (s *Store) saveAsync() {
	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		snap := s.cache.Snapshot(s.now())
		data, err := encodeSnapshot(snap)
		if err != nil {
			log.Printf("feature store: snapshot encode: %v", err)
			return
		}
		if err := s.kv.SetString(s.snapshotKey, data); err != nil {
			log.Printf("feature store: snapshot save: %v", err)
		}
	}()
}
