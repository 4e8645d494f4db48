package floret

import (
	"bytes"
	"context"
	"encoding/gob"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/floretlab/floret/cache"
	"github.com/floretlab/floret/config"
	"github.com/floretlab/floret/geometry"
	"github.com/floretlab/floret/internal/hostinfo"
	"github.com/golang/geo/r2"
)

// Engine is the computation core. It owns the cache tiers and consults them
// in fixed priority order on every request: session cache, then the
// optional pre-baked disk store (hits are promoted into the session cache),
// then live computation. A memoized tessellation cache keyed by point-array
// content sits underneath the live path as a second safety net.
//
// Construct exactly one Engine per session with New and pass it by
// reference; there is no hidden global instance. The Engine is the only
// writer of its caches, while Compute, Stats and the render/export paths
// may run concurrently.
type Engine struct {
	cfg     *config.Config
	profile Profile
	bounds  Bounds

	session *cache.Session[*Result]
	memo    *cache.Memo[*geometry.Tessellation]
	store   cache.Store
	storeUp atomic.Bool
	group   singleflight.Group
}

// New creates an Engine. Infrastructure problems (an unreadable disk store)
// degrade to memory-only caching with a warning; New fails only on invalid
// options.
func New(opts ...Option) (*Engine, error) {
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.cfg
	if cfg == nil {
		cfg = config.Default()
	}

	var profile Profile
	if o.profile != nil {
		profile = *o.profile
	} else {
		facts := hostinfo.Collect()
		profile = SelectProfile(facts, cfg.Profiles)
		Logger().Info("performance profile selected",
			slog.String("profile", profile.Name),
			slog.Int("cores", facts.Cores),
			slog.Int("memory_mb", facts.MemoryMB))
	}

	bounds := Bounds{
		MinPoints:     cfg.Spiral.MinPoints,
		MaxPoints:     cfg.Spiral.MaxPoints,
		MaxAngleRange: cfg.Spiral.MaxAngleRange,
	}
	if profile.MaxPoints > 0 && profile.MaxPoints < bounds.MaxPoints {
		bounds.MaxPoints = profile.MaxPoints
	}

	cacheMB := cfg.Cache.MaxSizeMB
	if cacheMB <= 0 {
		cacheMB = profile.CacheSizeMB
	}
	cacheBytes := int64(cacheMB) << 20

	e := &Engine{
		cfg:     cfg,
		profile: profile,
		bounds:  bounds,
		session: cache.NewSession[*Result](cacheBytes, 0),
		memo:    cache.NewMemo[*geometry.Tessellation](cacheBytes/2, cfg.Cache.TTL.Std()),
	}

	e.store = o.store
	if e.store == nil && cfg.Cache.Store != "" {
		e.store = openConfiguredStore(cfg)
	}
	e.storeUp.Store(e.store != nil)
	return e, nil
}

// openConfiguredStore opens the disk tier named in the configuration.
// Failure is a degradation, never fatal.
func openConfiguredStore(cfg *config.Config) cache.Store {
	var (
		s   cache.Store
		err error
	)
	switch cfg.Cache.Store {
	case "badger":
		s, err = cache.OpenBadger(cfg.Cache.Path, Logger())
	case "flat":
		s, err = cache.OpenFlatFile(cfg.Cache.Path)
	default:
		return nil
	}
	if err != nil {
		Logger().Warn("disk cache tier unavailable, running memory-only",
			slog.String("store", cfg.Cache.Store),
			slog.String("path", cfg.Cache.Path),
			slog.Any("error", err))
		return nil
	}
	Logger().Info("disk cache tier opened",
		slog.String("store", cfg.Cache.Store),
		slog.String("path", cfg.Cache.Path))
	return s
}

// Bounds returns the validator bounds in effect (configuration capped by
// the selected profile).
func (e *Engine) Bounds() Bounds { return e.bounds }

// Profile returns the performance profile selected at construction.
func (e *Engine) Profile() Profile { return e.profile }

// Validate checks a parameter set against the engine's bounds. Total and
// side-effect free.
func (e *Engine) Validate(p Params) Validation {
	return Validate(p.AngleStart, p.AngleEnd, p.SampleCount, e.bounds)
}

// EstimateTimeMS predicts the compute cost for n points.
func (e *Engine) EstimateTimeMS(n int) float64 {
	return EstimateTimeMS(n, e.cfg.Estimate)
}

// Limits derives the symmetric plot range for a result using the configured
// padding and fallback.
func (e *Engine) Limits(r *Result) Limit {
	var t *geometry.Tessellation
	if r != nil {
		t = r.Tess
	}
	return Limits(t, e.cfg.Limits.Padding, e.cfg.Limits.Default)
}

// Colors maps a palette name to exactly n colors. Unrecognized names fall
// back to the default palette with a warning; a cosmetic parameter never
// fails a computation.
func (e *Engine) Colors(name string, n int, invert bool) []RGBA {
	p, ok := ParsePalette(name)
	if !ok {
		Logger().Warn("unknown palette, using default",
			slog.String("palette", name),
			slog.String("fallback", p.String()))
	}
	return Colors(p, n, invert)
}

// Compute resolves a parameter set to a Result through the cache tiers.
//
// Expected failures are typed: *ValidationError for out-of-bounds
// parameters, *GeometryError for degenerate tessellations. Failed
// computations are never stored in any tier.
//
// Concurrent requests for the same cache key share one underlying
// computation. Cancelling ctx abandons the wait (e.g. when a newer request
// supersedes this one); the in-flight computation still completes and
// populates the cache for later requests.
func (e *Engine) Compute(ctx context.Context, p Params) (*Result, error) {
	if v := e.Validate(p); !v.Valid {
		return nil, &ValidationError{Message: v.Message}
	}
	key := p.CacheKey()

	if r, ok := e.session.Get(key); ok {
		Logger().Debug("session cache hit", slog.String("key", key))
		return r, nil
	}

	ch := e.group.DoChan(key, func() (any, error) {
		return e.computeMiss(p, key)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Result), nil
	}
}

// computeMiss runs under singleflight: at most one execution per key at a
// time.
func (e *Engine) computeMiss(p Params, key string) (*Result, error) {
	// A concurrent caller may have filled the session tier while this call
	// queued behind the singleflight lock.
	if r, ok := e.session.Get(key); ok {
		return r, nil
	}

	if r, ok := e.lookupStore(p, key); ok {
		e.session.Put(key, r, r.sizeBytes())
		return r, nil
	}

	r, err := e.computeLive(p)
	if err != nil {
		return nil, err
	}
	e.session.Put(key, r, r.sizeBytes())
	return r, nil
}

// lookupStore consults the read-only disk tier. Store-level errors disable
// the tier for the rest of the session (memory-only degradation); corrupt
// individual entries are skipped.
func (e *Engine) lookupStore(p Params, key string) (*Result, bool) {
	if e.store == nil || !e.storeUp.Load() {
		return nil, false
	}
	data, ok, err := e.store.Get(key)
	if err != nil {
		Logger().Warn("disk cache tier failed, degrading to memory-only",
			slog.String("key", key), slog.Any("error", err))
		e.storeUp.Store(false)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	r, err := DecodeResult(data)
	if err != nil {
		Logger().Warn("corrupt disk cache entry skipped",
			slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	r.Params = p
	Logger().Debug("disk tier hit, promoted to session cache", slog.String("key", key))
	return r, true
}

// computeLive is the third tier: generate, optionally truncate, tessellate.
// The tessellation itself is memoized by point-array content, so semantic
// keys that resolve to the same filtered point set share one tessellation.
func (e *Engine) computeLive(p Params) (*Result, error) {
	start := time.Now()

	pts, err := Generate(p.AngleStart, p.AngleEnd, p.SampleCount)
	if err != nil {
		return nil, err
	}
	if p.Truncate {
		pts, err = Truncate(pts, p.TruncateFactor, e.bounds.MinPoints)
		if err != nil {
			return nil, err
		}
	}

	h := cache.HashPoints(pts)
	tess, ok := e.memo.Get(h)
	if !ok {
		tess, err = geometry.Tessellate(pts)
		if err != nil {
			return nil, err
		}
		e.memo.Set(h, tess, tess.SizeBytes())
	} else {
		Logger().Debug("tessellation memo hit")
	}

	return &Result{
		Params:       p,
		Points:       pts,
		Tess:         tess,
		BoundedCount: tess.BoundedCount,
		ElapsedMS:    float64(time.Since(start).Microseconds()) / 1000,
	}, nil
}

// Warm precomputes the configured common parameter tuples so the first
// interactive render is served from cache. Individual failures are logged
// and skipped; warming never fails startup.
func (e *Engine) Warm(ctx context.Context) {
	for _, w := range e.cfg.Cache.Warm {
		p := Params{
			AngleStart:     w.AngleStart,
			AngleEnd:       w.AngleEnd,
			SampleCount:    w.SampleCount,
			Truncate:       w.Truncate,
			TruncateFactor: w.TruncateFactor,
		}
		if _, err := e.Compute(ctx, p); err != nil {
			Logger().Warn("cache warm pattern skipped",
				slog.String("key", p.CacheKey()), slog.Any("error", err))
		}
	}
}

// Stats returns the session and memo tier statistics.
func (e *Engine) Stats() (session, memo cache.Stats) {
	return e.session.Stats(), e.memo.Stats()
}

// Close releases the disk store, if any. Must be called on session
// teardown; the store's directory lock is not left to garbage collection.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// diskEntry is the gob payload baked into disk stores.
type diskEntry struct {
	Points       []r2.Point
	Tess         *geometry.Tessellation
	BoundedCount int
	ElapsedMS    float64
}

// EncodeResult serializes a result for a disk tier.
func EncodeResult(r *Result) ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(diskEntry{
		Points:       r.Points,
		Tess:         r.Tess,
		BoundedCount: r.BoundedCount,
		ElapsedMS:    r.ElapsedMS,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeResult deserializes a disk-tier blob. The caller fills in Params.
func DecodeResult(data []byte) (*Result, error) {
	var e diskEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return nil, err
	}
	return &Result{
		Points:       e.Points,
		Tess:         e.Tess,
		BoundedCount: e.BoundedCount,
		ElapsedMS:    e.ElapsedMS,
	}, nil
}
