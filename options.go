package floret

import (
	"github.com/floretlab/floret/cache"
	"github.com/floretlab/floret/config"
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Default configuration, profile selected from host capabilities
//	eng, err := floret.New()
//
//	// Explicit config and a pre-baked disk store
//	eng, err := floret.New(
//		floret.WithConfig(cfg),
//		floret.WithStore(store),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	cfg     *config.Config
	store   cache.Store
	profile *Profile
}

// WithConfig sets the configuration tree. Defaults to config.Default().
func WithConfig(cfg *config.Config) Option {
	return func(o *engineOptions) {
		o.cfg = cfg
	}
}

// WithStore injects a pre-opened read-only disk store as the second cache
// tier. The engine takes ownership and closes it on Close. Without this
// option the engine opens the store named by cache.store/cache.path in the
// configuration, if any.
func WithStore(s cache.Store) Option {
	return func(o *engineOptions) {
		o.store = s
	}
}

// WithProfile overrides host-based profile selection. Useful in tests and
// for deployments that pin a profile explicitly.
func WithProfile(p Profile) Option {
	return func(o *engineOptions) {
		o.profile = &p
	}
}
