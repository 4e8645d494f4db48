package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/floretlab/floret"
	"github.com/floretlab/floret/cache"
)

// newBakeCmd precomputes the configured warm patterns into a read-only
// store that deployments ship alongside the app, so first renders are
// served from disk instead of live computation.
func newBakeCmd() *cobra.Command {
	var (
		out   string
		store string
	)

	cmd := &cobra.Command{
		Use:   "bake",
		Short: "Precompute the configured warm patterns into a disk store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Cache.Warm) == 0 {
				return fmt.Errorf("no warm patterns configured under cache.warm")
			}

			eng, err := floret.New(floret.WithConfig(cfg))
			if err != nil {
				return err
			}
			defer eng.Close()

			ctx := context.Background()
			baked := make(map[string][]byte, len(cfg.Cache.Warm))
			metas := make(map[string]cache.EntryMeta, len(cfg.Cache.Warm))
			for _, w := range cfg.Cache.Warm {
				p := floret.Params{
					AngleStart:     w.AngleStart,
					AngleEnd:       w.AngleEnd,
					SampleCount:    w.SampleCount,
					Truncate:       w.Truncate,
					TruncateFactor: w.TruncateFactor,
				}
				res, err := eng.Compute(ctx, p)
				if err != nil {
					return fmt.Errorf("bake %s: %w", p.CacheKey(), err)
				}
				data, err := floret.EncodeResult(res)
				if err != nil {
					return fmt.Errorf("encode %s: %w", p.CacheKey(), err)
				}
				key := p.CacheKey()
				baked[key] = data
				metas[key] = cache.EntryMeta{
					AngleStart:   p.AngleStart,
					AngleEnd:     p.AngleEnd,
					SampleCount:  p.SampleCount,
					BoundedCount: res.BoundedCount,
				}
			}

			switch store {
			case "flat":
				if err := cache.WriteFlatFile(out, baked); err != nil {
					return err
				}
			case "badger":
				db, err := cache.OpenBadgerWritable(out, floret.Logger())
				if err != nil {
					return err
				}
				for key, data := range baked {
					if err := db.Set(key, metas[key], data); err != nil {
						db.Close()
						return err
					}
				}
				if err := db.Close(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown store %q (want flat or badger)", store)
			}

			fmt.Printf("baked %d entries into %s store at %s\n", len(baked), store, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "floret-cache", "output path (file for flat, directory for badger)")
	cmd.Flags().StringVar(&store, "store", "badger", "store format: badger or flat")
	return cmd
}
