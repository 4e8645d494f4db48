// Command floret renders Fermat-spiral Voronoi artwork and manages the
// pre-baked cache stores used by interactive deployments.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/floretlab/floret"
	"github.com/floretlab/floret/config"
)

var (
	flagConfig  string
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "floret",
		Short:         "Fermat-spiral Voronoi artwork generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flagVerbose {
				level = slog.LevelDebug
			}
			floret.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to floret.yaml")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newExportCmd(), newBakeCmd(), newInfoCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "floret:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(flagConfig)
}

func newInfoCmd() *cobra.Command {
	var points int
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the selected performance profile and a time estimate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, err := floret.New(floret.WithConfig(cfg))
			if err != nil {
				return err
			}
			defer eng.Close()

			p := eng.Profile()
			b := eng.Bounds()
			fmt.Printf("environment:  %s\n", config.Env())
			fmt.Printf("profile:      %s\n", p.Name)
			fmt.Printf("max points:   %d\n", b.MaxPoints)
			fmt.Printf("debounce:     %d ms\n", p.DebounceMS)
			fmt.Printf("cache size:   %d MB\n", p.CacheSizeMB)
			fmt.Printf("estimate(%d): %.1f ms\n", points, eng.EstimateTimeMS(points))
			return nil
		},
	}
	cmd.Flags().IntVar(&points, "points", 500, "sample count for the time estimate")
	return cmd
}
