package cmd

import (
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rapsim/internal/config"
	"rapsim/internal/sweep"
	"rapsim/internal/writers"
	"rapsim/pkg/api"
)

// sweepCmd evaluates a grid of target percents in parallel, the loop an
// external plotting layer would otherwise drive point by point.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep a grid of target percents and report per-stage error rates for each",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		grid, err := cfg.Grid()
		if err != nil {
			return err
		}

		var (
			mu   sync.Mutex
			rows []api.StageOutcomeV1
			bad  int
		)
		err = sweep.ForEachOutcome(cmd.Context(), sweep.Config{
			Threads:        effectiveThreads(cfg.Threads),
			PoolSize:       cfg.PoolSize,
			Redundancy:     cfg.Redundancy,
			Grid:           grid,
			Depth:          cfg.Depth,
			Cycles:         cfg.Cycles,
			PCREff:         cfg.PCREff,
			SpuriousEff:    cfg.SpuriousEff,
			ThresholdRatio: cfg.ThresholdRatio,
			Deterministic:  cfg.Deterministic,
			Seed:           cfg.Seed,
		}, func(p sweep.Point) error {
			mu.Lock()
			defer mu.Unlock()
			if p.Err != nil {
				bad++
			}
			rows = append(rows, writers.ToAPIPoint(p, cfg.Pools))
			return nil
		})
		if err != nil {
			return err
		}
		if bad > 0 {
			warnf(cmd.ErrOrStderr(), cfg.Quiet, "%d grid point(s) failed; see error rows", bad)
		}

		writers.SortRows(rows)
		return emit(cfg, cmd.OutOrStdout(), rows)
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().Float64("grid-start", 0.1, "first target percent in the sweep")
	sweepCmd.Flags().Float64("grid-stop", 0.9, "last target percent in the sweep")
	sweepCmd.Flags().Float64("grid-step", 0.1, "grid spacing")

	viper.BindPFlag("grid-start", sweepCmd.Flags().Lookup("grid-start"))
	viper.BindPFlag("grid-stop", sweepCmd.Flags().Lookup("grid-stop"))
	viper.BindPFlag("grid-step", sweepCmd.Flags().Lookup("grid-step"))
}
