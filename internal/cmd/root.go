// Package cmd is for command line interactions with the rapsim engine.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rapsim/internal/config"
	"rapsim/internal/version"
	"rapsim/internal/writers"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "rapsim",
	Short: `Simulate PCR random access over a DNA storage pool.
Predicts false-negative/false-positive retrieval rates for targeted and nested amplification`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initSettings)

	pf := rootCmd.PersistentFlags()
	pf.Int("pool-size", config.DefaultPoolSize, "number of distinct oligos in the storage pool")
	pf.Float64("redundancy", config.DefaultRedundancy, "initial copies per oligo")
	pf.Float64("pcr-eff", config.DefaultPCREff, "on-target amplification efficiency in [1,2]")
	pf.Float64("spurious-eff", config.DefaultSpuriousEff, "off-target amplification efficiency in [1,2]")
	pf.Int("cycles", config.DefaultCycles, "amplification cycles per stage")
	pf.Float64("threshold-ratio", config.DefaultThresholdRatio, "detection threshold as a fraction of the desired-pool mean")
	pf.Int("depth", 1, "nesting depth (1 = plain random access)")
	pf.Bool("deterministic", false, "use exact exponential growth instead of the branching process")
	pf.Uint64("seed", 1, "random seed for stochastic runs")
	pf.Int("threads", 0, "worker threads for sweeps (0 = physical cores)")
	pf.String("output", "text", "output format: "+strings.Join(writers.Formats(), " | "))
	pf.Bool("pools", false, "include amplified pools in json/jsonl output")
	pf.Bool("no-header", false, "suppress the header line in text output")
	pf.Bool("quiet", false, "suppress warnings")

	for _, name := range []string{
		"pool-size", "redundancy", "pcr-eff", "spurious-eff", "cycles",
		"threshold-ratio", "depth", "deterministic", "seed", "threads",
		"output", "pools", "no-header", "quiet",
	} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
}

// initSettings layers an optional rapsim.yaml and RAPSIM_* environment
// variables under the flag values.
func initSettings() {
	viper.SetConfigName("rapsim")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("RAPSIM")
	viper.AutomaticEnv()
	// A missing settings file is fine; flags and defaults cover everything.
	_ = viper.ReadInConfig()
}
