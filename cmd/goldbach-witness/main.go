// Command goldbach-witness runs the fixed-gear Goldbach witness engine:
// sieve mode verifies the even Goldbach conjecture across a dense
// interval by segment, mr mode searches a sparse high window for a
// prime witness per even via deterministic Miller-Rabin.
//
// CLI shape grounded on Ribengame-hunter's rootCmd (a single Run func,
// no subcommands, a package-level flag-var block bound into viper in
// init, config-then-run body), generalized to spec.md §6's flag table.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/affinity"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/config"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/gear"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/hwhint"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/logging"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/orchestrator"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "goldbach-witness",
	Short: "Fixed-gear Goldbach witness engine",
	Long: `Verifies the even Goldbach conjecture over an interval (sieve mode) or
searches a single sparse high window for a witness per even (mr mode),
both against a fixed set of small odd primes.`,
	RunE: run,
}

func init() {
	config.SetDefaults()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file path")

	flags.String("mode", config.ModeSieve, "sieve or mr")
	flags.Int64("limit", 0, "sieve mode: maximum even L to verify")
	flags.Int64("startN", 0, "mr mode: first even of the window")
	flags.Int64("windowEvens", 0, "mr mode: number of evens in the window")
	flags.Int("gear", config.DefaultGear, "number of small primes in the fixed gear")
	flags.Int("threads", 0, "outer parallelism hint, shown in the startup banner; segment dispatch is bounded by maxConcurrentSegments (0 = auto)")
	flags.Int64("segmentEvens", config.DefaultSegmentEvens, "evens per sieve-mode segment")
	flags.Int("maxConcurrentSegments", 0, "bound on concurrently running segments (0 = auto)")
	flags.Int("threadsInside", 0, "inner fan-out threads per segment/window (0 = auto)")
	flags.Int("misses", 0, "max sampled misses recorded per segment/window")
	flags.Bool("resume", false, "skip segments/windows with an existing audit report")
	flags.Bool("verifySeams", true, "cross-check segment boundary bands against MR64")
	flags.String("affinityMask", "", "CPU affinity mask (decimal or 0xHEX)")
	flags.String("outputDirectory", ".", "directory for audit reports and miss files")
	flags.String("logLevel", "info", "debug, info, warn, or error")
	flags.Bool("verbose", false, "verbose logging (debug level when logLevel is empty or not one of debug, info, warn, error)")

	for _, name := range []string{
		"mode", "limit", "startN", "windowEvens", "gear", "threads", "segmentEvens",
		"maxConcurrentSegments", "threadsInside", "misses", "resume", "verifySeams",
		"affinityMask", "outputDirectory", "logLevel", "verbose",
	} {
		viper.BindPFlag(name, flags.Lookup(name))
	}

	viper.SetEnvPrefix("GOLDBACH")
	viper.AutomaticEnv()
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.Verbose)

	mask, err := affinity.ParseMask(cfg.AffinityMask)
	if err != nil {
		return fmt.Errorf("invalid affinityMask: %w", err)
	}
	if err := affinity.Pin(mask); err != nil {
		logger.Warnf("affinity pin failed: %v", err)
	}

	outerThreads := hwhint.Resolve(cfg.Threads, 1.0)
	innerThreads := hwhint.Resolve(cfg.ThreadsInside, 2.0)
	maxConcurrentSegments := hwhint.Resolve(cfg.MaxConcurrentSegments, 1.0)

	printStartupBanner(cfg, logger, outerThreads, innerThreads, maxConcurrentSegments)

	g := gear.Build(cfg.Gear, int64(cfg.Gear)*20+100)
	logger.Infof("[gear] K=%d QMin=%d QMax=%d", cfg.Gear, g.QMin, g.QMax)

	ctx := context.Background()
	start := time.Now()

	switch cfg.Mode {
	case config.ModeSieve:
		summary, err := orchestrator.RunSieve(ctx, orchestrator.SieveOptions{
			Limit:                 cfg.Limit,
			Gear:                  g,
			SegmentEvens:          cfg.SegmentEvens,
			MaxConcurrentSegments: maxConcurrentSegments,
			ThreadsInside:         innerThreads,
			Block:                 config.DefaultBlock,
			MissSample:            cfg.Misses,
			VerifySeams:           cfg.VerifySeams,
			SeamBand:              config.DefaultSeamBand,
			OverlapFloor:          config.SeamOverlapFloor,
			Resume:                cfg.Resume,
			OutputDir:             cfg.OutputDirectory,
		}, logger)
		if err != nil {
			return err
		}
		printFinalStatistics(logger, time.Since(start), summary.Covered, summary.TotalEvens, summary.Pct)
	case config.ModeMR:
		report, err := orchestrator.RunMR(ctx, orchestrator.MROptions{
			StartN:        cfg.StartN,
			WindowEvens:   cfg.WindowEvens,
			Gear:          g,
			ThreadsInside: innerThreads,
			MissSample:    cfg.Misses,
			OutputDir:     cfg.OutputDirectory,
		}, logger)
		if err != nil {
			return err
		}
		printFinalStatistics(logger, time.Since(start), report.Covered, report.TotalEvens, report.Pct)
	}

	return nil
}

func printStartupBanner(cfg *config.Config, logger interface {
	Infof(string, ...interface{})
}, outer, inner, concurrentSegments int) {
	fmt.Println()
	fmt.Println("  goldbach-witness")
	fmt.Printf("  Go: %s | CPUs: %d\n", runtime.Version(), runtime.NumCPU())
	fmt.Println()

	logger.Infof("[cfg] mode=%s loadedFrom=%q", cfg.Mode, cfg.LoadedFrom())
	switch cfg.Mode {
	case config.ModeSieve:
		logger.Infof("[cfg] limit=%d segmentEvens=%d gear=%d", cfg.Limit, cfg.SegmentEvens, cfg.Gear)
	case config.ModeMR:
		logger.Infof("[cfg] startN=%d windowEvens=%d gear=%d", cfg.StartN, cfg.WindowEvens, cfg.Gear)
	}
	logger.Infof("[cfg] threads=%d threadsInside=%d maxConcurrentSegments=%d", outer, inner, concurrentSegments)
	logger.Infof("[cfg] resume=%v verifySeams=%v outputDirectory=%s", cfg.Resume, cfg.VerifySeams, cfg.OutputDirectory)
}

func printFinalStatistics(logger interface {
	Infof(string, ...interface{})
}, elapsed time.Duration, covered, total int64, pct float64) {
	fmt.Println()
	fmt.Println("  SUMMARY")
	fmt.Println()
	logger.Infof("[TOTAL] elapsed=%s covered=%d/%d (%.6f%%)", elapsed.Round(time.Millisecond), covered, total, pct)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
