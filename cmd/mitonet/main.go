// Command mitonet drives one or more Gillespie runs of the mitochondrial
// network simulator from a working directory of configuration files.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vlaran/mitonet/driver"
	"github.com/vlaran/mitonet/internal/logging"
	"github.com/vlaran/mitonet/rng"
	"github.com/vlaran/mitonet/simconfig"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "mitonet <workingDir> <configSuffix> <runIni> <runEnd> [verbose]",
		Short: "Run the Gillespie mitochondrial network simulator",
		Args:  cobra.RangeArgs(4, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 5 {
				parsed, err := strconv.ParseBool(args[4])
				if err != nil {
					return fmt.Errorf("parsing verbose flag %q: %w", args[4], err)
				}
				verbose = parsed
			}

			level := logging.LevelInfo
			if verbose {
				level = logging.LevelDebug
			}
			if err := logging.Configure(level); err != nil {
				return err
			}

			runIni, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("parsing runIni %q: %w", args[2], err)
			}
			runEnd, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("parsing runEnd %q: %w", args[3], err)
			}
			if runEnd < runIni {
				return fmt.Errorf("runEnd %d must be >= runIni %d", runEnd, runIni)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runAll(ctx, args[0], args[1], runIni, runEnd)
		},
	}

	return cmd
}

// runAll loads one seed table covering every requested run index and
// executes the runs in order, stopping at the first failure.
func runAll(ctx context.Context, workingDir, configSuffix string, runIni, runEnd int) error {
	seeds, err := rng.LoadSeeds(filepath.Join(workingDir, "seeds"), runEnd+1)
	if err != nil {
		return fmt.Errorf("loading seed table: %w", err)
	}

	for ii := runIni; ii <= runEnd; ii++ {
		if err := runOne(ctx, workingDir, configSuffix, ii, seeds[ii]); err != nil {
			return fmt.Errorf("run %d: %w", ii, err)
		}
	}

	return nil
}

func runOne(ctx context.Context, workingDir, configSuffix string, run int, seed uint32) error {
	cfgPath := filepath.Join(workingDir, fmt.Sprintf("config%d_%s.cfg", run, configSuffix))
	cfg, err := simconfig.Load(cfgPath)
	if err != nil {
		return err
	}

	outPath := filepath.Join(workingDir, fmt.Sprintf("mitos_%d.out", run))
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating snapshot file %s: %w", outPath, err)
	}
	defer out.Close()

	lastPath := filepath.Join(workingDir, fmt.Sprintf("mitos_last_%d.out", run))
	last, err := os.Create(lastPath)
	if err != nil {
		return fmt.Errorf("creating final snapshot file %s: %w", lastPath, err)
	}
	defer last.Close()

	slog.Info("starting run", "run", run, "config", cfgPath)

	summary, err := driver.Run(ctx, cfg, seed, out, last)
	if err != nil {
		return err
	}

	slog.Info("run finished", "run", run, "iterations", summary.Iterations, "finalTime", summary.FinalTime)

	return nil
}
