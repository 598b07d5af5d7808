// ════════════════════════════════════════════════════════════════════════════════════════════════
// Helsing — Vampire Number Search Engine
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Parallel Vampire Number Search Engine
// Component: Main Entry Point & CLI Surface
//
// Description:
//   Resolves CLI flags/config/env into a config.Run, then drives driver.Run
//   across [MIN, MAX], wiring whichever output/checksum/checkpoint
//   collaborators the resolved configuration selects.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jaskij/helsing/checkpoint"
	"github.com/jaskij/helsing/checksum"
	"github.com/jaskij/helsing/config"
	"github.com/jaskij/helsing/control"
	"github.com/jaskij/helsing/debug"
	"github.com/jaskij/helsing/driver"
	"github.com/jaskij/helsing/helserr"
	"github.com/jaskij/helsing/output"
	"github.com/jaskij/helsing/worker"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		debug.DropError("FATAL", err)
		os.Exit(helserr.ExitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	var (
		flagThreads      int
		flagMode         string
		flagFormat       string
		flagMinFangPairs uint8
		flagTileSize     string
		flagCheckpoint   string
		flagChecksum     bool
		flagConfigPath   string
		flagElementBits  int
	)

	cmd := &cobra.Command{
		Use:   "helsing MIN MAX",
		Short: "Search [MIN, MAX] for vampire numbers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			min, max, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}

			overrides := map[string]any{}
			if cmd.Flags().Changed("threads") {
				overrides["threads"] = flagThreads
			}
			if cmd.Flags().Changed("mode") {
				overrides["mode"] = flagMode
			}
			if cmd.Flags().Changed("format") {
				overrides["format"] = flagFormat
			}
			if cmd.Flags().Changed("min-fang-pairs") {
				overrides["min_fang_pairs"] = flagMinFangPairs
			}
			if cmd.Flags().Changed("tile-size") {
				overrides["tile_size"] = flagTileSize
			}
			if cmd.Flags().Changed("checksum") {
				overrides["checksum"] = flagChecksum
			}
			if cmd.Flags().Changed("element-bits") {
				overrides["element_bits"] = flagElementBits
			}

			cfg, err := config.Load(flagConfigPath, overrides)
			if err != nil {
				return err
			}
			cfg.Min, cfg.Max = min, max
			cfg.CheckpointPath = flagCheckpoint

			return run(cfg)
		},
	}

	cmd.Flags().IntVarP(&flagThreads, "threads", "t", 4, "worker goroutine count")
	cmd.Flags().StringVar(&flagMode, "mode", "print-vampires", "count-pairs|dump-pairs|count-vampires|print-vampires")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "text|json")
	cmd.Flags().Uint8Var(&flagMinFangPairs, "min-fang-pairs", 1, "minimum fang-pair count to report a value")
	cmd.Flags().StringVar(&flagTileSize, "tile-size", "auto", "auto|single")
	cmd.Flags().StringVar(&flagCheckpoint, "checkpoint", "", "checkpoint file path (disabled if empty)")
	cmd.Flags().BoolVar(&flagChecksum, "checksum", false, "fold emitted values into a blake2b-256 checksum")
	cmd.Flags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.Flags().IntVar(&flagElementBits, "element-bits", 64, "fingerprint element width: 64 (wide) or 32 (narrow)")

	return cmd
}

func parseRange(minArg, maxArg string) (min, max uint64, err error) {
	min, err = strconv.ParseUint(minArg, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("MIN %q: %w", minArg, helserr.ErrInputParse)
	}
	max, err = strconv.ParseUint(maxArg, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("MAX %q: %w", maxArg, helserr.ErrInputParse)
	}
	if min > max {
		return 0, 0, fmt.Errorf("MIN %d > MAX %d: %w", min, max, helserr.ErrInputRange)
	}
	return min, max, nil
}

func run(cfg config.Run) error {
	if cfg.Max > cfg.CapacityLimit() {
		return fmt.Errorf("MAX %d exceeds %d-bit encoding limit: %w", cfg.Max, cfg.ElementBits, helserr.ErrCapacityExceeded)
	}

	mode := parseMode(cfg.Mode)
	format := output.Text
	if cfg.Format == "json" {
		format = output.JSON
	}
	enc := output.New(os.Stdout, mode, format)
	defer enc.Flush()

	var cs checksum.Checksum = checksum.Noop{}
	if cfg.Checksum {
		cs = checksum.NewBlake2b()
	}

	counter := &worker.Counter{}
	pairCounter := &worker.Counter{}

	var store *checkpoint.Store
	if cfg.CheckpointPath != "" {
		if _, statErr := os.Stat(cfg.CheckpointPath); statErr == nil {
			resume, err := checkpoint.Load(cfg.CheckpointPath)
			if err != nil {
				return err
			}
			if resume.Min != cfg.Min || resume.Max != cfg.Max {
				return fmt.Errorf("checkpoint %s covers [%d, %d], not [%d, %d]: %w",
					cfg.CheckpointPath, resume.Min, resume.Max, cfg.Min, cfg.Max, helserr.ErrInputRange)
			}
			cfg.Min = resume.LastLmax + 1
			counter.Seed(resume.Count)
			pairCounter.Seed(resume.Pairs)
			debug.DropMessage("SEARCH", fmt.Sprintf("Resuming from checkpoint at %d, count %d, pairs %d", cfg.Min, resume.Count, resume.Pairs))
		}

		s, err := checkpoint.Open(cfg.CheckpointPath, cfg.Min, cfg.Max)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	setupSignalHandling()

	driverCfg := driver.Config{
		Min:          cfg.Min,
		Max:          cfg.Max,
		Threads:      cfg.Threads,
		Policy:       cfg.TileSizePolicy(),
		MaxTileSize:  cfg.MaxTileSize,
		MinFangPairs: cfg.MinFangPairs,
		UseNarrow:    cfg.UseNarrow(),
		Checkpoint:   store,
	}

	sink := worker.Sink{
		EmitValue: enc.Value,
		Checksum:  cs,
		Counter:   counter,
	}
	if mode == output.CountPairs || mode == output.DumpPairs {
		sink.EmitPair = enc.Pair
		sink.PairCounter = pairCounter
	}

	totals, runErr := driver.Run(driverCfg, sink)
	if runErr != nil {
		_ = enc.Flush()
		return runErr
	}

	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", helserr.ErrIO)
	}

	switch mode {
	case output.CountPairs:
		debug.DropMessage("SEARCH", fmt.Sprintf("Found: %d valid fang pairs.", totals.Pairs))
	case output.CountVampires:
		debug.DropMessage("SEARCH", fmt.Sprintf("Found: %d vampire numbers.", totals.Vampires))
	}
	if cfg.Checksum {
		debug.DropMessage("SEARCH", fmt.Sprintf("Checksum: %x", cs.Sum()))
	}
	return nil
}

func parseMode(m string) output.Mode {
	switch m {
	case "count-pairs":
		return output.CountPairs
	case "dump-pairs":
		return output.DumpPairs
	case "count-vampires":
		return output.CountVampires
	default:
		return output.PrintVampires
	}
}

func setupSignalHandling() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		debug.DropMessage("SIGNAL", "Received interrupt, finishing in-flight tiles...")
		control.Stop()
	}()
}
