package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/memkit/heap/alloc"
)

var (
	stressStrategy   string
	stressOps        int
	stressSeed       int64
	stressLimit      int32
	stressMaxSize    int
	stressCheckEvery int
	stressMapped     bool
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().StringVar(&stressStrategy, "strategy", "explicit", "Free-space strategy (implicit or explicit)")
	cmd.Flags().IntVar(&stressOps, "ops", 100000, "Number of random operations")
	cmd.Flags().Int64Var(&stressSeed, "seed", 42, "RNG seed (fixed for reproducible runs)")
	cmd.Flags().Int32Var(&stressLimit, "limit", 64<<20, "Host memory limit in bytes")
	cmd.Flags().IntVar(&stressMaxSize, "max-size", 1024, "Maximum payload size per allocation")
	cmd.Flags().IntVar(&stressCheckEvery, "check-every", 1000, "Run invariant checks every N operations (0 disables)")
	cmd.Flags().BoolVar(&stressMapped, "mapped", false, "Back the arena with an anonymous memory mapping")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run a randomized alloc/free workload with invariant checks",
		Long: `The stress command drives a seeded random mix of Malloc, Free,
Realloc and Calloc against the chosen strategy, periodically walking the
arena to verify the tiling and free-list invariants.

Example:
  memctl stress --strategy implicit --ops 50000
  memctl stress --strategy explicit --seed 7 --check-every 100 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

// stressResult is the machine-readable summary of a stress run.
type stressResult struct {
	Strategy  string      `json:"strategy"`
	Ops       int         `json:"ops"`
	Seed      int64       `json:"seed"`
	Live      int         `json:"live_allocations"`
	ArenaSize int32       `json:"arena_bytes"`
	Elapsed   string      `json:"elapsed"`
	Stats     alloc.Stats `json:"stats"`
}

func runStress() error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	a, err := makeAllocator(stressStrategy, stressLimit, stressMapped)
	if err != nil {
		return err
	}

	logger.Info("stress run starting",
		zap.String("strategy", stressStrategy),
		zap.Int("ops", stressOps),
		zap.Int64("seed", stressSeed),
		zap.Int32("limit", stressLimit),
	)

	rng := rand.New(rand.NewSource(stressSeed))
	var live []alloc.Ptr
	start := time.Now()

	for i := 0; i < stressOps; i++ {
		switch op := rng.Intn(10); {
		case op < 5: // malloc
			size := int32(rng.Intn(stressMaxSize + 1))
			p, _, mErr := a.Malloc(size)
			if mErr != nil {
				return fmt.Errorf("op %d: malloc %d: %w", i, size, mErr)
			}
			live = append(live, p)

		case op < 8: // free
			if len(live) == 0 {
				continue
			}
			j := rng.Intn(len(live))
			if fErr := a.Free(live[j]); fErr != nil {
				return fmt.Errorf("op %d: free %d: %w", i, live[j], fErr)
			}
			live = append(live[:j], live[j+1:]...)

		case op < 9: // realloc
			if len(live) == 0 {
				continue
			}
			j := rng.Intn(len(live))
			size := int32(rng.Intn(stressMaxSize + 1))
			p, _, rErr := a.Realloc(live[j], size)
			if rErr != nil {
				return fmt.Errorf("op %d: realloc %d: %w", i, size, rErr)
			}
			if p == alloc.NullPtr {
				live = append(live[:j], live[j+1:]...)
			} else {
				live[j] = p
			}

		default: // calloc
			count := int32(rng.Intn(16))
			size := int32(rng.Intn(64))
			p, _, cErr := a.Calloc(count, size)
			if cErr != nil {
				return fmt.Errorf("op %d: calloc %dx%d: %w", i, count, size, cErr)
			}
			live = append(live, p)
		}

		if stressCheckEvery > 0 && (i+1)%stressCheckEvery == 0 {
			if cErr := a.Check(); cErr != nil {
				logger.Error("invariant check failed",
					zap.Int("op", i),
					zap.Error(cErr),
				)
				return cErr
			}
			if verbose {
				logger.Debug("checkpoint",
					zap.Int("op", i+1),
					zap.Int("live", len(live)),
					zap.Int32("arena_bytes", a.Arena().Size()),
				)
			}
		}
	}

	if err := a.Check(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	logger.Info("stress run complete",
		zap.Int("ops", stressOps),
		zap.Int("live", len(live)),
		zap.Int32("arena_bytes", a.Arena().Size()),
		zap.Duration("elapsed", elapsed),
	)

	result := stressResult{
		Strategy:  stressStrategy,
		Ops:       stressOps,
		Seed:      stressSeed,
		Live:      len(live),
		ArenaSize: a.Arena().Size(),
		Elapsed:   elapsed.String(),
		Stats:     a.Stats(),
	}
	if jsonOut {
		return printJSON(result)
	}
	s := result.Stats
	printInfo("strategy=%s ops=%d live=%d arena=%dB\n", result.Strategy, result.Ops, result.Live, result.ArenaSize)
	printInfo("malloc=%d free=%d realloc=%d calloc=%d\n", s.MallocCalls, s.FreeCalls, s.ReallocCalls, s.CallocCalls)
	printInfo("extends=%d (%dB) splits=%d merges=%d\n", s.ExtendCalls, s.ExtendBytes, s.SplitCount, s.MergeCount)
	return nil
}

// newLogger builds the run logger: human-readable by default, JSON when
// --json is set.
func newLogger() (*zap.Logger, error) {
	if jsonOut {
		return zap.NewProduction()
	}
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
