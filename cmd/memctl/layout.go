package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/heap/alloc"
	"github.com/joshuapare/memkit/internal/format"
)

var layoutStrategy string

func init() {
	cmd := newLayoutCmd()
	cmd.Flags().StringVar(&layoutStrategy, "strategy", "explicit", "Free-space strategy (implicit or explicit)")
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Render the block layout of a scripted allocation scenario",
		Long: `The layout command runs a short scripted malloc/free sequence and
prints the arena's block map after each step, making split and coalesce
behavior visible.

Example:
  memctl layout --strategy implicit
  memctl layout --strategy explicit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout()
		},
	}
}

func runLayout() error {
	a, err := makeAllocator(layoutStrategy, 1<<20, false)
	if err != nil {
		return err
	}

	var p1, p2, p3 alloc.Ptr
	steps := []struct {
		label string
		run   func() error
	}{
		{"malloc(100) -> p1", func() error { var e error; p1, _, e = a.Malloc(100); return e }},
		{"malloc(100) -> p2", func() error { var e error; p2, _, e = a.Malloc(100); return e }},
		{"free(p1)", func() error { return a.Free(p1) }},
		{"malloc(50)  -> p3", func() error { var e error; p3, _, e = a.Malloc(50); return e }},
		{"free(p2)", func() error { return a.Free(p2) }},
		{"free(p3)", func() error { return a.Free(p3) }},
		{"malloc(400)", func() error { _, _, e := a.Malloc(400); return e }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("%s: %w", step.label, err)
		}
		printInfo("== %s\n", step.label)
		if err := printBlockMap(a); err != nil {
			return err
		}
	}
	return a.Check()
}

// printBlockMap walks the arena and renders one row per block.
func printBlockMap(a alloc.Allocator) error {
	arena := a.Arena()
	data := arena.Bytes()

	printInfo("   %-10s %-10s %-9s %s\n", "offset", "size", "state", "span")
	off := arena.First()
	for off != heap.NoBlock {
		h := format.ReadHeader(data, off)
		state := "free"
		if h.Allocated {
			state = "alloc"
		}
		bar := strings.Repeat("#", int(h.Size)/16)
		if len(bar) > 48 {
			bar = bar[:48] + "..."
		}
		printInfo("   0x%08X %-10d %-9s %s\n", off, h.Size, state, bar)
		if off == arena.Last() {
			break
		}
		off += h.Size
	}
	printInfo("   arena: %d bytes in %d extension(s)\n\n", arena.Size(), a.Stats().ExtendCalls)
	return nil
}
