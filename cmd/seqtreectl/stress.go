package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/guiguan/caster"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"segtree"
)

// progress is broadcast from the stress loop to whatever is subscribed to
// the run's caster.Caster.
type progress struct {
	ops, total int
	checked    bool
}

func newStressCmd() *cobra.Command {
	var n, checkEvery int
	var failEvery int
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a long randomized mix of inserts/erases against a reference slice",
		Run: func(cmd *cobra.Command, args []string) {
			runStress(n, checkEvery, failEvery)
		},
	}
	cmd.Flags().IntVar(&n, "n", 200000, "number of randomized operations to run")
	cmd.Flags().IntVar(&checkEvery, "check-every", 5000, "run Check() every this many operations")
	cmd.Flags().IntVar(&failEvery, "fail-every", 0, "make the allocator fail one call in n on average (0 disables)")
	return cmd
}

func runStress(n, checkEvery, failEvery int) {
	cfg := segtree.Config[int]{}
	if failEvery > 0 {
		cfg.Allocator = segtree.NewFaultInjectingAllocator[int](failEvery)
	}
	tree, err := segtree.New[int](cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cast := caster.New(nil)
	defer cast.Close()
	done := make(chan struct{})
	go reportProgress(cast, done)

	printer := message.NewPrinter(language.English)
	start := time.Now()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ref := make([]int, 0, n)

	for i := 0; i < n; i++ {
		op := 0
		if len(ref) > 0 {
			op = rng.Intn(2)
		}
		switch op {
		case 0:
			p := rng.Intn(len(ref) + 1)
			v := rng.Int()
			ref = append(ref, 0)
			copy(ref[p+1:], ref[p:])
			ref[p] = v
			insertRetrying(tree, p, v)
		default:
			p := rng.Intn(len(ref))
			ref = append(ref[:p], ref[p+1:]...)
			if _, err := tree.Erase(p); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}

		checked := false
		if checkEvery > 0 && i%checkEvery == 0 {
			if err := tree.Check(); err != nil {
				fmt.Fprintf(os.Stderr, "invariant violated at op %d: %v\n%s", i, err, tree.DebugDump())
				os.Exit(1)
			}
			checked = true
		}
		cast.Pub(progress{ops: i + 1, total: n, checked: checked})
	}
	close(done)

	elapsed := time.Since(start)
	printer.Printf("completed %d operations in %v (%.0f ops/s), final length %d, height %d\n",
		n, elapsed, float64(n)/elapsed.Seconds(), tree.Len(), tree.Height())
}

func insertRetrying(tree *segtree.Tree[int], p, v int) {
	for {
		if err := tree.Insert(p, v); err == nil {
			return
		}
	}
}

func reportProgress(cast *caster.Caster, done <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, ok := cast.Sub(ctx, 0)
	if !ok {
		return
	}
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	var last progress
	for {
		select {
		case <-done:
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			if p, ok := m.(progress); ok {
				last = p
			}
		case <-ticker.C:
			if last.total > 0 {
				fmt.Printf("progress: %d/%d\n", last.ops, last.total)
			}
		}
	}
}
