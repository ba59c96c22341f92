package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"segtree"
)

func newCheckCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Build a tree of n pseudo-random inserts and validate its invariants",
		Run: func(cmd *cobra.Command, args []string) {
			tree := buildRandomTree(n)
			if err := tree.Check(); err != nil {
				color.New(color.FgRed).Fprintf(os.Stderr, "invalid: %v\n", err)
				os.Exit(1)
			}
			color.New(color.FgGreen).Printf("ok: %d elements, height %d, %d segments\n",
				tree.Len(), tree.Height(), tree.SegmentCount())
		},
	}
	cmd.Flags().IntVar(&n, "n", 1000, "number of positional inserts to perform")
	return cmd
}

func buildRandomTree(n int) *segtree.Tree[int] {
	tree, err := segtree.New[int](segtree.Config[int]{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < n; i++ {
		p := rng.Intn(tree.Len() + 1)
		if err := tree.Insert(p, rng.Int()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	return tree
}
