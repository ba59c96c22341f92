package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Build a tree of n pseudo-random inserts and print its shape",
		Run: func(cmd *cobra.Command, args []string) {
			tree := buildRandomTree(n)
			fmt.Print(colorizeDump(tree.DebugDump()))
		},
	}
	cmd.Flags().IntVar(&n, "n", 50, "number of positional inserts to perform")
	return cmd
}
