// Command seqtreectl drives a segtree.Tree[int] interactively or through a
// handful of one-shot subcommands (check, dump, stress), for manual
// exploration and load testing of the container.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "seqtreectl",
		Short: "Interactively drive a segmented counted B+ tree sequence",
		Long: `seqtreectl builds a segtree.Tree[int] and lets you push, insert,
erase and inspect it, either through an interactive REPL (the default, no
subcommand) or through one-shot subcommands suited to scripting.`,
		Run: func(cmd *cobra.Command, args []string) {
			runRepl()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newCheckCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newStressCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
