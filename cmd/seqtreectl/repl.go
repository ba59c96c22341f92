package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"segtree"
)

// repl wraps a live Tree[int] plus the terminal it reads commands from,
// scanning a line and dispatching on its first token.
type repl struct {
	scanner *bufio.Scanner
	tree    *segtree.Tree[int]
}

func runRepl() {
	tree, err := segtree.New[int](segtree.Config[int]{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	r := &repl{scanner: bufio.NewScanner(os.Stdin), tree: tree}
	r.printHelp()
	r.printPrompt()
	for r.scanner.Scan() {
		r.dispatch(r.scanner.Text())
		r.printPrompt()
	}
}

func (r *repl) printHelp() {
	fmt.Print(`
segtree REPL

Available commands:
  pushback <v>       append v
  pushfront <v>       prepend v
  insert <p> <v>     insert v before position p
  erase <p>          erase the element at position p
  at <p>             print the element at position p
  len                print the current length
  height             print the current tree height
  check              validate structural invariants
  dump               print the tree's shape
  help               print this message
  exit               quit
`)
}

func (r *repl) printPrompt() {
	fmt.Print("> ")
}

func (r *repl) dispatch(line string) {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]
	switch cmd {
	case "pushback":
		r.cmdPush(args, r.tree.PushBack)
	case "pushfront":
		r.cmdPush(args, r.tree.PushFront)
	case "insert":
		r.cmdInsert(args)
	case "erase":
		r.cmdErase(args)
	case "at":
		r.cmdAt(args)
	case "len":
		fmt.Println(r.tree.Len())
	case "height":
		fmt.Println(r.tree.Height())
	case "check":
		r.cmdCheck()
	case "dump":
		fmt.Print(colorizeDump(r.tree.DebugDump()))
	case "help":
		r.printHelp()
	case "exit", "quit":
		os.Exit(0)
	default:
		fmt.Printf("unknown command %q (try \"help\")\n", cmd)
	}
}

func (r *repl) cmdPush(args []string, push func(int) error) {
	if len(args) != 1 {
		fmt.Println("usage: pushback|pushfront <v>")
		return
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("value must be an integer")
		return
	}
	if err := push(v); err != nil {
		fmt.Println(err)
	}
}

func (r *repl) cmdInsert(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: insert <p> <v>")
		return
	}
	p, errP := strconv.Atoi(args[0])
	v, errV := strconv.Atoi(args[1])
	if errP != nil || errV != nil {
		fmt.Println("position and value must be integers")
		return
	}
	if err := r.tree.Insert(p, v); err != nil {
		fmt.Println(err)
	}
}

func (r *repl) cmdErase(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: erase <p>")
		return
	}
	p, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("position must be an integer")
		return
	}
	v, err := r.tree.Erase(p)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v)
}

func (r *repl) cmdAt(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: at <p>")
		return
	}
	p, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("position must be an integer")
		return
	}
	func() {
		defer func() {
			if recover() != nil {
				fmt.Println(segtree.ErrOutOfRange)
			}
		}()
		fmt.Println(r.tree.At(p))
	}()
}

func (r *repl) cmdCheck() {
	if err := r.tree.Check(); err != nil {
		color.New(color.FgRed).Printf("invalid: %v\n", err)
		return
	}
	color.New(color.FgGreen).Println("ok")
}
