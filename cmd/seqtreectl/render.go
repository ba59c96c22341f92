package main

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// colorizeDump highlights the "segment" and "branch"/"leaf" lines of a
// Tree.DebugDump report and wraps rows to the terminal width, derived from
// term.GetSize.
func colorizeDump(dump string) string {
	width := terminalWidth()
	segColor := color.New(color.FgCyan)
	nodeColor := color.New(color.FgYellow)

	var b strings.Builder
	for _, line := range strings.Split(dump, "\n") {
		line = wrapLine(line, width)
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "segment"):
			b.WriteString(segColor.Sprintln(line))
		case strings.HasPrefix(trimmed, "leaf"), strings.HasPrefix(trimmed, "branch"):
			b.WriteString(nodeColor.Sprintln(line))
		default:
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func terminalWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return 80
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func wrapLine(line string, width int) string {
	if width <= 0 || len(line) <= width {
		return line
	}
	var b strings.Builder
	for len(line) > width {
		b.WriteString(line[:width])
		b.WriteString("\n")
		line = line[width:]
	}
	b.WriteString(line)
	return b.String()
}
