package cmd

import (
	"fmt"
	"io"
	"os"
)

// Status glyphs used at the start of every report line.
const (
	iconOK   = "✓"
	iconErr  = "✗"
	iconWarn = "⚠"
	iconSkip = "○" // not part of this run
	iconMiss = "-" // name or file not found
	iconInfo = "~"
)

// printLine writes "  <icon>  [name] msg", leaving out the brackets when
// name is empty.
func printLine(w io.Writer, icon, name, msg string) {
	if name != "" {
		msg = "[" + name + "] " + msg
	}
	fmt.Fprintf(w, "  %s  %s\n", icon, msg)
}

func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

// printBullet opens a group of lines under the current section.
func printBullet(title string) {
	fmt.Printf("\n● %s\n", title)
}

func printOK(name, msg string) { printLine(os.Stdout, iconOK, name, msg) }

// printErr goes to stderr so piped output stays clean.
func printErr(name, msg string) { printLine(os.Stderr, iconErr, name, msg) }

func printWarn(name, msg string) { printLine(os.Stdout, iconWarn, name, msg) }

func printSkip(name, msg string) { printLine(os.Stdout, iconSkip, name, msg) }

func printMiss(name, msg string) { printLine(os.Stdout, iconMiss, name, msg) }

func printInfo(name, msg string) { printLine(os.Stdout, iconInfo, name, msg) }

// emptyAsNA renders unset values in reports.
func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
