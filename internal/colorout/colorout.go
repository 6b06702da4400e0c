// Package colorout provides colored terminal output helpers.
//
// The leveled helpers (Error, Warning, Progress, ...) write to stderr
// with a fixed prefix and color; the generic helpers take a
// case-insensitive color name, where "default" or an unknown name
// means no colorization. Color and face are always reset at the end of
// each message, and coloring is disabled automatically when the target
// is not a terminal.
package colorout

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	red      = color.New(color.FgRed)
	boldRed  = color.New(color.FgRed, color.Bold)
	yellow   = color.New(color.FgYellow)
	green    = color.New(color.FgGreen)
	boldBlue = color.New(color.FgBlue, color.Bold)
	bold     = color.New(color.Bold)

	colorNames = map[string]*color.Color{
		"black":   color.New(color.FgBlack),
		"red":     red,
		"green":   green,
		"yellow":  yellow,
		"blue":    color.New(color.FgBlue),
		"magenta": color.New(color.FgMagenta),
		"cyan":    color.New(color.FgCyan),
		"white":   color.New(color.FgWhite),
	}
)

// Error prints an error to stderr in red.
func Error(format string, args ...any) {
	red.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// FatalError prints a fatal error to stderr in bold red.
func FatalError(format string, args ...any) {
	boldRed.Fprintf(os.Stderr, "fatal error: "+format+"\n", args...)
}

// Warning prints a warning to stderr in yellow.
func Warning(format string, args ...any) {
	yellow.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// Command prints a command line about to run to stderr in bold blue.
func Command(cmd string) {
	boldBlue.Fprintln(os.Stderr, cmd)
}

// Progress prints a progress message to stderr in green.
func Progress(format string, args ...any) {
	green.Fprintf(os.Stderr, format+"\n", args...)
}

// Fprintln prints msg to w in the named color, followed by a newline.
func Fprintln(w io.Writer, name, msg string) {
	lookup(name).Fprintln(w, msg)
}

// Fprint prints msg to w in the named color, without a newline.
func Fprint(w io.Writer, name, msg string) {
	lookup(name).Fprint(w, msg)
}

// Bold prints msg to w in bold, followed by a newline.
func Bold(w io.Writer, msg string) {
	bold.Fprintln(w, msg)
}

// lookup resolves a color name; "default" and unknown names produce
// uncolored output.
func lookup(name string) *color.Color {
	if c, ok := colorNames[strings.ToLower(name)]; ok {
		return c
	}
	if !strings.EqualFold(name, "default") {
		fmt.Fprintf(os.Stderr, "warning: undefined color %q\n", name)
	}
	return color.New()
}
