// Package term detects terminal capabilities for the tools: whether the
// standard streams are terminals and how much color they support.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

type ColorMode int

const (
	NoColor ColorMode = iota
	Has256Color
	HasTrueColor
)

var (
	StderrMode ColorMode
	StdoutMode ColorMode
)

func detectTermColorMode() ColorMode {
	if v, ok := os.LookupEnv("NO_COLOR"); ok && v != "" {
		return NoColor
	}
	if _, ok := os.LookupEnv("WT_SESSION"); ok {
		return HasTrueColor
	}
	colorTermEnv := os.Getenv("COLORTERM")
	termEnv := os.Getenv("TERM")
	if strings.Contains(termEnv, "24bit") ||
		strings.Contains(termEnv, "truecolor") ||
		strings.Contains(colorTermEnv, "24bit") ||
		strings.Contains(colorTermEnv, "truecolor") {
		return HasTrueColor
	}
	if strings.Contains(termEnv, "256") || strings.Contains(colorTermEnv, "256") {
		return Has256Color
	}
	if termEnv == "" || termEnv == "dumb" {
		return NoColor
	}
	return Has256Color
}

func init() {
	colorMode := detectTermColorMode()
	if IsTerminal(os.Stderr.Fd()) {
		StderrMode = colorMode
	}
	if IsTerminal(os.Stdout.Fd()) {
		StdoutMode = colorMode
	}
}

func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd)) || isatty.IsCygwinTerminal(fd)
}
