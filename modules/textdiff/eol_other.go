//go:build !windows

package textdiff

// platformEOL is the line ending used for synthesized output lines.
const platformEOL = "\n"
