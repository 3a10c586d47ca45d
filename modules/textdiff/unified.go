package textdiff

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/slatescm/diffmerge/modules/textdiff/color"
)

// DefaultContextLines is the number of unchanged lines of surrounding
// context included in unified diff hunks.
const DefaultContextLines = 3

const noNewlineMarker = `\ No newline at end of file`

// UnifiedOptions configure the unified diff renderer.
type UnifiedOptions struct {
	// OriginalHeader and ModifiedHeader are the labels after --- and
	// +++. Empty headers default to "path<TAB>mtime" in
	// FileOutputUnified; OutputUnified writes them as given, so an empty
	// header leaves the label blank.
	OriginalHeader string
	ModifiedHeader string
	// HeaderEOL terminates synthesized lines (headers, hunk headers and
	// the no-newline marker). Defaults to the platform line ending.
	// Token bytes are never rewritten.
	HeaderEOL string
	// Context is the context radius; DefaultContextLines when zero.
	Context int
	// Color enables ANSI coloring of the produced diff.
	Color color.ColorConfig
}

func (o *UnifiedOptions) headerEOL() string {
	if o == nil || o.HeaderEOL == "" {
		return platformEOL
	}
	return o.HeaderEOL
}

func (o *UnifiedOptions) context() int {
	if o == nil || o.Context <= 0 {
		return DefaultContextLines
	}
	return o.Context
}

// lineReader hands out one line at a time, terminator included, without
// ever splitting a CRLF pair.
type lineReader struct {
	br *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReaderSize(r, compareChunkSize)}
}

func (r *lineReader) atEOF() bool {
	_, err := r.br.Peek(1)
	return err == io.EOF
}

// next appends the next line to dst (pass nil to skip it) and reports
// whether a line was available and whether it carried a terminator.
func (r *lineReader) next(dst *bytes.Buffer) (ok, terminated bool, err error) {
	for {
		b, err := r.br.ReadByte()
		if err == io.EOF {
			return ok, false, nil
		}
		if err != nil {
			return false, false, err
		}
		ok = true
		if dst != nil {
			dst.WriteByte(b)
		}
		switch b {
		case '\n':
			return true, true, nil
		case '\r':
			nb, err := r.br.ReadByte()
			if err == io.EOF {
				return true, true, nil
			}
			if err != nil {
				return false, false, err
			}
			if nb == '\n' {
				if dst != nil {
					dst.WriteByte(nb)
				}
				return true, true, nil
			}
			_ = r.br.UnreadByte()
			return true, true, nil
		}
	}
}

type unifiedLineType int8

const (
	unifiedSkip unifiedLineType = iota
	unifiedContext
	unifiedDelete
	unifiedInsert
)

type unifiedWriter struct {
	BaseSink

	out     io.Writer
	opts    *UnifiedOptions
	context int
	eol     string

	readers     [2]*lineReader
	currentLine [2]int

	hunkStart  [2]int
	hunkLength [2]int
	hunk       bytes.Buffer
	lineBuf    bytes.Buffer
}

func (u *unifiedWriter) colorKey(typ unifiedLineType) color.ColorKey {
	switch typ {
	case unifiedDelete:
		return color.Old
	case unifiedInsert:
		return color.New
	default:
		return color.Context
	}
}

// outputLine consumes the next line of side idx. The current line number
// advances lazily even at EOF so trailing context at the end of a file is
// faked correctly.
func (u *unifiedWriter) outputLine(typ unifiedLineType, idx int) error {
	u.currentLine[idx]++
	if u.readers[idx].atEOF() {
		return nil
	}

	u.lineBuf.Reset()
	dst := &u.lineBuf
	if typ == unifiedSkip {
		dst = nil
	}
	ok, terminated, err := u.readers[idx].next(dst)
	if err != nil {
		return err
	}
	if !ok || typ == unifiedSkip {
		return nil
	}

	var prefix byte
	switch typ {
	case unifiedContext:
		prefix = ' '
		u.hunkLength[0]++
		u.hunkLength[1]++
	case unifiedDelete:
		prefix = '-'
		u.hunkLength[0]++
	case unifiedInsert:
		prefix = '+'
		u.hunkLength[1]++
	}

	line := u.lineBuf.Bytes()
	if key := u.colorKey(typ); u.opts.Color.Code(key) != "" {
		body, term := splitTerminator(line)
		u.hunk.WriteString(u.opts.Color.Code(key))
		u.hunk.WriteByte(prefix)
		u.hunk.Write(body)
		u.hunk.WriteString(u.opts.Color.Reset(key))
		u.hunk.Write(term)
	} else {
		u.hunk.WriteByte(prefix)
		u.hunk.Write(line)
	}
	if !terminated {
		u.hunk.WriteString(u.eol)
		u.hunk.WriteString(noNewlineMarker)
		u.hunk.WriteString(u.eol)
	}
	return nil
}

func splitTerminator(line []byte) (body, term []byte) {
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	if n > 0 && line[n-1] == '\r' {
		n--
	}
	return line[:n], line[n:]
}

func (u *unifiedWriter) flushHunk() error {
	if u.hunk.Len() == 0 {
		return nil
	}

	// Trailing context.
	target := u.hunkStart[0] + u.hunkLength[0] + u.context
	for u.currentLine[0] < target {
		if err := u.outputLine(unifiedContext, 0); err != nil {
			return err
		}
	}

	// 0-based to 1-based, except for an empty side which stays at 0.
	for i := 0; i < 2; i++ {
		if u.hunkLength[i] > 0 {
			u.hunkStart[i]++
		}
	}

	var header bytes.Buffer
	fmt.Fprintf(&header, "@@ -%d", u.hunkStart[0])
	if u.hunkLength[0] != 1 {
		fmt.Fprintf(&header, ",%d", u.hunkLength[0])
	}
	fmt.Fprintf(&header, " +%d", u.hunkStart[1])
	if u.hunkLength[1] != 1 {
		fmt.Fprintf(&header, ",%d", u.hunkLength[1])
	}
	header.WriteString(" @@")
	if err := u.writeColored(color.Frag, header.String()); err != nil {
		return err
	}
	if _, err := u.out.Write(u.hunk.Bytes()); err != nil {
		return err
	}

	u.hunkLength[0] = 0
	u.hunkLength[1] = 0
	u.hunk.Reset()
	return nil
}

func (u *unifiedWriter) writeColored(key color.ColorKey, line string) error {
	_, err := fmt.Fprintf(u.out, "%s%s%s%s",
		u.opts.Color.Code(key), line, u.opts.Color.Reset(key), u.eol)
	return err
}

func (u *unifiedWriter) DiffModified(seg *Segment) error {
	targetOrig := max(seg.Original.Start-u.context, 0)
	targetMod := seg.Modified.Start

	// Start a new hunk when the changed ranges are too far apart for
	// their context windows to touch, or when this is the first hunk.
	if u.currentLine[0] < targetOrig &&
		(u.hunkStart[0]+u.hunkLength[0]+u.context < targetOrig || u.hunk.Len() == 0) {
		if err := u.flushHunk(); err != nil {
			return err
		}
		u.hunkStart[0] = targetOrig
		u.hunkStart[1] = targetMod + targetOrig - seg.Original.Start
		for u.currentLine[0] < targetOrig {
			if err := u.outputLine(unifiedSkip, 0); err != nil {
				return err
			}
		}
	}
	for u.currentLine[1] < targetMod {
		if err := u.outputLine(unifiedSkip, 1); err != nil {
			return err
		}
	}
	for u.currentLine[0] < seg.Original.Start {
		if err := u.outputLine(unifiedContext, 0); err != nil {
			return err
		}
	}
	for u.currentLine[0] < seg.Original.End() {
		if err := u.outputLine(unifiedDelete, 0); err != nil {
			return err
		}
	}
	for u.currentLine[1] < seg.Modified.End() {
		if err := u.outputLine(unifiedInsert, 1); err != nil {
			return err
		}
	}
	return nil
}

// OutputUnified renders a two-way diff as a unified context diff, reading
// the verbatim token bytes back from the original and modified streams.
// Nothing is written when the diff contains no differences.
func OutputUnified(ctx context.Context, w io.Writer, diff []*Segment,
	original, modified io.Reader, opts *UnifiedOptions) error {
	if !ContainsDiffs(diff) {
		return nil
	}
	if opts == nil {
		opts = &UnifiedOptions{}
	}
	u := &unifiedWriter{
		out:     w,
		opts:    opts,
		context: opts.context(),
		eol:     opts.headerEOL(),
	}
	u.readers[0] = newLineReader(original)
	u.readers[1] = newLineReader(modified)

	if err := u.writeColored(color.Meta, "--- "+opts.OriginalHeader); err != nil {
		return err
	}
	if err := u.writeColored(color.Meta, "+++ "+opts.ModifiedHeader); err != nil {
		return err
	}
	if err := Output(ctx, diff, u); err != nil {
		return err
	}
	return u.flushHunk()
}

// defaultHeader is the label used when the caller supplies none: the path,
// a tab, and the file's modification time.
func defaultHeader(path string) (string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\t%s", path,
		st.ModTime().Format(time.ANSIC)), nil
}

// FileOutputUnified renders a two-way file diff as a unified context diff.
func FileOutputUnified(ctx context.Context, w io.Writer, diff []*Segment,
	originalPath, modifiedPath string, opts *UnifiedOptions) error {
	if !ContainsDiffs(diff) {
		return nil
	}
	o := UnifiedOptions{}
	if opts != nil {
		o = *opts
	}
	var err error
	if o.OriginalHeader == "" {
		if o.OriginalHeader, err = defaultHeader(originalPath); err != nil {
			return err
		}
	}
	if o.ModifiedHeader == "" {
		if o.ModifiedHeader, err = defaultHeader(modifiedPath); err != nil {
			return err
		}
	}
	original, err := os.Open(originalPath)
	if err != nil {
		return err
	}
	defer func() { _ = original.Close() }()
	modified, err := os.Open(modifiedPath)
	if err != nil {
		return err
	}
	defer func() { _ = modified.Close() }()
	return OutputUnified(ctx, w, diff, original, modified, &o)
}
