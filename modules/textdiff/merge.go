package textdiff

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

// MergeStyle selects how the merge renderer displays conflict regions.
type MergeStyle int

const (
	// MergeStyleModifiedLatest shows the modified and latest sides of a
	// conflict between markers. The default.
	MergeStyleModifiedLatest MergeStyle = iota
	// MergeStyleResolvedModifiedLatest renders the conflict's resolved
	// refinement so only genuinely conflicting pieces carry markers.
	MergeStyleResolvedModifiedLatest
	// MergeStyleModifiedOriginalLatest also shows the original text
	// between the two sides.
	MergeStyleModifiedOriginalLatest
	// MergeStyleModified takes the modified side of conflicts, no markers.
	MergeStyleModified
	// MergeStyleLatest takes the latest side of conflicts, no markers.
	MergeStyleLatest
	// MergeStyleOnlyConflicts shows nothing but hunk headers and conflict
	// blocks.
	MergeStyleOnlyConflicts
)

var mergeStyleNames = map[string]MergeStyle{
	"modified-latest":          MergeStyleModifiedLatest,
	"resolved-modified-latest": MergeStyleResolvedModifiedLatest,
	"modified-original-latest": MergeStyleModifiedOriginalLatest,
	"modified":                 MergeStyleModified,
	"latest":                   MergeStyleLatest,
	"only-conflicts":           MergeStyleOnlyConflicts,
}

// ParseMergeStyle resolves a conflict style name.
func ParseMergeStyle(name string) (MergeStyle, error) {
	if style, ok := mergeStyleNames[name]; ok {
		return style, nil
	}
	return 0, fmt.Errorf("%w: unknown conflict style %q", ErrInvalidOption, name)
}

// Conflict marker bodies.
const (
	markerModified  = "<<<<<<<"
	markerOriginal  = "|||||||"
	markerSeparator = "======="
	markerLatest    = ">>>>>>>"
)

// MergeOptions configure the merge renderer.
type MergeOptions struct {
	Style MergeStyle

	// Marker lines without trailing EOL. Empty markers default to the
	// bare conventional strings; FileOutputMerge labels them with the
	// file paths.
	ConflictModified  string
	ConflictOriginal  string
	ConflictSeparator string
	ConflictLatest    string

	// EOL overrides the marker line ending. When empty it is detected
	// from the modified source's first line ending, falling back to the
	// platform EOL; with RequireSourceEOL set the fallback becomes
	// ErrUnknownEOL instead.
	EOL              string
	RequireSourceEOL bool
}

func markerOr(configured, marker, label string) string {
	if configured != "" {
		return configured
	}
	if label == "" {
		return marker
	}
	return marker + " " + label
}

// detectEOL returns the first line ending found in buf. A CR as the very
// last byte counts as a CR-only file.
func detectEOL(buf []byte) string {
	if i := findEOLStart(buf); i >= 0 {
		if buf[i] == '\n' {
			return "\n"
		}
		if i+1 == len(buf) || buf[i+1] != '\n' {
			return "\r"
		}
		return "\r\n"
	}
	return ""
}

type mergeWriter struct {
	ctx     context.Context
	out     io.Writer
	sources [3][]byte

	cursor      [3]int
	currentLine [3]int

	style MergeStyle
	eol   string

	conflictModified  string
	conflictOriginal  string
	conflictSeparator string
	conflictLatest    string
}

// nextLineEnd returns the end of the line starting at off, terminator
// included.
func nextLineEnd(buf []byte, off int) int {
	rel := findEOLStart(buf[off:])
	if rel < 0 {
		return len(buf)
	}
	end := off + rel
	if buf[end] == '\r' && end+1 < len(buf) && buf[end+1] == '\n' {
		end++
	}
	return end + 1
}

func (m *mergeWriter) outputLines(idx int, write bool, target int) error {
	for m.currentLine[idx] < target {
		m.currentLine[idx]++
		if m.cursor[idx] >= len(m.sources[idx]) {
			continue
		}
		end := nextLineEnd(m.sources[idx], m.cursor[idx])
		if write {
			if _, err := m.out.Write(m.sources[idx][m.cursor[idx]:end]); err != nil {
				return err
			}
		}
		m.cursor[idx] = end
	}
	return nil
}

// outputHunk skips to the start of r in source idx, then emits its lines.
func (m *mergeWriter) outputHunk(idx int, r Range, write bool) error {
	if err := m.outputLines(idx, false, r.Start); err != nil {
		return err
	}
	return m.outputLines(idx, write, r.End())
}

func (m *mergeWriter) writeMarker(marker string) error {
	if _, err := io.WriteString(m.out, marker); err != nil {
		return err
	}
	_, err := io.WriteString(m.out, m.eol)
	return err
}

func (m *mergeWriter) Common(seg *Segment) error {
	return m.outputHunk(1, seg.Modified, m.style != MergeStyleOnlyConflicts)
}

func (m *mergeWriter) DiffModified(seg *Segment) error {
	return m.outputHunk(1, seg.Modified, m.style != MergeStyleOnlyConflicts)
}

func (m *mergeWriter) DiffLatest(seg *Segment) error {
	return m.outputHunk(2, seg.Latest, m.style != MergeStyleOnlyConflicts)
}

func (m *mergeWriter) DiffCommon(seg *Segment) error {
	return m.outputHunk(2, seg.Latest, m.style != MergeStyleOnlyConflicts)
}

func (m *mergeWriter) Conflict(seg *Segment) error {
	switch m.style {
	case MergeStyleResolvedModifiedLatest:
		if seg.Resolved != nil {
			return Output(m.ctx, seg.Resolved, m)
		}
	case MergeStyleModified:
		return m.outputHunk(1, seg.Modified, true)
	case MergeStyleLatest:
		return m.outputHunk(2, seg.Latest, true)
	case MergeStyleOnlyConflicts:
		if err := m.writeHunkHeader(seg); err != nil {
			return err
		}
	}

	if err := m.writeMarker(m.conflictModified); err != nil {
		return err
	}
	if err := m.outputHunk(1, seg.Modified, true); err != nil {
		return err
	}
	if m.style == MergeStyleModifiedOriginalLatest {
		if err := m.writeMarker(m.conflictOriginal); err != nil {
			return err
		}
		if err := m.outputHunk(0, seg.Original, true); err != nil {
			return err
		}
	}
	if err := m.writeMarker(m.conflictSeparator); err != nil {
		return err
	}
	if err := m.outputHunk(2, seg.Latest, true); err != nil {
		return err
	}
	return m.writeMarker(m.conflictLatest)
}

// writeHunkHeader emits a unified-style header over the modified and
// latest ranges of a conflict.
func (m *mergeWriter) writeHunkHeader(seg *Segment) error {
	var header bytes.Buffer
	appendRange := func(sign byte, r Range) {
		start := r.Start
		if r.Length > 0 {
			start++
		}
		fmt.Fprintf(&header, " %c%d", sign, start)
		if r.Length != 1 {
			fmt.Fprintf(&header, ",%d", r.Length)
		}
	}
	header.WriteString("@@")
	appendRange('-', seg.Modified)
	appendRange('+', seg.Latest)
	header.WriteString(" @@")
	return m.writeMarker(header.String())
}

// OutputMerge renders a three-way diff as merged output with conflict
// markers, streaming verbatim bytes from the three sources.
func OutputMerge(ctx context.Context, w io.Writer, diff []*Segment,
	original, modified, latest []byte, opts *MergeOptions) error {
	if opts == nil {
		opts = &MergeOptions{}
	}
	eol := opts.EOL
	if eol == "" {
		if eol = detectEOL(modified); eol == "" {
			if opts.RequireSourceEOL {
				return fmt.Errorf("%w: modified source has no line ending", ErrUnknownEOL)
			}
			eol = platformEOL
		}
	}
	m := &mergeWriter{
		ctx:               ctx,
		out:               w,
		sources:           [3][]byte{original, modified, latest},
		style:             opts.Style,
		eol:               eol,
		conflictModified:  markerOr(opts.ConflictModified, markerModified, ""),
		conflictOriginal:  markerOr(opts.ConflictOriginal, markerOriginal, ""),
		conflictSeparator: markerOr(opts.ConflictSeparator, markerSeparator, ""),
		conflictLatest:    markerOr(opts.ConflictLatest, markerLatest, ""),
	}
	return Output(ctx, diff, m)
}

// FileOutputMerge renders a three-way file diff as merged output. Marker
// labels default to the file paths; larger files are memory-mapped where
// the platform allows.
func FileOutputMerge(ctx context.Context, w io.Writer, diff []*Segment,
	originalPath, modifiedPath, latestPath string, opts *MergeOptions) error {
	o := MergeOptions{}
	if opts != nil {
		o = *opts
	}
	o.ConflictModified = markerOr(o.ConflictModified, markerModified, modifiedPath)
	o.ConflictOriginal = markerOr(o.ConflictOriginal, markerOriginal, originalPath)
	o.ConflictSeparator = markerOr(o.ConflictSeparator, markerSeparator, "")
	o.ConflictLatest = markerOr(o.ConflictLatest, markerLatest, latestPath)

	var bufs [3][]byte
	for i, path := range []string{originalPath, modifiedPath, latestPath} {
		buf, done, err := mapOrReadFile(path)
		if err != nil {
			return err
		}
		defer done()
		bufs[i] = buf
	}
	return OutputMerge(ctx, w, diff, bufs[0], bufs[1], bufs[2], &o)
}
