package textdiff

import "context"

// Diff4 computes a three-way diff of original, modified and latest that is
// pre-aligned with an extra ancestor of the modified source. Conflicts
// whose modified range is unchanged relative to the ancestor are demoted
// to DiffLatest: the modified side merely inherited those tokens, it did
// not edit them, so the latest side's change wins.
func Diff4(ctx context.Context, src TokenSource) ([]*Segment, error) {
	index := &tokenIndex{src: src}
	rings, prefix, suffix, err := getAllTokens(index,
		[]Source{SourceOriginal, SourceModified, SourceLatest, SourceAncestor})
	if err != nil {
		return nil, err
	}
	if d, ok := src.(TokenDiscarder); ok {
		d.DiscardAll()
	}
	lcsOM, err := computeLCS(ctx, rings[0], rings[1], prefix)
	if err != nil {
		return nil, err
	}
	lcsOL, err := computeLCS(ctx, rings[0], rings[2], prefix)
	if err != nil {
		return nil, err
	}
	lcsAM, err := computeLCS(ctx, rings[3], rings[1], prefix)
	if err != nil {
		return nil, err
	}
	lengths := [3]int{
		ringLength(rings[0], prefix, suffix),
		ringLength(rings[1], prefix, suffix),
		ringLength(rings[2], prefix, suffix),
	}
	segs, err := assembleThreeWay(ctx, lcsOM, lcsOL, rings[1], rings[2], prefix, suffix, lengths)
	if err != nil {
		return nil, err
	}
	for _, seg := range segs {
		if seg.Kind == Conflict && modifiedInheritsAncestor(lcsAM, seg.Modified) {
			seg.Kind = DiffLatest
			seg.Resolved = nil
		}
	}
	return segs, nil
}

// modifiedInheritsAncestor reports whether the modified range lies wholly
// inside one common run of the ancestor/modified LCS. Empty ranges are a
// deletion on the modified side and stay conflicting.
func modifiedInheritsAncestor(l *lcs, r Range) bool {
	if r.Length == 0 {
		return false
	}
	start := r.Start + 1
	end := r.Start + r.Length
	for ; l != nil && l.length > 0; l = l.next {
		runStart := l.positions[1].offset
		runEnd := runStart + l.length - 1
		if start >= runStart && end <= runEnd {
			return true
		}
		if runStart > start {
			return false
		}
	}
	return false
}
