package textdiff

import "context"

// Diff computes the two-way diff between the original and modified
// sources. The returned segments alternate between Common and
// DiffModified and cover both sources completely.
func Diff(ctx context.Context, src TokenSource) ([]*Segment, error) {
	index := &tokenIndex{src: src}
	rings, prefix, suffix, err := getAllTokens(index, []Source{SourceOriginal, SourceModified})
	if err != nil {
		return nil, err
	}
	if d, ok := src.(TokenDiscarder); ok {
		d.DiscardAll()
	}
	l, err := computeLCS(ctx, rings[0], rings[1], prefix)
	if err != nil {
		return nil, err
	}
	lenO := ringLength(rings[0], prefix, suffix)
	lenM := ringLength(rings[1], prefix, suffix)
	return assembleTwoWay(ctx, l, prefix, suffix, lenO, lenM)
}

// assembleTwoWay turns one LCS into the segment list, wrapping it in
// Common segments for any trimmed prefix and suffix.
func assembleTwoWay(ctx context.Context, l *lcs, prefix, suffix, lenO, lenM int) ([]*Segment, error) {
	segs := make([]*Segment, 0, 8)
	if prefix > 0 {
		segs = append(segs, &Segment{
			Kind:     Common,
			Original: Range{0, prefix},
			Modified: Range{0, prefix},
		})
	}
	originalStart := prefix + 1
	modifiedStart := prefix + 1
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if originalStart < l.positions[0].offset || modifiedStart < l.positions[1].offset {
			segs = append(segs, &Segment{
				Kind:     DiffModified,
				Original: Range{originalStart - 1, l.positions[0].offset - originalStart},
				Modified: Range{modifiedStart - 1, l.positions[1].offset - modifiedStart},
			})
		}
		if l.length == 0 {
			break
		}
		originalStart = l.positions[0].offset
		modifiedStart = l.positions[1].offset
		segs = append(segs, &Segment{
			Kind:     Common,
			Original: Range{originalStart - 1, l.length},
			Modified: Range{modifiedStart - 1, l.length},
		})
		originalStart += l.length
		modifiedStart += l.length
		l = l.next
	}
	if suffix > 0 {
		segs = append(segs, &Segment{
			Kind:     Common,
			Original: Range{lenO - suffix, suffix},
			Modified: Range{lenM - suffix, suffix},
		})
	}
	return segs, nil
}
