package textdiff

import "context"

// Diff3 computes the three-way diff between the original, modified and
// latest sources. Two LCS lists are computed against the original in a
// shared token index, then walked in lockstep over original-side sync
// points. Conflicts carry a resolved refinement splitting them into
// diff-common and still-conflicting pieces.
func Diff3(ctx context.Context, src TokenSource) ([]*Segment, error) {
	index := &tokenIndex{src: src}
	rings, prefix, suffix, err := getAllTokens(index,
		[]Source{SourceOriginal, SourceModified, SourceLatest})
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
	lengths := [3]int{
		ringLength(rings[0], prefix, suffix),
		ringLength(rings[1], prefix, suffix),
		ringLength(rings[2], prefix, suffix),
	}
	return assembleThreeWay(ctx, lcsOM, lcsOL, rings[1], rings[2], prefix, suffix, lengths)
}

func assembleThreeWay(ctx context.Context, lcsOM, lcsOL *lcs, ringM, ringL *position,
	prefix, suffix int, lengths [3]int) ([]*Segment, error) {
	segs := make([]*Segment, 0, 8)
	if prefix > 0 {
		segs = append(segs, &Segment{
			Kind:     Common,
			Original: Range{0, prefix},
			Modified: Range{0, prefix},
			Latest:   Range{0, prefix},
		})
	}

	originalStart := prefix + 1
	modifiedStart := prefix + 1
	latestStart := prefix + 1

	// Break the rings open at their heads so the diff-common/conflict
	// probe can walk the modified and latest positions front to back.
	var sentinelNodes [2]node
	var sentinelM, sentinelL position
	sentinelM.node = &sentinelNodes[0]
	sentinelL.node = &sentinelNodes[1]
	var posM, posL *position
	if ringM != nil {
		sentinelM.next = ringM.next
		sentinelM.offset = ringM.offset + 1
		ringM.next = &sentinelM
		posM = sentinelM.next
	} else {
		sentinelM.offset = prefix + 1
		posM = &sentinelM
	}
	if ringL != nil {
		sentinelL.next = ringL.next
		sentinelL.offset = ringL.offset + 1
		ringL.next = &sentinelL
		posL = sentinelL.next
	} else {
		sentinelL.offset = prefix + 1
		posL = &sentinelL
	}
	defer func() {
		if ringM != nil {
			ringM.next = sentinelM.next
		}
		if ringL != nil {
			ringL.next = sentinelL.next
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Find the next original-side sync point: the nearer of the two
		// upcoming common runs, skipping LCS elements that end before it.
		// When the sync point is the EOF and the current element of the
		// other LCS stops exactly there without reaching its own EOF
		// alignment, that element must be skipped too.
		var originalSync int
		for {
			if lcsOM.positions[0].offset > lcsOL.positions[0].offset {
				originalSync = lcsOM.positions[0].offset
				for lcsOL.positions[0].offset+lcsOL.length < originalSync {
					lcsOL = lcsOL.next
				}
				if lcsOM.length == 0 && lcsOL.length > 0 &&
					lcsOL.positions[0].offset+lcsOL.length == originalSync &&
					lcsOL.positions[1].offset+lcsOL.length != lcsOL.next.positions[1].offset {
					lcsOL = lcsOL.next
				}
				if lcsOL.positions[0].offset <= originalSync {
					break
				}
			} else {
				originalSync = lcsOL.positions[0].offset
				for lcsOM.positions[0].offset+lcsOM.length < originalSync {
					lcsOM = lcsOM.next
				}
				if lcsOL.length == 0 && lcsOM.length > 0 &&
					lcsOM.positions[0].offset+lcsOM.length == originalSync &&
					lcsOM.positions[1].offset+lcsOM.length != lcsOM.next.positions[1].offset {
					lcsOM = lcsOM.next
				}
				if lcsOM.positions[0].offset <= originalSync {
					break
				}
			}
		}

		modifiedSync := lcsOM.positions[1].offset + (originalSync - lcsOM.positions[0].offset)
		latestSync := lcsOL.positions[1].offset + (originalSync - lcsOL.positions[0].offset)

		isModified := lcsOM.positions[0].offset-originalStart > 0 ||
			lcsOM.positions[1].offset-modifiedStart > 0
		isLatest := lcsOL.positions[0].offset-originalStart > 0 ||
			lcsOL.positions[1].offset-latestStart > 0

		if isModified || isLatest {
			originalLength := originalSync - originalStart
			modifiedLength := modifiedSync - modifiedStart
			latestLength := latestSync - latestStart

			var kind Kind
			var resolved []*Segment
			switch {
			case isModified && isLatest:
				kind = DiffCommon

				for posM.offset < modifiedStart {
					posM = posM.next
				}
				for posL.offset < latestStart {
					posL = posL.next
				}
				startM, startL := posM, posL

				commonLength := min(modifiedLength, latestLength)
				for commonLength > 0 && posM.node == posL.node {
					posM = posM.next
					posL = posL.next
					commonLength--
				}
				if modifiedLength != latestLength || commonLength > 0 {
					kind = Conflict
					var err error
					resolved, posM, posL, err = resolveConflict(ctx,
						startM, startL, posM, posL,
						originalStart, originalLength,
						modifiedLength, latestLength, commonLength)
					if err != nil {
						return nil, err
					}
				}
			case isModified:
				kind = DiffModified
			default:
				kind = DiffLatest
			}

			segs = append(segs, &Segment{
				Kind:     kind,
				Original: Range{originalStart - 1, originalLength},
				Modified: Range{modifiedStart - 1, modifiedLength},
				Latest:   Range{latestStart - 1, latestLength},
				Resolved: resolved,
			})
		}

		if lcsOM.length == 0 || lcsOL.length == 0 {
			break
		}

		modifiedLength := lcsOM.length - (originalSync - lcsOM.positions[0].offset)
		latestLength := lcsOL.length - (originalSync - lcsOL.positions[0].offset)
		commonLength := min(modifiedLength, latestLength)

		segs = append(segs, &Segment{
			Kind:     Common,
			Original: Range{originalSync - 1, commonLength},
			Modified: Range{modifiedSync - 1, commonLength},
			Latest:   Range{latestSync - 1, commonLength},
		})

		originalStart = originalSync + commonLength
		modifiedStart = modifiedSync + commonLength
		latestStart = latestSync + commonLength

		// Remember the common runs' start positions; the next probe
		// resumes from here instead of rescanning the whole rings.
		posM = lcsOM.positions[1]
		posL = lcsOL.positions[1]

		for originalStart >= lcsOM.positions[0].offset+lcsOM.length && lcsOM.length > 0 {
			lcsOM = lcsOM.next
		}
		for originalStart >= lcsOL.positions[0].offset+lcsOL.length && lcsOL.length > 0 {
			lcsOL = lcsOL.next
		}
	}

	if suffix > 0 {
		segs = append(segs, &Segment{
			Kind:     Common,
			Original: Range{lengths[0] - suffix, suffix},
			Modified: Range{lengths[1] - suffix, suffix},
			Latest:   Range{lengths[2] - suffix, suffix},
		})
	}
	return segs, nil
}

// resolveConflict refines one conflict region by diffing its modified and
// latest ranges against each other. Node identities from the shared index
// make this a pure pointer walk. startM/startL are the positions at the
// start of the region, posM/posL the positions reached after consuming the
// shared leading run found by the caller's probe; the updated list
// positions are returned so the caller's probe can resume.
func resolveConflict(ctx context.Context, startM, startL, posM, posL *position,
	originalStart, originalLength, modifiedLength, latestLength, commonLength int,
) ([]*Segment, *position, *position, error) {
	// commonLength is what remained of the shared-prefix probe budget;
	// the actually matched token count is the difference.
	matched := min(modifiedLength, latestLength) - commonLength

	var head *lcs
	ref := &head
	if matched > 0 {
		run := &lcs{length: matched}
		run.positions[0] = startM
		run.positions[1] = startL
		head = run
		ref = &run.next
	}

	modLeft := modifiedLength - matched
	latLeft := latestLength - matched

	cmStart := startM.offset
	clStart := startL.offset

	startM = posM
	startL = posL

	// Carve closed sub-rings out of the big rings covering just the two
	// remaining ranges. The surgery is undone right after the LCS run.
	var subM, subL *position
	if modLeft > 0 {
		for i := 0; i < modLeft-1; i++ {
			posM = posM.next
		}
		subM = posM
		posM = posM.next
		subM.next = startM
	}
	if latLeft > 0 {
		for i := 0; i < latLeft-1; i++ {
			posL = posL.next
		}
		subL = posL
		posL = posL.next
		subL.next = startL
	}

	sub, err := computeLCS(ctx, subM, subL, 0)
	if err != nil {
		return nil, nil, nil, err
	}
	*ref = sub

	if subM != nil {
		subM.next = posM
	}
	if subL != nil {
		subL.next = posL
	}

	// An empty side produced a bare EOF element pointing nowhere useful;
	// aim it at the current list position instead.
	if subM == nil {
		sub.positions[0] = posM
	}
	if subL == nil {
		sub.positions[1] = posL
	}

	var resolved []*Segment
	l := head
	for {
		if cmStart < l.positions[0].offset || clStart < l.positions[1].offset {
			resolved = append(resolved, &Segment{
				Kind:     Conflict,
				Original: Range{originalStart - 1, originalLength},
				Modified: Range{cmStart - 1, l.positions[0].offset - cmStart},
				Latest:   Range{clStart - 1, l.positions[1].offset - clStart},
			})
		}
		if l.length == 0 {
			break
		}
		cmStart = l.positions[0].offset
		clStart = l.positions[1].offset
		resolved = append(resolved, &Segment{
			Kind:     DiffCommon,
			Original: Range{originalStart - 1, originalLength},
			Modified: Range{cmStart - 1, l.length},
			Latest:   Range{clStart - 1, l.length},
		})
		cmStart += l.length
		clStart += l.length
		l = l.next
	}
	return resolved, posM, posL, nil
}
