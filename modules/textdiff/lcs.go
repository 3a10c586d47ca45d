package textdiff

import "context"

// The longest common subsequence between two position rings, computed with
// the Wu, Manber, Myers and Miller O(NP) algorithm. The result is a list
// of matched runs terminated by a zero-length element whose offsets point
// one past each source's final token: end of input is always a sync point.

type lcs struct {
	next      *lcs
	positions [2]*position
	length    int
}

type snakePoint struct {
	// y is the furthest offset reached on the longer ring for this
	// diagonal. Offsets are 1-based, zero means not reached yet.
	y         int
	lcs       *lcs
	positions [2]*position
}

type lcsContext struct {
	fp   []snakePoint
	base int
	// swap is set when the first ring is the longer one; axis 0 of the
	// snake then walks the second ring and recorded runs are flipped
	// back into source order.
	swap bool
}

func (c *lcsContext) snake(k int) {
	var start0, start1 *position
	var prev *lcs

	h := &c.fp[c.base+k-1]
	v := &c.fp[c.base+k+1]
	if h.y+1 > v.y {
		start0 = h.positions[0]
		start1 = h.positions[1].next
		prev = h.lcs
	} else {
		start0 = v.positions[0].next
		start1 = v.positions[1]
		prev = v.lcs
	}

	p0, p1 := start0, start1
	for p0.node == p1.node {
		p0 = p0.next
		p1 = p1.next
	}

	e := &c.fp[c.base+k]
	if p1 != start1 {
		run := &lcs{length: p1.offset - start1.offset, next: prev}
		if !c.swap {
			run.positions[0], run.positions[1] = start0, start1
		} else {
			run.positions[0], run.positions[1] = start1, start0
		}
		e.lcs = run
	} else {
		e.lcs = prev
	}
	e.positions[0] = p0
	e.positions[1] = p1
	e.y = p1.offset
}

func reverseLCS(curr *lcs) *lcs {
	var next *lcs
	for curr != nil {
		prev := curr.next
		curr.next = next
		next = curr
		curr = prev
	}
	return next
}

// computeLCS runs the O(NP) walk over two rings. base is the number of
// trimmed prefix tokens; it only matters for empty rings, whose EOF
// sentinel must still point one past the trimmed prefix. Rings are
// temporarily spliced with sentinel positions and restored before return.
func computeLCS(ctx context.Context, list0, list1 *position, base int) (*lcs, error) {
	eof := &lcs{}
	eof.positions[0] = &position{offset: base + 1}
	if list0 != nil {
		eof.positions[0].offset = list0.offset + 1
	}
	eof.positions[1] = &position{offset: base + 1}
	if list1 != nil {
		eof.positions[1].offset = list1.offset + 1
	}
	if list0 == nil || list1 == nil {
		return eof, nil
	}

	len0 := list0.offset - list0.next.offset + 1
	len1 := list1.offset - list1.next.offset + 1
	c := &lcsContext{swap: len0 > len1}

	// Axis 0 is the shorter ring, axis 1 the longer; y walks axis 1.
	a0, a1 := list0, list1
	if c.swap {
		a0, a1 = list1, list0
	}

	var sentinelNodes [2]node
	sent0 := &position{next: a0.next, offset: a0.offset + 1, node: &sentinelNodes[0]}
	a0.next = sent0
	sent1 := &position{next: a1.next, offset: a1.offset + 1, node: &sentinelNodes[1]}
	a1.next = sent1

	shorter, longer := min(len0, len1), max(len0, len1)
	d := longer - shorter

	c.fp = make([]snakePoint, len0+len1+3)
	c.base = shorter + 1
	c.fp[c.base-1].positions[0] = sent0.next
	c.fp[c.base-1].positions[1] = sent1

	p := 0
	for {
		select {
		case <-ctx.Done():
			a0.next = sent0.next
			a1.next = sent1.next
			return nil, ctx.Err()
		default:
		}
		for k := -p; k < d; k++ {
			c.snake(k)
		}
		for k := d + p; k >= d; k-- {
			c.snake(k)
		}
		if c.fp[c.base+d].positions[1] == sent1 {
			break
		}
		p++
	}

	eof.next = c.fp[c.base+d].lcs
	result := reverseLCS(eof)

	a0.next = sent0.next
	a1.next = sent1.next

	return result, nil
}
