package textdiff

// The token index collapses equal tokens onto shared nodes so that all
// later comparisons are pointer comparisons. Buckets are selected by the
// advisory hash, each bucket holds an unbalanced binary search tree.

const indexBuckets = 127

type node struct {
	left, right *node
	hash        uint32
	token       Token
}

type tokenIndex struct {
	roots [indexBuckets]*node
	src   TokenSource
}

// insert interns tok and returns its node. When an equal token is already
// present the stored token is replaced by tok and the older one discarded,
// which keeps the most recently read token alive for sources that compare
// against in-memory buffers.
func (t *tokenIndex) insert(tok Token, hash uint32) (*node, error) {
	ref := &t.roots[hash%indexBuckets]
	for *ref != nil {
		parent := *ref
		rv := 0
		switch {
		case hash < parent.hash:
			rv = 1
		case hash > parent.hash:
			rv = -1
		default:
			var err error
			if rv, err = t.src.Compare(parent.token, tok); err != nil {
				return nil, err
			}
		}
		switch {
		case rv == 0:
			if d, ok := t.src.(TokenDiscarder); ok {
				d.Discard(parent.token)
			}
			parent.token = tok
			return parent, nil
		case rv > 0:
			ref = &parent.left
		default:
			ref = &parent.right
		}
	}
	n := &node{hash: hash, token: tok}
	*ref = n
	return n, nil
}

// position is one slot of a source's position ring: the interned node plus
// the 1-based offset of the token in its source. The ring is circular, the
// handle kept around is the tail so that tail.next is the head.
type position struct {
	next   *position
	node   *node
	offset int
}

// getTokens reads one source to exhaustion and builds its position ring.
// Offsets continue from base, which is non-zero when an identical prefix
// was trimmed beforehand. The returned tail is nil for an empty source.
func (t *tokenIndex) getTokens(src Source, base int) (*position, error) {
	var start, pos *position
	ref := &start
	offset := base
	for {
		tok, hash, err := t.src.NextToken(src)
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}
		offset++
		n, err := t.insert(tok, hash)
		if err != nil {
			return nil, err
		}
		pos = &position{node: n, offset: offset}
		*ref = pos
		ref = &pos.next
	}
	*ref = start
	return pos, nil
}

// findIdenticalSuffix consumes matching tokens from the back of every
// source simultaneously. It stops at the first mismatching round, pushing
// the mismatched tokens back, and returns how many rounds matched.
func findIdenticalSuffix(src TokenSource, trim TokenTrimmer, sources []Source) (int, error) {
	tokens := make([]Token, len(sources))
	suffix := 0
	reachedOneBOF := false
	for {
		for i, s := range sources {
			tok, err := trim.PreviousToken(s)
			if err != nil {
				return 0, err
			}
			tokens[i] = tok
			reachedOneBOF = reachedOneBOF || tok == nil
		}
		if reachedOneBOF {
			break
		}
		match := true
		for i := 1; match && i < len(sources); i++ {
			rv, err := src.Compare(tokens[0], tokens[i])
			if err != nil {
				return 0, err
			}
			match = rv == 0
		}
		if !match {
			break
		}
		suffix++
	}
	for i, s := range sources {
		if tokens[i] != nil {
			trim.PushBackSuffix(s, tokens[i])
		}
	}
	return suffix, nil
}

// findIdenticalPrefix is the mirror image of findIdenticalSuffix, walking
// forward from the front of every source.
func findIdenticalPrefix(src TokenSource, trim TokenTrimmer, sources []Source) (int, error) {
	tokens := make([]Token, len(sources))
	prefix := 0
	reachedOneEOF := false
	for {
		for i, s := range sources {
			tok, _, err := src.NextToken(s)
			if err != nil {
				return 0, err
			}
			tokens[i] = tok
			reachedOneEOF = reachedOneEOF || tok == nil
		}
		if reachedOneEOF {
			break
		}
		match := true
		for i := 1; match && i < len(sources); i++ {
			rv, err := src.Compare(tokens[0], tokens[i])
			if err != nil {
				return 0, err
			}
			match = rv == 0
		}
		if !match {
			break
		}
		prefix++
	}
	for i, s := range sources {
		if tokens[i] != nil {
			trim.PushBackPrefix(s, tokens[i])
		}
	}
	return prefix, nil
}

// getAllTokens builds the position rings for every participating source.
// When the source supports trimming, the identical suffix is consumed
// first, then the identical prefix; the remaining middles are interned
// with offsets based past the prefix so the final segment list stays in
// whole-source coordinates.
func getAllTokens(t *tokenIndex, sources []Source) (rings []*position, prefix, suffix int, err error) {
	rings = make([]*position, len(sources))
	trim, ok := t.src.(TokenTrimmer)
	if !ok {
		for i, s := range sources {
			if err = t.src.Open(s); err != nil {
				return nil, 0, 0, err
			}
			if rings[i], err = t.getTokens(s, 0); err != nil {
				return nil, 0, 0, err
			}
			if err = t.src.Close(s); err != nil {
				return nil, 0, 0, err
			}
		}
		return rings, 0, 0, nil
	}
	for _, s := range sources {
		if err = t.src.Open(s); err != nil {
			return nil, 0, 0, err
		}
	}
	if suffix, err = findIdenticalSuffix(t.src, trim, sources); err != nil {
		return nil, 0, 0, err
	}
	// Reopen to restart forward reading; the trimmed suffix stays off.
	for _, s := range sources {
		if err = t.src.Open(s); err != nil {
			return nil, 0, 0, err
		}
	}
	if prefix, err = findIdenticalPrefix(t.src, trim, sources); err != nil {
		return nil, 0, 0, err
	}
	for i, s := range sources {
		if rings[i], err = t.getTokens(s, prefix); err != nil {
			return nil, 0, 0, err
		}
		if err = t.src.Close(s); err != nil {
			return nil, 0, 0, err
		}
	}
	return rings, prefix, suffix, nil
}

// ringLength returns the whole-source token count for a ring built with
// the given trim counts.
func ringLength(tail *position, prefix, suffix int) int {
	if tail == nil {
		return prefix + suffix
	}
	return tail.offset + suffix
}
