package textdiff

// Whitespace and line-ending canonicalization, performed in place as
// tokens are produced. The state survives across chunk boundaries so the
// chunk size never influences the normalized form.

type normalizeState int8

const (
	stateNormal normalizeState = iota
	stateWhitespace
	stateCR
)

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// normalizeBuffer rewrites buf according to opts and returns the new
// length. statep carries the tokenizer state between consecutive buffers
// of the same stream.
func normalizeBuffer(buf []byte, statep *normalizeState, opts *FileOptions) int {
	if !opts.normalizes() {
		return len(buf)
	}
	state := *statep
	// start of the next pending chunk to keep, and the current end of
	// the normalized output
	start := 0
	newend := 0
	cur := 0
	for ; cur < len(buf); cur++ {
		c := buf[cur]
		switch state {
		case stateCR:
			state = stateNormal
			if c == '\n' && opts.IgnoreEOLStyle {
				start = cur + 1
				break
			}
			fallthrough
		case stateNormal:
			if isSpace(c) {
				newend += copy(buf[newend:], buf[start:cur])
				start = cur
				switch c {
				case '\r':
					state = stateCR
					if opts.IgnoreEOLStyle {
						// The CR becomes an LF; a following LF is dropped.
						buf[newend] = '\n'
						newend++
						start++
					}
				case '\n':
				default:
					if opts.IgnoreSpace != IgnoreSpaceNone {
						state = stateWhitespace
						if opts.IgnoreSpace == IgnoreSpaceChange {
							buf[newend] = ' '
							newend++
						}
					}
				}
			}
		case stateWhitespace:
			// Only reachable when ignoring whitespace.
			if isSpace(c) {
				switch c {
				case '\r':
					state = stateCR
					if opts.IgnoreEOLStyle {
						buf[newend] = '\n'
						newend++
						start = cur + 1
					} else {
						start = cur
					}
				case '\n':
					state = stateNormal
					start = cur
				}
			} else {
				start = cur
				state = stateNormal
			}
		}
	}
	// The raw bytes of a trailing whitespace run with no EOL yet are not
	// flushed: under IgnoreSpaceChange only the single space already
	// written for the run remains, under IgnoreSpaceAll nothing does.
	// Anything else is flushed as-is.
	if state != stateWhitespace {
		newend += copy(buf[newend:], buf[start:cur])
	}
	*statep = state
	return newend
}
