package textdiff

import "errors"

var (
	// ErrDatasourceModified is returned when a file changed on disk while
	// a diff was reading it.
	ErrDatasourceModified = errors.New("datasource modified during diff")
	// ErrInvalidOption is returned by option parsers, never by the engine.
	ErrInvalidOption = errors.New("invalid diff option")
	// ErrUnknownEOL is returned by renderers asked to reuse a source's
	// line-ending style when the source contains no line ending at all.
	ErrUnknownEOL = errors.New("unknown end-of-line style")
)
