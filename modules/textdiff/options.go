package textdiff

import "fmt"

// IgnoreSpace selects how whitespace differences are treated by the file
// token source.
type IgnoreSpace int

const (
	// IgnoreSpaceNone compares whitespace verbatim.
	IgnoreSpaceNone IgnoreSpace = iota
	// IgnoreSpaceChange collapses every whitespace run to a single space.
	IgnoreSpaceChange
	// IgnoreSpaceAll removes whitespace entirely before comparing.
	IgnoreSpaceAll
)

// FileOptions control normalization and rendering for file based diffs.
type FileOptions struct {
	IgnoreSpace    IgnoreSpace
	IgnoreEOLStyle bool
	// Context is the unified diff context radius.
	Context int
}

// NewFileOptions returns options with the defaults the reference tools use.
func NewFileOptions() *FileOptions {
	return &FileOptions{Context: DefaultContextLines}
}

func (o *FileOptions) normalizes() bool {
	return o != nil && (o.IgnoreSpace != IgnoreSpaceNone || o.IgnoreEOLStyle)
}

// Parse applies a list of diff option words such as handed to an external
// diff command. Recognized: -b/--ignore-space-change, -w/--ignore-all-space
// (which overrides -b), --ignore-eol-style and -u/--unified (accepted and
// ignored, unified is the only output format).
func (o *FileOptions) Parse(args []string) error {
	for _, arg := range args {
		switch arg {
		case "-b", "--ignore-space-change":
			if o.IgnoreSpace == IgnoreSpaceNone {
				o.IgnoreSpace = IgnoreSpaceChange
			}
		case "-w", "--ignore-all-space":
			o.IgnoreSpace = IgnoreSpaceAll
		case "--ignore-eol-style":
			o.IgnoreEOLStyle = true
		case "-u", "--unified":
		default:
			return fmt.Errorf("%w: invalid argument %q in diff options", ErrInvalidOption, arg)
		}
	}
	return nil
}
