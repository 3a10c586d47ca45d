package textdiff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func normalizeAll(text string, opts *FileOptions) string {
	buf := []byte(text)
	state := stateNormal
	n := normalizeBuffer(buf, &state, opts)
	return string(buf[:n])
}

// normalizeChunked feeds the input in pieces of the given size, carrying
// the cross-chunk state the way the file source does.
func normalizeChunked(text string, opts *FileOptions, size int) string {
	var out []byte
	state := stateNormal
	for off := 0; off < len(text); off += size {
		end := min(off+size, len(text))
		chunk := []byte(text[off:end])
		n := normalizeBuffer(chunk, &state, opts)
		out = append(out, chunk[:n]...)
	}
	return string(out)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		opts  FileOptions
		input string
		want  string
	}{
		{
			name:  "noop",
			opts:  FileOptions{},
			input: "a  b\r\nc\n",
			want:  "a  b\r\nc\n",
		},
		{
			name:  "space_change_collapses_runs",
			opts:  FileOptions{IgnoreSpace: IgnoreSpaceChange},
			input: "a \t  b\n",
			want:  "a b\n",
		},
		{
			name:  "space_change_leading_run",
			opts:  FileOptions{IgnoreSpace: IgnoreSpaceChange},
			input: "   a\n",
			want:  " a\n",
		},
		{
			name:  "space_all_removes",
			opts:  FileOptions{IgnoreSpace: IgnoreSpaceAll},
			input: "a \t b c\n",
			want:  "abc\n",
		},
		{
			name:  "space_all_keeps_newline",
			opts:  FileOptions{IgnoreSpace: IgnoreSpaceAll},
			input: "a  \nb\n",
			want:  "a\nb\n",
		},
		{
			name:  "eol_crlf_to_lf",
			opts:  FileOptions{IgnoreEOLStyle: true},
			input: "a\r\nb\rc\n",
			want:  "a\nb\nc\n",
		},
		{
			name:  "eol_preserves_spaces",
			opts:  FileOptions{IgnoreEOLStyle: true},
			input: "a  b\r\n",
			want:  "a  b\n",
		},
		{
			name:  "both_options",
			opts:  FileOptions{IgnoreSpace: IgnoreSpaceAll, IgnoreEOLStyle: true},
			input: "a \t b\r\nc d\r",
			want:  "ab\ncd\n",
		},
		{
			name:  "trailing_run_without_eol_collapses",
			opts:  FileOptions{IgnoreSpace: IgnoreSpaceChange},
			input: "a   ",
			want:  "a ",
		},
		{
			name:  "trailing_space_without_eol_dropped",
			opts:  FileOptions{IgnoreSpace: IgnoreSpaceAll},
			input: "a   ",
			want:  "a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeAll(tt.input, &tt.opts)
			require.Equal(t, tt.want, got)

			// Idempotence: normalizing the normalized form changes nothing.
			require.Equal(t, tt.want, normalizeAll(got, &tt.opts))

			// Chunk-size independence.
			for _, size := range []int{1, 2, 3, 7} {
				require.Equal(t, tt.want, normalizeChunked(tt.input, &tt.opts, size),
					"chunk size %d", size)
			}
		})
	}
}
