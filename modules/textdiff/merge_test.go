package textdiff

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeStyles(t *testing.T) {
	const textO = "Aa\nBb\nCc\n"
	const textA = "Aa\nXx\nCc\n"
	const textB = "Aa\nYy\nCc\n"

	tests := []struct {
		name string
		opts MergeOptions
		want string
	}{
		{
			name: "modified_latest",
			opts: MergeOptions{
				ConflictModified: "<<<<<<< mine",
				ConflictLatest:   ">>>>>>> yours",
			},
			want: "Aa\n<<<<<<< mine\nXx\n=======\nYy\n>>>>>>> yours\nCc\n",
		},
		{
			name: "modified_original_latest",
			opts: MergeOptions{
				Style:            MergeStyleModifiedOriginalLatest,
				ConflictModified: "<<<<<<< mine",
				ConflictOriginal: "||||||| older",
				ConflictLatest:   ">>>>>>> yours",
			},
			want: "Aa\n<<<<<<< mine\nXx\n||||||| older\nBb\n=======\nYy\n>>>>>>> yours\nCc\n",
		},
		{
			name: "modified",
			opts: MergeOptions{Style: MergeStyleModified},
			want: "Aa\nXx\nCc\n",
		},
		{
			name: "latest",
			opts: MergeOptions{Style: MergeStyleLatest},
			want: "Aa\nYy\nCc\n",
		},
		{
			name: "only_conflicts",
			opts: MergeOptions{
				Style:            MergeStyleOnlyConflicts,
				ConflictModified: "<<<<<<< mine",
				ConflictLatest:   ">>>>>>> yours",
			},
			want: "@@ -2 +2 @@\n<<<<<<< mine\nXx\n=======\nYy\n>>>>>>> yours\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff, err := MemDiff3(context.Background(), textO, textA, textB)
			require.NoError(t, err)
			var out bytes.Buffer
			opts := tt.opts
			err = OutputMerge(context.Background(), &out, diff,
				[]byte(textO), []byte(textA), []byte(textB), &opts)
			require.NoError(t, err)
			require.Equal(t, tt.want, out.String())
		})
	}
}

func TestMergeDefaultMarkers(t *testing.T) {
	diff, err := MemDiff3(context.Background(), "Aa\n", "Xx\n", "Yy\n")
	require.NoError(t, err)
	var out bytes.Buffer
	err = OutputMerge(context.Background(), &out, diff,
		[]byte("Aa\n"), []byte("Xx\n"), []byte("Yy\n"), nil)
	require.NoError(t, err)
	require.Equal(t, "<<<<<<<\nXx\n=======\nYy\n>>>>>>>\n", out.String())
}

func TestMergeMarkerEOLDetection(t *testing.T) {
	// Markers take the modified source's line ending.
	const textO = "Aa\r\nBb\r\n"
	const textA = "Aa\r\nXx\r\n"
	const textB = "Aa\r\nYy\r\n"
	diff, err := MemDiff3(context.Background(), textO, textA, textB)
	require.NoError(t, err)
	var out bytes.Buffer
	err = OutputMerge(context.Background(), &out, diff,
		[]byte(textO), []byte(textA), []byte(textB), &MergeOptions{
			ConflictModified: "<<<<<<< mine",
			ConflictLatest:   ">>>>>>> yours",
		})
	require.NoError(t, err)
	require.Equal(t,
		"Aa\r\n<<<<<<< mine\r\nXx\r\n=======\r\nYy\r\n>>>>>>> yours\r\n", out.String())
}

func TestMergeMarkerEOLOverrideAndUnknown(t *testing.T) {
	diff, err := MemDiff3(context.Background(), "Aa", "Xx", "Yy")
	require.NoError(t, err)

	var out bytes.Buffer
	err = OutputMerge(context.Background(), &out, diff,
		[]byte("Aa"), []byte("Xx"), []byte("Yy"), &MergeOptions{EOL: "\n"})
	require.NoError(t, err)
	require.Equal(t, "<<<<<<<\nXx=======\nYy>>>>>>>\n", out.String())

	err = OutputMerge(context.Background(), &out, diff,
		[]byte("Aa"), []byte("Xx"), []byte("Yy"), &MergeOptions{RequireSourceEOL: true})
	require.ErrorIs(t, err, ErrUnknownEOL)
}

func TestParseMergeStyle(t *testing.T) {
	for name, want := range map[string]MergeStyle{
		"modified-latest":          MergeStyleModifiedLatest,
		"resolved-modified-latest": MergeStyleResolvedModifiedLatest,
		"modified-original-latest": MergeStyleModifiedOriginalLatest,
		"modified":                 MergeStyleModified,
		"latest":                   MergeStyleLatest,
		"only-conflicts":           MergeStyleOnlyConflicts,
	} {
		got, err := ParseMergeStyle(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseMergeStyle("zdiff3")
	require.ErrorIs(t, err, ErrInvalidOption)
}
