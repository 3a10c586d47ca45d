package textdiff

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiff4InheritedChangeTakesLatest(t *testing.T) {
	// The modified side differs from the original only because it is
	// based on a newer ancestor; the latest side's edit must win without
	// a conflict.
	const textO = "Aa\nBb\n"
	const textM = "Xx\nBb\n"
	const textL = "Yy\nBb\n"
	const textA = "Xx\nBb\n" // ancestor equals modified: nothing was edited

	diff, err := MemDiff4(context.Background(), textO, textM, textL, textA)
	require.NoError(t, err)
	require.False(t, ContainsConflicts(diff))

	var out bytes.Buffer
	require.NoError(t, OutputMerge(context.Background(), &out, diff,
		[]byte(textO), []byte(textM), []byte(textL), nil))
	require.Equal(t, "Yy\nBb\n", out.String())
}

func TestDiff4RealEditStillConflicts(t *testing.T) {
	// The ancestor shows the modified side really edited the region, so
	// the conflict stands.
	const textO = "Aa\nBb\n"
	const textM = "Xx\nBb\n"
	const textL = "Yy\nBb\n"
	const textA = "Qq\nBb\n"

	diff, err := MemDiff4(context.Background(), textO, textM, textL, textA)
	require.NoError(t, err)
	require.True(t, ContainsConflicts(diff))
}

func TestDiff4WithoutConflictsMatchesDiff3(t *testing.T) {
	const textO = "Aa\nBb\nCc\n"
	const textM = "Xx\nAa\nBb\nCc\n"
	const textL = "Aa\nBb\nCc\nYy\n"

	diff3, err := MemDiff3(context.Background(), textO, textM, textL)
	require.NoError(t, err)
	diff4, err := MemDiff4(context.Background(), textO, textM, textL, textO)
	require.NoError(t, err)

	require.Equal(t, len(diff3), len(diff4))
	for i := range diff3 {
		require.Equal(t, diff3[i].Kind, diff4[i].Kind)
		require.Equal(t, diff3[i].Original, diff4[i].Original)
		require.Equal(t, diff3[i].Modified, diff4[i].Modified)
		require.Equal(t, diff3[i].Latest, diff4[i].Latest)
	}
}
