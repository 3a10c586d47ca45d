package textdiff

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// merge3 is the test shorthand: three-way diff plus default rendering.
func merge3(t *testing.T, original, modified, latest string, opts *MergeOptions) (string, []*Segment) {
	t.Helper()
	diff, err := MemDiff3(context.Background(), original, modified, latest)
	require.NoError(t, err)
	checkInvariants(t, diff, original, modified, latest, true)
	var out bytes.Buffer
	err = OutputMerge(context.Background(), &out, diff,
		[]byte(original), []byte(modified), []byte(latest), opts)
	require.NoError(t, err)
	return out.String(), diff
}

func TestDiff3TrivialMergeIdentities(t *testing.T) {
	const textO = "Aa\nBb\nCc\n"
	const textX = "Aa\nXx\nCc\nDd\n"

	// modified == original merges to latest
	merged, diff := merge3(t, textO, textO, textX, nil)
	require.False(t, ContainsConflicts(diff))
	require.Equal(t, textX, merged)

	// latest == original merges to modified
	merged, diff = merge3(t, textO, textX, textO, nil)
	require.False(t, ContainsConflicts(diff))
	require.Equal(t, textX, merged)

	// modified == latest merges to either
	merged, diff = merge3(t, textO, textX, textX, nil)
	require.False(t, ContainsConflicts(diff))
	require.Equal(t, textX, merged)

	// all equal
	merged, diff = merge3(t, textO, textO, textO, nil)
	require.False(t, ContainsDiffs(diff))
	require.Equal(t, textO, merged)
}

func TestDiff3NonOverlappingEdits(t *testing.T) {
	merged, diff := merge3(t,
		"Aa\nBb\nCc\n",
		"Xx\nAa\nBb\nCc\n",
		"Aa\nBb\nCc\nYy\n", nil)
	require.False(t, ContainsConflicts(diff))
	require.Equal(t, "Xx\nAa\nBb\nCc\nYy\n", merged)
}

func TestDiff3HardConflict(t *testing.T) {
	merged, diff := merge3(t,
		"Aa\nBb\nCc\n",
		"Aa\nBb\nCc\nDd\nEe\nFf\n",
		"", &MergeOptions{
			ConflictModified: "<<<<<<< M",
			ConflictLatest:   ">>>>>>> L",
		})
	require.True(t, ContainsConflicts(diff))
	require.Equal(t,
		"<<<<<<< M\nAa\nBb\nCc\nDd\nEe\nFf\n=======\n>>>>>>> L\n", merged)
}

func TestDiff3BothSidesSameEdit(t *testing.T) {
	merged, diff := merge3(t,
		"Aa\nBb\nCc\n",
		"Aa\nXx\nCc\n",
		"Aa\nXx\nCc\n", nil)
	require.False(t, ContainsConflicts(diff))
	require.True(t, ContainsDiffs(diff))
	require.Equal(t, "Aa\nXx\nCc\n", merged)

	var sawDiffCommon bool
	for _, seg := range diff {
		sawDiffCommon = sawDiffCommon || seg.Kind == DiffCommon
	}
	require.True(t, sawDiffCommon, "identical edits must classify as diff-common")
}

func TestDiff3ConflictSegments(t *testing.T) {
	_, diff := merge3(t,
		"Aa\nBb\nCc\n",
		"Aa\nXx\nCc\n",
		"Aa\nYy\nCc\n", nil)
	require.True(t, ContainsConflicts(diff))
	var conflict *Segment
	for _, seg := range diff {
		if seg.Kind == Conflict {
			conflict = seg
		}
	}
	require.NotNil(t, conflict)
	require.Equal(t, Range{1, 1}, conflict.Original)
	require.Equal(t, Range{1, 1}, conflict.Modified)
	require.Equal(t, Range{1, 1}, conflict.Latest)
	require.NotEmpty(t, conflict.Resolved)
}

func TestDiff3GroceryListMerge(t *testing.T) {
	// The classic three-way example: both sides reorder the same list.
	const textO = "celery\ngarlic\nonions\nsalmon\ntomatoes\nwine\n"
	const textA = "celery\nsalmon\ntomatoes\ngarlic\nonions\nwine\n"
	const textB = "celery\ngarlic\nsalmon\ntomatoes\nonions\nwine\n"

	merged, diff := merge3(t, textO, textA, textB, nil)
	require.True(t, ContainsDiffs(diff))
	require.True(t, ContainsConflicts(diff))
	require.Contains(t, merged, "<<<<<<<")
	require.Contains(t, merged, "=======")
	require.Contains(t, merged, ">>>>>>>")
}

func TestDiff3DeleteVersusEdit(t *testing.T) {
	// modified deletes a line that latest edits: a conflict.
	_, diff := merge3(t,
		"Aa\nBb\nCc\n",
		"Aa\nCc\n",
		"Aa\nB2\nCc\n", nil)
	require.True(t, ContainsConflicts(diff))
}

func TestDiff3EmptyOriginal(t *testing.T) {
	merged, diff := merge3(t, "", "Aa\n", "Aa\n", nil)
	require.False(t, ContainsConflicts(diff))
	require.Equal(t, "Aa\n", merged)
}

func TestDiff3AdjacentEditsDoNotConflict(t *testing.T) {
	// Separated by a common line, two independent edits merge cleanly.
	merged, diff := merge3(t,
		"a1\na2\na3\na4\na5\n",
		"a1\nb2\na3\na4\na5\n",
		"a1\na2\na3\nb4\na5\n", nil)
	require.False(t, ContainsConflicts(diff))
	require.Equal(t, "a1\nb2\na3\nb4\na5\n", merged)
}

func TestDiff3ResolvedConflict(t *testing.T) {
	const textO = "start\nend\n"
	const textA = "start\nA\nshared\nB\nend\n"
	const textB = "start\nC\nshared\nD\nend\n"

	opts := &MergeOptions{
		Style:            MergeStyleResolvedModifiedLatest,
		ConflictModified: "<<<<<<< mine",
		ConflictLatest:   ">>>>>>> yours",
	}
	merged, diff := merge3(t, textO, textA, textB, opts)
	require.True(t, ContainsConflicts(diff))
	require.Equal(t, "start\n"+
		"<<<<<<< mine\nA\n=======\nC\n>>>>>>> yours\n"+
		"shared\n"+
		"<<<<<<< mine\nB\n=======\nD\n>>>>>>> yours\n"+
		"end\n", merged)

	// The plain style shows the whole region as one conflict.
	merged, _ = merge3(t, textO, textA, textB, &MergeOptions{
		ConflictModified: "<<<<<<< mine",
		ConflictLatest:   ">>>>>>> yours",
	})
	require.Equal(t, "start\n"+
		"<<<<<<< mine\nA\nshared\nB\n=======\nC\nshared\nD\n>>>>>>> yours\n"+
		"end\n", merged)
}
