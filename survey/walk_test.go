package survey_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposurvey/reposurvey/counts"
	"github.com/reposurvey/reposurvey/git"
	"github.com/reposurvey/reposurvey/internal/testutils"
	"github.com/reposurvey/reposurvey/meter"
	"github.com/reposurvey/reposurvey/survey"
)

// makeCommit creates a single-file tree and a commit pointing at it,
// with the given parents, and returns the commit OID.
func makeCommit(t *testing.T, repo *testutils.TestRepo, fileContents string, parents ...git.OID) git.OID {
	t.Helper()

	blob := repo.CreateObject(t, git.TypeBlob, func(w io.Writer) error {
		_, err := io.WriteString(w, fileContents)
		return err
	})

	tree := repo.CreateObject(t, git.TypeTree, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "100644 a.txt\x00%s", blob.Bytes())
		return err
	})

	return repo.CreateObject(t, git.TypeCommit, func(w io.Writer) error {
		fmt.Fprintf(w, "tree %s\n", tree)
		for _, parent := range parents {
			fmt.Fprintf(w, "parent %s\n", parent)
		}
		_, err := fmt.Fprintf(
			w,
			"author Example <example@example.com> 1112911993 -0700\n"+
				"committer Example <example@example.com> 1112911993 -0700\n"+
				"\n"+
				"commit\n",
		)
		return err
	})
}

// TestWalkLinearChainAttributesContainingCommit builds a two-commit
// linear chain where each commit introduces its own distinct tree and
// blob (no content is reused across commits), and checks that every
// stat and top-N entry is attributed to the commit that actually
// introduced the corresponding object, not to whichever commit the
// walk happens to finish on.
func TestWalkLinearChainAttributesContainingCommit(t *testing.T) {
	repo := testutils.NewTestRepo(t, true, "reposurvey-walk-chain")
	defer repo.Remove(t)

	root := makeCommit(t, repo, "root contents\n")
	big := strings.Repeat("x", 5000)
	tip := makeCommit(t, repo, big, root)

	g := repo.Repository(t)

	rpt := survey.NewReport(survey.Capacities{
		CommitParents: 10, CommitSizes: 10,
		TreeEntries: 10, TreeSizes: 10,
		BlobSizes: 10,
	})

	require.NoError(t, survey.Walk(context.Background(), g, []git.OID{tip}, rpt, meter.NoProgressMeter))

	assert.Equal(t, counts.Count64(2), rpt.Commits.Seen)
	assert.Equal(t, counts.Count64(0), rpt.Commits.Missing)
	assert.Equal(t, counts.Count64(2), rpt.Trees.Seen)
	assert.Equal(t, counts.Count64(2), rpt.Blobs.Seen)
	assert.Equal(t, counts.Count64(0), rpt.Blobs.Missing)

	// root has no parents, tip has exactly one: the parent-count
	// histogram must show one commit in each of bins 0 and 1.
	assert.Equal(t, counts.Count64(1), rpt.Commits.ParentHistogram[0].Count)
	assert.Equal(t, counts.Count64(1), rpt.Commits.ParentHistogram[1].Count)

	// The large blob was introduced only by the tip commit, so it must
	// be attributed there, not to the root commit the walk reaches
	// (and finishes on) last.
	require.Equal(t, 2, rpt.Blobs.LargestBySize.Len())
	largestBlob := rpt.Blobs.LargestBySize.Entries()[0]
	assert.Equal(t, tip, largestBlob.ContainingCommit)
	assert.Equal(t, "a.txt", largestBlob.Name)

	// Likewise, the tip's root tree (reached with no path of its own)
	// must carry the tip commit's synthesized name, not the root
	// commit's.
	require.Equal(t, 2, rpt.Trees.LargestBySize.Len())
	entries := rpt.Trees.LargestBySize.Entries()
	var sawTip, sawRoot bool
	for _, e := range entries {
		switch e.ContainingCommit {
		case tip:
			sawTip = true
			assert.Equal(t, survey.SyntheticTreeName(tip), e.Name)
		case root:
			sawRoot = true
			assert.Equal(t, survey.SyntheticTreeName(root), e.Name)
		}
	}
	assert.True(t, sawTip, "expected a tree entry attributed to the tip commit")
	assert.True(t, sawRoot, "expected a tree entry attributed to the root commit")
}

// TestWalkReportsMissingObjects exercises C6's missing-object
// tolerance: a blob that `git rev-list --objects` knows about (from
// its tree entry) but that is no longer present in the object store —
// the shape of a partial clone's unfetched blobs — must be counted as
// missing rather than aborting the walk. The tree entry alone is
// enough for rev-list to enumerate the blob's OID, since unlike a
// tree, a blob never needs to be opened to continue the traversal.
func TestWalkReportsMissingObjects(t *testing.T) {
	repo := testutils.NewTestRepo(t, true, "reposurvey-walk-missing")
	defer repo.Remove(t)

	tip := makeCommit(t, repo, "tip contents\n")

	g := repo.Repository(t)
	rpt := survey.NewReport(survey.Capacities{CommitSizes: 10, TreeSizes: 10, BlobSizes: 10})

	blobOID, err := g.ResolveObject(tip.String() + ":a.txt")
	require.NoError(t, err)
	removeLooseObject(t, repo.Path, blobOID)

	require.NoError(t, survey.Walk(context.Background(), g, []git.OID{tip}, rpt, meter.NoProgressMeter))

	assert.Equal(t, counts.Count64(1), rpt.Commits.Seen)
	assert.Equal(t, counts.Count64(0), rpt.Commits.Missing)
	assert.Equal(t, counts.Count64(1), rpt.Trees.Seen)
	assert.Equal(t, counts.Count64(0), rpt.Trees.Missing)
	assert.Equal(t, counts.Count64(1), rpt.Blobs.Seen)
	assert.Equal(t, counts.Count64(1), rpt.Blobs.Missing)
}

func removeLooseObject(t *testing.T, gitDir string, oid git.OID) {
	t.Helper()

	hex := oid.String()
	path := filepath.Join(gitDir, "objects", hex[:2], hex[2:])
	require.NoError(t, os.Remove(path))
}
