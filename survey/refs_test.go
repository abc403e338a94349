package survey_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposurvey/reposurvey/counts"
	"github.com/reposurvey/reposurvey/internal/testutils"
	"github.com/reposurvey/reposurvey/meter"
	"github.com/reposurvey/reposurvey/survey"
)

func TestDiscoverRefsDefaultSelection(t *testing.T) {
	repo := testutils.NewTestRepo(t, true, "reposurvey-discover")
	defer repo.Remove(t)

	repo.CreateReferencedOrphan(t, "refs/heads/main")
	repo.CreateReferencedOrphan(t, "refs/remotes/origin/main")
	repo.CreateReferencedOrphan(t, "refs/tags/v1")

	g := repo.Repository(t)

	rpt := survey.NewReport(survey.Capacities{CommitParents: 10, CommitSizes: 10, TreeEntries: 10, TreeSizes: 10, BlobSizes: 10})
	roots, err := survey.DiscoverRefs(context.Background(), g, survey.RefSelection{}, rpt, meter.NoProgressMeter)
	require.NoError(t, err)

	// Branches, tags, and remotes are all included by default;
	// detached HEAD isn't present in this repo at all.
	assert.Len(t, roots, 3)
	assert.Equal(t, counts.Count64(3), rpt.Refs.Count)
	assert.Equal(t, counts.Count64(1), rpt.Refs.Branches)
	assert.Equal(t, counts.Count64(1), rpt.Refs.Tags)
	assert.Equal(t, counts.Count64(1), rpt.Refs.Remotes)
}

func TestDiscoverRefsBranchesOnly(t *testing.T) {
	repo := testutils.NewTestRepo(t, true, "reposurvey-discover-branches")
	defer repo.Remove(t)

	repo.CreateReferencedOrphan(t, "refs/heads/main")
	repo.CreateReferencedOrphan(t, "refs/tags/v1")

	g := repo.Repository(t)

	rpt := survey.NewReport(survey.Capacities{})
	roots, err := survey.DiscoverRefs(
		context.Background(), g,
		survey.RefSelection{Branches: survey.Wanted},
		rpt, meter.NoProgressMeter,
	)
	require.NoError(t, err)

	assert.Len(t, roots, 1)
	assert.Equal(t, counts.Count64(1), rpt.Refs.Count)
}

func TestDiscoverRefsSortedByOID(t *testing.T) {
	repo := testutils.NewTestRepo(t, true, "reposurvey-discover-sort")
	defer repo.Remove(t)

	repo.CreateReferencedOrphan(t, "refs/heads/a")
	repo.CreateReferencedOrphan(t, "refs/heads/b")
	repo.CreateReferencedOrphan(t, "refs/heads/c")

	g := repo.Repository(t)

	rpt := survey.NewReport(survey.Capacities{})
	roots, err := survey.DiscoverRefs(context.Background(), g, survey.RefSelection{}, rpt, meter.NoProgressMeter)
	require.NoError(t, err)

	for i := 1; i < len(roots); i++ {
		assert.LessOrEqual(t, roots[i-1].String(), roots[i].String())
	}
}
