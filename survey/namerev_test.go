package survey_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposurvey/reposurvey/internal/testutils"
	"github.com/reposurvey/reposurvey/meter"
	"github.com/reposurvey/reposurvey/survey"
)

func TestEnrichNamesResolvesContainingCommit(t *testing.T) {
	repo := testutils.NewTestRepo(t, true, "reposurvey-namerev")
	defer repo.Remove(t)

	repo.CreateReferencedOrphan(t, "refs/heads/main")
	g := repo.Repository(t)

	head, err := g.ResolveObject("refs/heads/main")
	require.NoError(t, err)

	rpt := survey.NewReport(survey.Capacities{CommitSizes: 1})
	rpt.Commits.LargestBySize.Offer(100, head, "", head)

	survey.EnrichNames(context.Background(), g, rpt, meter.NoProgressMeter)

	entries := rpt.Commits.LargestBySize.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "main", entries[0].NameRev)
}

func TestEnrichNamesNoOpWhenHeapsEmpty(t *testing.T) {
	repo := testutils.NewTestRepo(t, true, "reposurvey-namerev-empty")
	defer repo.Remove(t)

	g := repo.Repository(t)
	rpt := survey.NewReport(survey.Capacities{CommitSizes: 1})

	// Must not panic or hang when there's nothing to enrich.
	survey.EnrichNames(context.Background(), g, rpt, meter.NoProgressMeter)
	assert.Empty(t, rpt.Commits.LargestBySize.Entries())
}
