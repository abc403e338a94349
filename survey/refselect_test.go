package survey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reposurvey/reposurvey/git"
	"github.com/reposurvey/reposurvey/survey"
)

func ref(kind git.RefKind) git.Reference {
	return git.Reference{Refname: "x", Kind: kind}
}

func TestRefSelectionDefaultsWhenAllUnspecified(t *testing.T) {
	var rs survey.RefSelection
	assert.True(t, rs.Wants(ref(git.KindBranch)))
	assert.True(t, rs.Wants(ref(git.KindTag)))
	assert.True(t, rs.Wants(ref(git.KindRemote)))
	assert.False(t, rs.Wants(ref(git.KindDetachedHead)))
	assert.False(t, rs.Wants(ref(git.KindOther)))
}

func TestRefSelectionAllWantsEverything(t *testing.T) {
	rs := survey.RefSelection{All: survey.Wanted}
	assert.True(t, rs.Wants(ref(git.KindBranch)))
	assert.True(t, rs.Wants(ref(git.KindTag)))
	assert.True(t, rs.Wants(ref(git.KindRemote)))
	assert.True(t, rs.Wants(ref(git.KindDetachedHead)))
	assert.True(t, rs.Wants(ref(git.KindOther)))
}

func TestRefSelectionPartialLeavesUnspecifiedUnwanted(t *testing.T) {
	rs := survey.RefSelection{Branches: survey.Wanted}
	assert.True(t, rs.Wants(ref(git.KindBranch)))
	assert.False(t, rs.Wants(ref(git.KindTag)))
	assert.False(t, rs.Wants(ref(git.KindRemote)))
	assert.False(t, rs.Wants(ref(git.KindDetachedHead)))
	assert.False(t, rs.Wants(ref(git.KindOther)))
}

func TestClassPrefix(t *testing.T) {
	assert.Equal(t, "refs/heads/", survey.ClassPrefix("refs/heads/master"))
	assert.Equal(t, "refs/tags/", survey.ClassPrefix("refs/tags/v1.0"))
	assert.Equal(t, "refs/remotes/origin/", survey.ClassPrefix("refs/remotes/origin/master"))
	assert.Equal(t, "refs/notes/", survey.ClassPrefix("refs/notes/commits"))
	assert.Equal(t, "HEAD", survey.ClassPrefix("HEAD"))
}
