package survey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reposurvey/reposurvey/counts"
	"github.com/reposurvey/reposurvey/git"
	"github.com/reposurvey/reposurvey/survey"
)

func oid(b byte) git.OID {
	o, err := git.OIDFromBytes(append([]byte{b}, make([]byte, 19)...))
	if err != nil {
		panic(err)
	}
	return o
}

func TestTopNCapacityZeroDisabled(t *testing.T) {
	top := survey.NewTopN(0)
	top.Offer(100, oid(1), "", git.NullOID)
	assert.Equal(t, 0, top.Len())
	assert.Nil(t, top.Entries())
}

func TestTopNKeepsLargest(t *testing.T) {
	top := survey.NewTopN(2)
	top.Offer(10, oid(1), "", git.NullOID)
	top.Offer(30, oid(2), "", git.NullOID)
	top.Offer(20, oid(3), "", git.NullOID)
	top.Offer(5, oid(4), "", git.NullOID)

	entries := top.Entries()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, counts.Count64(30), entries[0].Magnitude)
		assert.Equal(t, counts.Count64(20), entries[1].Magnitude)
	}
}

func TestTopNTieBreakFavorsEarlierInsertion(t *testing.T) {
	top := survey.NewTopN(2)
	top.Offer(10, oid(1), "first", git.NullOID)
	top.Offer(10, oid(2), "second", git.NullOID)
	top.Offer(10, oid(3), "third", git.NullOID)

	entries := top.Entries()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "first", entries[0].Name)
		assert.Equal(t, "second", entries[1].Name)
	}
}

func TestTopNNonIncreasingOrder(t *testing.T) {
	top := survey.NewTopN(5)
	for _, m := range []counts.Count64{3, 1, 4, 1, 5, 9, 2, 6} {
		top.Offer(m, oid(byte(m)), "", git.NullOID)
	}

	entries := top.Entries()
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Magnitude, entries[i].Magnitude)
	}
	assert.Len(t, entries, 5)
	assert.Equal(t, counts.Count64(9), entries[0].Magnitude)
}

func TestSyntheticTreeName(t *testing.T) {
	o := oid(7)
	assert.Equal(t, o.String()+"^{tree}", survey.SyntheticTreeName(o))
}
