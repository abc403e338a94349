// Package survey implements the reachable-object walk, statistics
// accumulation, and report assembly for a repository size survey.
package survey

import (
	"fmt"

	"github.com/reposurvey/reposurvey/counts"
	"github.com/reposurvey/reposurvey/git"
)

// TopNEntry is one slot of a TopN heap: the candidate's magnitude,
// identity, optional path name, and the commit that first surfaced it
// in walk order. NameRev is filled in later, by enrichment.
type TopNEntry struct {
	Magnitude        counts.Count64 `json:"magnitude"`
	OID              git.OID        `json:"oid"`
	Name             string         `json:"name,omitempty"`
	ContainingCommit git.OID        `json:"containing_commit_oid"`
	NameRev          string         `json:"name_rev,omitempty"`
}

// TopN is a fixed-capacity, descending-sorted set of the largest
// candidates offered to it. It is a plain insertion-sorted vector
// rather than a binary heap: capacity is always small (the default is
// 10), so a linear scan is both simpler and more cache-friendly.
type TopN struct {
	capacity int
	entries  []TopNEntry
}

// NewTopN returns an empty TopN heap with the given capacity. A
// capacity of zero means the dimension is disabled: Offer is then a
// no-op and Entries always returns nil.
func NewTopN(capacity int) *TopN {
	if capacity <= 0 {
		return &TopN{}
	}
	return &TopN{capacity: capacity}
}

// Offer proposes a candidate for inclusion in the heap. `name`, if
// empty and `oid` is being offered as a tree, should already have
// been synthesized by the caller as "<containingCommit>^{tree}" per
// §4.2 of the design this implements; TopN itself is agnostic to what
// kind of object it's ranking.
func (t *TopN) Offer(magnitude counts.Count64, oid git.OID, name string, containingCommit git.OID) {
	if t.capacity == 0 {
		return
	}

	// Find the first slot whose magnitude is strictly less than the
	// candidate's. Using a strict comparison (rather than ≤) means a
	// candidate tied with existing entries is placed after all of
	// them, so an earlier-inserted entry with the same magnitude is
	// never displaced by a later one.
	k := 0
	for k < len(t.entries) && t.entries[k].Magnitude >= magnitude {
		k++
	}
	if k >= t.capacity {
		// Either every slot already holds something ≥ this candidate,
		// or the heap is full and this candidate doesn't outrank the
		// last slot: nothing to do.
		return
	}

	entry := TopNEntry{
		Magnitude:        magnitude,
		OID:              oid,
		Name:             name,
		ContainingCommit: containingCommit,
	}

	if len(t.entries) < t.capacity {
		t.entries = append(t.entries, TopNEntry{})
	}
	copy(t.entries[k+1:], t.entries[k:len(t.entries)-1])
	t.entries[k] = entry
}

// Entries returns the heap's contents, in descending-magnitude order.
func (t *TopN) Entries() []TopNEntry {
	return t.entries
}

// Len returns the number of candidates currently retained.
func (t *TopN) Len() int {
	return len(t.entries)
}

// SyntheticTreeName returns the name to use for a root tree reached
// without a path, i.e. the tree directly owned by commit `oid`.
func SyntheticTreeName(commitOID git.OID) string {
	return fmt.Sprintf("%s^{tree}", commitOID)
}
