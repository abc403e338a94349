package survey

import (
	"github.com/reposurvey/reposurvey/counts"
	"github.com/reposurvey/reposurvey/git"
)

// BaseStats is the per-object-class statistics shared by commits,
// trees, and blobs: how many were seen, how many were missing from
// the object store, where the present ones were found, and their
// logical/on-disk size totals and distribution.
type BaseStats struct {
	Seen    counts.Count64 `json:"seen"`
	Missing counts.Count64 `json:"missing"`

	CountLoose  counts.Count64 `json:"count_loose"`
	CountPacked counts.Count64 `json:"count_packed"`

	SumLogicalSize counts.Count64  `json:"sum_logical_size"`
	SumOnDiskSize  counts.Count64  `json:"sum_on_disk_size"`
	SizeHistogram  counts.Histogram `json:"size_histogram"`
}

func newBaseStats() BaseStats {
	return BaseStats{SizeHistogram: counts.NewHBinHistogram()}
}

// recordMissing bumps Seen and Missing; it does not touch the size
// sums or histogram, since missing objects are not sized.
func (b *BaseStats) recordMissing() {
	b.Seen.Increment(1)
	b.Missing.Increment(1)
}

func (b *BaseStats) recordSize(logicalSize, onDiskSize counts.Count64, provenance git.Provenance) {
	b.Seen.Increment(1)
	switch provenance {
	case git.ProvenanceLoose:
		b.CountLoose.Increment(1)
	case git.ProvenancePacked:
		b.CountPacked.Increment(1)
	}
	b.SumLogicalSize.Increment(logicalSize)
	b.SumOnDiskSize.Increment(onDiskSize)
	b.SizeHistogram[counts.HBin(logicalSize.ToUint64())].Add(logicalSize, onDiskSize)
}

// CommitStats is the commit-class extension of BaseStats: a histogram
// of parent counts, plus the two commit-keyed top-N heaps.
type CommitStats struct {
	BaseStats

	ParentHistogram counts.PHistogram `json:"parent_count_histogram"`

	LargestByParents *TopN `json:"-"`
	LargestBySize    *TopN `json:"-"`
}

// TreeStats is the tree-class extension of BaseStats: the running sum
// of entry counts, a histogram keyed by entry count, and the two
// tree-keyed top-N heaps.
type TreeStats struct {
	BaseStats

	SumEntries    counts.Count64   `json:"sum_entries"`
	EntryHistogram counts.Histogram `json:"entry_count_histogram"`

	LargestByEntries *TopN `json:"-"`
	LargestBySize    *TopN `json:"-"`
}

// BlobStats is the blob-class extension of BaseStats: just the
// size-keyed top-N heap.
type BlobStats struct {
	BaseStats

	LargestBySize *TopN `json:"-"`
}

// NameLenStats tracks the maximum and total refname length seen
// within a group ("local" or "remote" refs), for computing averages.
type NameLenStats struct {
	Count counts.Count64 `json:"count"`
	Max   counts.Count64 `json:"max"`
	Sum   counts.Count64 `json:"sum"`
}

func (n *NameLenStats) record(length int) {
	l := counts.NewCount64(uint64(length))
	n.Count.Increment(1)
	n.Sum.Increment(l)
	n.Max.AdjustMaxIfNecessary(l)
}

// RefStats is C4's contribution to the report: counts by ref kind and
// storage, symref/annotated-tag counters, the class-prefix
// multiplicity map, and refname-length statistics split into local
// (non-remote) and remote groups.
type RefStats struct {
	Count         counts.Count64 `json:"count"`
	Branches      counts.Count64 `json:"branches"`
	Tags          counts.Count64 `json:"tags"`
	Remotes       counts.Count64 `json:"remotes"`
	Detached      counts.Count64 `json:"detached"`
	Other         counts.Count64 `json:"other"`
	AnnotatedTags counts.Count64 `json:"annotated_tags"`

	Loose  counts.Count64 `json:"loose"`
	Packed counts.Count64 `json:"packed"`
	Symrefs counts.Count64 `json:"symrefs"`

	ClassPrefixCounts map[string]counts.Count64 `json:"class_prefix_counts"`

	LocalNameLen  NameLenStats `json:"local_name_length"`
	RemoteNameLen NameLenStats `json:"remote_name_length"`
}

func newRefStats() RefStats {
	return RefStats{
		ClassPrefixCounts: make(map[string]counts.Count64),
	}
}

// record applies one classified, selected reference to the running
// ref stats (the "per ref" half of §4.6).
func (rs *RefStats) record(ref git.Reference) {
	rs.Count.Increment(1)

	switch ref.Kind {
	case git.KindBranch:
		rs.Branches.Increment(1)
	case git.KindTag:
		rs.Tags.Increment(1)
	case git.KindRemote:
		rs.Remotes.Increment(1)
	case git.KindDetachedHead:
		rs.Detached.Increment(1)
	default:
		rs.Other.Increment(1)
	}

	if ref.ObjectType == git.TypeTag {
		rs.AnnotatedTags.Increment(1)
	}

	if ref.IsPacked {
		rs.Packed.Increment(1)
	} else {
		rs.Loose.Increment(1)
	}

	if ref.IsSymbolic {
		rs.Symrefs.Increment(1)
	}

	prefix := ClassPrefix(ref.Refname)
	rs.ClassPrefixCounts[prefix]++

	if ref.Kind == git.KindRemote {
		rs.RemoteNameLen.record(len(ref.Refname))
	} else {
		rs.LocalNameLen.record(len(ref.Refname))
	}
}

// Report is the complete, frozen statistics record produced by a
// survey run: ref stats plus the three per-object-class stats.
type Report struct {
	Refs    RefStats    `json:"refs"`
	Commits CommitStats `json:"commits"`
	Trees   TreeStats   `json:"trees"`
	Blobs   BlobStats   `json:"blobs"`
}

// Capacities configures how many entries each top-N dimension
// retains; a capacity of 0 disables that dimension entirely.
type Capacities struct {
	CommitParents int
	CommitSizes   int
	TreeEntries   int
	TreeSizes     int
	BlobSizes     int
}

// NewReport allocates a Report with histograms zeroed and top-N heaps
// sized per `cap`.
func NewReport(cap Capacities) *Report {
	return &Report{
		Refs: newRefStats(),
		Commits: CommitStats{
			BaseStats:        newBaseStats(),
			LargestByParents: NewTopN(cap.CommitParents),
			LargestBySize:    NewTopN(cap.CommitSizes),
		},
		Trees: TreeStats{
			BaseStats:        newBaseStats(),
			EntryHistogram:   counts.NewQBinHistogram(),
			LargestByEntries: NewTopN(cap.TreeEntries),
			LargestBySize:    NewTopN(cap.TreeSizes),
		},
		Blobs: BlobStats{
			BaseStats:     newBaseStats(),
			LargestBySize: NewTopN(cap.BlobSizes),
		},
	}
}
