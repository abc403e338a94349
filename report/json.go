package report

import (
	"encoding/json"
	"io"

	"github.com/reposurvey/reposurvey/counts"
	"github.com/reposurvey/reposurvey/survey"
)

// objectClass is the structured-output shape shared by commits,
// trees, and blobs: survey.BaseStats, but with its histogram
// re-keyed from a plain array into the "H0".."Q31"-style map
// prescribed by §6 instead of exposing bin indices positionally.
type objectClass struct {
	Seen    counts.Count64 `json:"seen"`
	Missing counts.Count64 `json:"missing"`

	CountLoose  counts.Count64 `json:"count_loose"`
	CountPacked counts.Count64 `json:"count_packed"`

	SumLogicalSize counts.Count64         `json:"sum_logical_size"`
	SumOnDiskSize  counts.Count64         `json:"sum_on_disk_size"`
	SizeHistogram  map[string]counts.Bin `json:"size_histogram"`
}

func newObjectClass(b survey.BaseStats, keyFn func(int) string) objectClass {
	hist := make(map[string]counts.Bin, len(b.SizeHistogram))
	for i, bin := range b.SizeHistogram {
		hist[keyFn(i)] = bin
	}
	return objectClass{
		Seen:           b.Seen,
		Missing:        b.Missing,
		CountLoose:     b.CountLoose,
		CountPacked:    b.CountPacked,
		SumLogicalSize: b.SumLogicalSize,
		SumOnDiskSize:  b.SumOnDiskSize,
		SizeHistogram:  hist,
	}
}

type commitsDoc struct {
	objectClass
	ParentCountHistogram map[string]counts.Bin `json:"parent_count_histogram"`
	LargestByParents     []survey.TopNEntry     `json:"largest_by_parent_count,omitempty"`
	LargestBySize        []survey.TopNEntry     `json:"largest_by_size,omitempty"`
}

type treesDoc struct {
	objectClass
	SumEntries      counts.Count64          `json:"sum_entries"`
	EntryCountHistogram map[string]counts.Bin `json:"entry_count_histogram"`
	LargestByEntries []survey.TopNEntry      `json:"largest_by_entry_count,omitempty"`
	LargestBySize    []survey.TopNEntry      `json:"largest_by_size,omitempty"`
}

type blobsDoc struct {
	objectClass
	LargestBySize []survey.TopNEntry `json:"largest_by_size,omitempty"`
}

// document is the complete structured-output tree: top-level keys
// refs, commits, trees, blobs (§6).
type document struct {
	Refs    survey.RefStats `json:"refs"`
	Commits commitsDoc      `json:"commits"`
	Trees   treesDoc        `json:"trees"`
	Blobs   blobsDoc        `json:"blobs"`
}

func newDocument(r *survey.Report) document {
	parentHist := make(map[string]counts.Bin, len(r.Commits.ParentHistogram))
	for i, bin := range r.Commits.ParentHistogram {
		parentHist[PKey(i)] = bin
	}

	entryHist := make(map[string]counts.Bin, len(r.Trees.EntryHistogram))
	for i, bin := range r.Trees.EntryHistogram {
		entryHist[QKey(i)] = bin
	}

	return document{
		Refs: r.Refs,
		Commits: commitsDoc{
			objectClass:          newObjectClass(r.Commits.BaseStats, HKey),
			ParentCountHistogram: parentHist,
			LargestByParents:     r.Commits.LargestByParents.Entries(),
			LargestBySize:        r.Commits.LargestBySize.Entries(),
		},
		Trees: treesDoc{
			objectClass:         newObjectClass(r.Trees.BaseStats, HKey),
			SumEntries:          r.Trees.SumEntries,
			EntryCountHistogram: entryHist,
			LargestByEntries:    r.Trees.LargestByEntries.Entries(),
			LargestBySize:       r.Trees.LargestBySize.Entries(),
		},
		Blobs: blobsDoc{
			objectClass:   newObjectClass(r.Blobs.BaseStats, HKey),
			LargestBySize: r.Blobs.LargestBySize.Entries(),
		},
	}
}

// WriteJSON marshals `r` into the structured-tree form described in
// §6 and writes it to `w`.
func WriteJSON(w io.Writer, r *survey.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(newDocument(r))
}
