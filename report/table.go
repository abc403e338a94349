package report

import (
	"fmt"
	"io"

	"github.com/reposurvey/reposurvey/counts"
	"github.com/reposurvey/reposurvey/survey"
)

// WriteTable renders `r` as a human-readable tabular report to `w`,
// with fixed-width columns and the section headers OVERVIEW / REFS /
// COMMITS / TREES / BLOBS prescribed by §6. When `verbose` is set,
// each section's top-N tables are included in full; otherwise only
// the base counts and sums are shown.
func WriteTable(w io.Writer, r *survey.Report, verbose bool) error {
	t := &tableWriter{w: w}

	t.header("OVERVIEW")
	t.row("Total references", metric(r.Refs.Count))
	t.row("Total commits", metric(r.Commits.Seen))
	t.row("Total trees", metric(r.Trees.Seen))
	t.row("Total blobs", metric(r.Blobs.Seen))
	t.blank()

	t.header("REFS")
	t.row("Count", metric(r.Refs.Count))
	t.row("Branches", metric(r.Refs.Branches))
	t.row("Tags", metric(r.Refs.Tags))
	t.row("Annotated tags", metric(r.Refs.AnnotatedTags))
	t.row("Remote-tracking", metric(r.Refs.Remotes))
	t.row("Detached HEAD", metric(r.Refs.Detached))
	t.row("Other", metric(r.Refs.Other))
	t.row("Symbolic refs", metric(r.Refs.Symrefs))
	t.row("Packed", metric(r.Refs.Packed))
	t.row("Loose", metric(r.Refs.Loose))
	if verbose {
		for prefix, count := range r.Refs.ClassPrefixCounts {
			t.row("  "+prefix, metric(count))
		}
	}
	t.blank()

	t.header("COMMITS")
	writeBase(t, r.Commits.BaseStats)
	if verbose {
		writeTopN(t, "Largest by parent count", r.Commits.LargestByParents.Entries())
		writeTopN(t, "Largest by size", r.Commits.LargestBySize.Entries())
	}
	t.blank()

	t.header("TREES")
	writeBase(t, r.Trees.BaseStats)
	t.row("Total entries", metric(r.Trees.SumEntries))
	if verbose {
		writeTopN(t, "Largest by entry count", r.Trees.LargestByEntries.Entries())
		writeTopN(t, "Largest by size", r.Trees.LargestBySize.Entries())
	}
	t.blank()

	t.header("BLOBS")
	writeBase(t, r.Blobs.BaseStats)
	if verbose {
		writeTopN(t, "Largest by size", r.Blobs.LargestBySize.Entries())
	}

	return t.err
}

func writeBase(t *tableWriter, b survey.BaseStats) {
	t.row("Seen", metric(b.Seen))
	t.row("Missing", metric(b.Missing))
	t.row("Loose", metric(b.CountLoose))
	t.row("Packed", metric(b.CountPacked))
	t.row("Total size", binary(b.SumLogicalSize, "B"))
	t.row("Total on-disk size", binary(b.SumOnDiskSize, "B"))
}

func writeTopN(t *tableWriter, label string, entries []survey.TopNEntry) {
	if len(entries) == 0 {
		return
	}
	t.row(label, "")
	for _, e := range entries {
		name := e.NameRev
		if name == "" {
			name = e.OID.String()
		}
		if e.Name != "" {
			name = fmt.Sprintf("%s (%s)", name, e.Name)
		}
		t.row("  "+name, metric(e.Magnitude))
	}
}

func metric(c counts.Count64) string {
	val, unit := c.Human(counts.Metric, "")
	return joinValueUnit(val, unit)
}

func binary(c counts.Count64, unit string) string {
	val, u := c.Human(counts.Binary, unit)
	return joinValueUnit(val, u)
}

func joinValueUnit(val, unit string) string {
	if unit == "" {
		return val
	}
	return val + " " + unit
}

// tableWriter formats fixed-width, two-column rows: a left-aligned
// name and a right-aligned value, with no separators and no
// threshold/level-of-concern columns, which this survey doesn't
// compute (§4, Non-goals).
type tableWriter struct {
	w   io.Writer
	err error
}

func (t *tableWriter) header(name string) {
	t.printf("%s\n", name)
	t.printf("%s\n", underline(name))
}

func (t *tableWriter) blank() {
	t.printf("\n")
}

func (t *tableWriter) row(name string, value string) {
	if value == "" {
		t.printf("  %s\n", name)
		return
	}
	t.printf("  %-30s %12s\n", name, value)
}

func (t *tableWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, err := fmt.Fprintf(t.w, format, args...)
	t.err = err
}

func underline(name string) string {
	b := make([]byte, len(name))
	for i := range b {
		b[i] = '='
	}
	return string(b)
}
