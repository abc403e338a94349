package survey

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/github/go-pipe/pipe"

	"github.com/reposurvey/reposurvey/git"
	"github.com/reposurvey/reposurvey/meter"
)

// heaps is the fixed set of top-N dimensions that C8 draws containing-
// commit OIDs from, in the order they should be batched: this keeps
// enrichment's input order (and therefore its progress count)
// independent of map iteration.
func (r *Report) heaps() []*TopN {
	return []*TopN{
		r.Commits.LargestByParents,
		r.Commits.LargestBySize,
		r.Trees.LargestByEntries,
		r.Trees.LargestBySize,
		r.Blobs.LargestBySize,
	}
}

// EnrichNames performs C8: it collects the distinct containing-commit
// OIDs referenced by every top-N heap in `report`, asks `git
// name-rev` to describe each one's reachability from a ref, and fills
// in each entry's NameRev field with the result.
//
// Any failure running or reading from the subprocess is non-fatal
// (§4.7, §4.9): entries simply keep their raw OIDs and the report is
// still emitted.
func EnrichNames(ctx context.Context, repo *git.Repository, report *Report, progress meter.Progress) {
	order, index := collectContainingCommits(report)
	if len(order) == 0 {
		return
	}

	names, err := nameRev(ctx, repo, order)
	if err != nil {
		// Enrichment is best-effort: leave every NameRev field unset
		// and fall back to raw OIDs in the report.
		return
	}

	progress.Start("Resolving names for large objects")
	for _, heap := range report.heaps() {
		for i := range heap.entries {
			if k, ok := index[heap.entries[i].ContainingCommit]; ok && k < len(names) {
				heap.entries[i].NameRev = names[k]
			}
		}
		progress.Add(int64(heap.Len()))
	}
	progress.Done()
}

// collectContainingCommits gathers the distinct containing-commit
// OIDs across all of `report`'s top-N heaps, preserving first-seen
// order, along with a map from OID to its position in that order.
func collectContainingCommits(report *Report) ([]git.OID, map[git.OID]int) {
	index := make(map[git.OID]int)
	var order []git.OID

	for _, heap := range report.heaps() {
		for _, entry := range heap.Entries() {
			if _, seen := index[entry.ContainingCommit]; seen {
				continue
			}
			index[entry.ContainingCommit] = len(order)
			order = append(order, entry.ContainingCommit)
		}
	}

	return order, index
}

// nameRev hands `oids` to `git name-rev --stdin`, newline-delimited,
// and returns the symbolic name it reports for each, in the same
// order (§4.7). The command's output is consumed line-for-line; a
// truncated or malformed response is treated as a hard failure of the
// whole batch, letting the caller fall back to raw OIDs.
func nameRev(ctx context.Context, repo *git.Repository, oids []git.OID) ([]string, error) {
	p := pipe.New()

	p.Add(
		pipe.Function(
			"write-oids",
			func(ctx context.Context, _ pipe.Env, _ io.Reader, stdout io.Writer) error {
				out := bufio.NewWriter(stdout)
				for _, oid := range oids {
					if _, err := fmt.Fprintln(out, oid.String()); err != nil {
						return fmt.Errorf("writing to 'git name-rev': %w", err)
					}
				}
				return out.Flush()
			},
		),

		pipe.CommandStage(
			"git-name-rev",
			repo.GitCommand("name-rev", "--stdin", "--name-only", "--always"),
		),
	)

	var lines []string
	p.Add(
		pipe.Function(
			"read-names",
			func(ctx context.Context, _ pipe.Env, stdin io.Reader, _ io.Writer) error {
				scanner := bufio.NewScanner(stdin)
				scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
				for scanner.Scan() {
					lines = append(lines, scanner.Text())
				}
				return scanner.Err()
			},
		),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := p.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting 'git name-rev': %w", err)
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("running 'git name-rev': %w", err)
	}

	if len(lines) != len(oids) {
		return nil, fmt.Errorf(
			"'git name-rev' returned %d lines for %d OIDs", len(lines), len(oids),
		)
	}

	return lines, nil
}
