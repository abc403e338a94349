package survey

import (
	"context"
	"fmt"
	"sort"

	"github.com/reposurvey/reposurvey/git"
	"github.com/reposurvey/reposurvey/meter"
)

// DiscoverRefs performs C4: it enumerates every reference in `repo`,
// classifies it, applies `selection` to decide which ones are in
// scope for the walk, records per-ref statistics into `report`, and
// returns the commit OIDs that should seed the reachable-object walk
// (§4.3–4.4). Annotated tags contribute their peeled commit OID as a
// root rather than the tag object itself, since the walker never
// visits tag objects directly (§4.9).
//
// The selected refs are sorted by their own OID (for an annotated tag,
// the tag object's OID, not the peeled root) before their roots are
// collected, so that the walk — and
// therefore which commit is recorded as "first to introduce" any
// given tree or blob — is deterministic (§3, Invariants).
func DiscoverRefs(ctx context.Context, repo *git.Repository, selection RefSelection, report *Report, progress meter.Progress) ([]git.OID, error) {
	iter, err := repo.NewReferenceIter(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}

	var refs []git.Reference
	for {
		ref, ok, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("reading references: %w", err)
		}
		if !ok {
			break
		}
		if !selection.Wants(ref) {
			continue
		}
		refs = append(refs, ref)
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].OID.String() < refs[j].OID.String()
	})

	roots := make([]git.OID, 0, len(refs))
	for _, ref := range refs {
		report.Refs.record(ref)

		root := ref.OID
		if ref.ObjectType == git.TypeTag && !git.IsNullOID(ref.Peeled) {
			root = ref.Peeled
		}
		roots = append(roots, root)

		progress.Add(1)
	}

	return roots, nil
}
