package survey

import (
	"context"
	"fmt"

	"github.com/reposurvey/reposurvey/counts"
	"github.com/reposurvey/reposurvey/git"
	"github.com/reposurvey/reposurvey/meter"
)

// Git's tree-entry filemodes, used to tell a tree's children apart
// without a second object-store round trip: submodule entries (mode
// 160000, "gitlinks") are not walked at all, matching real Git's own
// revision walker.
const (
	filemodeTree      = 0040000
	filemodeSubmodule = 0160000
)

// pendingEntry is what the walker already knows about an OID before
// it is actually visited, learned from its parent's body: its
// intended object type, and (for non-root trees/blobs) the path it
// was reached at.
type pendingEntry struct {
	kind git.ObjectType
	path string
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// Walk performs the combined reachable-object walk (C5), the
// per-object metadata probe (C6), and the stats accumulation (C7). It
// seeds the walk from `roots` (commit OIDs — any annotated tag must
// already have been peeled by the caller) and accumulates into
// `report`.
//
// The walker relies on `git rev-list --objects` to enumerate trees
// and blobs reachable from a commit consecutively within that
// commit's frame (§4.4); the "transient containing commit OID" is a
// single local variable, set on each commit and never threaded
// through a visit record.
func Walk(ctx context.Context, repo *git.Repository, roots []git.OID, report *Report, progress meter.Progress) error {
	iter, err := repo.NewWalkIter(ctx)
	if err != nil {
		return fmt.Errorf("starting object walk: %w", err)
	}

	rootErrCh := make(chan error, 1)
	go func() {
		defer iter.Close()
		for _, oid := range roots {
			if err := iter.AddRoot(oid); err != nil {
				rootErrCh <- err
				return
			}
		}
		rootErrCh <- nil
	}()

	w := &walker{
		repo:    repo,
		report:  report,
		pending: make(map[git.OID]pendingEntry, len(roots)),
	}
	for _, oid := range roots {
		w.pending[oid] = pendingEntry{kind: git.TypeCommit}
	}

	progress.Start("Walking reachable objects")
	var visited int64
	for {
		rec, ok, err := iter.Next()
		if err != nil {
			return fmt.Errorf("walking objects: %w", err)
		}
		if !ok {
			break
		}

		visited++
		if visited%1000 == 0 {
			progress.Add(1000)
		}

		w.visit(rec)
	}
	progress.Done()
	w.currentCommit = git.OID{}

	if err := <-rootErrCh; err != nil {
		return fmt.Errorf("seeding object walk: %w", err)
	}

	return nil
}

// walker carries the ambient state of one in-progress Walk: the
// transient containing-commit OID, and the map of OIDs whose intended
// type and path are already known from their parent's body
// (populated while parsing commits and trees, consumed when that
// child is visited).
type walker struct {
	repo   *git.Repository
	report *Report

	currentCommit git.OID
	pending       map[git.OID]pendingEntry
}

func (w *walker) visit(rec git.WalkRecord) {
	entry := w.pending[rec.OID]
	delete(w.pending, rec.OID)

	if rec.Missing {
		w.visitMissing(entry)
		return
	}

	switch rec.ObjectType {
	case git.TypeCommit:
		w.visitCommit(rec)
	case git.TypeTree:
		w.visitTree(rec, entry.path)
	case git.TypeBlob:
		w.visitBlob(rec, entry.path)
	case git.TypeTag:
		// Silently ignored here: tags enter ref stats via C4, never
		// via the treewalk (§4.9).
	}
}

func (w *walker) visitMissing(entry pendingEntry) {
	kind := entry.kind
	if kind == "" {
		// A missing object we have no other information about; most
		// commonly this is an unreadable blob in a partial clone.
		kind = git.TypeBlob
	}

	switch kind {
	case git.TypeCommit:
		w.report.Commits.recordMissing()
	case git.TypeTree:
		w.report.Trees.recordMissing()
	default:
		w.report.Blobs.recordMissing()
	}
}

func (w *walker) visitCommit(rec git.WalkRecord) {
	w.currentCommit = rec.OID

	commit, err := git.ParseCommit(rec.OID, rec.Data)
	if err != nil {
		// Unparseable commit body: treat like a probe failure rather
		// than crashing the survey.
		w.report.Commits.recordMissing()
		return
	}

	if _, seen := w.pending[commit.Tree]; !seen {
		w.pending[commit.Tree] = pendingEntry{kind: git.TypeTree}
	}
	for _, parent := range commit.Parents {
		if _, seen := w.pending[parent]; !seen {
			w.pending[parent] = pendingEntry{kind: git.TypeCommit}
		}
	}

	logicalSize := counts.NewCount64(uint64(rec.ObjectSize))
	onDiskSize := counts.NewCount64(uint64(rec.OnDiskSize))
	w.report.Commits.recordSize(logicalSize, onDiskSize, w.repo.Provenance(rec.OID))

	nparents := len(commit.Parents)
	w.report.Commits.ParentHistogram[counts.PBin(nparents)].Add(logicalSize, onDiskSize)

	w.report.Commits.LargestByParents.Offer(counts.NewCount64(uint64(nparents)), rec.OID, "", rec.OID)
	w.report.Commits.LargestBySize.Offer(logicalSize, rec.OID, "", rec.OID)
}

func (w *walker) visitTree(rec git.WalkRecord, path string) {
	tree, err := git.ParseTree(rec.OID, rec.Data)
	if err != nil {
		w.report.Trees.recordMissing()
		return
	}

	var nentries int64
	it := tree.Iter()
	for {
		entry, ok, err := it.NextEntry()
		if err != nil || !ok {
			break
		}
		nentries++

		childPath := joinPath(path, entry.Name)
		switch {
		case entry.Filemode&0170000 == filemodeSubmodule:
			// Gitlinks point at another repository's history; they
			// are not walked.
		case entry.Filemode == filemodeTree:
			if _, seen := w.pending[entry.OID]; !seen {
				w.pending[entry.OID] = pendingEntry{kind: git.TypeTree, path: childPath}
			}
		default:
			if _, seen := w.pending[entry.OID]; !seen {
				w.pending[entry.OID] = pendingEntry{kind: git.TypeBlob, path: childPath}
			}
		}
	}

	logicalSize := counts.NewCount64(uint64(rec.ObjectSize))
	onDiskSize := counts.NewCount64(uint64(rec.OnDiskSize))
	w.report.Trees.recordSize(logicalSize, onDiskSize, w.repo.Provenance(rec.OID))
	w.report.Trees.SumEntries.Increment(counts.NewCount64(uint64(nentries)))
	w.report.Trees.EntryHistogram[counts.QBin(uint64(nentries))].Add(logicalSize, onDiskSize)

	// A root tree (reached directly from a commit, with no path of
	// its own) is reported under its commit's synthesized name
	// instead of a path.
	name := path
	if name == "" {
		name = SyntheticTreeName(w.currentCommit)
	}

	w.report.Trees.LargestByEntries.Offer(counts.NewCount64(uint64(nentries)), rec.OID, name, w.currentCommit)
	w.report.Trees.LargestBySize.Offer(logicalSize, rec.OID, name, w.currentCommit)
}

func (w *walker) visitBlob(rec git.WalkRecord, path string) {
	logicalSize := counts.NewCount64(uint64(rec.ObjectSize))
	onDiskSize := counts.NewCount64(uint64(rec.OnDiskSize))
	w.report.Blobs.recordSize(logicalSize, onDiskSize, w.repo.Provenance(rec.OID))
	w.report.Blobs.LargestBySize.Offer(logicalSize, rec.OID, path, w.currentCommit)
}
