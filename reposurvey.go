package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/reposurvey/reposurvey/git"
	"github.com/reposurvey/reposurvey/isatty"
	"github.com/reposurvey/reposurvey/meter"
	"github.com/reposurvey/reposurvey/report"
	"github.com/reposurvey/reposurvey/survey"
)

const usage = `usage: reposurvey [OPTS]

 Scan the objects reachable from a Git repository's references and
 emit statistics characterizing the repository's scale: ref counts,
 object-class size distributions, on-disk footprint, and the largest
 objects along several dimensions.

      -j, --json                output results as a structured JSON tree
                                 instead of a tabular report
      -v, --verbose              include per-dimension detail (largest-
                                 object tables, ref class-prefix counts) in
                                 the tabular report
      --[no-]progress            report (don't report) progress to stderr.
                                 Can be set via gitconfig: 'reposurvey.progress'
      --[no-]name-rev            resolve (don't resolve) a symbolic name for
                                 each top-N entry's containing commit. Can be
                                 set via gitconfig: 'reposurvey.namerev'
      --show-refs                list every reference to stderr, marking
                                 the included ones with '+'

 Reference selection:

      --all-refs                select every ref category
      --branches                select branches (refs/heads)
      --tags                    select tags (refs/tags)
      --remotes                 select remote-tracking refs (refs/remotes)
      --detached                select a detached HEAD
      --other                   select refs outside the categories above

 If none of the above are given, the default selection is branches,
 tags, and remotes.

 Top-N capacities (0 disables a dimension):

      --commit-parents N        largest commits by parent count (default 10)
      --commit-sizes N          largest commits by size (default 10)
      --tree-entries N          largest trees by entry count (default 10)
      --tree-sizes N            largest trees by size (default 10)
      --blob-sizes N            largest blobs by size (default 10)
`

func main() {
	ctx := context.Background()

	err := mainImplementation(ctx, os.Stdout, os.Stderr, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func mainImplementation(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	var jsonOutput, verbose, showRefs bool
	var progress, nameRev bool
	var selection survey.RefSelection
	var capCommitParents, capCommitSizes, capTreeEntries, capTreeSizes, capBlobSizes int

	// Try to open the repository, but it's not an error yet if this
	// fails, because the user might only be asking for `--help`.
	repo, repoErr := git.NewRepositoryFromPath(".")

	flags := pflag.NewFlagSet("reposurvey", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprint(stdout, usage)
	}

	flags.BoolVarP(&jsonOutput, "json", "j", false, "output results as a structured JSON tree")
	flags.BoolVarP(&verbose, "verbose", "v", false, "include per-dimension detail in the tabular report")

	defaultProgress := false
	if f, ok := stderr.(*os.File); ok {
		atty, err := isatty.Isatty(f.Fd())
		if err == nil && atty {
			defaultProgress = true
		}
	}
	flags.BoolVar(&progress, "progress", defaultProgress, "report progress to stderr")
	flags.Var(&NegatedBoolValue{&progress}, "no-progress", "suppress progress output")
	flags.Lookup("no-progress").NoOptDefVal = "true"

	flags.BoolVar(&nameRev, "name-rev", true, "resolve a symbolic name for each top-N entry's containing commit")
	flags.Var(&NegatedBoolValue{&nameRev}, "no-name-rev", "skip name-rev enrichment")
	flags.Lookup("no-name-rev").NoOptDefVal = "true"

	flags.BoolVar(&showRefs, "show-refs", false, "list the references being processed")

	addTristateFlag(flags, &selection.All, "all-refs", "select every ref category")
	addTristateFlag(flags, &selection.Branches, "branches", "select branches")
	addTristateFlag(flags, &selection.Tags, "tags", "select tags")
	addTristateFlag(flags, &selection.Remotes, "remotes", "select remote-tracking refs")
	addTristateFlag(flags, &selection.Detached, "detached", "select a detached HEAD")
	addTristateFlag(flags, &selection.Other, "other", "select refs outside the standard categories")

	flags.IntVar(&capCommitParents, "commit-parents", 10, "largest commits by parent count")
	flags.IntVar(&capCommitSizes, "commit-sizes", 10, "largest commits by size")
	flags.IntVar(&capTreeEntries, "tree-entries", 10, "largest trees by entry count")
	flags.IntVar(&capTreeSizes, "tree-sizes", 10, "largest trees by size")
	flags.IntVar(&capBlobSizes, "blob-sizes", 10, "largest blobs by size")

	flags.SortFlags = false

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if repoErr != nil {
		return fmt.Errorf("couldn't open Git repository: %w", repoErr)
	}

	if err := applyConfigDefaults(flags, repo, &progress, &nameRev, &jsonOutput, &verbose,
		&capCommitParents, &capCommitSizes, &capTreeEntries, &capTreeSizes, &capBlobSizes); err != nil {
		return err
	}

	var progressMeter meter.Progress = meter.NoProgressMeter
	if progress {
		progressMeter = meter.NewProgressMeter(stderr, 100*time.Millisecond)
	}

	rpt := survey.NewReport(survey.Capacities{
		CommitParents: capCommitParents,
		CommitSizes:   capCommitSizes,
		TreeEntries:   capTreeEntries,
		TreeSizes:     capTreeSizes,
		BlobSizes:     capBlobSizes,
	})

	if showRefs {
		if err := printSelectedRefs(ctx, stderr, repo, selection); err != nil {
			return err
		}
	}

	roots, err := survey.DiscoverRefs(ctx, repo, selection, rpt, progressMeter)
	if err != nil {
		return fmt.Errorf("discovering references: %w", err)
	}

	if err := survey.Walk(ctx, repo, roots, rpt, progressMeter); err != nil {
		return fmt.Errorf("walking reachable objects: %w", err)
	}

	if nameRev {
		survey.EnrichNames(ctx, repo, rpt, progressMeter)
	}

	if jsonOutput {
		return report.WriteJSON(stdout, rpt)
	}
	return report.WriteTable(stdout, rpt, verbose)
}

// printSelectedRefs implements the `--show-refs` diagnostic (SPEC_FULL
// §4): it re-lists every reference and marks, per §4.3's resolution
// rule, whether the current selection includes it.
func printSelectedRefs(ctx context.Context, w io.Writer, repo *git.Repository, selection survey.RefSelection) error {
	iter, err := repo.NewReferenceIter(ctx)
	if err != nil {
		return fmt.Errorf("listing references for --show-refs: %w", err)
	}
	fmt.Fprintf(w, "References (included references marked with '+'):\n")
	for {
		ref, ok, err := iter.Next()
		if err != nil {
			return fmt.Errorf("reading references for --show-refs: %w", err)
		}
		if !ok {
			return nil
		}
		mark := " "
		if selection.Wants(ref) {
			mark = "+"
		}
		fmt.Fprintf(w, "%s %s\n", mark, ref.Refname)
	}
}

// applyConfigDefaults fills in any flag the user didn't explicitly
// pass from the repository's `reposurvey.*` gitconfig settings,
// mirroring the teacher's `sizer.*` pattern (SPEC_FULL §4).
func applyConfigDefaults(
	flags *pflag.FlagSet, repo *git.Repository,
	progress, nameRev, jsonOutput, verbose *bool,
	capCommitParents, capCommitSizes, capTreeEntries, capTreeSizes, capBlobSizes *int,
) error {
	var err error

	if !flags.Changed("progress") && !flags.Changed("no-progress") {
		if *progress, err = repo.ConfigBoolDefault("reposurvey.progress", *progress); err != nil {
			return err
		}
	}
	if !flags.Changed("name-rev") && !flags.Changed("no-name-rev") {
		if *nameRev, err = repo.ConfigBoolDefault("reposurvey.namerev", *nameRev); err != nil {
			return err
		}
	}
	if !flags.Changed("json") {
		if *jsonOutput, err = repo.ConfigBoolDefault("reposurvey.json", *jsonOutput); err != nil {
			return err
		}
	}
	if !flags.Changed("verbose") {
		if *verbose, err = repo.ConfigBoolDefault("reposurvey.verbose", *verbose); err != nil {
			return err
		}
	}
	if !flags.Changed("commit-parents") {
		if *capCommitParents, err = repo.ConfigIntDefault("reposurvey.showcommitparents", *capCommitParents); err != nil {
			return err
		}
	}
	if !flags.Changed("commit-sizes") {
		if *capCommitSizes, err = repo.ConfigIntDefault("reposurvey.showcommitsizes", *capCommitSizes); err != nil {
			return err
		}
	}
	if !flags.Changed("tree-entries") {
		if *capTreeEntries, err = repo.ConfigIntDefault("reposurvey.showtreeentries", *capTreeEntries); err != nil {
			return err
		}
	}
	if !flags.Changed("tree-sizes") {
		if *capTreeSizes, err = repo.ConfigIntDefault("reposurvey.showtreesizes", *capTreeSizes); err != nil {
			return err
		}
	}
	if !flags.Changed("blob-sizes") {
		if *capBlobSizes, err = repo.ConfigIntDefault("reposurvey.showblobsizes", *capBlobSizes); err != nil {
			return err
		}
	}

	return nil
}
