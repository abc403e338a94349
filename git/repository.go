package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ObjectType is the type of a Git object, as reported by Git itself
// (e.g. in the output of `cat-file --batch` or `for-each-ref`).
type ObjectType string

const (
	TypeCommit ObjectType = "commit"
	TypeTree   ObjectType = "tree"
	TypeBlob   ObjectType = "blob"
	TypeTag    ObjectType = "tag"
)

// NullOID is the zero-valued OID, used where callers need a sentinel
// "no object" value (e.g. a failed resolution).
var NullOID OID

// Repository represents a Git repository on the local filesystem,
// identified by its GIT_DIR.
type Repository struct {
	// GitDir is the path to the repository's GIT_DIR (for a bare
	// repository, the repository root itself).
	GitDir string

	// hashAlgo is the repository's configured object-hash algorithm,
	// discovered once at construction time.
	hashAlgo HashAlgo

	// packedRefsOnce caches the set of packed refnames on first use.
	packedRefsOnce packedRefs
}

// NewRepository creates a `Repository` object corresponding to the
// already-resolved GIT_DIR at `gitDir`.
func NewRepository(gitDir string) (*Repository, error) {
	repo := &Repository{
		GitDir: gitDir,
	}

	algo, err := repo.readHashAlgo()
	if err != nil {
		return nil, err
	}
	repo.hashAlgo = algo

	return repo, nil
}

// NewRepositoryFromPath creates a `Repository` object for the
// repository that contains `path` (typically "."), resolving its
// GIT_DIR via `git rev-parse --absolute-git-dir`.
func NewRepositoryFromPath(path string) (*Repository, error) {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--absolute-git-dir")
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("running 'git rev-parse --absolute-git-dir': %w", err)
	}
	gitDir := filepath.Clean(string(trimTrailingNewline(out)))
	return NewRepository(gitDir)
}

func trimTrailingNewline(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		return b[:len(b)-1]
	}
	return b
}

// GitCommand creates an `exec.Cmd` that invokes `git` with the given
// arguments, within this repository's GIT_DIR.
func (repo *Repository) GitCommand(args ...string) *exec.Cmd {
	gitBin, err := findGitBin()
	if err != nil {
		// `findGitBin` is memoized, so a lookup failure is not retried;
		// here we degrade to a `Cmd` that uses a plain PATH lookup of
		// `git` and fails when run if none is found.
		gitBin = "git"
	}
	allArgs := append([]string{"--git-dir=" + repo.GitDir}, args...)
	return exec.Command(gitBin, allArgs...)
}

// HashSize returns the size, in bytes, of object IDs in this
// repository (20 for SHA-1, 32 for SHA-256).
func (repo *Repository) HashSize() int {
	return repo.hashAlgo.HashSize()
}

// readHashAlgo determines which hash algorithm this repository uses
// for object IDs, via `git rev-parse --show-object-format`, falling
// back to SHA-1 on older Git versions that don't support the option.
func (repo *Repository) readHashAlgo() (HashAlgo, error) {
	cmd := repo.GitCommand("rev-parse", "--show-object-format")
	out, err := cmd.Output()
	if err != nil {
		// Git before 2.29 doesn't know `--show-object-format` and
		// exits nonzero; every repository it can create is SHA-1.
		return HashSHA1, nil
	}
	switch string(trimTrailingNewline(out)) {
	case "sha256":
		return HashSHA256, nil
	default:
		return HashSHA1, nil
	}
}
