package git

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// packedRefs caches the set of refnames stored in this repository's
// packed-refs file, since the for-each-ref record format has no way
// to report whether a given ref is packed or loose.
type packedRefs struct {
	once  sync.Once
	names map[string]struct{}
}

func (repo *Repository) isPacked(refname string) bool {
	repo.packedRefsOnce.once.Do(func() {
		repo.packedRefsOnce.names = readPackedRefs(repo.GitDir)
	})
	_, ok := repo.packedRefsOnce.names[refname]
	return ok
}

func readPackedRefs(gitDir string) map[string]struct{} {
	names := make(map[string]struct{})

	f, err := os.Open(filepath.Join(gitDir, "packed-refs"))
	if err != nil {
		return names
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == '#' || line[0] == '^' {
			// Comment/header line, or the peeled-OID line that
			// follows an annotated tag entry.
			continue
		}
		spAt := strings.IndexByte(line, ' ')
		if spAt < 0 {
			continue
		}
		names[line[spAt+1:]] = struct{}{}
	}

	return names
}
