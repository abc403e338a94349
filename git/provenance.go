package git

import (
	"os"
	"path/filepath"
)

// Provenance records where the object store satisfied a lookup from.
// Our shell-out object store only ever distinguishes loose from
// packed; the "cached" and "dbcached" provenances named in the
// abstract object-store interface describe in-process cache layers
// that a subprocess-based implementation has no visibility into, so
// this package never reports them.
type Provenance string

const (
	ProvenanceLoose  Provenance = "loose"
	ProvenancePacked Provenance = "packed"
)

// Provenance reports whether `oid` is presently stored as a loose
// object file or (the assumption if it isn't) in a packfile. `oid`
// must be known to exist; this is a best-effort classification, not
// a store lookup, so it never errors.
func (repo *Repository) Provenance(oid OID) Provenance {
	hex := oid.String()
	loosePath := filepath.Join(repo.GitDir, "objects", hex[:2], hex[2:])
	if _, err := os.Stat(loosePath); err == nil {
		return ProvenanceLoose
	}
	return ProvenancePacked
}
