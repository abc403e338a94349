package git

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reposurvey/reposurvey/counts"
)

// RefKind classifies a reference by where it lives in the refname
// hierarchy.
type RefKind string

const (
	KindBranch       RefKind = "branch"
	KindTag          RefKind = "tag"
	KindRemote       RefKind = "remote"
	KindDetachedHead RefKind = "detached-head"
	KindOther        RefKind = "other"
)

// Reference represents a Git reference, enriched with the
// classification and storage metadata that the ref-discovery phase
// reports alongside it.
type Reference struct {
	// Refname is the full reference name of the reference.
	Refname string

	// ObjectType is the type of the object referenced.
	ObjectType ObjectType

	// ObjectSize is the size of the referred-to object, in bytes.
	ObjectSize counts.Count32

	// OID is the OID of the referred-to object. For a symbolic
	// reference, this is the OID that the reference resolves to.
	OID OID

	// Kind classifies the reference by its place in the refname
	// hierarchy (branch/tag/remote/detached-head/other).
	Kind RefKind

	// IsSymbolic is true if this reference is a symbolic ref (e.g. a
	// HEAD pointing at a branch) rather than a direct ref.
	IsSymbolic bool

	// IsPacked is true if this reference is stored in packed-refs
	// rather than as a loose ref file.
	IsPacked bool

	// Peeled is the OID that an annotated tag points to, after
	// following the tag object; it is the zero OID for anything that
	// isn't an annotated tag.
	Peeled OID
}

// ParseReference parses `line` (a non-LF-terminated line) into a
// `Reference`. It is assumed that `line` is formatted like the output
// of
//
//	git for-each-ref --include-root-refs --format='%(objectname) %(objecttype) %(objectsize) %(refname) %(symref) %(*objectname) %(*objecttype)'
func ParseReference(line string) (Reference, error) {
	words := strings.Split(line, " ")
	if len(words) != 7 {
		return Reference{}, fmt.Errorf("line improperly formatted: %#v", line)
	}
	oid, err := NewOID(words[0])
	if err != nil {
		return Reference{}, fmt.Errorf("object id improperly formatted: %#v", words[0])
	}
	objectType := ObjectType(words[1])
	objectSize, err := strconv.ParseUint(words[2], 10, 32)
	if err != nil {
		return Reference{}, fmt.Errorf("object size improperly formatted: %#v", words[2])
	}
	refname := words[3]
	isSymbolic := words[4] != ""

	var peeled OID
	if words[5] != "" {
		peeled, err = NewOID(words[5])
		if err != nil {
			return Reference{}, fmt.Errorf("peeled object id improperly formatted: %#v", words[5])
		}
	}

	return Reference{
		Refname:    refname,
		ObjectType: objectType,
		ObjectSize: counts.Count32(objectSize),
		OID:        oid,
		Kind:       classifyKind(refname, isSymbolic),
		IsSymbolic: isSymbolic,
		Peeled:     peeled,
	}, nil
}

// classifyKind classifies a refname into one of the five ref kinds.
// HEAD is a detached-head only when it is not itself a symbolic ref;
// a HEAD that symbolically points at a branch is classified as
// "other" (it is recorded as a symref, not as the branch it points
// at, and not as a detached head).
func classifyKind(refname string, isSymbolic bool) RefKind {
	switch {
	case refname == "HEAD":
		if isSymbolic {
			return KindOther
		}
		return KindDetachedHead
	case strings.HasPrefix(refname, "refs/heads/"):
		return KindBranch
	case strings.HasPrefix(refname, "refs/tags/"):
		return KindTag
	case strings.HasPrefix(refname, "refs/remotes/"):
		return KindRemote
	default:
		return KindOther
	}
}
