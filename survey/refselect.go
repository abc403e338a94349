package survey

import (
	"strings"

	"github.com/reposurvey/reposurvey/git"
)

// Tristate is an option type with three states: unspecified, or
// explicitly set to a boolean. It exists because the ref-selection
// resolution rule in §4.3 depends on distinguishing "the user never
// mentioned this category" from "the user said no" — a plain `bool`
// can't make that distinction.
type Tristate int

const (
	Unspecified Tristate = iota
	Wanted
	NotWanted
)

// RefSelection carries the tri-state selection flags for the six ref
// categories recognized by the ref-discovery phase.
type RefSelection struct {
	All      Tristate
	Branches Tristate
	Tags     Tristate
	Remotes  Tristate
	Detached Tristate
	Other    Tristate
}

// wanted reports whether the six categories resolve, after applying
// the resolution rules in §4.3:
//
//  1. If `all` is wanted, every category is wanted.
//  2. Else, if every category is unspecified, the built-in default
//     {branches, tags, remotes} applies.
//  3. Else, any category that is still unspecified is not wanted.
type wanted struct {
	branches, tags, remotes, detached, other bool
}

func (rs RefSelection) resolve() wanted {
	if rs.All == Wanted {
		return wanted{true, true, true, true, true}
	}

	if rs.Branches == Unspecified && rs.Tags == Unspecified &&
		rs.Remotes == Unspecified && rs.Detached == Unspecified &&
		rs.Other == Unspecified {
		return wanted{branches: true, tags: true, remotes: true}
	}

	return wanted{
		branches: rs.Branches == Wanted,
		tags:     rs.Tags == Wanted,
		remotes:  rs.Remotes == Wanted,
		detached: rs.Detached == Wanted,
		other:    rs.Other == Wanted,
	}
}

// Wants reports whether `ref` should be included in the walk, given
// this selection.
func (rs RefSelection) Wants(ref git.Reference) bool {
	w := rs.resolve()
	switch ref.Kind {
	case git.KindBranch:
		return w.branches
	case git.KindTag:
		return w.tags
	case git.KindRemote:
		return w.remotes
	case git.KindDetachedHead:
		return w.detached
	default:
		return w.other
	}
}

// ClassPrefix returns the "class prefix" used to aggregate `refname`
// in the ref-stats class-prefix multiplicity map (§4.3): the first
// three path components for `refs/remotes/<remote>/...`, the first
// two for `refs/tags/...` and `refs/heads/...`, and analogously (first
// two) for any other `refs/<namespace>/...`. Anything that isn't
// under `refs/` (i.e. HEAD) maps to itself.
func ClassPrefix(refname string) string {
	if !strings.HasPrefix(refname, "refs/") {
		return refname
	}

	parts := strings.Split(refname, "/")
	switch {
	case len(parts) >= 3 && parts[1] == "remotes":
		n := 3
		if len(parts) < n {
			n = len(parts)
		}
		return strings.Join(parts[:n], "/") + "/"
	case len(parts) >= 2:
		n := 2
		if len(parts) < n {
			n = len(parts)
		}
		return strings.Join(parts[:n], "/") + "/"
	default:
		return refname
	}
}
