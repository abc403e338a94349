package main

import (
	"strconv"

	"github.com/spf13/pflag"

	"github.com/reposurvey/reposurvey/survey"
)

// tristateValue adapts a `survey.Tristate` ref-selection field to the
// `pflag.Value` interface so that a bare `--branches` (with no
// explicit argument, via `NoOptDefVal`) resolves it to `Wanted`
// without disturbing fields the user never mentioned, preserving the
// "unspecified vs false" distinction §4.3's resolution rule depends
// on.
type tristateValue struct {
	v *survey.Tristate
}

func (t *tristateValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if b {
		*t.v = survey.Wanted
	} else {
		*t.v = survey.NotWanted
	}
	return nil
}

func (t *tristateValue) String() string {
	if t == nil || t.v == nil {
		return "unspecified"
	}
	switch *t.v {
	case survey.Wanted:
		return "true"
	case survey.NotWanted:
		return "false"
	default:
		return "unspecified"
	}
}

func (t *tristateValue) Type() string {
	return "bool"
}

// addTristateFlag registers a positive-only boolean flag (§6: the
// command-line flags are all positive-only) that resolves `dst` to
// `Wanted` when passed bare, leaving it `Unspecified` otherwise.
func addTristateFlag(flags *pflag.FlagSet, dst *survey.Tristate, name, usage string) {
	flags.Var(&tristateValue{dst}, name, usage)
	flags.Lookup(name).NoOptDefVal = "true"
}
