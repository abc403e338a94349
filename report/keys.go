// Package report implements C9: it packages a finished survey.Report
// into the two output sinks named in the design — a structured tree
// (JSON) and a human-readable tabular report — without itself judging
// or interpreting the numbers it's given.
package report

import "fmt"

// HKey returns the structured-output key for base-16 histogram bin
// `i`: "H0".."H15".
func HKey(i int) string {
	return fmt.Sprintf("H%d", i)
}

// QKey returns the structured-output key for base-4 histogram bin
// `i`: "Q00".."Q31".
func QKey(i int) string {
	return fmt.Sprintf("Q%02d", i)
}

// PKey returns the structured-output key for parent-count histogram
// bin `i`: "P00".."P16".
func PKey(i int) string {
	return fmt.Sprintf("P%02d", i)
}
