package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposurvey/reposurvey/report"
)

func TestWriteTableIncludesSectionHeaders(t *testing.T) {
	rpt := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf, rpt, false))

	out := buf.String()
	for _, header := range []string{"OVERVIEW", "REFS", "COMMITS", "TREES", "BLOBS"} {
		assert.Contains(t, out, header)
	}
}

func TestWriteTableVerboseIncludesTopNDetail(t *testing.T) {
	rpt := sampleReport()

	var terse bytes.Buffer
	require.NoError(t, report.WriteTable(&terse, rpt, false))
	assert.NotContains(t, terse.String(), "big.bin")

	var verbose bytes.Buffer
	require.NoError(t, report.WriteTable(&verbose, rpt, true))
	assert.Contains(t, verbose.String(), "big.bin")
}
