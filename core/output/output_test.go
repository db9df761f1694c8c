package output

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rds-cost/core/estimator"
	"rds-cost/core/factstore"
	"rds-cost/core/types"
)

func testResult(t *testing.T) *EstimationResult {
	t.Helper()

	size := 500.0
	store := factstore.New()
	store.SetProfile(&types.AssessmentProfile{
		Server: types.ServerInfo{DBName: "ORCL", DBSizeGB: &size},
	})

	e := estimator.New(estimator.Inputs{
		Region:              "ap-northeast-2",
		Engine:              "oracle-ee",
		RecommendedInstance: "db.r6i.xlarge",
	}, store)

	report, err := e.BuildReport()
	require.NoError(t, err)

	return &EstimationResult{
		Report: report,
		Rows:   e.CostRows(),
		Metadata: EstimationMetadata{
			Timestamp: "2026-01-01T00:00:00Z",
			Duration:  "1.2s",
			Region:    "ap-northeast-2",
			Engine:    "oracle-ee",
			Version:   "0.1.0",
		},
	}
}

func TestNewSelectsFormatter(t *testing.T) {
	for name, want := range map[string]Format{
		"":         FormatCLI,
		"cli":      FormatCLI,
		"json":     FormatJSON,
		"markdown": FormatMarkdown,
	} {
		f, err := New(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, f.Format())
	}

	_, err := New("xml")
	assert.Error(t, err)
}

func TestJSONRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Render(&buf, testResult(t)))

	var decoded EstimationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "ORCL", decoded.Report["db_name"])
	assert.Equal(t, "0.1.0", decoded.Metadata.Version)
}

func TestConsoleRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&ConsoleFormatter{ShowDetails: true}).Render(&buf, testResult(t)))

	out := buf.String()
	assert.Contains(t, out, "RDS MIGRATION COST ESTIMATE")
	assert.Contains(t, out, "ORCL")
	assert.Contains(t, out, "STORAGE MONTHLY")
}

func TestMarkdownRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownFormatter{}).Render(&buf, testResult(t)))

	out := buf.String()
	assert.Contains(t, out, "# RDS Migration Cost Report: ORCL")
	assert.Contains(t, out, "## Storage Projection")
	assert.Contains(t, out, "## Three-Year TCO")
	assert.Contains(t, out, "## Yearly Comparison")

	// no refactoring facts collected, so the section stays hidden
	assert.NotContains(t, out, "Refactoring to Aurora PostgreSQL")
}

func TestMarkdownFailsOnMissingKey(t *testing.T) {
	result := testResult(t)
	delete(result.Report, "stor_total_0y")

	var buf bytes.Buffer
	err := (&MarkdownFormatter{}).Render(&buf, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stor_total_0y")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "loremip...", truncate("loremipsumdolor", 10))
}
