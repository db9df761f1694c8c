// Package output renders estimation results as console tables, markdown
// reports and machine-readable JSON.
package output

import (
	"io"

	"rds-cost/core/estimator"
	"rds-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *EstimationResult) error
}

// EstimationResult contains the complete estimation output
type EstimationResult struct {
	// Report is the flat key-value report every renderer reads from
	Report estimator.Report `json:"report"`

	// Rows is the per-instance cost comparison
	Rows []estimator.CostRow `json:"rows"`

	// Metadata contains execution context
	Metadata EstimationMetadata `json:"metadata"`
}

// EstimationMetadata contains execution context
type EstimationMetadata struct {
	// Timestamp is when the estimation was performed
	Timestamp string `json:"timestamp"`

	// Duration is how long the estimation took
	Duration string `json:"duration"`

	// Region is the target AWS region
	Region string `json:"region"`

	// Engine is the target database engine
	Engine string `json:"engine"`

	// Version is the tool version
	Version string `json:"version"`
}

// New returns the formatter for a format name.
func New(format string) (Formatter, error) {
	switch Format(format) {
	case FormatCLI, "":
		return &ConsoleFormatter{ShowDetails: true}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{}, nil
	default:
		return nil, errors.Inputf("unknown output format %q (want cli, json or markdown)", format)
	}
}
