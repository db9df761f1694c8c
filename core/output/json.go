package output

import (
	"io"

	"github.com/goccy/go-json"

	"rds-cost/internal/errors"
)

// JSONFormatter writes the full estimation result as indented JSON.
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the result to w.
func (f *JSONFormatter) Render(w io.Writer, result *EstimationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return errors.Internal("encoding estimation result", err)
	}
	return nil
}
