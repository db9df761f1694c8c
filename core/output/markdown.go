package output

import (
	"embed"
	"io"
	"os"
	"strings"
	"text/template"

	"rds-cost/internal/errors"
)

//go:embed templates/report.md.tmpl
var templateFS embed.FS

// MarkdownFormatter renders the full migration report from a template.
// Every report key the template references must exist; a typo in a key name
// fails the render instead of printing an empty cell.
type MarkdownFormatter struct {
	// TemplatePath overrides the embedded default template.
	TemplatePath string
}

// Format returns the format type
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// optionColumn labels one purchase option row in the templates.
type optionColumn struct {
	Code  string
	Label string
}

// funcs are the template helpers. get joins its parts into a report key and
// fails on absence, which is what makes dynamic family-keyed lookups like
// spec_<family>_od_monthly safe to write in templates.
func funcs() template.FuncMap {
	return template.FuncMap{
		"get": func(report map[string]string, parts ...string) (string, error) {
			key := strings.Join(parts, "")
			v, ok := report[key]
			if !ok {
				return "", errors.Newf(errors.TypeInternal, "report key %q not found", key)
			}
			return v, nil
		},
		"prefixes": func() []string {
			return []string{"spec", "sga"}
		},
		"options": func() []optionColumn {
			return []optionColumn{
				{"od", "On-demand"},
				{"ri1nu", "RI 1yr no-upfront"},
				{"ri1au", "RI 1yr all-upfront"},
				{"ri3nu", "RI 3yr no-upfront"},
				{"ri3au", "RI 3yr all-upfront"},
			}
		},
	}
}

func (f *MarkdownFormatter) load() (*template.Template, error) {
	tmpl := template.New("report.md.tmpl").Funcs(funcs()).Option("missingkey=error")

	if f.TemplatePath != "" {
		raw, err := os.ReadFile(f.TemplatePath)
		if err != nil {
			return nil, errors.Wrap(errors.TypeConfig, "reading report template", err)
		}
		return tmpl.Parse(string(raw))
	}

	raw, err := templateFS.ReadFile("templates/report.md.tmpl")
	if err != nil {
		return nil, errors.Internal("loading embedded report template", err)
	}
	return tmpl.Parse(string(raw))
}

// Render writes the result to w.
func (f *MarkdownFormatter) Render(w io.Writer, result *EstimationResult) error {
	tmpl, err := f.load()
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, result); err != nil {
		return errors.Internal("rendering report template", err)
	}
	return nil
}
