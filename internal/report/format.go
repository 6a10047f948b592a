package report

import (
	"fmt"

	"github.com/jesuansito/pymatgen-db/internal/types"
)

// MIME types a formatter can declare for email delivery. HTML output is
// the only format delivered as text/html; everything else, including
// JSON, is sent as plain text.
const (
	MIMEText = "text/plain"
	MIMEHTML = "text/html"
)

// Formatter renders a report document to one concrete text
// representation. Render must be a pure function of the document tree.
// The MIME type is a declared property of the variant, not derived from
// its identity at delivery time.
type Formatter interface {
	Name() string
	MIMEType() string
	Render(r *Report) (string, error)
}

// Lookup resolves an output format name to its formatter. An unknown
// name is a configuration error; callers should resolve formats eagerly,
// before any database work begins.
func Lookup(name string) (Formatter, error) {
	switch name {
	case "json":
		return &JSONFormatter{Indent: 2}, nil
	case "html":
		return &HTMLFormatter{CSS: DefaultCSS}, nil
	case "markdown", "md":
		return &MarkdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q (expected one of %v)",
			types.ErrConfiguration, name, Formats())
	}
}

// Formats lists the selectable format names.
func Formats() []string {
	return []string{"json", "html", "markdown"}
}
