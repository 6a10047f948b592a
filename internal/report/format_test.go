// internal/report/format_test.go
package report

import (
	"errors"
	"testing"

	"github.com/jesuansito/pymatgen-db/internal/types"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		arg  string
		name string
		mime string
	}{
		{"json", "json", MIMEText},
		{"html", "html", MIMEHTML},
		{"markdown", "markdown", MIMEText},
		{"md", "markdown", MIMEText},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			f, err := Lookup(tt.arg)
			if err != nil {
				t.Fatal(err)
			}
			if f.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", f.Name(), tt.name)
			}
			if f.MIMEType() != tt.mime {
				t.Errorf("MIMEType() = %q, want %q", f.MIMEType(), tt.mime)
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("yaml")
	if !errors.Is(err, types.ErrConfiguration) {
		t.Errorf("error = %v, want ErrConfiguration", err)
	}
}

// Every selectable format resolves, and only HTML declares text/html.
func TestFormats_AllResolvable(t *testing.T) {
	for _, name := range Formats() {
		f, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
			continue
		}
		wantMIME := MIMEText
		if name == "html" {
			wantMIME = MIMEHTML
		}
		if f.MIMEType() != wantMIME {
			t.Errorf("%s MIMEType = %q, want %q", name, f.MIMEType(), wantMIME)
		}
	}
}
