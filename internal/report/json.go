package report

import "encoding/json"

// JSONFormatter renders the report as an indented JSON object:
// {title, info, sections: [{title, info, conditions: [{title, info,
// violations: [...]}]}]}. Sections without a table body recurse under
// "conditions"; leaf sections emit their rows under "violations".
type JSONFormatter struct {
	Indent int
}

// Name implements Formatter.
func (f *JSONFormatter) Name() string { return "json" }

// MIMEType implements Formatter. JSON is intentionally delivered as
// plain text.
func (f *JSONFormatter) MIMEType() string { return MIMEText }

// Render implements Formatter.
func (f *JSONFormatter) Render(r *Report) (string, error) {
	obj := map[string]any{
		"title":    r.Header.Title,
		"info":     r.Header.ToMap(),
		"sections": sectionObjects(r.Sections()),
	}

	indent := ""
	for i := 0; i < f.Indent; i++ {
		indent += " "
	}
	data, err := json.MarshalIndent(obj, "", indent)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sectionObjects converts sections to their JSON shape recursively.
func sectionObjects(sections []*Section) []map[string]any {
	out := make([]map[string]any, 0, len(sections))
	for _, s := range sections {
		obj := map[string]any{
			"title": s.Header.Title,
			"info":  s.Header.ToMap(),
		}
		if s.Body != nil {
			obj["violations"] = s.Body.Values()
		}
		if children := s.Sections(); len(children) > 0 {
			obj["conditions"] = sectionObjects(children)
		}
		out = append(out, obj)
	}
	return out
}
