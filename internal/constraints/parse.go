// internal/constraints/parse.go
package constraints

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jesuansito/pymatgen-db/internal/types"
)

/*
 * Constraint expression parsing.
 *
 * Grammar:
 *   expr := field OP literal        OP in =, !=, <, <=, >, >=
 *         | field "exists"
 *         | field "missing"
 *         | field "type" kindname   kindname in numeric, string, bool,
 *                                   array, object (plus common synonyms)
 *
 * Field names pass through the AliasTable before evaluation, so the
 * returned Expression always carries the real field name. Literals are
 * decoded as int64, float64, bool, or string; single or double quotes
 * force a string.
 */

// Operator identifies the comparison an expression performs.
type Operator int

const (
	OpUnspecified Operator = iota
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpExists
	OpMissing
	OpType
)

// String returns the operator's surface syntax.
func (op Operator) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpExists:
		return "exists"
	case OpMissing:
		return "missing"
	case OpType:
		return "type"
	default:
		return "?"
	}
}

// FieldKind is the expected value type for a type constraint.
type FieldKind int

const (
	KindUnspecified FieldKind = iota
	KindNumeric
	KindString
	KindBool
	KindArray
	KindObject
)

// String returns the kind name used in human-readable expected values.
func (k FieldKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "?"
	}
}

// kindNames maps accepted type-constraint spellings to kinds.
var kindNames = map[string]FieldKind{
	"numeric": KindNumeric,
	"number":  KindNumeric,
	"int":     KindNumeric,
	"float":   KindNumeric,
	"string":  KindString,
	"str":     KindString,
	"text":    KindString,
	"bool":    KindBool,
	"boolean": KindBool,
	"array":   KindArray,
	"list":    KindArray,
	"object":  KindObject,
	"dict":    KindObject,
}

// relationalOps in match order: two-character operators first so that
// ">=" is not split as ">" followed by "=".
var relationalOps = []struct {
	text string
	op   Operator
}{
	{"<=", OpLte},
	{">=", OpGte},
	{"!=", OpNeq},
	{"<", OpLt},
	{">", OpGt},
	{"=", OpEq},
}

// Expression is one parsed constraint or filter condition.
type Expression struct {
	Raw   string
	Field string
	Op    Operator
	Value any       // literal for relational operators, nil otherwise
	Kind  FieldKind // set for OpType
}

// Describe returns the operator text and human-readable expected value
// used in violation rows. Unary and type constraints have no operator
// text; their expected value is a phrase like "must be numeric".
func (e Expression) Describe() (op, expected string) {
	switch e.Op {
	case OpExists:
		return "", "must exist"
	case OpMissing:
		return "", "must be missing"
	case OpType:
		return "", "must be " + e.Kind.String()
	default:
		return e.Op.String(), FormatValue(e.Value)
	}
}

// Parse decodes a single constraint expression, resolving the field name
// through aliases. Returns types.ErrBadConstraint for anything the
// grammar does not cover.
func Parse(expr string, aliases *AliasTable) (Expression, error) {
	raw := expr
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Expression{}, fmt.Errorf("%w: empty expression", types.ErrBadConstraint)
	}

	// Word-form operators: "field exists", "field missing", "field type X"
	tokens := strings.Fields(expr)
	if len(tokens) == 2 {
		switch strings.ToLower(tokens[1]) {
		case "exists":
			return Expression{Raw: raw, Field: aliases.Resolve(tokens[0]), Op: OpExists}, nil
		case "missing":
			return Expression{Raw: raw, Field: aliases.Resolve(tokens[0]), Op: OpMissing}, nil
		}
	}
	if len(tokens) == 3 && strings.EqualFold(tokens[1], "type") {
		kind, ok := kindNames[strings.ToLower(tokens[2])]
		if !ok {
			return Expression{}, fmt.Errorf("%w: unknown type name %q in %q", types.ErrBadConstraint, tokens[2], raw)
		}
		return Expression{Raw: raw, Field: aliases.Resolve(tokens[0]), Op: OpType, Kind: kind}, nil
	}

	// Relational form: field OP literal
	for _, cand := range relationalOps {
		idx := strings.Index(expr, cand.text)
		if idx <= 0 {
			continue
		}
		field := strings.TrimSpace(expr[:idx])
		literal := strings.TrimSpace(expr[idx+len(cand.text):])
		if field == "" || literal == "" {
			return Expression{}, fmt.Errorf("%w: %q", types.ErrBadConstraint, raw)
		}
		if !validField(field) {
			return Expression{}, fmt.Errorf("%w: bad field name in %q", types.ErrBadConstraint, raw)
		}
		return Expression{
			Raw:   raw,
			Field: aliases.Resolve(field),
			Op:    cand.op,
			Value: parseLiteral(literal),
		}, nil
	}

	return Expression{}, fmt.Errorf("%w: %q", types.ErrBadConstraint, raw)
}

// ParseAll parses every expression in order, failing on the first bad one.
func ParseAll(exprs []string, aliases *AliasTable) ([]Expression, error) {
	out := make([]Expression, 0, len(exprs))
	for _, raw := range exprs {
		e, err := Parse(raw, aliases)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// validField accepts dotted field paths: letters, digits, underscore,
// dot, and dollar (document databases allow $-prefixed system fields).
func validField(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '.' || r == '$' || r == '-':
		default:
			return false
		}
	}
	return true
}

// parseLiteral decodes a literal as int64, float64, bool, or string.
// Quoted literals are always strings.
func parseLiteral(s string) any {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// FormatValue renders a literal or observed value for display. Strings
// appear bare; everything else goes through default formatting.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	default:
		return fmt.Sprintf("%v", v)
	}
}
