// internal/validate/validator.go
package validate

import (
	"context"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/jesuansito/pymatgen-db/internal/constraints"
	"github.com/jesuansito/pymatgen-db/internal/types"
)

/*
 * Per-collection constraint validation.
 *
 * The Validator runs one scan per compiled filter group: records matching
 * the group's filter are fetched and each constraint expression is
 * evaluated client-side against the decoded document. Violations carry
 * the record's id and task_id so report rows can be correlated back to
 * source records.
 *
 * Validation is read-only: the collection handle is used for Find only.
 *
 * Failure kinds:
 *   - types.ErrBadConstraint: a filter or constraint expression did not
 *     parse (value error)
 *   - types.ErrDatabase: the query or cursor failed mid-scan
 *
 * Progress: when configured, an info log is emitted every N invalid
 * records found, so long scans stay observable.
 */

// taskIDField is the secondary correlation key looked up on each record.
const taskIDField = "task_id"

// Validator evaluates compiled constraint sections against one
// collection at a time.
type Validator struct {
	log      *zap.Logger
	aliases  *constraints.AliasTable
	progress int
}

// NewValidator creates a validator. The alias table rewrites field names
// in filter and constraint expressions before evaluation.
func NewValidator(log *zap.Logger, aliases *constraints.AliasTable) *Validator {
	return &Validator{log: log, aliases: aliases}
}

// SetProgress enables a progress notification every n invalid records.
// Zero or negative disables progress reporting.
func (v *Validator) SetProgress(n int) {
	v.progress = n
}

// Validate lazily produces one ViolationGroup per compiled section.
// Iteration stops at the first error; the caller decides whether that
// aborts the whole run.
func (v *Validator) Validate(ctx context.Context, coll *mongo.Collection, sections *constraints.CompiledSections, subject string) iter.Seq2[types.ViolationGroup, error] {
	return func(yield func(types.ViolationGroup, error) bool) {
		for _, section := range sections.Sections() {
			group, err := v.scan(ctx, coll, section, subject)
			if err != nil {
				yield(types.ViolationGroup{Key: section.Key}, err)
				return
			}
			if !yield(group, nil) {
				return
			}
		}
	}
}

// scan runs one filter-plus-constraints pass over the collection.
func (v *Validator) scan(ctx context.Context, coll *mongo.Collection, section *constraints.Section, subject string) (types.ViolationGroup, error) {
	group := types.ViolationGroup{Key: section.Key}

	filterExprs, err := constraints.ParseAll(section.Key.Conditions(), v.aliases)
	if err != nil {
		return group, fmt.Errorf("%s: %w", subject, err)
	}
	exprs, err := constraints.ParseAll(section.Constraints, v.aliases)
	if err != nil {
		return group, fmt.Errorf("%s: %w", subject, err)
	}

	cursor, err := coll.Find(ctx, queryFor(filterExprs))
	if err != nil {
		return group, fmt.Errorf("%w: %s: %w", types.ErrDatabase, subject, err)
	}
	defer cursor.Close(ctx)

	examined, invalid := 0, 0
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return group, fmt.Errorf("%w: %s: %w", types.ErrDatabase, subject, err)
		}
		examined++

		recordInvalid := false
		for _, e := range exprs {
			value, found := lookupField(doc, e.Field)
			if constraints.Satisfies(e, value, found) {
				continue
			}
			op, expected := e.Describe()
			group.Violations = append(group.Violations, types.RecordViolation{
				Violation: types.Violation{
					Field:    e.Field,
					Op:       op,
					Expected: expected,
					Got:      observedValue(value, found),
				},
				RecordID: displayValue(doc["_id"]),
				TaskID:   displayValue(doc[taskIDField]),
			})
			recordInvalid = true
		}

		if recordInvalid {
			invalid++
			if v.progress > 0 && invalid%v.progress == 0 {
				v.log.Info("validation progress",
					zap.String("collection", subject),
					zap.String("condition", section.Key.String()),
					zap.Int("invalid", invalid),
					zap.Int("examined", examined))
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return group, fmt.Errorf("%w: %s: %w", types.ErrDatabase, subject, err)
	}

	v.log.Debug("scan complete",
		zap.String("collection", subject),
		zap.String("condition", section.Key.String()),
		zap.Int("examined", examined),
		zap.Int("invalid", invalid))

	return group, nil
}

// lookupField resolves a dotted field path against a decoded document.
// Numeric path segments index into arrays. found is false when any
// segment is absent.
func lookupField(doc bson.M, path string) (any, bool) {
	var current any = doc
	for _, seg := range strings.Split(path, ".") {
		switch node := current.(type) {
		case bson.M:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = next
		case primitive.A:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// observedValue renders the observed side of a violation. A missing
// field is shown explicitly rather than as an empty cell.
func observedValue(value any, found bool) any {
	if !found {
		return "<missing>"
	}
	return displayValue(value)
}

// displayValue normalizes driver-specific scalar types for report cells.
func displayValue(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format("2006-01-02T15:04:05Z")
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = displayValue(e)
		}
		return out
	default:
		return v
	}
}
