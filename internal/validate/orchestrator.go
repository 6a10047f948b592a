// internal/validate/orchestrator.go
package validate

import (
	"context"
	"os"
	"os/user"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/jesuansito/pymatgen-db/internal/constraints"
	"github.com/jesuansito/pymatgen-db/internal/core/config"
	"github.com/jesuansito/pymatgen-db/internal/report"
	"github.com/jesuansito/pymatgen-db/internal/types"
)

/*
 * Multi-collection validation orchestration.
 *
 * For each non-reserved, non-ignored collection key of the constraint
 * file, compiles the raw entries into filter groups, runs the Validator,
 * and appends one report section per collection with numbered
 * violation-group subsections.
 *
 * Failure policy: a validator error aborts the remaining collection loop
 * (fail-fast). KeepGoing switches to per-collection isolation: failed
 * collections are logged, skipped, and summarized at the end. This is a
 * documented behavior change from the default, since fail-fast can leave
 * a partial report looking complete.
 *
 * Collections are validated strictly sequentially; the report is only
 * ever mutated from this loop, so no locking discipline is needed.
 */

// TableColumns are the violation table columns, in order. "id" is the
// sort key; ties keep their arrival order.
var TableColumns = []string{"id", "task_id", "field", "constraint", "value"}

// DefaultLimit is the per-collection violation display limit.
const DefaultLimit = 50

// Orchestrator drives a full validation run and accumulates the report.
type Orchestrator struct {
	Log       *zap.Logger
	DB        *mongo.Database
	Limit     int // per-collection display limit, 0 = unlimited
	Progress  int // progress notification interval, 0 = disabled
	KeepGoing bool

	// validate runs one collection's passes; nil selects the database
	// path. Tests substitute it to drive the loop without a database.
	validate func(ctx context.Context, name string, specs []types.Spec, aliases *constraints.AliasTable) (*report.Section, error)
}

// Run validates every collection named in the constraint file and
// appends the findings to rpt. Collections with no violations contribute
// no section.
func (o *Orchestrator) Run(ctx context.Context, file *config.ConstraintFile, aliases *constraints.AliasTable, rpt *report.Report) error {
	validate := o.validate
	if validate == nil {
		validate = o.validateCollection
	}

	var failed []string

	for _, name := range file.CollectionNames() {
		if config.Ignored(name) {
			o.Log.Debug("skipping ignored collection", zap.String("collection", name))
			continue
		}

		section, err := validate(ctx, name, file.Collections[name], aliases)
		if err != nil {
			o.Log.Error("validation failed",
				zap.String("collection", name),
				zap.Error(err))
			if !o.KeepGoing {
				// Fail-fast: abort the remaining collections
				return err
			}
			failed = append(failed, name)
			continue
		}
		if section != nil {
			rpt.AddSection(section)
		}
	}

	if len(failed) > 0 {
		o.Log.Warn("validation incomplete: some collections failed",
			zap.Strings("collections", failed))
	}
	return nil
}

// validateCollection runs one collection's passes and builds its report
// section. Returns nil when no violations were found.
func (o *Orchestrator) validateCollection(ctx context.Context, name string, specs []types.Spec, aliases *constraints.AliasTable) (*report.Section, error) {
	sections := constraints.Compile(specs)
	if sections.Len() == 0 {
		return nil, nil
	}

	o.Log.Info("validating collection",
		zap.String("collection", name),
		zap.Int("filter_groups", sections.Len()))

	validator := NewValidator(o.Log, aliases)
	if o.Progress > 0 {
		validator.SetProgress(o.Progress)
	}

	collSection := report.NewSection(report.NewHeader(name), nil)
	groupNum := 0

	for group, err := range validator.Validate(ctx, o.DB.Collection(name), sections, name) {
		if err != nil {
			return nil, err
		}
		if len(group.Violations) == 0 {
			continue
		}
		groupNum++
		collSection.AddSection(o.groupSection(groupNum, group))
	}

	if len(collSection.Sections()) == 0 {
		return nil, nil
	}
	return collSection, nil
}

// groupSection builds the numbered subsection for one violation group.
func (o *Orchestrator) groupSection(num int, group types.ViolationGroup) *report.Section {
	header := report.NewHeader(strconv.Itoa(num))
	header.Add("condition", group.Key.String())

	violations := group.Violations
	if o.Limit > 0 && len(violations) > o.Limit {
		header.Add("shown", o.Limit)
		header.Add("total", len(violations))
		violations = violations[:o.Limit]
	}

	table := report.NewTable(TableColumns)
	for _, rv := range violations {
		// Arity matches TableColumns; Add cannot fail here
		_ = table.Add(rv.RecordID, rv.TaskID, rv.Field, rv.Constraint(), rv.Got)
	}
	_ = table.SortBy("id")

	return report.NewSection(header, table)
}

// NewRunHeader assembles the report header with run metadata: run id,
// generation time, invoking user, host, and the display limit.
func NewRunHeader(title string, id types.RunID, limit int) *report.Header {
	h := report.NewHeader(title)
	h.Add("run_id", string(id))
	h.Add("generated", time.Now().UTC().Format(time.RFC3339))
	if u, err := user.Current(); err == nil {
		h.Add("user", u.Username)
	}
	if host, err := os.Hostname(); err == nil {
		h.Add("host", host)
	}
	h.Add("limit", limit)
	return h
}
