package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jesuansito/pymatgen-db/internal/constraints"
	"github.com/jesuansito/pymatgen-db/internal/core/archive"
	"github.com/jesuansito/pymatgen-db/internal/core/config"
	"github.com/jesuansito/pymatgen-db/internal/core/db"
	"github.com/jesuansito/pymatgen-db/internal/report"
	"github.com/jesuansito/pymatgen-db/internal/types"
	"github.com/jesuansito/pymatgen-db/internal/validate"
)

const Version = "0.1.0"

var (
	aliasArgs      []string
	dbConfigFile   string
	collection     string
	emailSpec      string
	constraintFile string
	formatName     string
	limit          int
	progress       int
	verbosity      int
	keepGoing      bool
	archiveURL     string
)

var rootCmd = &cobra.Command{
	Use:   "mgvv [flags] [constraint ...]",
	Short: "Validate database collections against declarative constraints",
	Long: `mgvv validates records in a document database against per-collection
constraint specifications and reports the violations found. Constraints
come from a YAML specification file or directly from the command line;
the report is rendered as JSON, HTML, or Markdown and printed or emailed.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runValidate,
	SilenceUsage:  true,
	Version:       Version,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase log verbosity (default warnings, -v info, -vv debug)")
	rootCmd.PersistentFlags().StringVar(&archiveURL, "archive-db", "",
		"report archive URL (sqlite://path or postgres://...)")

	rootCmd.Flags().StringArrayVarP(&aliasArgs, "alias", "a", nil,
		"field alias as name=value (repeatable)")
	rootCmd.Flags().StringVarP(&dbConfigFile, "db-config", "c", "",
		"database config file path")
	rootCmd.Flags().StringVarP(&collection, "collection", "C", "",
		"target collection (required when constraints come from the command line)")
	rootCmd.Flags().StringVarP(&emailSpec, "email", "e", "",
		"email the report: sender:recipient[,recipient...][:server[:port]]")
	rootCmd.Flags().StringVarP(&constraintFile, "file", "f", "",
		"constraint specification file path")
	rootCmd.Flags().StringVar(&formatName, "format", "markdown",
		"output format (json, html, markdown)")
	rootCmd.Flags().IntVar(&limit, "limit", validate.DefaultLimit,
		"per-collection violation display limit (0 = unlimited)")
	rootCmd.Flags().IntVar(&progress, "progress", 0,
		"report progress every N invalid records (0 = disabled)")
	rootCmd.Flags().BoolVar(&keepGoing, "keep-going", false,
		"continue with remaining collections when one fails")
}

// Execute runs the CLI with interrupt-driven cancellation.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger(verbosity)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Resolve the output format before touching the database
	formatter, err := report.Lookup(formatName)
	if err != nil {
		return err
	}

	file, err := loadConstraints(args)
	if err != nil {
		return err
	}

	aliases, err := buildAliases(file)
	if err != nil {
		return err
	}

	emailCfg := file.Email
	if emailSpec != "" {
		emailCfg, err = report.ParseEmailSpec(emailSpec)
		if err != nil {
			return err
		}
	}

	dbCfg := config.DefaultDBConfig()
	if dbConfigFile != "" {
		dbCfg, err = config.LoadDBConfig(dbConfigFile)
		if err != nil {
			return err
		}
	}
	if dbCfg.Database == "" {
		dbCfg.Database = file.Database
	}

	ctx := cmd.Context()
	database, disconnect, err := db.Connect(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer disconnect(context.Background())

	runID := types.NewRunID()
	title := "Validation report: " + dbCfg.Database
	rpt := report.New(validate.NewRunHeader(title, runID, limit))

	orch := &validate.Orchestrator{
		Log:       logger,
		DB:        database,
		Limit:     limit,
		Progress:  progress,
		KeepGoing: keepGoing,
	}
	if err := orch.Run(ctx, file, aliases, rpt); err != nil {
		return err
	}

	if rpt.IsEmpty() {
		logger.Warn("nothing to report", zap.String("database", dbCfg.Database))
		return types.ErrEmptyReport
	}

	text, err := formatter.Render(rpt)
	if err != nil {
		return err
	}

	if archiveURL != "" {
		archiveRun(logger, runID, title, formatter.Name(), text, len(rpt.Sections()))
	}

	if emailCfg != nil {
		emailCfg.Subject = title
	}
	delivery := &report.Delivery{Out: cmd.OutOrStdout(), Log: logger}
	return delivery.Deliver(ctx, text, formatter, emailCfg)
}

// loadConstraints resolves the constraint source: a specification file,
// or positional expressions targeting one collection.
func loadConstraints(args []string) (*config.ConstraintFile, error) {
	if constraintFile != "" {
		return config.LoadConstraintFile(constraintFile)
	}
	if len(args) > 0 {
		return config.InlineConstraints(collection, args)
	}
	return nil, fmt.Errorf("%w: no constraints given (pass expressions or --file)", types.ErrConfiguration)
}

// buildAliases merges alias sources. File-provided aliases and
// command-line aliases are mutually exclusive per run; defining both is
// a configuration error rather than a silent precedence pick.
func buildAliases(file *config.ConstraintFile) (*constraints.AliasTable, error) {
	cliPairs, err := constraints.ParseAliasArgs(aliasArgs)
	if err != nil {
		return nil, err
	}
	if len(file.Aliases) > 0 {
		if len(cliPairs) > 0 {
			return nil, fmt.Errorf("%w: aliases defined both in the constraint file and on the command line",
				types.ErrConfiguration)
		}
		return constraints.NewAliasTable(file.Aliases), nil
	}
	return constraints.NewAliasTable(cliPairs), nil
}

// archiveRun persists the rendered report. Archive failures never fail
// the run; the report has already been produced.
func archiveRun(logger *zap.Logger, id types.RunID, title, format, body string, sections int) {
	store, err := archive.Open(archiveURL)
	if err != nil {
		logger.Error("failed to open report archive", zap.String("url", archiveURL), zap.Error(err))
		return
	}
	defer store.Close()

	if err := store.SaveRun(id, title, format, body, sections); err != nil {
		logger.Error("failed to archive report", zap.Error(err))
		return
	}
	logger.Info("report archived", zap.String("run_id", string(id)))
}
