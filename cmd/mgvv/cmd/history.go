package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesuansito/pymatgen-db/internal/core/archive"
	"github.com/jesuansito/pymatgen-db/internal/types"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived validation runs",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if archiveURL == "" {
		return fmt.Errorf("%w: --archive-db required", types.ErrConfiguration)
	}

	store, err := archive.Open(archiveURL)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-36s  %-20s  %-8s  %8s  %s\n", "RUN", "CREATED", "FORMAT", "SECTIONS", "TITLE")
	for _, r := range runs {
		fmt.Fprintf(out, "%-36s  %-20s  %-8s  %8d  %s\n", r.ID, r.CreatedAt, r.Format, r.Sections, r.Title)
	}
	return nil
}
