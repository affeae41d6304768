package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/infrastructure/parser"
	"github.com/yourusername/sku-target-cleaner/internal/infrastructure/writer"
	"github.com/yourusername/sku-target-cleaner/internal/usecase"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recent runs, or show one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs := a.openRuns()
			defer runs.Close()

			cleaner := usecase.NewCleanerUseCase(parser.NewSheetReader(), writer.NewCSVWriter(writer.HeaderPlain), runs)
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				run, err := cleaner.Run(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printRun(out, *run)
				return nil
			}

			list, err := cleaner.History(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "No runs yet.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWHEN\tSTATUS\tROWS\tSKIPPED\tSOURCE\tMONTH\tBRAND")
			for _, run := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
					run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04"), run.Status, run.Records, run.Skipped,
					run.Source, run.Month, run.Brand)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show (0 for all)")

	return cmd
}

func printRun(w io.Writer, run entity.Run) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", run.ID)
	fmt.Fprintf(tw, "When:\t%s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(tw, "Status:\t%s\n", run.Status)
	fmt.Fprintf(tw, "Target sheet:\t%s\n", run.Source)
	fmt.Fprintf(tw, "Grade sheet:\t%s\n", run.GradeSource)
	fmt.Fprintf(tw, "Month:\t%s\n", run.Month)
	fmt.Fprintf(tw, "Brand:\t%s\n", run.Brand)
	fmt.Fprintf(tw, "Rows:\t%d\n", run.Records)
	fmt.Fprintf(tw, "Skipped:\t%d\n", run.Skipped)
	if run.Error != "" {
		fmt.Fprintf(tw, "Error:\t%s\n", run.Error)
	}
	tw.Flush()
}
