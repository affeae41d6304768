package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/infrastructure/parser"
	"github.com/yourusername/sku-target-cleaner/internal/infrastructure/writer"
	"github.com/yourusername/sku-target-cleaner/internal/usecase"
)

type runFlags struct {
	options     optionFlags
	mainPath    string
	gradePath   string
	mainSheet   string
	gradeSheet  string
	out         string
	format      string
	headers     string
	preview     int
	diagnostics bool
}

func newRunCmd(a *app) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Clean a target sheet using a product grade sheet",
		Example: `  cleaner run --main targets.xlsx --grade grades.xlsx --month 2026-01-01 --brand freemir
  cleaner run --main targets.xlsx --grade grades.csv --range S:AH --out -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.mainPath, "main", "", "target sheet (.xlsx or .csv)")
	flags.StringVar(&f.gradePath, "grade", "", "product grade sheet (.xlsx or .csv): SKU in the first column, grade in the second")
	flags.StringVar(&f.mainSheet, "main-sheet", "", "worksheet of the target workbook (default: first)")
	flags.StringVar(&f.gradeSheet, "grade-sheet", "", "worksheet of the grade workbook (default: first)")
	flags.StringVar(&f.options.month, "month", "", "month written to every row (default: first day of the current month)")
	flags.StringVar(&f.options.brand, "brand", "", "brand written to every row (default: $DEFAULT_BRAND)")
	flags.IntVar(&f.options.headerRow, "header-row", 0, "1-based row number of the target sheet header (default: $HEADER_ROW, 4)")
	flags.StringVar(&f.options.mode, "mode", "", "store column selection: pattern or positional (default: $SELECTION_MODE)")
	flags.StringVar(&f.options.colRange, "range", "", "store columns for positional mode, e.g. S:AH (implies --mode positional)")
	flags.BoolVar(&f.options.strict, "strict", false, `store headers must use " - " as separator`)
	flags.StringVar(&f.options.skuHeader, "sku-header", "", `header of the SKU column (default "SKU")`)
	flags.StringVar(&f.options.skuColumn, "sku-column", "", "SKU column when no header matches, e.g. F")
	flags.StringVarP(&f.out, "out", "o", "", `output file, "-" for stdout (default: Cleaned_<brand>_<month>.<format>)`)
	flags.StringVar(&f.format, "format", "csv", "output format: csv or xlsx")
	flags.StringVar(&f.headers, "headers", "plain", "output header style: plain or bilingual")
	flags.IntVar(&f.preview, "preview", -1, "records to preview (default: $PREVIEW_ROWS, 0 disables)")
	flags.BoolVar(&f.diagnostics, "diagnostics", false, "list every skipped row and cell")

	_ = cmd.MarkFlagRequired("main")
	_ = cmd.MarkFlagRequired("grade")

	return cmd
}

func (a *app) run(ctx context.Context, f *runFlags, stdout, stderr io.Writer) error {
	opts, err := buildOptions(a.cfg, f.options, time.Now())
	if err != nil {
		return err
	}

	style, err := writer.ParseHeaderStyle(f.headers)
	if err != nil {
		return err
	}
	recordWriter, err := writer.New(f.format, style)
	if err != nil {
		return err
	}

	mainData, err := os.ReadFile(f.mainPath)
	if err != nil {
		return fmt.Errorf("failed to read target sheet: %w", err)
	}
	gradeData, err := os.ReadFile(f.gradePath)
	if err != nil {
		return fmt.Errorf("failed to read grade sheet: %w", err)
	}

	runs := a.openRuns()
	defer runs.Close()

	cleaner := usecase.NewCleanerUseCase(parser.NewSheetReader(), recordWriter, runs)
	res, err := cleaner.Process(ctx, usecase.ProcessRequest{
		Main:           usecase.Upload{Name: filepath.Base(f.mainPath), Data: mainData},
		Grade:          usecase.Upload{Name: filepath.Base(f.gradePath), Data: gradeData},
		Options:        opts,
		MainSheetName:  f.mainSheet,
		GradeSheetName: f.gradeSheet,
	})
	if err != nil {
		return err
	}

	if f.diagnostics {
		printStoreColumns(stderr, res.Result)
		printDiagnostics(stderr, res.Result.Diagnostics)
	}

	if res.Result.Empty() {
		fmt.Fprintf(stderr, "⚠️ No valid data found (skipped: %s).\n", usecase.DescribeDiagnostics(res.Result.Diagnostics))
		fmt.Fprintf(stderr, "Check that the SKU column is %q (or column %s) and that store headers look like \"TTFROS004 - TikTok Electric\".\n",
			opts.SKUHeader, columnName(opts.SKUFallbackIndex))
		return nil
	}

	out := f.out
	if out == "" {
		out = res.Filename
	}
	if out == "-" {
		_, err := stdout.Write(res.Output)
		return err
	}
	if err := os.WriteFile(out, res.Output, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	preview := f.preview
	if preview < 0 {
		preview = a.cfg.PreviewRows
	}
	if preview > 0 {
		fmt.Fprint(stdout, usecase.PreviewTable(res.Result.Records, preview))
	}
	fmt.Fprintf(stdout, "✅ %d rows written to %s (run %s)\n", len(res.Result.Records), out, res.RunID)
	return nil
}

func printStoreColumns(w io.Writer, result entity.Result) {
	fmt.Fprintf(w, "SKU column %s, %d graded SKUs\n", columnName(result.SKUColumn), result.GradedSKUs)
	for _, col := range result.StoreColumns {
		if !col.Valid() {
			fmt.Fprintf(w, "%s: %q is not a store header, cells skipped\n", columnName(col.Index), col.RawHeader)
			continue
		}
		fmt.Fprintf(w, "%s: store %s on %s\n", columnName(col.Index), col.StoreCode, col.Platform)
	}
}

func printDiagnostics(w io.Writer, d entity.Diagnostics) {
	for _, skip := range d.Skips {
		if skip.Column < 0 {
			fmt.Fprintf(w, "row %d: %s %q\n", skip.Row, skip.Reason, skip.Value)
			continue
		}
		fmt.Fprintf(w, "%s%d: %s %q (%s)\n", columnName(skip.Column), skip.Row, skip.Reason, skip.Value, skip.Header)
	}
	fmt.Fprintf(w, "skipped: %s\n", usecase.DescribeDiagnostics(d))
}

func columnName(idx int) string {
	name, err := excelize.ColumnNumberToName(idx + 1)
	if err != nil {
		return fmt.Sprintf("#%d", idx)
	}
	return name
}
