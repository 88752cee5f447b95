package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"Abutment/internal/calc/batch"
	"Abutment/internal/calc/report"
	"Abutment/internal/formula"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newEvalCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "eval [equation] [name=value]...",
		Short:   "Evaluate one equation and print the substituted trace",
		Example: "  lrfd eval 4.6.2.3-1 L1=60 W1=30",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := ParseAssignments(args[1:])
			if err != nil {
				return err
			}
			res, err := a.catalog.Evaluate(args[0], params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			d, _ := a.catalog.Lookup(res.ID)
			fmt.Fprintf(out, "%s %s\n%s\n", color.New(color.FgCyan).Sprint("Eq. "+d.ID), d.Title, res.Trace)
			if d.Unit != "" {
				fmt.Fprintf(out, "(%s)\n", d.Unit)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "batch [workbook.xlsx]",
		Short: "Evaluate every row of a workbook and write a results workbook",
		Long: "The first sheet's header row is \"formula\" followed by parameter names.\n" +
			"Each following row names an equation and gives its values; blank cells use defaults.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcomes, err := runWorkbook(a.catalog, args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = "results.xlsx"
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := batch.WriteWorkbook(f, outcomes); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			failed := batch.Failed(outcomes)
			fmt.Fprintf(cmd.OutOrStdout(), "Evaluated %d rows (%d failed), results in %s\n", len(outcomes), failed, output)
			for _, o := range outcomes {
				if o.Err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "  row %d: %s\n", o.Row, color.New(color.FgYellow).Sprint(o.Error))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "results workbook (default results.xlsx)")
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var output string
	var meta report.Meta
	cmd := &cobra.Command{
		Use:   "report [workbook.xlsx]",
		Short: "Render the evaluations of a workbook as a PDF calculation report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fillMeta(&meta, a)
			outcomes, err := runWorkbook(a.catalog, args[0])
			if err != nil {
				return err
			}
			results := make([]formula.Result, 0, len(outcomes))
			for _, o := range outcomes {
				if o.Err != nil {
					return fmt.Errorf("row %d: %w", o.Row, o.Err)
				}
				results = append(results, o.Result())
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := report.Write(f, meta, a.catalog, results); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d equations to %s\n", len(results), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "report.pdf", "PDF file to write")
	cmd.Flags().StringVar(&meta.Title, "title", "", "report title")
	cmd.Flags().StringVar(&meta.Project, "project", "", "project name")
	cmd.Flags().StringVar(&meta.Author, "author", "", "author")
	return cmd
}

// fillMeta takes values missing from the flags from the config file.
func fillMeta(meta *report.Meta, a *app) {
	if a.cfg == nil {
		return
	}
	if meta.Title == "" {
		meta.Title = a.cfg.Report.Title
	}
	if meta.Project == "" {
		meta.Project = a.cfg.Report.Project
	}
	if meta.Author == "" {
		meta.Author = a.cfg.Report.Author
	}
}

func runWorkbook(cat *formula.Catalog, path string) ([]batch.Outcome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := batch.ReadWorkbook(f)
	if err != nil {
		return nil, err
	}
	return batch.Run(cat, items)
}
