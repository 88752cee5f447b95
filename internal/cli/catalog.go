package cli

import (
	"fmt"
	"text/tabwriter"

	"Abutment/internal/formula"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the equations in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "EQ.\tSYMBOL\tUNIT\tTITLE")
			for _, d := range a.catalog.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Symbol, d.Unit, d.Title)
			}
			return w.Flush()
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [equation]",
		Short: "Show an equation with its parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			cyan := color.New(color.FgCyan).SprintFunc()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s %s\n", cyan("Eq. "+d.ID), d.Title)
			if d.Article != "" {
				fmt.Fprintf(out, "Article %s\n", d.Article)
			}
			fmt.Fprintf(out, "\n  %s", d.Equation())
			if d.Unit != "" {
				fmt.Fprintf(out, "  (%s)", d.Unit)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PARAM\tUNIT\tDEFAULT\tDESCRIPTION")
			for _, p := range d.Required {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Unit, "required", p.Description)
			}
			for _, p := range d.Optional {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Unit, formula.FormatValue(p.Default, 3), p.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if len(d.Constraints) > 0 {
				fmt.Fprintln(out)
				for _, c := range d.Constraints {
					fmt.Fprintf(out, "  %s %s\n", c.Param, c.Text)
				}
			}
			return nil
		},
	}
}
