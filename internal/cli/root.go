package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"Abutment/internal/config"
	"Abutment/internal/formula"
	"Abutment/internal/lrfd"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type app struct {
	catalog    *formula.Catalog
	configPath string
	cfg        *config.CLIConfig
}

func NewRootCmd() *cobra.Command {
	a := &app{catalog: lrfd.Catalog()}

	rootCmd := &cobra.Command{
		Use:           "lrfd",
		Short:         "Evaluate AASHTO LRFD bridge design equations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadCLI(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if !cfg.Output.Color {
				color.NoColor = true
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/lrfd/config.toml)")

	rootCmd.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newEvalCmd(a),
		newBatchCmd(a),
		newReportCmd(a),
	)
	return rootCmd
}

// Execute runs the CLI and prints any error in red.
func Execute(args []string, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintln(stderr, red("Error:"), err)
	}
	return err
}

// ParseAssignments turns "name=value" arguments into parameters.
func ParseAssignments(args []string) (formula.Params, error) {
	params := make(formula.Params, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", arg)
		}
		if _, dup := params[name]; dup {
			return nil, fmt.Errorf("parameter %s given twice", name)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %q is not a number", name, value)
		}
		params[name] = v
	}
	return params, nil
}
