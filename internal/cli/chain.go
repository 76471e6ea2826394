package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcsmith2/markovcity/pkg/config"
	"github.com/lcsmith2/markovcity/pkg/pipeline"
)

// chainCommand creates the chain inspection command.
func (c *CLI) chainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Inspect and validate chain configurations",
	}

	cmd.AddCommand(c.chainValidateCommand())
	cmd.AddCommand(c.chainDiagramCommand())

	return cmd
}

// chainValidateCommand creates the "chain validate" subcommand.
func (c *CLI) chainValidateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a chain configuration file",
		Long: `Validate parses a TOML chain configuration and builds both transition
models, reporting the first violation found (unknown states, negative
probabilities, rows that do not sum to one).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			heights, colors, err := cfg.Models()
			if err != nil {
				printError("Configuration invalid")
				return err
			}

			printSuccess("Configuration valid")
			printDetail("height states: %d", heights.StateCount())
			printDetail("color states:  %d", colors.StateCount())
			printDetail("tolerance:     %g", heights.Tolerance())
			fmt.Println("  " + legend(colors.States()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "chain configuration file (TOML)")
	return cmd
}

// chainDiagramCommand creates the "chain diagram" subcommand.
func (c *CLI) chainDiagramCommand() *cobra.Command {
	var (
		configPath string
		chain      string
		format     string
		showPrior  bool
		output     string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Render a chain as a Graphviz state diagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("init cache: %w", err)
			}
			defer runner.Close()

			opts := pipeline.Options{ConfigPath: configPath, Logger: loggerFromContext(cmd.Context())}
			data, err := runner.RenderDiagram(cmd.Context(), opts, chain, format, showPrior)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered %s chain", chain)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "chain configuration file (TOML)")
	cmd.Flags().StringVar(&chain, "chain", pipeline.ChainHeights, "chain to render: heights (default), colors")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.DiagramDOT, "output format: dot (default), svg")
	cmd.Flags().BoolVar(&showPrior, "prior", false, "include initial-state probabilities")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the diagram cache")

	return cmd
}

// loadConfig resolves the configuration flag, falling back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
