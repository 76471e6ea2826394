package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lcsmith2/markovcity/pkg/city"
	"github.com/lcsmith2/markovcity/pkg/pipeline"
	"github.com/lcsmith2/markovcity/pkg/scene"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	rows    int    // grid height in cells
	cols    int    // grid width in cells
	seed    uint64 // random seed for reproducible generation
	config  string // path to a TOML chain configuration
	output  string // output file path, "-" or empty for stdout
	noCache bool   // disable the generation cache
	refresh bool   // bypass cached grids and regenerate
	show    bool   // print a colored preview to the terminal
	plan    bool   // print the scene placement plan
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts
	var formatsStr string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a city grid",
		Long: `Generate walks the height and color chains across a grid and exports
the result. The same configuration, dimensions, and seed always reproduce
the same grid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &opts, parseFormats(formatsStr))
		},
	}

	cmd.Flags().IntVar(&opts.rows, "rows", pipeline.DefaultRows, "grid rows")
	cmd.Flags().IntVar(&opts.cols, "cols", pipeline.DefaultCols, "grid columns")
	cmd.Flags().Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "random seed")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "chain configuration file (TOML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the generation cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if a cached grid exists")
	cmd.Flags().BoolVar(&opts.show, "show", false, "print a colored grid preview")
	cmd.Flags().BoolVar(&opts.plan, "scene-plan", false, "print the placements a scene renderer would receive")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts, formats []string) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)
	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Rows:       opts.rows,
		Cols:       opts.cols,
		Seed:       opts.seed,
		ConfigPath: opts.config,
		Formats:    formats,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d cells", result.Grid.CellCount()))

	if opts.show {
		fmt.Println(renderGrid(result.Grid))
	}

	if opts.plan {
		plan, err := scenePlan(result.Grid)
		if err != nil {
			return err
		}
		fmt.Print(plan)
	}

	if err := writeArtifacts(result, formats, opts.output); err != nil {
		return err
	}

	printSuccess("Generated %dx%d grid (seed %d)", result.Stats.Rows, result.Stats.Cols, opts.seed)
	printStats(result.Stats.Rows, result.Stats.Cols, result.Stats.Buildings, result.CacheInfo.GridHit)
	if opts.output == "" || opts.output == "-" {
		return nil
	}
	printNextStep("Preview interactively", "markovcity preview --seed "+fmt.Sprint(opts.seed))
	return nil
}

// writeArtifacts writes each exported format to disk or stdout.
// With multiple formats, the output path becomes the base name and the
// format is appended as the extension.
func writeArtifacts(result *pipeline.Result, formats []string, output string) error {
	for _, format := range formats {
		data := result.Artifacts[format]
		if output == "" || output == "-" {
			if _, err := os.Stdout.Write(data); err != nil {
				return err
			}
			continue
		}
		path := output
		if len(formats) > 1 {
			path = strings.TrimSuffix(output, "."+format) + "." + format
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// scenePlan dry-runs the scene build against a recorder and formats the
// placements a real renderer would receive, one line per building.
func scenePlan(g city.Grid) (string, error) {
	var rec scene.Recorder
	if err := scene.Build(g, &rec, nil); err != nil {
		return "", err
	}

	var b strings.Builder
	if len(rec.Bases) > 0 {
		fmt.Fprintf(&b, "base   %.1f x %.1f\n", rec.Bases[0].Size, rec.Bases[0].Size)
	}
	fmt.Fprintf(&b, "buildings %d\n", len(rec.Buildings))
	for _, bc := range rec.Buildings {
		fmt.Fprintf(&b, "  (%5.1f, %5.1f)  h=%-2d  %s\n", bc.Pos.X, bc.Pos.Y, int(bc.Height), bc.Color.Name)
	}
	return b.String(), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}
