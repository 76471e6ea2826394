package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lcsmith2/markovcity/pkg/city"
	"github.com/lcsmith2/markovcity/pkg/pipeline"
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		rows       int
		cols       int
		seed       uint64
		configPath string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview generated grids in the terminal",
		Long: `Preview renders generated grids as colored cells in an interactive
terminal session. Press r to regenerate with the next seed, q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("init cache: %w", err)
			}
			defer runner.Close()

			model := newPreviewModel(runner, pipeline.Options{
				Rows:       rows,
				Cols:       cols,
				Seed:       seed,
				ConfigPath: configPath,
				Logger:     loggerFromContext(cmd.Context()),
			})
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&rows, "rows", pipeline.DefaultRows, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", pipeline.DefaultCols, "grid columns")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "starting random seed")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "chain configuration file (TOML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the generation cache")

	return cmd
}

// gridMsg carries a finished generation into the model.
type gridMsg struct {
	grid   city.Grid
	cached bool
}

// gridErrMsg carries a failed generation into the model.
type gridErrMsg struct{ err error }

// previewModel is the bubbletea model for the interactive grid preview.
type previewModel struct {
	runner  *pipeline.Runner
	opts    pipeline.Options
	grid    city.Grid
	cached  bool
	loading bool
	err     error
}

func newPreviewModel(runner *pipeline.Runner, opts pipeline.Options) previewModel {
	return previewModel{
		runner:  runner,
		opts:    opts,
		loading: true,
	}
}

func (m previewModel) Init() tea.Cmd {
	return m.generate()
}

// generate runs the pipeline off the UI goroutine.
func (m previewModel) generate() tea.Cmd {
	runner, opts := m.runner, m.opts
	return func() tea.Msg {
		result, err := runner.Execute(context.Background(), opts)
		if err != nil {
			return gridErrMsg{err: err}
		}
		return gridMsg{grid: result.Grid, cached: result.CacheInfo.GridHit}
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r", "enter":
			m.opts.Seed++
			m.loading = true
			m.err = nil
			return m, m.generate()
		}
	case gridMsg:
		m.grid = msg.grid
		m.cached = msg.cached
		m.loading = false
	case gridErrMsg:
		m.err = msg.err
		m.loading = false
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Markov City"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("seed %d", m.opts.Seed)))
	if m.cached {
		b.WriteString(StyleDim.Render("  ·  ") + styleCached.Render(iconCached))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(StyleWarning.Render("generation failed: " + m.err.Error()))
		b.WriteString("\n")
	case m.loading:
		b.WriteString(StyleDim.Render("generating..."))
		b.WriteString("\n")
	default:
		b.WriteString(renderGrid(m.grid))
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("r regenerate  q quit"))
	return b.String()
}
