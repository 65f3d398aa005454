package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/kryonlabs/mindscape/config"
	"github.com/kryonlabs/mindscape/widget"
)

var (
	colorYellow = lipgloss.Color("220")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleOverflow = lipgloss.NewStyle().Foreground(colorYellow)
)

// layoutCommand creates the layout command, which computes a scene's grids without
// opening a window.
func (c *CLI) layoutCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "layout [scene.toml]",
		Short: "Print the widget rectangles of a scene",
		Long: `Compute every grid of a scene for a window size and print the absolute
rectangle of each widget, in pixels with the origin at the bottom left.

The size defaults to the scene's window size. Fixed cells that do not fit are
reported as warnings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := loadScene(args)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.OutOrStdout(), scene, width, height)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "viewport width (default: scene window width)")
	cmd.Flags().IntVar(&height, "height", 0, "viewport height (default: scene window height)")

	return cmd
}

func (c *CLI) runLayout(w io.Writer, scene *config.Scene, width, height int) error {
	cfg, err := scene.Window.Config()
	if err != nil {
		return err
	}
	if width <= 0 {
		width = cfg.Width
	}
	if height <= 0 {
		height = cfg.Height
	}

	// handlers are bound so the build does not warn about them; nothing runs
	root, err := config.Build(scene, newSession(c.Logger).handlers(), c.Logger)
	if err != nil {
		return err
	}
	placements, err := widget.Layout(root, rl.NewVector2(float32(width), float32(height)))
	if err != nil {
		return fmt.Errorf("layout %dx%d: %w", width, height, err)
	}
	c.Logger.Debug("computed layout", "width", width, "height", height, "widgets", len(placements))

	overflowing := make(map[int]bool)
	rows := make([][]string, 0, len(placements))
	for i, p := range placements {
		if p.Overflow.X > 0 || p.Overflow.Y > 0 {
			overflowing[i] = true
			c.Logger.Warn("fixed cells exceed the available space",
				"widget", p.Name, "rows_over", p.Overflow.X, "cols_over", p.Overflow.Y)
		}
		rows = append(rows, []string{
			strings.Repeat("  ", p.Depth) + p.Name,
			p.Kind,
			formatPx(p.Pos.X), formatPx(p.Pos.Y),
			formatPx(p.Size.X), formatPx(p.Size.Y),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Widget", "Kind", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case overflowing[row]:
				return styleOverflow
			}
			return lipgloss.NewStyle()
		})

	_, err = fmt.Fprintln(w, t.Render())
	return err
}

func formatPx(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
