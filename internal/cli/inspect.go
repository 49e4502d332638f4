package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchview/pkg/cache"
	"github.com/matzehuels/sketchview/pkg/draw"
	"github.com/matzehuels/sketchview/pkg/excalidraw"
	"github.com/matzehuels/sketchview/pkg/render"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	elements bool
	padding  float64
	pixel    float64
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{padding: render.DefaultPadding, pixel: render.DefaultPixelScale}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print a document's elements and drawing statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.elements, "elements", "e", false, "list every visible element")
	cmd.Flags().Float64Var(&opts.padding, "padding", opts.padding, "margin used for the output size")
	cmd.Flags().Float64Var(&opts.pixel, "pixel", opts.pixel, "pixels per document unit used for the output size")

	return cmd
}

func runInspect(ctx context.Context, path string, opts inspectOpts) error {
	logger := loggerFromContext(ctx)

	data, err := readFile(path)(ctx)
	if err != nil {
		return err
	}
	doc, err := excalidraw.Parse(data)
	if err != nil {
		return err
	}

	rec := draw.NewRecorder()
	draw.Render(rec, doc, opts.padding, draw.WithLogger(logger))

	visible := doc.Visible()
	bbox := doc.BoundingBox()
	w := math.Ceil((bbox.Width + 2*opts.padding) * opts.pixel)
	h := math.Ceil((bbox.Height + 2*opts.padding) * opts.pixel)

	fmt.Println(StyleTitle.Render(path))
	printKeyValue("Format", fmt.Sprintf("%s v%d", doc.Type, doc.Version))
	printKeyValue("Elements", fmt.Sprintf("%d visible, %d deleted", len(visible), len(doc.Elements)-len(visible)))
	printKeyValue("Background", doc.AppState.ViewBackgroundColor)
	printKeyValue("Bounds", fmt.Sprintf("%s, %s  %s × %s", num(bbox.X), num(bbox.Y), num(bbox.Width), num(bbox.Height)))
	printKeyValue("PNG size", fmt.Sprintf("%.0f × %.0f px", w, h))
	printKeyValue("Drawing", rec.Summary())
	printKeyValue("Fingerprint", cache.Fingerprint(data)[:16])

	if opts.elements && len(visible) > 0 {
		printNewline()
		fmt.Println(elementTable(visible))
	}
	return nil
}

// elementTable renders one row per element.
func elementTable(elements []excalidraw.Element) string {
	rows := make([][]string, 0, len(elements))
	for _, e := range elements {
		rows = append(rows, []string{
			e.ID,
			string(e.Type),
			num(e.X) + ", " + num(e.Y),
			num(e.Width) + " × " + num(e.Height),
			e.StrokeColor,
			string(e.FillStyle),
			strconv.FormatUint(e.Seed, 10),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Type", "Position", "Size", "Stroke", "Fill", "Seed").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 0 || col == 6:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
