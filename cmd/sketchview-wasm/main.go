//go:build js && wasm

// Command sketchview-wasm draws Excalidraw documents onto a full-viewport
// browser canvas. JavaScript calls sketchview.draw(json), which returns
// null on success or an error message.
package main

import (
	"os"
	"syscall/js"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchview/internal/webcanvas"
	"github.com/matzehuels/sketchview/pkg/draw"
	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/excalidraw"
	"github.com/matzehuels/sketchview/pkg/render"
	"github.com/matzehuels/sketchview/pkg/style"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sketchview"})

	canvas, err := webcanvas.Fullscreen()
	if err != nil {
		logger.Fatal("create canvas", "err", err)
	}
	w, h := canvas.Size()
	logger.Info("canvas ready", "width", w, "height", h)

	drawFn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 || args[0].Type() != js.TypeString {
			return "sketchview.draw expects a JSON string"
		}
		padding := render.DefaultPadding
		if len(args) > 1 && args[1].Type() == js.TypeNumber {
			padding = args[1].Float()
		}
		if err := drawDocument(canvas, args[0].String(), padding, logger); err != nil {
			logger.Error("draw", "err", err)
			return errors.UserMessage(err)
		}
		return nil
	})

	api := js.Global().Get("Object").New()
	api.Set("draw", drawFn)
	js.Global().Set("sketchview", api)

	select {}
}

func drawDocument(canvas *webcanvas.Canvas, data string, padding float64, logger *log.Logger) error {
	doc, err := excalidraw.Parse([]byte(data))
	if err != nil {
		return err
	}
	bg := style.ColorOrTransparent(doc.AppState.ViewBackgroundColor, 100)
	if bg.A == 0 {
		bg = style.ColorOrTransparent(render.DefaultBackground, 100)
	}
	canvas.Clear(bg)
	cfg := draw.Render(canvas, doc, padding, draw.WithLogger(logger))
	logger.Debug("drew document", "elements", len(doc.Visible()), "offsetX", cfg.OffsetX, "offsetY", cfg.OffsetY)
	return nil
}
