//go:build js && wasm

// Package webcanvas draws sketches onto a browser canvas through the 2D
// rendering context.
package webcanvas

import (
	"fmt"
	"image/color"
	"syscall/js"

	"github.com/matzehuels/sketchview/pkg/draw"
	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/rough"
)

// Canvas is a draw.Surface over a CanvasRenderingContext2D. Transforms
// are delegated to the context, so widths and dashes scale with it.
type Canvas struct {
	el     js.Value
	ctx    js.Value
	width  float64
	height float64
}

var _ draw.Surface = (*Canvas)(nil)

// Fullscreen appends a canvas covering the viewport to the document body.
// The backing store is scaled by devicePixelRatio so one unit is one CSS
// pixel.
func Fullscreen() (*Canvas, error) {
	window := js.Global()
	doc := window.Get("document")
	if doc.IsUndefined() {
		return nil, errors.New(errors.ErrCodeSurfaceAllocation, "no document in this context")
	}
	el := doc.Call("createElement", "canvas")
	ctx := el.Call("getContext", "2d")
	if ctx.IsNull() {
		return nil, errors.New(errors.ErrCodeSurfaceAllocation, "2d context unavailable")
	}
	doc.Get("body").Call("appendChild", el)

	dpr := window.Get("devicePixelRatio").Float()
	if dpr <= 0 {
		dpr = 1
	}
	w := window.Get("innerWidth").Float()
	h := window.Get("innerHeight").Float()
	el.Set("width", int(w*dpr))
	el.Set("height", int(h*dpr))
	style := el.Get("style")
	style.Set("width", fmt.Sprintf("%gpx", w))
	style.Set("height", fmt.Sprintf("%gpx", h))
	ctx.Call("scale", dpr, dpr)
	ctx.Set("lineCap", "round")
	ctx.Set("lineJoin", "round")

	return &Canvas{el: el, ctx: ctx, width: w, height: h}, nil
}

// Size returns the viewport size in CSS pixels.
func (c *Canvas) Size() (float64, float64) { return c.width, c.height }

// Clear paints the whole viewport with bg.
func (c *Canvas) Clear(bg color.NRGBA) {
	c.ctx.Call("save")
	c.ctx.Call("setTransform", 1, 0, 0, 1, 0, 0)
	c.ctx.Call("clearRect", 0, 0, c.el.Get("width"), c.el.Get("height"))
	if bg.A > 0 {
		c.ctx.Set("fillStyle", cssColor(bg))
		c.ctx.Call("fillRect", 0, 0, c.el.Get("width"), c.el.Get("height"))
	}
	c.ctx.Call("restore")
}

func (c *Canvas) Save()                    { c.ctx.Call("save") }
func (c *Canvas) Restore()                 { c.ctx.Call("restore") }
func (c *Canvas) Translate(dx, dy float64) { c.ctx.Call("translate", dx, dy) }
func (c *Canvas) Rotate(angle float64)     { c.ctx.Call("rotate", angle) }

func (c *Canvas) Stroke(ops []rough.Op, pen draw.Pen) {
	if pen.Color.A == 0 || pen.Width <= 0 {
		return
	}
	c.ctx.Set("strokeStyle", cssColor(pen.Color))
	c.ctx.Set("lineWidth", pen.Width)
	dash := make([]any, len(pen.Dash))
	for i, d := range pen.Dash {
		dash[i] = d
	}
	c.ctx.Call("setLineDash", dash)
	c.path(ops, false)
	c.ctx.Call("stroke")
}

func (c *Canvas) Fill(ops []rough.Op, col color.NRGBA, rule draw.FillRule) {
	if col.A == 0 {
		return
	}
	c.ctx.Set("fillStyle", cssColor(col))
	c.path(ops, true)
	if rule == draw.EvenOdd {
		c.ctx.Call("fill", "evenodd")
		return
	}
	c.ctx.Call("fill", "nonzero")
}

func (c *Canvas) path(ops []rough.Op, closed bool) {
	c.ctx.Call("beginPath")
	started := false
	for _, op := range ops {
		d := op.Data
		switch op.Kind {
		case rough.OpMove:
			if started && closed {
				c.ctx.Call("closePath")
			}
			c.ctx.Call("moveTo", d[0], d[1])
			started = true
		case rough.OpLineTo:
			if started {
				c.ctx.Call("lineTo", d[0], d[1])
			}
		case rough.OpBezierTo:
			if started {
				c.ctx.Call("bezierCurveTo", d[0], d[1], d[2], d[3], d[4], d[5])
			}
		}
	}
	if started && closed {
		c.ctx.Call("closePath")
	}
}

func cssColor(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, float64(c.A)/255)
}
