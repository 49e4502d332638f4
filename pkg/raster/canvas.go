package raster

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/sketchview/pkg/draw"
	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/geom"
	"github.com/matzehuels/sketchview/pkg/rough"
)

// Surface size limits.
const (
	MaxDimension = 16384
	MaxPixels    = 1 << 26
)

// Canvas is a raster drawing surface.
type Canvas struct {
	img    *image.RGBA
	ctm    geom.Affine
	stack  []geom.Affine
	dasher *rasterx.Dasher
	filler *rasterx.Filler
}

var _ draw.Surface = (*Canvas)(nil)

// New allocates a width by height canvas whose logical units are scaled
// by scale.
func New(width, height int, scale float64) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeSurfaceAllocation, "invalid surface size %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension || width*height > MaxPixels {
		return nil, errors.New(errors.ErrCodeSurfaceAllocation, "surface %dx%d exceeds limit", width, height)
	}
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeSurfaceAllocation, "invalid pixel scale %v", scale)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Canvas{
		img:    img,
		ctm:    geom.Scaling(scale),
		dasher: rasterx.NewDasher(width, height, scanner),
		filler: rasterx.NewFiller(width, height, scanner),
	}, nil
}

// Clear paints every pixel with c, replacing what was there.
func (c *Canvas) Clear(bg color.Color) {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
}

// Image returns the premultiplied backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// NRGBA returns a straight-alpha copy of the canvas.
func (c *Canvas) NRGBA() *image.NRGBA {
	b := c.img.Bounds()
	out := image.NewNRGBA(b)
	xdraw.Draw(out, b, c.img, b.Min, xdraw.Src)
	return out
}

func (c *Canvas) Save() { c.stack = append(c.stack, c.ctm) }

func (c *Canvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.ctm = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *Canvas) Translate(dx, dy float64) { c.ctm = c.ctm.Translate(dx, dy) }
func (c *Canvas) Rotate(angle float64)     { c.ctm = c.ctm.Rotate(angle) }

func (c *Canvas) Stroke(ops []rough.Op, pen draw.Pen) {
	if pen.Color.A == 0 || pen.Width <= 0 {
		return
	}
	s := c.ctm.LinearScale()
	var dash []float64
	if len(pen.Dash) > 0 {
		dash = make([]float64, len(pen.Dash))
		for i, d := range pen.Dash {
			dash[i] = d * s
		}
	}
	c.dasher.Clear()
	c.dasher.SetWinding(true)
	c.dasher.SetStroke(fixed.Int26_6(pen.Width*s*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, dash, 0)
	c.replay(c.dasher, ops, false)
	c.dasher.SetColor(pen.Color)
	c.dasher.Draw()
	c.dasher.Clear()
}

func (c *Canvas) Fill(ops []rough.Op, col color.NRGBA, rule draw.FillRule) {
	if col.A == 0 {
		return
	}
	c.filler.Clear()
	c.filler.SetWinding(rule == draw.NonZero)
	c.replay(c.filler, ops, true)
	c.filler.SetColor(col)
	c.filler.Draw()
	c.filler.Clear()
}

func (c *Canvas) replay(a rasterx.Adder, ops []rough.Op, closed bool) {
	started := false
	pt := func(x, y float64) fixed.Point26_6 {
		p := c.ctm.Apply(geom.Pt(x, y))
		return rasterx.ToFixedP(p.X, p.Y)
	}
	for _, op := range ops {
		d := op.Data
		switch op.Kind {
		case rough.OpMove:
			if started {
				a.Stop(closed)
			}
			a.Start(pt(d[0], d[1]))
			started = true
		case rough.OpLineTo:
			if !started {
				continue
			}
			a.Line(pt(d[0], d[1]))
		case rough.OpBezierTo:
			if !started {
				continue
			}
			a.CubeBezier(pt(d[0], d[1]), pt(d[2], d[3]), pt(d[4], d[5]))
		}
	}
	if started {
		a.Stop(closed)
	}
}
