// Package pdf draws sketches into single-page vector PDF documents using
// gofpdf. One logical document unit maps to one PDF point.
package pdf

import (
	"bytes"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/sketchview/pkg/draw"
	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/excalidraw"
	"github.com/matzehuels/sketchview/pkg/geom"
	"github.com/matzehuels/sketchview/pkg/rough"
)

// MaxPageSize is the largest page side in points that PDF viewers accept.
const MaxPageSize = 14400

// epoch is stamped as the creation date so identical input yields
// identical bytes.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Page is a PDF drawing surface.
type Page struct {
	pdf   *gofpdf.Fpdf
	ctm   geom.Affine
	stack []geom.Affine
}

var _ draw.Surface = (*Page)(nil)

// NewPage creates a document with one page of the given size in points.
// Sides must be positive and at most MaxPageSize.
func NewPage(width, height float64) (*Page, error) {
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, errors.New(errors.ErrCodeSurfaceAllocation, "invalid page size %vx%v", width, height)
	}
	if width > MaxPageSize || height > MaxPageSize {
		return nil, errors.New(errors.ErrCodeSurfaceAllocation, "page %vx%v exceeds %v pt", width, height, MaxPageSize)
	}
	orientation := "P"
	if width > height {
		orientation = "L"
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetCreator("sketchview", true)
	pdf.SetCreationDate(epoch)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.AddPage()
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	return &Page{pdf: pdf, ctm: geom.Identity()}, nil
}

// Background fills the whole page with c.
func (p *Page) Background(c color.NRGBA) {
	if c.A == 0 {
		return
	}
	w, h := p.pdf.GetPageSize()
	p.setFill(c)
	p.pdf.Rect(0, 0, w, h, "F")
	p.pdf.SetAlpha(1, "Normal")
}

func (p *Page) Save() { p.stack = append(p.stack, p.ctm) }

func (p *Page) Restore() {
	if n := len(p.stack); n > 0 {
		p.ctm = p.stack[n-1]
		p.stack = p.stack[:n-1]
	}
}

func (p *Page) Translate(dx, dy float64) { p.ctm = p.ctm.Translate(dx, dy) }
func (p *Page) Rotate(angle float64)     { p.ctm = p.ctm.Rotate(angle) }

func (p *Page) Stroke(ops []rough.Op, pen draw.Pen) {
	if pen.Color.A == 0 || pen.Width <= 0 {
		return
	}
	s := p.ctm.LinearScale()
	p.pdf.SetDrawColor(int(pen.Color.R), int(pen.Color.G), int(pen.Color.B))
	p.pdf.SetAlpha(float64(pen.Color.A)/255, "Normal")
	p.pdf.SetLineWidth(pen.Width * s)
	dash := make([]float64, len(pen.Dash))
	for i, d := range pen.Dash {
		dash[i] = d * s
	}
	p.pdf.SetDashPattern(dash, 0)
	p.path(ops, false)
	p.pdf.DrawPath("D")
	p.pdf.SetDashPattern([]float64{}, 0)
	p.pdf.SetAlpha(1, "Normal")
}

func (p *Page) Fill(ops []rough.Op, c color.NRGBA, rule draw.FillRule) {
	if c.A == 0 {
		return
	}
	p.setFill(c)
	p.path(ops, true)
	style := "F"
	if rule == draw.EvenOdd {
		style = "F*"
	}
	p.pdf.DrawPath(style)
	p.pdf.SetAlpha(1, "Normal")
}

func (p *Page) setFill(c color.NRGBA) {
	p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	p.pdf.SetAlpha(float64(c.A)/255, "Normal")
}

func (p *Page) path(ops []rough.Op, closed bool) {
	started := false
	for _, op := range ops {
		switch op.Kind {
		case rough.OpMove:
			if started && closed {
				p.pdf.ClosePath()
			}
			q := p.ctm.Apply(geom.Pt(op.Data[0], op.Data[1]))
			p.pdf.MoveTo(q.X, q.Y)
			started = true
		case rough.OpLineTo:
			q := p.ctm.Apply(geom.Pt(op.Data[0], op.Data[1]))
			p.pdf.LineTo(q.X, q.Y)
		case rough.OpBezierTo:
			c1 := p.ctm.Apply(geom.Pt(op.Data[0], op.Data[1]))
			c2 := p.ctm.Apply(geom.Pt(op.Data[2], op.Data[3]))
			end := p.ctm.Apply(geom.Pt(op.Data[4], op.Data[5]))
			p.pdf.CurveBezierCubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
		}
	}
	if started && closed {
		p.pdf.ClosePath()
	}
}

// WriteTo writes the finished document to w.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return 0, errors.Wrap(errors.ErrCodeEncode, err, "encode pdf")
	}
	return buf.WriteTo(w)
}

// Render draws doc onto a page sized to its padded bounding box.
func Render(doc *excalidraw.Document, padding float64, background color.NRGBA, opts ...draw.Option) ([]byte, error) {
	bbox := doc.BoundingBox()
	page, err := NewPage(bbox.Width+2*padding, bbox.Height+2*padding)
	if err != nil {
		return nil, err
	}
	page.Background(background)
	draw.Render(page, doc, padding, opts...)

	var buf bytes.Buffer
	if _, err := page.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
