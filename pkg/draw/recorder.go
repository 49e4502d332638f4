package draw

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/sketchview/pkg/geom"
	"github.com/matzehuels/sketchview/pkg/rough"
)

// Command is one recorded surface call with its ops already mapped
// through the transform that was current at the time.
type Command struct {
	Kind  string // "stroke" or "fill"
	Ops   []rough.Op
	Pen   Pen
	Color color.NRGBA
	Rule  FillRule
}

// Recorder is a Surface that keeps every call in memory.
type Recorder struct {
	Commands []Command

	ctm   geom.Affine
	stack []geom.Affine
	depth int
	// MaxDepth is the deepest Save nesting seen.
	MaxDepth int
}

// NewRecorder returns an empty recorder with an identity transform.
func NewRecorder() *Recorder {
	return &Recorder{ctm: geom.Identity()}
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.ctm)
	r.depth++
	if r.depth > r.MaxDepth {
		r.MaxDepth = r.depth
	}
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.ctm = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.depth--
}

// Balanced reports whether every Save has been matched by a Restore.
func (r *Recorder) Balanced() bool { return len(r.stack) == 0 }

func (r *Recorder) Translate(dx, dy float64) { r.ctm = r.ctm.Translate(dx, dy) }
func (r *Recorder) Rotate(angle float64)     { r.ctm = r.ctm.Rotate(angle) }

func (r *Recorder) Stroke(ops []rough.Op, pen Pen) {
	r.Commands = append(r.Commands, Command{Kind: "stroke", Ops: TransformOps(r.ctm, ops), Pen: pen})
}

func (r *Recorder) Fill(ops []rough.Op, c color.NRGBA, rule FillRule) {
	r.Commands = append(r.Commands, Command{Kind: "fill", Ops: TransformOps(r.ctm, ops), Color: c, Rule: rule})
}

// Bounds returns the box around every op end point and control point.
func (r *Recorder) Bounds() geom.Rect {
	var out geom.Rect
	first := true
	for _, c := range r.Commands {
		for _, op := range c.Ops {
			n := 1
			if op.Kind == rough.OpBezierTo {
				n = 3
			}
			for i := 0; i < n; i++ {
				p := geom.Rect{X: op.Data[2*i], Y: op.Data[2*i+1]}
				if first {
					out, first = p, false
					continue
				}
				out = out.Union(p)
			}
		}
	}
	return out
}

// Summary counts recorded commands and ops, e.g. "12 strokes, 2 fills, 340 ops".
func (r *Recorder) Summary() string {
	var strokes, fills, ops int
	for _, c := range r.Commands {
		if c.Kind == "fill" {
			fills++
		} else {
			strokes++
		}
		ops += len(c.Ops)
	}
	return fmt.Sprintf("%d strokes, %d fills, %d ops", strokes, fills, ops)
}

// TransformOps maps every coordinate of ops through m.
func TransformOps(m geom.Affine, ops []rough.Op) []rough.Op {
	out := make([]rough.Op, len(ops))
	for i, op := range ops {
		out[i] = op
		n := 1
		if op.Kind == rough.OpBezierTo {
			n = 3
		}
		for j := 0; j < n; j++ {
			p := m.Apply(geom.Pt(op.Data[2*j], op.Data[2*j+1]))
			out[i].Data[2*j], out[i].Data[2*j+1] = p.X, p.Y
		}
	}
	return out
}
