package draw

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/sketchview/pkg/excalidraw"
	"github.com/matzehuels/sketchview/pkg/geom"
	"github.com/matzehuels/sketchview/pkg/rough"
)

func ptr(f float64) *float64 { return &f }

func TestCornerRadius(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		r    *excalidraw.Roundness
		want float64
	}{
		{"legacy", 40, &excalidraw.Roundness{Type: excalidraw.RoundnessLegacy}, 10},
		{"proportional", 40, &excalidraw.Roundness{Type: excalidraw.RoundnessProportionalRadius}, 10},
		{"adaptive below cutoff", 40, &excalidraw.Roundness{Type: excalidraw.RoundnessAdaptiveRadius}, 10},
		{"adaptive at cutoff", 128, &excalidraw.Roundness{Type: excalidraw.RoundnessAdaptiveRadius}, 32},
		{"adaptive above cutoff", 200, &excalidraw.Roundness{Type: excalidraw.RoundnessAdaptiveRadius}, 32},
		{"adaptive custom value", 200, &excalidraw.Roundness{Type: excalidraw.RoundnessAdaptiveRadius, Value: ptr(16)}, 16},
		{"none", 200, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CornerRadius(tt.x, tt.r); got != tt.want {
				t.Errorf("CornerRadius(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestDiamondPoints(t *testing.T) {
	got := DiamondPoints(101, 60)
	want := [4]geom.Point{{X: 51, Y: 0}, {X: 101, Y: 31}, {X: 51, Y: 60}, {X: 0, Y: 31}}
	if got != want {
		t.Errorf("DiamondPoints = %v, want %v", got, want)
	}
}

func TestRoundedRectPath(t *testing.T) {
	segs := RoundedRectPath(100, 50, 10)
	if len(segs) != 9 {
		t.Fatalf("got %d segments, want 9", len(segs))
	}
	if segs[0].Kind != rough.SegMoveTo || segs[0].Pts[0] != geom.Pt(10, 0) {
		t.Errorf("start = %+v", segs[0])
	}
	if segs[2].Kind != rough.SegQuadTo || segs[2].Pts[0] != geom.Pt(100, 0) || segs[2].Pts[1] != geom.Pt(100, 10) {
		t.Errorf("first corner = %+v", segs[2])
	}
	if last := segs[8]; last.Pts[1] != geom.Pt(10, 0) {
		t.Errorf("path does not close at start: %+v", last)
	}
}

func TestBezierPoint(t *testing.T) {
	p0, p1, p2, p3 := geom.Pt(0, 0), geom.Pt(0, 10), geom.Pt(10, 10), geom.Pt(10, 0)
	if got := BezierPoint(0, p0, p1, p2, p3); got != p0 {
		t.Errorf("t=0: %v", got)
	}
	if got := BezierPoint(1, p0, p1, p2, p3); got != p3 {
		t.Errorf("t=1: %v", got)
	}
	if got := BezierPoint(0.5, p0, p1, p2, p3); math.Abs(got.X-5) > 1e-9 || math.Abs(got.Y-7.5) > 1e-9 {
		t.Errorf("t=0.5: %v", got)
	}
}

func straightArrow(start, end excalidraw.Arrowhead) excalidraw.Element {
	return excalidraw.Element{
		ID:              "a",
		Type:            excalidraw.KindArrow,
		Width:           100,
		StrokeColor:     "#000000",
		BackgroundColor: "transparent",
		StrokeWidth:     2,
		StrokeStyle:     excalidraw.StrokeSolid,
		Roughness:       0,
		Opacity:         100,
		Seed:            7,
		Points:          []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}},
		StartArrowhead:  start,
		EndArrowhead:    end,
	}
}

func TestArrowheadMarker(t *testing.T) {
	e := straightArrow(excalidraw.ArrowheadNone, excalidraw.ArrowheadArrow)
	shape := e.Shape().(excalidraw.Arrow)
	body := rough.NewGenerator(linearOptions(&e)).LinearPath(shape.Points)

	tests := []struct {
		kind   excalidraw.Arrowhead
		atEnd  bool
		tip    geom.Point
		spread float64 // expected wing angle in degrees
	}{
		{excalidraw.ArrowheadArrow, true, geom.Pt(100, 0), 20},
		{excalidraw.ArrowheadBar, true, geom.Pt(100, 0), 90},
		{excalidraw.ArrowheadTriangle, false, geom.Pt(0, 0), 25},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m, ok := ArrowheadMarker(body, shape.Points, tt.kind, tt.atEnd, 2)
			if !ok {
				t.Fatal("marker not computed")
			}
			if m.Tip.Dist(tt.tip) > 1e-9 {
				t.Errorf("tip = %v, want %v", m.Tip, tt.tip)
			}
			size := math.Min(markerSize(tt.kind), 50)
			for i, w := range m.Wings {
				if d := w.Dist(m.Tip); math.Abs(d-size) > 1e-6 {
					t.Errorf("wing %d at distance %v, want %v", i, d, size)
				}
			}
			// Wings are mirrored about the shaft, which lies on y=0.
			if math.Abs(m.Wings[0].Y+m.Wings[1].Y) > 1e-6 {
				t.Errorf("wings not symmetric: %v", m.Wings)
			}
			half := math.Asin(math.Abs(m.Wings[0].Y)/size) * 180 / math.Pi
			if math.Abs(half-tt.spread) > 1e-6 {
				t.Errorf("wing angle = %v, want %v", half, tt.spread)
			}
		})
	}

	dot, ok := ArrowheadMarker(body, shape.Points, excalidraw.ArrowheadDot, true, 2)
	if !ok || math.Abs(dot.Radius-17) > 1e-6 {
		t.Errorf("dot radius = %v, want 17", dot.Radius)
	}
}

func TestArrowheadShortShaft(t *testing.T) {
	e := straightArrow(excalidraw.ArrowheadNone, excalidraw.ArrowheadArrow)
	e.Points = []geom.Point{{X: 0, Y: 0}, {X: 20, Y: 0}}
	body := rough.NewGenerator(linearOptions(&e)).LinearPath(e.Points)
	m, ok := ArrowheadMarker(body, e.Points, excalidraw.ArrowheadArrow, true, 2)
	if !ok {
		t.Fatal("marker not computed")
	}
	if d := m.Wings[0].Dist(m.Tip); math.Abs(d-10) > 1e-6 {
		t.Errorf("wing length = %v, want half the shaft (10)", d)
	}
}

func TestArrowDrawOrder(t *testing.T) {
	e := straightArrow(excalidraw.ArrowheadTriangle, excalidraw.ArrowheadArrow)
	rec := NewRecorder()
	Element(rec, &e, Config{})

	var kinds []string
	for _, c := range rec.Commands {
		kinds = append(kinds, c.Kind)
	}
	// Triangle fill and outline, two arrow wings, then the shaft.
	want := []string{"fill", "stroke", "stroke", "stroke", "stroke"}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("commands = %v, want %v", kinds, want)
	}
	if len(rec.Commands[1].Pen.Dash) != 0 {
		t.Errorf("triangle outline dashed: %v", rec.Commands[1].Pen.Dash)
	}
}

func TestDotArrowheadIgnoresStrokeStyle(t *testing.T) {
	dotWidth := func(style excalidraw.StrokeStyle) float64 {
		e := straightArrow(excalidraw.ArrowheadNone, excalidraw.ArrowheadDot)
		e.StrokeStyle = style
		rec := NewRecorder()
		Element(rec, &e, Config{})
		if len(rec.Commands) == 0 || rec.Commands[0].Kind != "fill" {
			t.Fatalf("%s: first command is not the dot fill", style)
		}
		dot := &Recorder{Commands: rec.Commands[:1]}
		return dot.Bounds().Width
	}

	solid := dotWidth(excalidraw.StrokeSolid)
	// 2 * (min(15, 100/2) + 2)
	if math.Abs(solid-34) > 1 {
		t.Errorf("solid dot diameter = %v, want about 34", solid)
	}
	for _, style := range []excalidraw.StrokeStyle{excalidraw.StrokeDashed, excalidraw.StrokeDotted} {
		if got := dotWidth(style); math.Abs(got-solid) > 1e-9 {
			t.Errorf("%s dot diameter = %v, want %v as for solid", style, got, solid)
		}
	}
}

func sampleDocument() *excalidraw.Document {
	box := func(id string, kind excalidraw.Kind, x, y, w, h float64) excalidraw.Element {
		return excalidraw.Element{
			ID: id, Type: kind, X: x, Y: y, Width: w, Height: h,
			StrokeColor: "#1e1e1e", BackgroundColor: "#ffc9c9",
			FillStyle: excalidraw.FillHachure, StrokeWidth: 2,
			StrokeStyle: excalidraw.StrokeSolid, Roughness: 1,
			Opacity: 100, Seed: 1968410350,
		}
	}
	rounded := box("r2", excalidraw.KindRectangle, 300, 0, 80, 80)
	rounded.Roundness = &excalidraw.Roundness{Type: excalidraw.RoundnessProportionalRadius}
	deleted := box("gone", excalidraw.KindRectangle, -500, -500, 10, 10)
	deleted.IsDeleted = true
	arrow := straightArrow(excalidraw.ArrowheadDot, excalidraw.ArrowheadBar)
	arrow.X, arrow.Y = 0, 200
	arrow.Roundness = &excalidraw.Roundness{Type: excalidraw.RoundnessProportionalRadius}
	arrow.Points = []geom.Point{{X: 0, Y: 0}, {X: 50, Y: 40}, {X: 100, Y: 0}}

	return &excalidraw.Document{
		Type: "excalidraw", Version: 2,
		Elements: []excalidraw.Element{
			box("r1", excalidraw.KindRectangle, 0, 0, 100, 100),
			rounded,
			box("d1", excalidraw.KindDiamond, 120, 0, 100, 60),
			box("e1", excalidraw.KindEllipse, 120, 100, 100, 60),
			deleted,
			arrow,
			{ID: "t", Type: excalidraw.KindText, X: 10, Y: 10, Width: 40, Height: 20},
		},
	}
}

func TestRenderDeterministic(t *testing.T) {
	doc := sampleDocument()
	a, b := NewRecorder(), NewRecorder()
	Render(a, doc, 10)
	Render(b, doc, 10)

	if len(a.Commands) == 0 {
		t.Fatal("nothing drawn")
	}
	if !reflect.DeepEqual(a.Commands, b.Commands) {
		t.Error("two renders of the same document differ")
	}
}

func TestRenderOffsetAndScopes(t *testing.T) {
	doc := sampleDocument()
	rec := NewRecorder()
	cfg := Render(rec, doc, 10)

	if cfg.OffsetX != 10 || cfg.OffsetY != 10 {
		t.Errorf("offset = %+v, want (10, 10)", cfg)
	}
	if !rec.Balanced() {
		t.Error("unbalanced Save/Restore")
	}
	if rec.MaxDepth != 1 {
		t.Errorf("max scope depth = %d, want 1", rec.MaxDepth)
	}

	// The deleted element would land near (-490,-490).
	b := rec.Bounds()
	if b.X < -100 || b.Y < -100 {
		t.Errorf("ink reaches %v; deleted element drawn or offset wrong", b)
	}
}

func TestRotationAboutCentre(t *testing.T) {
	e := excalidraw.Element{
		Type: excalidraw.KindRectangle, Width: 100, Height: 20,
		StrokeColor: "#000000", BackgroundColor: "transparent",
		StrokeWidth: 1, StrokeStyle: excalidraw.StrokeSolid,
		Opacity: 100, Angle: math.Pi / 2,
	}
	rec := NewRecorder()
	Element(rec, &e, Config{})
	b := rec.Bounds()
	// A 100x20 box turned a quarter about (50,10) spans x 40..60, y -40..60.
	if math.Abs(b.X-40) > 1e-6 || math.Abs(b.Width-20) > 1e-6 || math.Abs(b.Y+40) > 1e-6 {
		t.Errorf("rotated bounds = %+v", b)
	}
}

func TestEmptyDocument(t *testing.T) {
	rec := NewRecorder()
	cfg := Render(rec, &excalidraw.Document{}, 100)
	if cfg != (Config{OffsetX: 100, OffsetY: 100}) {
		t.Errorf("offset = %+v", cfg)
	}
	if len(rec.Commands) != 0 {
		t.Errorf("empty document drew %d commands", len(rec.Commands))
	}
}
