package excalidraw

import (
	"encoding/json"
	"os"
	"reflect"
	"testing"

	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/geom"
)

func loadBoard(t *testing.T) *Document {
	t.Helper()
	data, err := os.ReadFile("testdata/board.excalidraw")
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestParseBoard(t *testing.T) {
	doc := loadBoard(t)

	if doc.Type != "excalidraw" || doc.Version != 2 {
		t.Errorf("header = %q v%d", doc.Type, doc.Version)
	}
	if doc.AppState.ViewBackgroundColor != "#ffffff" {
		t.Errorf("background = %q", doc.AppState.ViewBackgroundColor)
	}
	if len(doc.Elements) != 7 {
		t.Fatalf("got %d elements, want 7", len(doc.Elements))
	}

	arrow := doc.Elements[3]
	if arrow.StartArrowhead != ArrowheadDot || arrow.EndArrowhead != ArrowheadArrow {
		t.Errorf("arrowheads = %v/%v", arrow.StartArrowhead, arrow.EndArrowhead)
	}
	if len(arrow.Points) != 3 || arrow.Points[2] != geom.Pt(68, 170) {
		t.Errorf("points = %v", arrow.Points)
	}
	if doc.Elements[0].Roundness == nil || doc.Elements[0].Roundness.Type != RoundnessAdaptiveRadius {
		t.Errorf("roundness = %+v", doc.Elements[0].Roundness)
	}
	if doc.Elements[1].Roundness != nil {
		t.Errorf("null roundness decoded as %+v", doc.Elements[1].Roundness)
	}
	if got := len(doc.Visible()); got != 6 {
		t.Errorf("Visible() = %d elements, want 6", got)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := loadBoard(t)

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal(doc)): %v", err)
	}
	if !reflect.DeepEqual(doc, again) {
		t.Error("document changed across a round trip")
	}
}

func TestRoundnessDecoding(t *testing.T) {
	tests := []struct {
		input   string
		want    RoundnessType
		wantErr bool
	}{
		{`{"type":1}`, RoundnessLegacy, false},
		{`{"type":2}`, RoundnessProportionalRadius, false},
		{`{"type":3}`, RoundnessAdaptiveRadius, false},
		{`{"type":5}`, 0, true},
		{`{"type":"3"}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var r Roundness
			err := json.Unmarshal([]byte(tt.input), &r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if r.Type != tt.want {
				t.Errorf("Type = %v, want %v", r.Type, tt.want)
			}
			if r.Value != nil {
				t.Errorf("Value = %v, want nil", *r.Value)
			}
		})
	}
}

func TestRoundnessEncoding(t *testing.T) {
	v := 16.0
	data, err := json.Marshal(Roundness{Type: RoundnessAdaptiveRadius, Value: &v})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":3,"value":16}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestEnumDecoding(t *testing.T) {
	var fs FillStyle
	for in, want := range map[string]FillStyle{
		`"zigzag"`:      FillZigZag,
		`"zig-zag"`:     FillZigZag,
		`"zigzag-line"`: FillZigZagLine,
		`"cross-hatch"`: FillCrossHatch,
		`"solid"`:       FillSolid,
	} {
		if err := json.Unmarshal([]byte(in), &fs); err != nil || fs != want {
			t.Errorf("FillStyle(%s) = %q, %v; want %q", in, fs, err, want)
		}
	}
	if err := json.Unmarshal([]byte(`"plaid"`), &fs); err == nil {
		t.Error("unknown fill style accepted")
	}

	var ah Arrowhead
	if err := json.Unmarshal([]byte(`"circle"`), &ah); err != nil || ah != ArrowheadDot {
		t.Errorf("circle arrowhead = %v, %v", ah, err)
	}
	if err := json.Unmarshal([]byte(`"harpoon"`), &ah); err == nil {
		t.Error("unknown arrowhead accepted")
	}

	var k Kind
	if err := json.Unmarshal([]byte(`"freedraw"`), &k); err == nil {
		t.Error("unknown element type accepted")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed json", `{"elements": [`},
		{"bad roundness", `{"elements":[{"type":"rectangle","roundness":{"type":5}}]}`},
		{"negative width", `{"elements":[{"type":"rectangle","width":-1}]}`},
		{"opacity range", `{"elements":[{"type":"rectangle","opacity":101}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if !errors.Is(err, errors.ErrCodeDocumentParse) {
				t.Errorf("Parse error = %v, want DOCUMENT_PARSE", err)
			}
		})
	}
}

func TestBoundingBox(t *testing.T) {
	tests := []struct {
		name     string
		elements []Element
		want     geom.Rect
	}{
		{
			name: "two boxes",
			elements: []Element{
				{X: 0, Y: 0, Width: 10, Height: 10},
				{X: 20, Y: 20, Width: 5, Height: 5},
			},
			want: geom.Rect{X: 0, Y: 0, Width: 25, Height: 25},
		},
		{
			name: "negative origin",
			elements: []Element{
				{X: -50, Y: 10, Width: 10, Height: 10},
				{X: 20, Y: -20, Width: 5, Height: 5},
			},
			want: geom.Rect{X: -50, Y: -20, Width: 75, Height: 40},
		},
		{
			name: "deleted ignored",
			elements: []Element{
				{X: 100, Y: 100, Width: 10, Height: 10},
				{X: -1000, Y: -1000, Width: 1, Height: 1, IsDeleted: true},
			},
			want: geom.Rect{X: 100, Y: 100, Width: 10, Height: 10},
		},
		{name: "empty", elements: nil, want: geom.Rect{}},
		{
			name:     "all deleted",
			elements: []Element{{X: 5, Y: 5, Width: 5, Height: 5, IsDeleted: true}},
			want:     geom.Rect{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoundingBox(tt.elements); got != tt.want {
				t.Errorf("BoundingBox = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShape(t *testing.T) {
	doc := loadBoard(t)

	if _, ok := doc.Elements[0].Shape().(Rectangle); !ok {
		t.Errorf("rectangle shape = %T", doc.Elements[0].Shape())
	}
	arrow, ok := doc.Elements[3].Shape().(Arrow)
	if !ok {
		t.Fatalf("arrow shape = %T", doc.Elements[3].Shape())
	}
	if !arrow.Curved || arrow.Start != ArrowheadDot {
		t.Errorf("arrow = %+v", arrow)
	}
	if line, ok := doc.Elements[4].Shape().(Line); !ok || line.Curved {
		t.Errorf("line shape = %+v", doc.Elements[4].Shape())
	}
	if _, ok := doc.Elements[5].Shape().(Text); !ok {
		t.Errorf("text shape = %T", doc.Elements[5].Shape())
	}

	degenerate := Element{Type: KindLine, Points: []geom.Point{{X: 3, Y: 4}}}
	if l := degenerate.Shape().(Line); len(l.Points) != 2 || l.Points[0] != (geom.Point{}) {
		t.Errorf("degenerate points = %v", l.Points)
	}
}
