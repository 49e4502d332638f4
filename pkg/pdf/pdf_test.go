package pdf

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/excalidraw"
)

func ellipseDocument() *excalidraw.Document {
	return &excalidraw.Document{
		Elements: []excalidraw.Element{{
			ID:              "e",
			Type:            excalidraw.KindEllipse,
			Width:           120,
			Height:          80,
			StrokeColor:     "#1971c2",
			BackgroundColor: "#a5d8ff",
			FillStyle:       excalidraw.FillCrossHatch,
			StrokeWidth:     2,
			StrokeStyle:     excalidraw.StrokeDashed,
			Roughness:       1,
			Opacity:         80,
			Seed:            3,
		}},
	}
}

func TestRender(t *testing.T) {
	out, err := Render(ellipseDocument(), 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", out[:8])
	}

	again, err := Render(ellipseDocument(), 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, again) {
		t.Error("PDF output differs between runs")
	}
}

func TestNewPageLimits(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"regular", 595, 842, false},
		{"at limit", MaxPageSize, MaxPageSize, false},
		{"zero width", 0, 10, true},
		{"negative", 10, -1, true},
		{"too wide", MaxPageSize + 1, 10, true},
		{"too tall", 10, 200000, true},
		{"nan", math.NaN(), 10, true},
		{"inf", 10, math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPage(tt.w, tt.h)
			if tt.wantErr && !errors.Is(err, errors.ErrCodeSurfaceAllocation) {
				t.Errorf("NewPage(%v, %v) error = %v, want SURFACE_ALLOCATION", tt.w, tt.h, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("NewPage(%v, %v) error = %v", tt.w, tt.h, err)
			}
		})
	}
}

func TestRenderRejectsHugeDocument(t *testing.T) {
	doc := ellipseDocument()
	doc.Elements[0].Type = excalidraw.KindRectangle
	doc.Elements[0].FillStyle = excalidraw.FillHachure
	doc.Elements[0].Width = 200000
	doc.Elements[0].Height = 200000

	out, err := Render(doc, 100, color.NRGBA{})
	if !errors.Is(err, errors.ErrCodeSurfaceAllocation) {
		t.Errorf("Render error = %v, want SURFACE_ALLOCATION", err)
	}
	if out != nil {
		t.Errorf("Render returned %d bytes for an oversized page", len(out))
	}
}
