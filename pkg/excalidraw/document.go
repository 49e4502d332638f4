package excalidraw

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/geom"
)

// AppState carries the editor state that affects rendering.
type AppState struct {
	ViewBackgroundColor string `json:"viewBackgroundColor"`
}

// Document is an Excalidraw scene. Elements are in paint order.
type Document struct {
	Type     string    `json:"type"`
	Version  int       `json:"version"`
	Source   string    `json:"source"`
	Elements []Element `json:"elements"`
	AppState AppState  `json:"appState"`
}

// Parse decodes and validates a document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(bytes.TrimSpace(data), &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocumentParse, err, "decode document")
	}
	for i := range doc.Elements {
		if err := doc.Elements[i].Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDocumentParse, err, "element %d", i)
		}
	}
	return &doc, nil
}

// Marshal encodes d in the wire layout.
func Marshal(d *Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode document")
	}
	return data, nil
}

// Visible returns the elements that are not soft-deleted, in paint order.
func (d *Document) Visible() []Element {
	out := make([]Element, 0, len(d.Elements))
	for _, e := range d.Elements {
		if !e.IsDeleted {
			out = append(out, e)
		}
	}
	return out
}

// BoundingBox returns the smallest rectangle covering the declared box of
// every non-deleted element. With no such element it is the zero Rect.
func BoundingBox(elements []Element) geom.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false
	for _, e := range elements {
		if e.IsDeleted {
			continue
		}
		found = true
		minX = math.Min(minX, e.X)
		minY = math.Min(minY, e.Y)
		maxX = math.Max(maxX, e.X+e.Width)
		maxY = math.Max(maxY, e.Y+e.Height)
	}
	if !found {
		return geom.Rect{}
	}
	return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// BoundingBox is the bounding box of d's elements.
func (d *Document) BoundingBox() geom.Rect { return BoundingBox(d.Elements) }
