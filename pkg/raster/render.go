package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/matzehuels/sketchview/pkg/draw"
	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/excalidraw"
)

// Size returns the pixel size of a document whose bounding box is
// width by height units, padded on every side and scaled.
func Size(width, height, padding, scale float64) (int, int) {
	w := math.Ceil((width + 2*padding) * scale)
	h := math.Ceil((height + 2*padding) * scale)
	return int(w), int(h)
}

// Rasterize draws doc on a canvas sized to its padded bounding box and
// returns the straight-alpha result. A nil background leaves the canvas
// transparent.
func Rasterize(doc *excalidraw.Document, padding, scale float64, background color.Color, opts ...draw.Option) (*image.NRGBA, error) {
	bbox := doc.BoundingBox()
	w, h := Size(bbox.Width, bbox.Height, padding, scale)
	c, err := New(w, h, scale)
	if err != nil {
		return nil, err
	}
	if background != nil {
		c.Clear(background)
	}
	draw.Render(c, doc, padding, opts...)
	return c.NRGBA(), nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(w, img); err != nil {
		return errors.Wrap(errors.ErrCodeEncode, err, "encode png")
	}
	return nil
}

// RenderPNG rasterizes doc and returns the PNG bytes.
func RenderPNG(doc *excalidraw.Document, padding, scale float64, background color.Color, opts ...draw.Option) ([]byte, error) {
	img, err := Rasterize(doc, padding, scale, background, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
