// Package render is the entry point from document bytes to an encoded
// image.
//
// # Overview
//
// [Render] parses an Excalidraw document, composes it onto a surface sized
// to its padded bounding box and encodes the result:
//
//	png, err := render.Render(data, render.Config{Padding: 100, PixelScale: 4})
//
// The output format is chosen with [Config.Format]. PNG output goes through
// the [raster] surface and PDF output through the [pdf] surface; both draw
// with the same composer from [draw].
//
// [raster]: github.com/matzehuels/sketchview/pkg/raster
// [pdf]: github.com/matzehuels/sketchview/pkg/pdf
// [draw]: github.com/matzehuels/sketchview/pkg/draw
package render
