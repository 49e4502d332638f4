// Package raster draws sketches into RGBA images and encodes them as PNG.
//
// [Canvas] implements [draw.Surface] on top of rasterx: strokes go through
// a Dasher with round caps and joins, fills through a Filler sharing the
// same scanner. Coordinates are mapped through the current transform and
// a fixed pixel scale before they reach the rasterizer.
//
// The backing image is premultiplied; [Canvas.NRGBA] converts it to
// straight alpha for encoding.
package raster
