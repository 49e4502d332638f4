// Package geom provides the small amount of plane geometry shared by the
// sketch pipeline: points, rectangles, rotation about a centre and a 2D
// affine transform used by the output surfaces.
//
// Points serialize as two-element JSON arrays ("[x,y]"), which is the
// form Excalidraw documents use for the vertex list of lines and arrows.
// Floats are always written with a fractional part so that a point at the
// origin encodes as [0.0,0.0].
package geom
