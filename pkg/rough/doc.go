// Package rough generates hand-drawn looking outlines and fills.
//
// A [Generator] turns a geometric primitive (line, rectangle, ellipse,
// polygon, curve or path) into a [Drawable]: an ordered list of [OpSet]
// values, each a flat sequence of move, line and cubic Bezier operations.
// Surfaces replay drawables without knowing anything about the primitive
// that produced them:
//
//   - [OpSetPath] is stroked with the stroke colour and width.
//   - [OpSetFillPath] is filled with the fill colour.
//   - [OpSetFillSketch] is stroked with the fill colour and the fill weight.
//
// # Determinism
//
// All jitter comes from a seeded Park-Miller generator ([Random]). Every
// generator call starts a fresh sequence from [Options.Seed], so the same
// primitive with the same options always yields identical operations.
// A zero seed is replaced by 1.
//
// # Fill styles
//
// Hachure, cross-hatch, zigzag, dots, dashed and zigzag-line fills are
// produced by scan-line filling the polygon at [Options.HachureAngle] with
// lines [Options.HachureGap] apart. Solid fills emit a single fill path.
package rough
