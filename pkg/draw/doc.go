// Package draw composes Excalidraw documents onto an abstract [Surface].
//
// [Render] computes the document bounding box, derives the offset that puts
// the box at padding distance from the surface origin, and walks the
// non-deleted elements in paint order. Each element is dispatched on its
// [excalidraw.Shape] variant to a drawer that asks the rough generator for
// sketchy op sets and replays them on the surface with [Paint].
//
// Every element is drawn inside a Save/Restore scope holding a translation
// to the element origin, plus a rotation about the element centre when the
// element has a non-zero angle. Drawers therefore work purely in local
// coordinates.
//
// Surfaces are thin: they stroke or fill a list of rough ops under the
// current transform. Raster, PDF and browser canvas backends live in their
// own packages; [Recorder] is an in-memory surface used for inspection and
// tests.
package draw
