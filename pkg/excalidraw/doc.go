// Package excalidraw models Excalidraw whiteboard documents.
//
// A [Document] is decoded from the Excalidraw JSON interchange format with
// [Parse]. Its [Element] values keep the flat wire layout so that documents
// round-trip unchanged, while [Element.Shape] exposes the per-kind geometry
// as a closed set of [Shape] variants for the renderer to switch over.
//
// Wire details worth knowing:
//
//   - Field names are lower camel case ("strokeColor", "isDeleted").
//   - roundness.type is the integer 1, 2 or 3, not a string.
//   - points is an array of [x, y] arrays.
//   - startArrowhead and endArrowhead are null or a marker name.
package excalidraw
