// Package pkg provides the core libraries for sketchview, a renderer for
// Excalidraw whiteboard documents in a hand-drawn style.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Drawing: [geom], [rough], [excalidraw], [style], [draw]
//  2. Output: [raster], [pdf], [render]
//  3. Service: [cache], [source], [pipeline], [server], [watch], [discovery]
//
// # Architecture
//
// The typical data flow:
//
//	Document store (directory or MongoDB)
//	         ↓
//	    [excalidraw] package (parse + validate)
//	         ↓
//	    [draw] package (compose elements through rough.js-style generators)
//	         ↓
//	    [raster] or [pdf] surface
//	         ↓
//	    PNG/PDF bytes, cached by document fingerprint
//
// # Quick Start
//
//	png, err := render.Render(data, render.DefaultConfig())
//
// Or with caching:
//
//	runner := pipeline.NewRunner(store, c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.DefaultOptions("board.excalidraw"))
//
// # Determinism
//
// Every element carries a seed. The same document and options always
// produce the same bytes, which is what makes the artifact cache safe.
//
// [geom]: github.com/matzehuels/sketchview/pkg/geom
// [rough]: github.com/matzehuels/sketchview/pkg/rough
// [excalidraw]: github.com/matzehuels/sketchview/pkg/excalidraw
// [style]: github.com/matzehuels/sketchview/pkg/style
// [draw]: github.com/matzehuels/sketchview/pkg/draw
// [raster]: github.com/matzehuels/sketchview/pkg/raster
// [pdf]: github.com/matzehuels/sketchview/pkg/pdf
// [render]: github.com/matzehuels/sketchview/pkg/render
// [cache]: github.com/matzehuels/sketchview/pkg/cache
// [source]: github.com/matzehuels/sketchview/pkg/source
// [pipeline]: github.com/matzehuels/sketchview/pkg/pipeline
// [server]: github.com/matzehuels/sketchview/pkg/server
// [watch]: github.com/matzehuels/sketchview/pkg/watch
// [discovery]: github.com/matzehuels/sketchview/pkg/discovery
package pkg
