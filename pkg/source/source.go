// Package source reads Excalidraw documents by relative path.
//
// A [Store] hides where documents live. [FileStore] serves a documents
// directory on disk and [MongoStore] serves documents kept in a MongoDB
// collection. Both validate paths with [errors.ValidatePath] and report a
// missing document as NOT_FOUND.
//
// [errors.ValidatePath]: github.com/matzehuels/sketchview/pkg/errors
package source

import (
	"context"
	"path"
	"strings"
)

// Store resolves document paths to raw document bytes.
type Store interface {
	// Read returns the raw bytes of the document at the slash-separated
	// relative path p.
	Read(ctx context.Context, p string) ([]byte, error)

	// List returns the paths of every document, sorted.
	List(ctx context.Context) ([]string, error)

	Close(ctx context.Context) error
}

// Extensions recognised as documents when listing.
var Extensions = []string{".excalidraw", ".json"}

// IsDocument reports whether p has a document extension.
func IsDocument(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
