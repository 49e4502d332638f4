package source

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/sketchview/pkg/errors"
)

func writeFile(t *testing.T, root, rel, data string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFileStoreRead(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "boards/a.excalidraw", `{"elements":[]}`)
	s, err := NewFileStore(root)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	data, err := s.Read(ctx, "boards/a.excalidraw")
	if err != nil || string(data) != `{"elements":[]}` {
		t.Errorf("Read() = %q, %v", data, err)
	}

	tests := []struct {
		path string
		code errors.Code
	}{
		{"boards/missing.excalidraw", errors.ErrCodeNotFound},
		{"../etc/passwd", errors.ErrCodeInvalidPath},
		{"/abs", errors.ErrCodeInvalidPath},
		{"", errors.ErrCodeInvalidPath},
		{"boards", errors.ErrCodeDocumentRead},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := s.Read(ctx, tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("Read(%q) error = %v, want %s", tt.path, err, tt.code)
			}
		})
	}
}

func TestFileStoreList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "z.excalidraw", "{}")
	writeFile(t, root, "a/b.json", "{}")
	writeFile(t, root, "a/notes.txt", "")
	s, err := NewFileStore(root)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a/b.json", "z.excalidraw"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestNewFileStoreMissingDir(t *testing.T) {
	_, err := NewFileStore(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("NewFileStore() error = %v, want NOT_FOUND", err)
	}
}

// fakeCollection serves records from memory.
type fakeCollection struct {
	recs []record
}

func (f *fakeCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	want := filter.(bson.M)["path"]
	for _, r := range f.recs {
		if r.Path == want {
			return mongo.NewSingleResultFromDocument(r, nil, nil)
		}
	}
	return mongo.NewSingleResultFromDocument(bson.M{}, mongo.ErrNoDocuments, nil)
}

func (f *fakeCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	docs := make([]interface{}, len(f.recs))
	for i, r := range f.recs {
		docs[i] = r
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func TestMongoStore(t *testing.T) {
	s := &MongoStore{coll: &fakeCollection{recs: []record{
		{Path: "team/roadmap", Data: `{"elements":[]}`},
		{Path: "arch", Data: `{}`},
	}}}
	ctx := context.Background()

	data, err := s.Read(ctx, "team/roadmap")
	if err != nil || string(data) != `{"elements":[]}` {
		t.Errorf("Read() = %q, %v", data, err)
	}
	if _, err := s.Read(ctx, "gone"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Read(gone) error = %v, want NOT_FOUND", err)
	}
	if _, err := s.Read(ctx, "../x"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("Read(../x) error = %v, want INVALID_PATH", err)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"arch", "team/roadmap"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if err := s.Close(ctx); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
