package source

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/matzehuels/sketchview/pkg/errors"
)

// FileStore serves documents below a root directory.
type FileStore struct {
	root string
}

// NewFileStore returns a store rooted at dir. The directory must exist.
func NewFileStore(dir string) (*FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "documents directory %s does not exist", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeDocumentRead, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}
	return &FileStore{root: abs}, nil
}

// Root returns the absolute documents directory.
func (s *FileStore) Root() string { return s.root }

// Abs maps a document path to its file, validating it first.
func (s *FileStore) Abs(p string) (string, error) {
	if err := errors.ValidatePath(p); err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(p)), nil
}

// Rel maps a file below Root back to its document path.
func (s *FileStore) Rel(file string) (string, error) {
	rel, err := filepath.Rel(s.root, file)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "%s is outside %s", file, s.root)
	}
	return filepath.ToSlash(rel), nil
}

func (s *FileStore) Read(ctx context.Context, p string) ([]byte, error) {
	file, err := s.Abs(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "document %s not found", p)
		}
		return nil, errors.Wrap(errors.ErrCodeDocumentRead, err, "read %s", p)
	}
	return data, nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	var out []string
	err := filepath.WalkDir(s.root, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !IsDocument(file) {
			return nil
		}
		rel, err := s.Rel(file)
		if err != nil {
			return err
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDocumentRead, err, "list %s", s.root)
	}
	sort.Strings(out)
	return out, nil
}

// Close does nothing for file stores.
func (s *FileStore) Close(ctx context.Context) error { return nil }

var _ Store = (*FileStore)(nil)
