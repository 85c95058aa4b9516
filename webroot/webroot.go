// Package webroot resolves request targets into files under a root directory.
package webroot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/indigo-web/statik/http/mime"
	"github.com/indigo-web/statik/internal/uridecode"
	"github.com/indigo-web/utils/uf"
)

// ErrUnknownType is returned by ContentType for files with unregistered extensions.
var ErrUnknownType = errors.New("unknown content type")

// File is a snapshot of what was found at the resolved path. Exists is false if nothing
// was found there, or the target couldn't be resolved at all.
type File struct {
	Path   string
	Exists bool
	IsDir  bool
	Size   int64
}

type FS struct {
	root string
}

func New(root string) *FS {
	return &FS{
		root: root,
	}
}

func (f *FS) Root() string {
	return f.root
}

// Lookup resolves the request target against the root. The query and the fragment are
// dropped, percent-encoded characters are decoded and the path is cleaned, so it never
// points outside the root. A target that can't be decoded resolves to a non-existing file.
func (f *FS) Lookup(target string) (File, error) {
	name, ok := f.resolve(target)
	if !ok {
		return File{}, nil
	}

	info, err := os.Stat(name)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return File{Path: name}, nil
	default:
		return File{}, fmt.Errorf("stat %s: %w", target, err)
	}

	return File{
		Path:   name,
		Exists: true,
		IsDir:  info.IsDir(),
		Size:   info.Size(),
	}, nil
}

// ContentType probes the MIME type by the file extension.
func (f *FS) ContentType(file File) (string, error) {
	contentType, found := mime.ByExtension(file.Path)
	if !found {
		return "", fmt.Errorf("%s: %w", filepath.Base(file.Path), ErrUnknownType)
	}

	return contentType, nil
}

// Read returns the whole file contents.
func (f *FS) Read(file File) ([]byte, error) {
	return os.ReadFile(file.Path)
}

func (f *FS) resolve(target string) (string, bool) {
	if cut := strings.IndexAny(target, "?#"); cut != -1 {
		target = target[:cut]
	}

	decoded, err := uridecode.Decode(uf.S2B(target), make([]byte, 0, len(target)))
	if err != nil || strings.IndexByte(uf.B2S(decoded), 0) != -1 {
		return "", false
	}

	cleaned := path.Clean("/" + string(decoded))

	return filepath.Join(f.root, filepath.FromSlash(cleaned)), true
}
