package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/skiff-sh/fpless/pkg/fileutil"
)

// Filesystem is a directory tree rooted at a single path. Reads go through fs.FS, writes
// are confined to the root.
type Filesystem interface {
	fs.FS
	fs.ReadFileFS
	fs.StatFS
	fs.GlobFS
	// Root the absolute path the Filesystem is rooted at.
	Root() string
	// WriteFile writes a file under the root. If name is absolute and not within the root, an error is returned. Automatically creates directories for file recursively.
	WriteFile(name string, content []byte) error

	// AsRel returns the enforced relative path to the root. If name is absolute and not within the path, an error is returned.
	AsRel(name string) (string, error)

	Exists(name string) bool

	Abs(name string) (string, error)

	MkdirAll(name string) error
	Remove(name string) error
}

func New(fp string) Filesystem {
	root := fileutil.MustAbs(fp)
	return &fsys{
		RootP:  root,
		RootFS: os.DirFS(root),
	}
}

type fsys struct {
	RootP  string
	RootFS fs.FS
}

func (f *fsys) Root() string {
	return f.RootP
}

func (f *fsys) Glob(pattern string) ([]string, error) {
	return fs.Glob(f.RootFS, filepath.ToSlash(pattern))
}

func (f *fsys) Stat(name string) (fs.FileInfo, error) {
	rel, err := f.AsRel(name)
	if err != nil {
		return nil, err
	}
	return fs.Stat(f.RootFS, rel)
}

func (f *fsys) Remove(name string) error {
	fp, err := f.Abs(name)
	if err != nil {
		return err
	}

	return os.Remove(fp)
}

func (f *fsys) MkdirAll(name string) error {
	fp, err := f.Abs(name)
	if err != nil {
		return err
	}
	return os.MkdirAll(fp, fileutil.DefaultDirMode)
}

func (f *fsys) Abs(name string) (string, error) {
	rel, err := f.AsRel(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(f.RootP, rel), nil
}

func (f *fsys) Exists(name string) bool {
	_, err := f.Stat(name)
	return err == nil
}

func (f *fsys) Open(name string) (fs.File, error) {
	rel, err := f.AsRel(name)
	if err != nil {
		return nil, err
	}
	return f.RootFS.Open(rel)
}

func (f *fsys) ReadFile(name string) ([]byte, error) {
	rel, err := f.AsRel(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(f.RootFS, rel)
}

// AsRel returns a slash separated path usable with the underlying fs.FS.
func (f *fsys) AsRel(name string) (string, error) {
	abs := filepath.Clean(name)
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(f.RootP, name)
	}

	rel, err := filepath.Rel(f.RootP, abs)
	if err != nil {
		return "", err
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside of %s", name, f.RootP)
	}

	return filepath.ToSlash(rel), nil
}

func (f *fsys) WriteFile(name string, content []byte) error {
	target, err := f.Abs(name)
	if err != nil {
		return err
	}

	_ = os.MkdirAll(filepath.Dir(target), fileutil.DefaultDirMode)

	var mode os.FileMode
	st, err := os.Stat(target)
	if err != nil {
		mode = fileutil.DefaultFileMode
	} else {
		mode = st.Mode()
	}

	return os.WriteFile(target, content, mode)
}
