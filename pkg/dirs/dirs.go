package dirs

import (
	"path/filepath"
	"strings"

	"github.com/skiff-sh/fpless/pkg/fileutil"
)

// Dirs are the absolute directories a compile reads from and writes to. They never change
// after construction.
type Dirs struct {
	Root          string
	SourceRoot    string
	CSSSrc        string
	CSSBld        string
	BackendStyles string
}

// Paths the unresolved form of Dirs, as it appears in config. Relative entries are
// resolved against the project root.
type Paths struct {
	SourceRoot    string `koanf:"sourceRoot"    yaml:"sourceRoot"    json:"sourceRoot"`
	CSSSrc        string `koanf:"cssSrc"        yaml:"cssSrc"        json:"cssSrc"`
	CSSBld        string `koanf:"cssBld"        yaml:"cssBld"        json:"cssBld"`
	BackendStyles string `koanf:"backendStyles" yaml:"backendStyles" json:"backendStyles"`
}

func DefaultPaths() Paths {
	return Paths{
		SourceRoot:    "source",
		CSSSrc:        "source/_styles",
		CSSBld:        "source/_styles/bld",
		BackendStyles: "backend/docroot/_styles",
	}
}

func New(root string, p Paths) *Dirs {
	root = fileutil.MustAbs(root)
	def := DefaultPaths()
	pick := func(v, d string) string {
		if v == "" {
			v = d
		}
		return fileutil.AbsFrom(root, v)
	}

	return &Dirs{
		Root:          root,
		SourceRoot:    pick(p.SourceRoot, def.SourceRoot),
		CSSSrc:        pick(p.CSSSrc, def.CSSSrc),
		CSSBld:        pick(p.CSSBld, def.CSSBld),
		BackendStyles: pick(p.BackendStyles, def.BackendStyles),
	}
}

// LessDir the directory holding the LESS entry files.
func (d *Dirs) LessDir() string {
	return filepath.Join(d.CSSSrc, "less")
}

// Rel returns fp relative to the project root with forward slashes. Paths outside the root
// come back unchanged.
func (d *Dirs) Rel(fp string) string {
	rel, err := filepath.Rel(d.Root, fp)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(fp)
	}
	if rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

// BackendBld where frontend-copy drops the built CSS. Mirrors the position of CSSBld
// under CSSSrc.
func (d *Dirs) BackendBld() string {
	rel, err := filepath.Rel(d.CSSSrc, d.CSSBld)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(d.CSSBld)
	}
	return filepath.Join(d.BackendStyles, rel)
}
