package fileutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/skiff-sh/fpless/pkg/system"
)

const (
	DefaultFileMode = 0o644
	DefaultDirMode  = 0o755
)

func Exists(fp string) bool {
	_, err := os.Stat(fp)
	return err == nil
}

func IsDir(fp string) bool {
	st, err := os.Stat(fp)
	return err == nil && st.IsDir()
}

// SplitFilename splits a filename into base name and extension.
// For example: "style.less" → ("style", "less").
func SplitFilename(filename string) (base, ext string) {
	ext = filepath.Ext(filename)
	base = strings.TrimSuffix(filename, ext)

	ext = strings.TrimPrefix(ext, ".")
	return base, ext
}

// ReplaceExt swaps the extension of fp for ext. ext does not include the leading dot.
func ReplaceExt(fp, ext string) string {
	base, _ := SplitFilename(fp)
	return base + "." + ext
}

// MustAbs same as Abs but panics if an error is encountered.
func MustAbs(fp string) string {
	a, err := Abs(fp)
	if err != nil {
		panic(err)
	}
	return a
}

// Abs ensures fp is an absolute path. Uses the system.CWD variable (if set).
func Abs(fp string) (string, error) {
	if filepath.IsAbs(fp) {
		return filepath.Clean(fp), nil
	}

	wd, err := system.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, fp), nil
}

// AbsFrom joins fp onto root unless fp is already absolute.
func AbsFrom(root, fp string) string {
	if filepath.IsAbs(fp) {
		return filepath.Clean(fp)
	}
	return filepath.Join(root, fp)
}
