// Package frontendcopy moves the built CSS over to the backend's styles directory.
package frontendcopy

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/skiff-sh/fpless/pkg/filesystem"
	"github.com/skiff-sh/fpless/pkg/interact"
	"github.com/skiff-sh/fpless/pkg/sourcemap"
)

// Copy copies every stylesheet under src into dst, keeping the directory layout. Sourcemaps
// stay behind and references to them are stripped from the copies.
func Copy(ctx context.Context, src, dst filesystem.Filesystem) ([]string, error) {
	var copied []string
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(p), ".css") {
			return nil
		}

		b, err := src.ReadFile(p)
		if err != nil {
			return err
		}

		b = sourcemap.StripMappingURL(b)
		err = dst.WriteFile(p, b)
		if err != nil {
			return fmt.Errorf("failed to copy %s: %w", p, err)
		}

		slog.DebugContext(ctx, "Copied stylesheet.", "path", p, "size", humanize.Bytes(uint64(len(b))))
		copied = append(copied, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	interact.Infof("Copied %d stylesheet(s) to %s", len(copied), dst.Root())
	return copied, nil
}
