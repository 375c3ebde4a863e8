package sourcemap

import (
	"strings"

	"github.com/skiff-sh/fpless/pkg/dirs"
	"github.com/skiff-sh/fpless/pkg/prefs"
)

// DestBeside tells the writer to put the map next to the CSS file. The empty string means
// no explicit destination, i.e. the map is inlined.
const DestBeside = "."

// Destination decides where the sourcemap goes. Only an external map with line comments
// explicitly off gets a destination, everything else inlines or skips the map entirely.
func Destination(p *prefs.Preferences) string {
	sm := p.Less.SourceMap
	if !p.LineCommentsOff() || sm == nil || sm.FileInline {
		return ""
	}
	return DestBeside
}

// SourceRoot computes the sourceRoot embedded into the map. ok is false when there is none,
// which is the case unless line comments are off and a map was requested.
func SourceRoot(p *prefs.Preferences, d *dirs.Dirs) (root string, ok bool) {
	sm := p.Less.SourceMap
	if !p.LineCommentsOff() || sm == nil {
		return "", false
	}

	if sm.Rootpath != "" {
		return sm.Rootpath, true
	}

	return relativeSourceRoot(d.Rel(d.CSSSrc), d.Rel(d.SourceRoot))
}

// relativeSourceRoot walks back up from the build dir to the project root and down again to
// the less dir. Layouts where the CSS source isn't nested in the UI source root get no root.
func relativeSourceRoot(cssSrcRel, srcRootRel string) (string, bool) {
	if !strings.HasPrefix(cssSrcRel, srcRootRel) {
		return "", false
	}

	nested := strings.TrimPrefix(cssSrcRel, srcRootRel)
	depth := len(strings.Split(nested, "/"))

	return strings.Repeat("../", depth) + cssSrcRel + "/less", true
}
