package sourcemap

import (
	"github.com/skiff-sh/fpless/pkg/dirs"
	"github.com/skiff-sh/fpless/pkg/prefs"
)

const (
	StrategyPassThrough   = "pass-through"
	StrategyWithSourcemap = "with-sourcemap"
)

// Strategy how a compiled stylesheet is finalized. One is picked per compile run.
type Strategy interface {
	Name() string
	// WantsMap true if the compiler should be asked for a sourcemap.
	WantsMap() bool
	// Finish turns compiler output into what gets written. rawMap is nil when WantsMap is false.
	Finish(cssName string, css []byte, rawMap []byte) (*Output, error)
}

// SelectStrategy picks the strategy for p. A map is only built when line comments are
// explicitly off.
func SelectStrategy(p *prefs.Preferences, d *dirs.Dirs) Strategy {
	if !p.SourceMapRequested() || !p.LineCommentsOff() {
		return PassThrough{}
	}

	root, _ := SourceRoot(p, d)
	return &WithSourcemap{
		Opts: WriteOpts{
			Dest:       Destination(p),
			SourceRoot: root,
		},
	}
}

var _ Strategy = PassThrough{}

// PassThrough leaves the CSS exactly as the compiler produced it.
type PassThrough struct{}

func (PassThrough) Name() string {
	return StrategyPassThrough
}

func (PassThrough) WantsMap() bool {
	return false
}

func (PassThrough) Finish(_ string, css []byte, _ []byte) (*Output, error) {
	return &Output{CSS: css}, nil
}

var _ Strategy = (*WithSourcemap)(nil)

type WithSourcemap struct {
	Opts WriteOpts
}

func (w *WithSourcemap) Name() string {
	return StrategyWithSourcemap
}

func (w *WithSourcemap) WantsMap() bool {
	return true
}

func (w *WithSourcemap) Finish(cssName string, css []byte, rawMap []byte) (*Output, error) {
	m := &Map{Version: 3}
	if len(rawMap) > 0 {
		var err error
		m, err = Parse(rawMap)
		if err != nil {
			return nil, err
		}
	}

	return Write(cssName, css, m, w.Opts)
}
