package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/skiff-sh/fpless/pkg/testutil"
)

type PrefsTestSuite struct {
	suite.Suite
}

func (p *PrefsTestSuite) TestResolve() {
	type test struct {
		Given    *Preferences
		Expected *Preferences
	}

	tests := map[string]test{
		"empty": {
			Given: &Preferences{},
			Expected: &Preferences{Less: Less{
				Paths:           []string{"/proj/source/_styles/less"},
				DumpLineNumbers: LineNumbersComments,
			}},
		},
		"keeps set paths": {
			Given: &Preferences{Less: Less{Paths: []string{"a", "b"}}},
			Expected: &Preferences{Less: Less{
				Paths:           []string{"a", "b"},
				DumpLineNumbers: LineNumbersComments,
			}},
		},
		"keeps line numbers off": {
			Given: &Preferences{Less: Less{DumpLineNumbers: LineNumbersOff}},
			Expected: &Preferences{Less: Less{
				Paths:           []string{"/proj/source/_styles/less"},
				DumpLineNumbers: LineNumbersOff,
			}},
		},
		"sourcemap passes through": {
			Given: &Preferences{Less: Less{SourceMap: &SourceMap{Rootpath: "/foo/bar"}}},
			Expected: &Preferences{Less: Less{
				Paths:           []string{"/proj/source/_styles/less"},
				DumpLineNumbers: LineNumbersComments,
				SourceMap:       &SourceMap{Rootpath: "/foo/bar"},
			}},
		},
	}

	for desc, v := range tests {
		p.Run(desc, func() {
			actual := Resolve(v.Given, "/proj/source/_styles")
			p.Empty(testutil.Diff(v.Expected, actual))

			again := Resolve(actual.Clone(), "/proj/source/_styles")
			p.Empty(testutil.Diff(actual, again), "resolve is not idempotent")
		})
	}
}

func (p *PrefsTestSuite) TestResolveKeepsEmptyPaths() {
	actual := Resolve(&Preferences{Less: Less{Paths: []string{}}}, "/proj/source/_styles")

	p.NotNil(actual.Less.Paths)
	p.Empty(actual.Less.Paths)
}

func (p *PrefsTestSuite) TestLineNumbers() {
	type test struct {
		Given           LineNumbers
		ExpectedEnabled bool
		ExpectedOff     bool
	}

	tests := map[string]test{
		"unset":      {Given: LineNumbersUnset},
		"comments":   {Given: LineNumbersComments, ExpectedEnabled: true},
		"false":      {Given: LineNumbersOff, ExpectedOff: true},
		"weak false": {Given: "0", ExpectedOff: true},
		"mediaquery": {Given: "mediaquery", ExpectedEnabled: true},
	}

	for desc, v := range tests {
		p.Run(desc, func() {
			p.Equal(v.ExpectedEnabled, v.Given.Enabled())
			p.Equal(v.ExpectedOff, v.Given.Off())
		})
	}
}

func (p *PrefsTestSuite) TestWithoutLineComments() {
	shared := &Preferences{Less: Less{
		Paths:           []string{"a"},
		DumpLineNumbers: LineNumbersComments,
		SourceMap:       &SourceMap{Extra: map[string]any{"sourceMapBasepath": "src"}},
	}}

	actual := shared.WithoutLineComments()

	p.False(actual.LineComments())
	p.True(actual.LineCommentsOff())
	p.True(shared.LineComments())
	p.False(shared.LineCommentsOff())
	p.False((&Preferences{}).LineCommentsOff())
	p.Equal(LineNumbersComments, shared.Less.DumpLineNumbers)

	actual.Less.Paths[0] = "changed"
	actual.Less.SourceMap.Extra["sourceMapBasepath"] = "changed"
	p.Equal("a", shared.Less.Paths[0])
	p.Equal("src", shared.Less.SourceMap.Extra["sourceMapBasepath"])
}

func (p *PrefsTestSuite) TestLoad() {
	type test struct {
		Given       string
		Expected    *Preferences
		ExpectedErr string
	}

	tests := map[string]test{
		"missing file": {
			Expected: &Preferences{},
		},
		"line numbers off": {
			Given: "less:\n  dumpLineNumbers: false\n",
			Expected: &Preferences{Less: Less{
				DumpLineNumbers: "false",
			}},
		},
		"sourcemap with extras": {
			Given: "less:\n  paths:\n    - ./less\n  sourceMap:\n    sourceMapRootpath: /foo/bar\n    sourceMapBasepath: src\n",
			Expected: &Preferences{Less: Less{
				Paths: []string{"./less"},
				SourceMap: &SourceMap{
					Rootpath: "/foo/bar",
					Extra:    map[string]any{"sourceMapBasepath": "src"},
				},
			}},
		},
		"empty sourcemap": {
			Given: "less:\n  dumpLineNumbers: comments\n  sourceMap: {}\n",
			Expected: &Preferences{Less: Less{
				DumpLineNumbers: LineNumbersComments,
				SourceMap:       &SourceMap{},
			}},
		},
		"malformed": {
			Given:       "less: [",
			ExpectedErr: "failed to read preferences",
		},
	}

	for desc, v := range tests {
		p.Run(desc, func() {
			fp := filepath.Join(p.T().TempDir(), "pref.yml")
			if v.Given != "" {
				p.Require().NoError(os.WriteFile(fp, []byte(v.Given), 0o644))
			}

			actual, err := Load(fp)
			if v.ExpectedErr != "" || !p.NoError(err) {
				p.ErrorContains(err, v.ExpectedErr)
				return
			}

			// The weakly typed decode may turn false into "0" or "false", both mean off.
			if v.Expected.Less.DumpLineNumbers.Off() {
				p.True(actual.Less.DumpLineNumbers.Off())
				actual.Less.DumpLineNumbers = v.Expected.Less.DumpLineNumbers
			}
			p.Empty(testutil.Diff(v.Expected, actual))
		})
	}
}

func TestPrefsTestSuite(t *testing.T) {
	suite.Run(t, new(PrefsTestSuite))
}
