package sourcemap

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/skiff-sh/fpless/pkg/except"
)

type WriteTestSuite struct {
	suite.Suite
}

const rawLesscMap = `{"version":3,"sources":["style.less"],"names":[],"mappings":"AAAA"}`

func (w *WriteTestSuite) TestWrite() {
	type test struct {
		GivenCSS          string
		GivenOpts         WriteOpts
		ExpectedMapName   string
		ExpectedURL       string
		ExpectedRoot      string
		ExpectedNoMapFile bool
	}

	tests := map[string]test{
		"sidecar": {
			GivenCSS:        "a {\n  color: red;\n}\n/*# sourceMappingURL=/tmp/x/style.css.map */",
			GivenOpts:       WriteOpts{Dest: DestBeside},
			ExpectedMapName: "style.css.map",
			ExpectedURL:     "/*# sourceMappingURL=style.css.map */",
		},
		"sidecar with root": {
			GivenCSS:        "a {\n  color: red;\n}\n",
			GivenOpts:       WriteOpts{Dest: DestBeside, SourceRoot: "/foo/bar"},
			ExpectedMapName: "style.css.map",
			ExpectedURL:     "/*# sourceMappingURL=style.css.map */",
			ExpectedRoot:    "/foo/bar",
		},
		"inline": {
			GivenCSS:          "a {\n  color: red;\n}\n",
			GivenOpts:         WriteOpts{SourceRoot: "../../source/_styles/less"},
			ExpectedURL:       "/*# sourceMappingURL=data:application/json;",
			ExpectedRoot:      "../../source/_styles/less",
			ExpectedNoMapFile: true,
		},
	}

	for desc, v := range tests {
		w.Run(desc, func() {
			m, err := Parse([]byte(rawLesscMap))
			if !w.NoError(err) {
				return
			}

			out, err := Write("style.css", []byte(v.GivenCSS), m, v.GivenOpts)
			if !w.NoError(err) {
				return
			}

			css := string(out.CSS)
			w.Contains(css, "a {\n  color: red;\n}\n")
			w.Contains(css, v.ExpectedURL)
			w.Equal(1, strings.Count(css, "sourceMappingURL="))
			w.Equal(v.ExpectedMapName, out.MapName)

			var raw []byte
			if v.ExpectedNoMapFile {
				w.Nil(out.Map)
				enc := css[strings.Index(css, inlinePrefix)+len(inlinePrefix) : strings.LastIndex(css, " */")]
				raw, err = base64.StdEncoding.DecodeString(enc)
				if !w.NoError(err) {
					return
				}
			} else {
				raw = out.Map
			}

			fields := map[string]any{}
			if !w.NoError(json.Unmarshal(raw, &fields)) {
				return
			}
			for _, k := range []string{"version", "sources", "names", "mappings", "file"} {
				w.Contains(fields, k)
			}
			w.Equal("style.css", fields["file"])
			if v.ExpectedRoot != "" {
				w.Equal(v.ExpectedRoot, fields["sourceRoot"])
			} else {
				w.NotContains(fields, "sourceRoot")
			}
		})
	}
}

func (w *WriteTestSuite) TestParseInvalid() {
	_, err := Parse([]byte("{"))
	w.ErrorIs(err, except.ErrInvalid)
}

func (w *WriteTestSuite) TestStripMappingURL() {
	type test struct {
		Given    string
		Expected string
	}

	tests := map[string]test{
		"none": {
			Given:    "a {}\n",
			Expected: "a {}\n",
		},
		"block comment": {
			Given:    "a {}\n/*# sourceMappingURL=style.css.map */\n",
			Expected: "a {}\n",
		},
		"line comment": {
			Given:    "a {}\n//# sourceMappingURL=style.css.map\n",
			Expected: "a {}\n",
		},
	}

	for desc, v := range tests {
		w.Run(desc, func() {
			w.Equal(v.Expected, string(StripMappingURL([]byte(v.Given))))
		})
	}
}

func (w *WriteTestSuite) TestPassThrough() {
	out, err := PassThrough{}.Finish("style.css", []byte("a {}\n"), nil)
	if !w.NoError(err) {
		return
	}
	w.Equal("a {}\n", string(out.CSS))
	w.Nil(out.Map)
}

func TestWriteTestSuite(t *testing.T) {
	suite.Run(t, new(WriteTestSuite))
}
