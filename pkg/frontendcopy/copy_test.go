package frontendcopy

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/skiff-sh/fpless/pkg/filesystem"
	"github.com/skiff-sh/fpless/pkg/interact"
	"github.com/skiff-sh/fpless/pkg/testutil"
)

type CopyTestSuite struct {
	testutil.Suite
}

func (c *CopyTestSuite) SetupSuite() {
	interact.Writer = io.Discard
}

func (c *CopyTestSuite) TestCopy() {
	type test struct {
		Given        map[string]string
		Expected     testutil.MapFS
		ExpectedList []string
	}

	tests := map[string]test{
		"css only": {
			Given: map[string]string{
				"style.css":         "body {}\n",
				"style.css.map":     `{"version":3}`,
				"local-pref.css":    "a {}\n",
				"nested/extra.css":  "p {}\n",
				"nested/readme.txt": "nope",
			},
			Expected: testutil.MapFS{
				"style.css":        {Data: []byte("body {}\n")},
				"local-pref.css":   {Data: []byte("a {}\n")},
				"nested/extra.css": {Data: []byte("p {}\n")},
			},
			ExpectedList: []string{"local-pref.css", "nested/extra.css", "style.css"},
		},
		"strips sourcemap references": {
			Given: map[string]string{
				"style.css":     "body {}\n\n/*# sourceMappingURL=style.css.map */\n",
				"style.css.map": `{"version":3}`,
			},
			Expected: testutil.MapFS{
				"style.css": {Data: []byte("body {}\n")},
			},
			ExpectedList: []string{"style.css"},
		},
	}

	for desc, v := range tests {
		c.Run(desc, func() {
			srcDir := c.T().TempDir()
			for name, content := range v.Given {
				fp := filepath.Join(srcDir, name)
				c.Require().NoError(os.MkdirAll(filepath.Dir(fp), 0o755))
				c.Require().NoError(os.WriteFile(fp, []byte(content), 0o644))
			}
			dst := filesystem.New(filepath.Join(c.T().TempDir(), "backend", "bld"))

			actual, err := Copy(c.T().Context(), filesystem.New(srcDir), dst)
			if !c.NoError(err) {
				return
			}

			c.Equal(v.ExpectedList, actual)
			c.Empty(testutil.Diff(v.Expected, testutil.FlatMapFS(dst)))
		})
	}
}

func TestCopyTestSuite(t *testing.T) {
	suite.Run(t, new(CopyTestSuite))
}
