package testutil

import (
	"os"
	"path/filepath"
)

// StyleLess has top level rules starting on lines 3, 11 and 13.
const StyleLess = `// Fixture stylesheet.

body {
  background: white;
  font: 1.6em/1.5 Helvetica, "Nimbus Sans L", "Liberation Sans", Roboto, sans-serif;
  color: #333333;
  min-height: 100vh;
  padding-bottom: 5rem;
  position: relative;
}
a { color: #333333; }

a:hover,
a:focus {
  color: gray;
}
`

const (
	CSSBody = `body {
  background: white;
  font: 1.6em/1.5 Helvetica, "Nimbus Sans L", "Liberation Sans", Roboto, sans-serif;
  color: #333333;
  min-height: 100vh;
  padding-bottom: 5rem;
  position: relative;
}
`
	CSSA           = `a {
  color: #333333;
}
`
	CSSPseudoClass = `a:hover,
a:focus {
  color: gray;
}
`
)

// NewProject lays out a project under root using the default UI paths, with style.less and
// local-pref.less as entry files. Returns root.
func NewProject(root string) (string, error) {
	lessDir := filepath.Join(root, "source", "_styles", "less")
	err := os.MkdirAll(lessDir, 0o755)
	if err != nil {
		return "", err
	}

	for _, name := range []string{"style.less", "local-pref.less"} {
		err = os.WriteFile(filepath.Join(lessDir, name), []byte(StyleLess), 0o644)
		if err != nil {
			return "", err
		}
	}

	return root, nil
}
