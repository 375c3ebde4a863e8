package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/skiff-sh/fpless/pkg/execcmd"
)

// FakeLessc stands in for the lessc binary. Install it as execcmd.DefaultRunner. It copies the
// input through, prints a line comment above each top level rule when asked to and writes a
// minimal sourcemap when one is requested. Like lessc it fails when a map file is requested
// without an output file. Inputs containing FailMarker exit with a parse error.
type FakeLessc struct {
	mu    sync.Mutex
	calls [][]string
}

const FailMarker = "@fail;"

var _ execcmd.Runner = (*FakeLessc)(nil)

func (f *FakeLessc) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *FakeLessc) Run(cmd *execcmd.Cmd) error {
	args := cmd.Args()
	f.mu.Lock()
	f.calls = append(f.calls, args)
	f.mu.Unlock()

	if slices.Contains(args, "--version") {
		cmd.Buffers.Stdout.WriteString("lessc 4.2.0 (Less Compiler) [JavaScript]\n")
		return nil
	}

	var lineNumbers bool
	var mapPath string
	var positional []string
	for _, v := range args {
		switch {
		case strings.HasPrefix(v, "--line-numbers="):
			lineNumbers = true
		case strings.HasPrefix(v, "--source-map="):
			mapPath = strings.TrimPrefix(v, "--source-map=")
		case !strings.HasPrefix(v, "-"):
			positional = append(positional, v)
		}
	}

	if len(positional) == 0 {
		return errors.New("no input")
	}
	input := positional[0]
	var output string
	if len(positional) > 1 {
		output = positional[1]
	}

	// lessc places an explicit map relative to the output file.
	if mapPath != "" && output == "" {
		cmd.Buffers.Stderr.WriteString(`TypeError [ERR_INVALID_ARG_TYPE]: The "path" argument must be of type string. Received undefined`)
		return errors.New("exit status 1")
	}

	src, err := os.ReadFile(input)
	if err != nil {
		cmd.Buffers.Stderr.WriteString(err.Error())
		return errors.New("exit status 1")
	}

	if strings.Contains(string(src), FailMarker) {
		cmd.Buffers.Stderr.WriteString(fmt.Sprintf("ParseError: Unrecognised input in %s", input))
		return errors.New("exit status 1")
	}

	css := FakeCompile(string(src), filepath.Base(input), lineNumbers)
	if mapPath != "" {
		raw, _ := json.Marshal(map[string]any{
			"version":        3,
			"sources":        []string{filepath.Base(input)},
			"sourcesContent": []string{string(src)},
			"names":          []string{},
			"mappings":       "AAAA,KAAK",
		})
		err = os.WriteFile(mapPath, raw, 0o644)
		if err != nil {
			return err
		}
		css += "/*# sourceMappingURL=" + filepath.Base(mapPath) + " */"
	}

	if output == "" {
		cmd.Buffers.Stdout.WriteString(css)
		return nil
	}
	return os.WriteFile(output, []byte(css), 0o644)
}

// FakeCompile drops // comments and blank lines, and with lineNumbers set prefixes every top
// level rule with a lessc style line comment.
func FakeCompile(src, name string, lineNumbers bool) string {
	var sb strings.Builder
	depth := 0
	inRule := false
	for i, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		if depth == 0 && !inRule {
			inRule = true
			if lineNumbers {
				sb.WriteString(fmt.Sprintf("/* line %d, %s */\n", i+1, name))
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		sb.WriteString(line)
		sb.WriteString("\n")
		if depth <= 0 && strings.Contains(line, "}") {
			depth = 0
			inRule = false
		}
	}
	return sb.String()
}
