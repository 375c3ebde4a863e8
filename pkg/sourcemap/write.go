package sourcemap

import (
	"bytes"
	"encoding/base64"
	"regexp"

	"github.com/skiff-sh/fpless/pkg/bufferpool"
)

const inlinePrefix = "data:application/json;charset=utf8;base64,"

var mappingURLRegex = regexp.MustCompile(`(?m)\n?(?:/\*# sourceMappingURL=[^*]*\*/|//# sourceMappingURL=\S*)[ \t]*\n?`)

// Output is a stylesheet ready to be written. Map is nil unless the sourcemap lives in its
// own file.
type Output struct {
	CSS     []byte
	Map     []byte
	MapName string
}

// WriteOpts controls how Write finalizes a map.
type WriteOpts struct {
	// Dest DestBeside for a sidecar file, empty for inline.
	Dest string
	// SourceRoot embedded in the map when non-empty. Otherwise the compiler's value is kept.
	SourceRoot string
}

// Write attaches m to css. cssName is the base name of the CSS file, it's recorded as the
// map's file and used to name the sidecar.
func Write(cssName string, css []byte, m *Map, opts WriteOpts) (*Output, error) {
	m.File = cssName
	if opts.SourceRoot != "" {
		m.SourceRoot = opts.SourceRoot
	}

	raw, err := m.Marshal()
	if err != nil {
		return nil, err
	}

	out := &Output{}
	var url string
	if opts.Dest == DestBeside {
		out.MapName = cssName + ".map"
		out.Map = raw
		url = out.MapName
	} else {
		url = inlinePrefix + base64.StdEncoding.EncodeToString(raw)
	}

	out.CSS = appendMappingURL(StripMappingURL(css), url)
	return out, nil
}

// StripMappingURL removes every sourceMappingURL comment from css.
func StripMappingURL(css []byte) []byte {
	if !bytes.Contains(css, []byte("sourceMappingURL=")) {
		return css
	}
	out := mappingURLRegex.ReplaceAll(css, []byte("\n"))
	return append(bytes.TrimRight(out, "\n"), '\n')
}

func appendMappingURL(css []byte, url string) []byte {
	buf := bufferpool.GetBytesBuffer()
	defer bufferpool.PutBytesBuffer(buf)

	buf.Write(bytes.TrimRight(css, "\n"))
	buf.WriteString("\n\n/*# sourceMappingURL=")
	buf.WriteString(url)
	buf.WriteString(" */\n")

	return bytes.Clone(buf.Bytes())
}
