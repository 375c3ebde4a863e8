package sourcemap

import (
	"encoding/json"
	"fmt"

	"github.com/skiff-sh/fpless/pkg/except"
)

// Map a version 3 sourcemap.
type Map struct {
	Version        int      `json:"version"`
	File           string   `json:"file"`
	SourceRoot     string   `json:"sourceRoot,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

func Parse(b []byte) (*Map, error) {
	out := new(Map)
	err := json.Unmarshal(b, out)
	if err != nil {
		return nil, fmt.Errorf("%w: sourcemap: %w", except.ErrInvalid, err)
	}

	if out.Version == 0 {
		out.Version = 3
	}

	return out, nil
}

// Marshal encodes the map. Sources and names are always present, even when empty, since
// some consumers reject a map without them.
func (m *Map) Marshal() ([]byte, error) {
	cp := *m
	if cp.Sources == nil {
		cp.Sources = []string{}
	}
	if cp.Names == nil {
		cp.Names = []string{}
	}
	return json.Marshal(&cp)
}
