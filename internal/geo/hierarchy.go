package geo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Root is the sentinel every location chain ends with.
const Root = "대한민국"

// Hierarchy maps a location token to its ancestor chain, most specific first.
// The mapping is loaded once at startup and never mutated afterwards.
type Hierarchy struct {
	parents map[string][]string
}

type hierarchyFile struct {
	Locations map[string][]string `yaml:"locations"`
}

// Load reads the static location mapping from a YAML file.
func Load(path string) (*Hierarchy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read location mapping: %w", err)
	}

	var f hierarchyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse location mapping: %w", err)
	}
	return New(f.Locations), nil
}

// New builds a hierarchy from an in-memory mapping.
func New(parents map[string][]string) *Hierarchy {
	if parents == nil {
		parents = map[string][]string{}
	}
	return &Hierarchy{parents: parents}
}

// Expand returns the token followed by its ancestors, always terminated by
// Root. Unknown tokens expand to [token, Root]. Expand never fails.
func (h *Hierarchy) Expand(token string) []string {
	chain := []string{token}
	for _, ancestor := range h.parents[token] {
		if ancestor == chain[len(chain)-1] {
			continue
		}
		chain = append(chain, ancestor)
	}
	if chain[len(chain)-1] != Root {
		chain = append(chain, Root)
	}
	return chain
}

// Known reports whether the token appears in the static mapping.
func (h *Hierarchy) Known(token string) bool {
	_, ok := h.parents[token]
	return ok
}
