package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the YAML representation of a catalog overlay.
type File struct {
	Policies []Policy            `yaml:"policies"`
	Bundles  map[string][]string `yaml:"bundles"`
}

// Load reads a YAML catalog file and merges it over the built-in catalog.
// File entries replace built-in entries with the same slug; file bundles
// replace built-in bundles with the same name.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse merges raw YAML catalog data over the built-in catalog.
func Parse(data []byte) (*Catalog, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := Builtin()
	for _, p := range file.Policies {
		if err := Validate(p.Slug); err != nil {
			return nil, err
		}
		c.add(p)
	}
	for name, slugs := range file.Bundles {
		for _, slug := range slugs {
			if _, ok := c.policies[slug]; !ok {
				return nil, fmt.Errorf("bundle %q references unknown slug %q", name, slug)
			}
		}
		c.bundles[strings.ToLower(name)] = append([]string(nil), slugs...)
	}
	return c, nil
}
