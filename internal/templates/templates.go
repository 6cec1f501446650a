package templates

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pep299/template-blog-publisher/internal/schema"
)

// Placeholder is replaced with the category description in every prompt.
const Placeholder = "{category}"

//go:embed default.yaml
var defaultCatalog []byte

// Entry is one prompt template for a document kind.
type Entry struct {
	Kind   string `yaml:"kind"`
	Prompt string `yaml:"prompt"`
}

type Catalog struct {
	Entries []Entry `yaml:"templates"`
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the catalog built into the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("templates: invalid built-in catalog: %v", err))
	}
	return c
}

func (c *Catalog) validate() error {
	if len(c.Entries) == 0 {
		return fmt.Errorf("catalog has no templates")
	}
	for i, e := range c.Entries {
		if _, ok := schema.ParseKind(e.Kind); !ok {
			return fmt.Errorf("template %d: unknown kind %q", i, e.Kind)
		}
		if !strings.Contains(e.Prompt, Placeholder) {
			return fmt.Errorf("template %d (%s): prompt has no %s placeholder", i, e.Kind, Placeholder)
		}
	}
	return nil
}

// Kinds lists the distinct kinds in the catalog in file order.
func (c *Catalog) Kinds() []schema.Kind {
	seen := make(map[string]bool)
	var out []schema.Kind
	for _, e := range c.Entries {
		if seen[e.Kind] {
			continue
		}
		seen[e.Kind] = true
		out = append(out, schema.Kind(e.Kind))
	}
	return out
}

// Apply substitutes category into prompt.
func Apply(prompt, category string) string {
	return strings.ReplaceAll(prompt, Placeholder, category)
}
