// Package harness runs scheduling conformance scenarios: YAML files that
// declare a snippet set, schedule it, and check the resulting orderings and
// rendered descriptor against expectations and golden files.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tada/pljava-sub016/internal/snippet"
)

// Scenario defines one scheduling conformance case.
type Scenario struct {
	// Name uniquely identifies this scenario; also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Snippets declares the unordered input set inline.
	Snippets []SnippetDef `yaml:"snippets"`

	// Deterministic turns on reproducible scheduling for the run.
	Deterministic bool `yaml:"deterministic"`

	// ExpectInstallOrder / ExpectRemoveOrder assert the full orderings by
	// snippet name. Empty means no assertion on that direction.
	ExpectInstallOrder []string `yaml:"expect_install_order,omitempty"`
	ExpectRemoveOrder  []string `yaml:"expect_remove_order,omitempty"`

	// ExpectSubsumed asserts which snippets lose their removal statements
	// to a cascading break.
	ExpectSubsumed []string `yaml:"expect_subsumed,omitempty"`

	// ExpectError asserts that scheduling fails with the given error code
	// ("UNRESOLVED_CYCLE", "INTERNAL_CONSISTENCY"). Empty means the run
	// must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// SnippetDef mirrors snippet.Definition in YAML form.
type SnippetDef struct {
	Name        string   `yaml:"name"`
	Implementor string   `yaml:"implementor,omitempty"`
	Install     []string `yaml:"install,omitempty"`
	Remove      []string `yaml:"remove,omitempty"`
	Provides    []string `yaml:"provides,omitempty"`
	Requires    []string `yaml:"requires,omitempty"`
	Kind        string   `yaml:"kind,omitempty"`
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(s.Snippets) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one snippet is required", path)
	}

	return &s, nil
}

// buildSnippets converts the YAML definitions to immutable snippets.
func (s *Scenario) buildSnippets() ([]*snippet.Snippet, error) {
	out := make([]*snippet.Snippet, 0, len(s.Snippets))
	for _, def := range s.Snippets {
		kind, err := snippet.ParseKind(def.Kind)
		if err != nil {
			return nil, fmt.Errorf("scenario %s, snippet %s: %w", s.Name, def.Name, err)
		}
		sn, err := snippet.New(snippet.Definition{
			Name:        def.Name,
			Implementor: def.Implementor,
			Install:     def.Install,
			Remove:      def.Remove,
			Provides:    def.Provides,
			Requires:    def.Requires,
			Kind:        kind,
		})
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		out = append(out, sn)
	}
	return out, nil
}
