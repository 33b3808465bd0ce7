// Package scenarios supplies scenario metadata from YAML: an embedded default
// table, an optional user file, and one derived <BASE>-<PICKER> id for every
// base scenario a catalog entry supports.
package scenarios

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/output"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/catalog"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

//go:embed scenarios.yaml
var builtinYAML []byte

var ErrInvalidScenario = errors.New("invalid scenario")

var _ output.ScenarioSource = (*Source)(nil)

type file struct {
	Scenarios []entity.ScenarioMeta `yaml:"scenarios"`
}

// Source is read-only after construction.
type Source struct {
	byID  map[string]entity.ScenarioMeta
	order []string
}

// DerivedID is the id of a picker-specific scenario without an explicit entry.
func DerivedID(base entity.BaseScenarioID, picker entity.PickerType) string {
	return string(base) + "-" + string(picker)
}

// New derives ids from c, then overlays the embedded table. A nil catalog means
// catalog.Default().
func New(c *catalog.Catalog) (*Source, error) {
	if c == nil {
		c = catalog.Default()
	}
	s := &Source{byID: make(map[string]entity.ScenarioMeta)}

	for _, cfg := range c.Entries() {
		for _, base := range cfg.SupportedBaseScenarios {
			s.put(entity.ScenarioMeta{
				ID:           DerivedID(base, cfg.PickerType),
				PickerType:   cfg.PickerType,
				BaseScenario: base,
			})
		}
	}
	if err := s.Merge(builtinYAML); err != nil {
		return nil, fmt.Errorf("builtin scenarios: %w", err)
	}
	return s, nil
}

// Load is New plus the scenarios in path. Entries in the file replace entries
// with the same id.
func Load(c *catalog.Catalog, path string) (*Source, error) {
	s, err := New(c)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios: %w", err)
	}
	if err := s.Merge(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Merge parses a YAML document and adds or replaces its scenarios. Nothing is
// applied when any entry is invalid.
func (s *Source) Merge(data []byte) error {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse scenarios: %w", err)
	}
	for i, m := range f.Scenarios {
		m.ID = strings.TrimSpace(m.ID)
		if m.ID == "" {
			return fmt.Errorf("%w: entry %d has no id", ErrInvalidScenario, i)
		}
		if m.IsPickerSpecific() && m.BaseScenario == "" {
			return fmt.Errorf("%w: %s has a picker type but no base scenario", ErrInvalidScenario, m.ID)
		}
		f.Scenarios[i] = m
	}
	for _, m := range f.Scenarios {
		s.put(m)
	}
	return nil
}

func (s *Source) put(m entity.ScenarioMeta) {
	if _, exists := s.byID[m.ID]; !exists {
		s.order = append(s.order, m.ID)
	}
	s.byID[m.ID] = m
}

func (s *Source) Lookup(id string) (entity.ScenarioMeta, bool) {
	m, ok := s.byID[id]
	return m, ok
}

// List returns every scenario sorted by id.
func (s *Source) List() []entity.ScenarioMeta {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	sort.Strings(ids)

	out := make([]entity.ScenarioMeta, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id])
	}
	return out
}
