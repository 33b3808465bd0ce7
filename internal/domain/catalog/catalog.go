// Package catalog holds the static table of supported date-picker libraries:
// how to recognise each one in the DOM and how to drive it.
package catalog

import (
	"fmt"
	"slices"
	"sync"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

// DetectionHeuristics are additive. A present field contributes to confidence.
type DetectionHeuristics struct {
	Selectors      []string
	AriaRoles      []string
	ClassPatterns  []string
	DataAttributes []string
	// GlobalCheck is a window global, possibly dotted. It only corroborates.
	GlobalCheck string
	// PanelSelectors locate an already rendered calendar panel.
	PanelSelectors []string
}

type Fallbacks struct {
	Open    []OpenStrategy
	SetDate []SetDateStrategy
	Confirm []ConfirmStrategy
}

type Documentation struct {
	Library string
	URL     string
	Notes   string
}

type PickerConfig struct {
	PickerType             entity.PickerType
	Detection              DetectionHeuristics
	Open                   OpenStrategy
	SetDate                SetDateStrategy
	Confirm                ConfirmStrategy
	Validate               ValidateStrategy
	SupportedBaseScenarios []entity.BaseScenarioID
	Fallbacks              Fallbacks
	Documentation          Documentation
}

// Clone copies every slice so the result shares nothing with the table.
// Strategy values are plain structs and copy by value.
func (c PickerConfig) Clone() PickerConfig {
	out := c
	out.Detection = DetectionHeuristics{
		Selectors:      slices.Clone(c.Detection.Selectors),
		AriaRoles:      slices.Clone(c.Detection.AriaRoles),
		ClassPatterns:  slices.Clone(c.Detection.ClassPatterns),
		DataAttributes: slices.Clone(c.Detection.DataAttributes),
		GlobalCheck:    c.Detection.GlobalCheck,
		PanelSelectors: slices.Clone(c.Detection.PanelSelectors),
	}
	out.SupportedBaseScenarios = slices.Clone(c.SupportedBaseScenarios)
	out.Fallbacks = Fallbacks{
		Open:    slices.Clone(c.Fallbacks.Open),
		SetDate: slices.Clone(c.Fallbacks.SetDate),
		Confirm: slices.Clone(c.Fallbacks.Confirm),
	}
	return out
}

// Supports reports whether base is in the entry's supported list.
func (c PickerConfig) Supports(base entity.BaseScenarioID) bool {
	return slices.Contains(c.SupportedBaseScenarios, base)
}

// Catalog is an immutable, ordered set of entries. Order is the detection
// tie-break: on equal confidence the earlier entry wins.
type Catalog struct {
	entries []PickerConfig
	index   map[entity.PickerType]int
}

// New validates entries and freezes them.
func New(entries []PickerConfig) (*Catalog, error) {
	c := &Catalog{
		entries: make([]PickerConfig, 0, len(entries)),
		index:   make(map[entity.PickerType]int, len(entries)),
	}
	for i, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := c.index[e.PickerType]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate picker type %s", i, e.PickerType)
		}
		c.index[e.PickerType] = len(c.entries)
		c.entries = append(c.entries, e.Clone())
	}
	return c, nil
}

// Entries returns deep copies in catalog order.
func (c *Catalog) Entries() []PickerConfig {
	out := make([]PickerConfig, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Clone()
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Get returns a copy of the entry for pickerType.
func (c *Catalog) Get(pickerType entity.PickerType) (PickerConfig, bool) {
	i, ok := c.index[pickerType]
	if !ok {
		return PickerConfig{}, false
	}
	return c.entries[i].Clone(), true
}

func validateEntry(e PickerConfig) error {
	if e.PickerType == "" {
		return fmt.Errorf("empty picker type")
	}
	h := e.Detection
	if len(h.Selectors) == 0 && len(h.ClassPatterns) == 0 && len(h.DataAttributes) == 0 {
		return fmt.Errorf("%s: detection needs selectors, class patterns or data attributes", e.PickerType)
	}
	if e.Open == nil || e.SetDate == nil || e.Confirm == nil || e.Validate == nil {
		return fmt.Errorf("%s: every protocol step needs a primary strategy", e.PickerType)
	}
	if len(e.SupportedBaseScenarios) == 0 {
		return fmt.Errorf("%s: no supported base scenarios", e.PickerType)
	}
	return nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default is the built-in table. It is built once and never mutated.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(builtin())
		if err != nil {
			panic(fmt.Sprintf("built-in picker catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
