package catalog

import "github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"

// StrategyFor exposes an entry for tooling and documentation.
func (c *Catalog) StrategyFor(pickerType entity.PickerType) (PickerConfig, bool) {
	return c.Get(pickerType)
}

// SupportsScenario is false for unknown picker types.
func (c *Catalog) SupportsScenario(pickerType entity.PickerType, base entity.BaseScenarioID) bool {
	i, ok := c.index[pickerType]
	if !ok {
		return false
	}
	return c.entries[i].Supports(base)
}

// PickerTypes lists keys in catalog order.
func (c *Catalog) PickerTypes() []entity.PickerType {
	out := make([]entity.PickerType, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.PickerType
	}
	return out
}
