package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/catalog"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

func TestNew_DerivesIDsFromCatalog(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	for _, cfg := range catalog.Default().Entries() {
		for _, base := range cfg.SupportedBaseScenarios {
			m, ok := s.Lookup(DerivedID(base, cfg.PickerType))
			require.True(t, ok, "%s-%s", base, cfg.PickerType)
			assert.Equal(t, cfg.PickerType, m.PickerType)
			assert.Equal(t, base, m.BaseScenario)
		}
	}
}

func TestNew_EmbeddedTable(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	m, ok := s.Lookup("DS1-FLATPICKR")
	require.True(t, ok)
	assert.Equal(t, entity.PickerFlatpickr, m.PickerType)
	assert.Equal(t, entity.BaseSingleDate, m.BaseScenario)
	assert.NotEmpty(t, m.Description)

	login, ok := s.Lookup("LOGIN")
	require.True(t, ok)
	assert.False(t, login.IsPickerSpecific())

	_, ok = s.Lookup("DS1-NOPE")
	assert.False(t, ok)
}

func TestList_SortedAndUnique(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	list := s.List()
	seen := map[string]bool{}
	for i, m := range list {
		assert.False(t, seen[m.ID], "duplicate %s", m.ID)
		seen[m.ID] = true
		if i > 0 {
			assert.Less(t, list[i-1].ID, m.ID)
		}
	}
}

func TestLoad_FileOverridesAndAdds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scenarios:
  - id: DS1-FLATPICKR
    picker_type: FLATPICKR
    base_scenario: DS1
    description: overridden
  - id: CHECKOUT-DELIVERY
    picker_type: PIKADAY
    base_scenario: DS1
`), 0o600))

	s, err := Load(nil, path)
	require.NoError(t, err)

	m, _ := s.Lookup("DS1-FLATPICKR")
	assert.Equal(t, "overridden", m.Description)

	m, ok := s.Lookup("CHECKOUT-DELIVERY")
	require.True(t, ok)
	assert.Equal(t, entity.PickerPikaday, m.PickerType)
}

func TestMerge_RejectsInvalidEntries(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	before := len(s.List())

	err = s.Merge([]byte("scenarios:\n  - id: X\n    picker_type: ANTD\n  - id: Y\n"))
	assert.ErrorIs(t, err, ErrInvalidScenario)

	err = s.Merge([]byte("scenarios:\n  - picker_type: ANTD\n    base_scenario: DS1\n"))
	assert.ErrorIs(t, err, ErrInvalidScenario)

	err = s.Merge([]byte("scenarios: [unterminated"))
	assert.Error(t, err)

	assert.Len(t, s.List(), before)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
