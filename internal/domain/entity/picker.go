package entity

import (
	"strconv"
	"time"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
)

type PickerType string

const (
	PickerFlatpickr           PickerType = "FLATPICKR"
	PickerReactDatepicker     PickerType = "REACT_DATEPICKER"
	PickerMUIX                PickerType = "MUI_X"
	PickerAntd                PickerType = "ANTD"
	PickerReactDayPicker      PickerType = "REACT_DAY_PICKER"
	PickerPikaday             PickerType = "PIKADAY"
	PickerAirDatepicker       PickerType = "AIR_DATEPICKER"
	PickerLitepicker          PickerType = "LITEPICKER"
	PickerVanillaJSDatepicker PickerType = "VANILLAJS_DATEPICKER"
	PickerBootstrapDatepicker PickerType = "BOOTSTRAP_DATEPICKER"
	PickerJQueryUI            PickerType = "JQUERY_UI"
	PickerDateRangePicker     PickerType = "DATERANGEPICKER"
	PickerDuet                PickerType = "DUET"
	PickerVueDatepicker       PickerType = "VUE_DATEPICKER"
	PickerPrimeReact          PickerType = "PRIMEREACT"
	PickerMantine             PickerType = "MANTINE"
	PickerReactDates          PickerType = "REACT_DATES"
	PickerWebComponent        PickerType = "WEB_COMPONENT"
	PickerNativeDate          PickerType = "NATIVE_DATE"
)

func (p PickerType) String() string {
	return string(p)
}

type BaseScenarioID string

const (
	BaseSingleDate  BaseScenarioID = "DS1"
	BaseLast7Days   BaseScenarioID = "DS2"
	BaseMonthToDate BaseScenarioID = "DS3"
	BaseMonthYear   BaseScenarioID = "DS4"
	BaseFiscalYear  BaseScenarioID = "DS5"
	BaseDateTime    BaseScenarioID = "DS6"
	BaseWeek        BaseScenarioID = "DS7"
)

func (b BaseScenarioID) String() string {
	return string(b)
}

// ScenarioMeta is supplied per scenario id by the scenario source.
// An empty PickerType marks a scenario that is not picker-specific.
type ScenarioMeta struct {
	ID           string         `json:"id" yaml:"id"`
	PickerType   PickerType     `json:"picker_type,omitempty" yaml:"picker_type"`
	BaseScenario BaseScenarioID `json:"base_scenario" yaml:"base_scenario"`
	Description  string         `json:"description,omitempty" yaml:"description"`
}

// IsPickerSpecific reports whether the scenario targets a concrete picker.
func (m ScenarioMeta) IsPickerSpecific() bool {
	return m.PickerType != ""
}

// DetectionResult is one located picker instance. It is only valid for the
// DOM state it was computed against.
type DetectionResult struct {
	PickerType PickerType
	Root       dom.Root
	Trigger    dom.Element
	Panel      dom.Element
	Confidence float64
}

// ValidationResult is the picker's own opinion about its selection.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Value  string `json:"value,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// DateRange is an inclusive calendar-day window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Granularity is the smallest unit a picker lets the user choose.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// AppliedStrategy records which strategy carried a protocol step.
type AppliedStrategy struct {
	Kind     string
	Selector string
	// Fallback is 0 for the primary strategy and n for the n-th fallback.
	Fallback int
	Note     string
}

func (a AppliedStrategy) String() string {
	s := a.Kind
	if a.Selector != "" {
		s += "(" + a.Selector + ")"
	}
	if a.Fallback > 0 {
		s += " via fallback " + strconv.Itoa(a.Fallback)
	}
	if a.Note != "" {
		s += "; " + a.Note
	}
	return s
}
