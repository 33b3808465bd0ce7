package catalog

import "github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"

const (
	isoDay     = "2006-01-02"
	usDay      = "01/02/2006"
	longDay    = "January 2, 2006"
	dayOfMonth = "2"
	monthYear  = "January 2006"
)

func bases(ids ...entity.BaseScenarioID) []entity.BaseScenarioID {
	return ids
}

// builtin lists one entry per supported library. Order matters for ties; the
// native input entry stays last because its selectors are the least specific.
func builtin() []PickerConfig {
	return []PickerConfig{
		{
			PickerType: entity.PickerFlatpickr,
			Detection: DetectionHeuristics{
				Selectors:      []string{".flatpickr-input", "input[data-input]"},
				ClassPatterns:  []string{"flatpickr"},
				GlobalCheck:    "flatpickr",
				PanelSelectors: []string{".flatpickr-calendar.inline", ".flatpickr-calendar.open"},
			},
			Open:     ClickTrigger{TriggerSelector: ".flatpickr-input"},
			SetDate:  InputValue{InputSelector: ".flatpickr-input", Format: isoDay, RangeSeparator: " to "},
			Confirm:  NoConfirm{},
			Validate: InputNotEmpty{InputSelector: ".flatpickr-input"},
			Fallbacks: Fallbacks{
				Open: []OpenStrategy{
					FocusInput{InputSelector: "input.flatpickr-input"},
					// altInput mode hides the real input and shows a sibling.
					ClickTrigger{TriggerSelector: ".flatpickr-input + input"},
					APIOpen{TargetSelector: ".flatpickr-input", Method: "_flatpickr.open"},
				},
				SetDate: []SetDateStrategy{
					APICall{TargetSelector: ".flatpickr-input", Method: "_flatpickr.setDate", Format: isoDay},
					CellClick{
						CellSelector:  ".flatpickr-calendar .flatpickr-day:not(.prevMonthDay):not(.nextMonthDay)",
						DateAttribute: "aria-label",
						Format:        longDay,
					},
				},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthToDate,
				entity.BaseFiscalYear, entity.BaseDateTime, entity.BaseWeek),
			Documentation: Documentation{
				Library: "flatpickr",
				URL:     "https://flatpickr.js.org",
				Notes:   "Calendar is appended to body unless inline; the instance lives on input._flatpickr.",
			},
		},
		{
			PickerType: entity.PickerReactDatepicker,
			Detection: DetectionHeuristics{
				Selectors:      []string{".react-datepicker__input-container input", ".react-datepicker-wrapper input", ".react-datepicker"},
				ClassPatterns:  []string{"react-datepicker"},
				AriaRoles:      []string{"listbox", "option"},
				PanelSelectors: []string{".react-datepicker-popper", ".react-datepicker--inline"},
			},
			Open:    ClickTrigger{TriggerSelector: ".react-datepicker__input-container input"},
			SetDate: CellClick{
				CellSelector:  ".react-datepicker__day:not(.react-datepicker__day--outside-month)",
				MonthSelector: ".react-datepicker__current-month",
				MonthFormat:   monthYear,
			},
			Confirm: NoConfirm{},
			Validate: InputNotEmpty{
				InputSelector: ".react-datepicker__input-container input",
			},
			Fallbacks: Fallbacks{
				Open: []OpenStrategy{
					FocusInput{InputSelector: ".react-datepicker-wrapper input"},
					AlreadyInline{PanelSelector: ".react-datepicker"},
				},
				SetDate: []SetDateStrategy{
					InputValue{InputSelector: ".react-datepicker__input-container input", Format: usDay, RangeSeparator: " - "},
				},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthToDate,
				entity.BaseMonthYear, entity.BaseDateTime),
			Documentation: Documentation{
				Library: "react-datepicker",
				URL:     "https://reactdatepicker.com",
				Notes:   "Day aria-labels use ordinals, so cells are matched by text under the current-month caption.",
			},
		},
		{
			PickerType: entity.PickerMUIX,
			Detection: DetectionHeuristics{
				Selectors:      []string{".MuiPickersTextField-root input", ".MuiDateCalendar-root", "[class*='MuiPickersInputBase'] input"},
				ClassPatterns:  []string{"MuiPickers"},
				AriaRoles:      []string{"grid", "gridcell"},
				PanelSelectors: []string{".MuiPickersPopper-root", ".MuiDateCalendar-root"},
			},
			Open:    ClickTrigger{TriggerSelector: "button[aria-label^='Choose date']"},
			SetDate: CellClick{
				CellSelector:  ".MuiPickersDay-root:not(.MuiPickersDay-dayOutsideMonth)",
				MonthSelector: ".MuiPickersCalendarHeader-label",
				MonthFormat:   monthYear,
			},
			// Mobile variant renders a dialog with an OK action; desktop commits on click.
			Confirm:  ClickButton{ButtonSelector: ".MuiPickersLayout-actionBar button:last-child"},
			Validate: InputNotEmpty{InputSelector: ".MuiPickersTextField-root input"},
			Fallbacks: Fallbacks{
				Open: []OpenStrategy{
					ClickTrigger{TriggerSelector: ".MuiInputAdornment-root button"},
					FocusThenClick{InputSelector: ".MuiPickersTextField-root input", TriggerSelector: ".MuiPickersInputBase-root"},
					AlreadyInline{PanelSelector: ".MuiDateCalendar-root"},
				},
				SetDate: []SetDateStrategy{
					InputValue{InputSelector: ".MuiPickersTextField-root input", Format: usDay, RangeSeparator: " – "},
				},
				Confirm: []ConfirmStrategy{NoConfirm{}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthYear, entity.BaseDateTime),
			Documentation: Documentation{
				Library: "MUI X Date Pickers",
				URL:     "https://mui.com/x/react-date-pickers/",
				Notes:   "Popper is portaled to body; mobile layout needs the action bar OK button.",
			},
		},
		{
			PickerType: entity.PickerAntd,
			Detection: DetectionHeuristics{
				Selectors:      []string{".ant-picker input", ".ant-picker-range"},
				ClassPatterns:  []string{"ant-picker"},
				PanelSelectors: []string{".ant-picker-dropdown:not(.ant-picker-dropdown-hidden)"},
			},
			Open: ClickTrigger{TriggerSelector: ".ant-picker"},
			SetDate: CellClick{
				CellSelector:  ".ant-picker-dropdown .ant-picker-cell-in-view",
				DateAttribute: "title",
				Format:        isoDay,
				ClickSelector: ".ant-picker-cell-inner",
			},
			Confirm:  PressEnter{ButtonSelector: ".ant-picker-ok button"},
			Validate: InputNotEmpty{InputSelector: ".ant-picker-input input"},
			Fallbacks: Fallbacks{
				Open: []OpenStrategy{FocusInput{InputSelector: ".ant-picker-input input"}},
				SetDate: []SetDateStrategy{
					InputValue{
						InputSelector:    ".ant-picker-input input",
						EndInputSelector: ".ant-picker-input input[date-range='end']",
						Format:           isoDay,
					},
				},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthToDate,
				entity.BaseMonthYear, entity.BaseFiscalYear, entity.BaseDateTime, entity.BaseWeek),
			Documentation: Documentation{
				Library: "Ant Design DatePicker / RangePicker",
				URL:     "https://ant.design/components/date-picker",
				Notes:   "Cells carry an ISO title attribute; showTime adds an OK button.",
			},
		},
		{
			PickerType: entity.PickerReactDayPicker,
			Detection: DetectionHeuristics{
				Selectors:      []string{".rdp-root", ".rdp", "[data-day]"},
				ClassPatterns:  []string{"rdp"},
				AriaRoles:      []string{"grid"},
				PanelSelectors: []string{".rdp-root", ".rdp"},
			},
			Open: AlreadyInline{PanelSelector: ".rdp-root, .rdp"},
			SetDate: CellClick{
				CellSelector:  "[data-day]:not([data-outside])",
				DateAttribute: "data-day",
				Format:        isoDay,
				ClickSelector: "button",
			},
			Confirm: NoConfirm{},
			Validate: SelectedDay{
				SelectedSelector: "[data-selected='true'], [aria-selected='true'], .rdp-day_selected",
				DateAttribute:    "data-day",
			},
			Fallbacks: Fallbacks{
				Open: []OpenStrategy{ClickTrigger{TriggerSelector: "[aria-haspopup='dialog']"}},
				SetDate: []SetDateStrategy{
					CellClick{
						CellSelector:  ".rdp-day:not(.rdp-day_outside)",
						MonthSelector: ".rdp-caption_label",
						MonthFormat:   monthYear,
					},
				},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthToDate, entity.BaseWeek),
			Documentation: Documentation{
				Library: "React DayPicker",
				URL:     "https://daypicker.dev",
				Notes:   "v9 tags cells with data-day; v8 falls back to .rdp-day text.",
			},
		},
		{
			PickerType: entity.PickerPikaday,
			Detection: DetectionHeuristics{
				Selectors:     []string{"input[data-pikaday]", ".pika-single"},
				ClassPatterns: []string{"pika-"},
				GlobalCheck:   "Pikaday",
			},
			Open: ClickTrigger{TriggerSelector: "input[data-pikaday]"},
			SetDate: CellClick{
				CellSelector:   ".pika-single:not(.is-hidden) .pika-button",
				DateAttribute:  "data-pika-day",
				Format:         dayOfMonth,
				MonthAttribute: "data-pika-month",
				YearAttribute:  "data-pika-year",
			},
			Confirm:  NoConfirm{},
			Validate: InputNotEmpty{InputSelector: "input[data-pikaday]"},
			Fallbacks: Fallbacks{
				Open:    []OpenStrategy{FocusInput{InputSelector: "input[data-pikaday]"}},
				SetDate: []SetDateStrategy{InputValue{InputSelector: "input[data-pikaday]", Format: isoDay}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseDateTime),
			Documentation: Documentation{
				Library: "Pikaday",
				URL:     "https://github.com/Pikaday/Pikaday",
				Notes:   "Buttons carry data-pika-year, a zero-based data-pika-month and data-pika-day.",
			},
		},
		{
			PickerType: entity.PickerAirDatepicker,
			Detection: DetectionHeuristics{
				Selectors:      []string{"input[data-air-datepicker]", ".air-datepicker"},
				ClassPatterns:  []string{"air-datepicker"},
				GlobalCheck:    "AirDatepicker",
				PanelSelectors: []string{".air-datepicker.-inline-", ".air-datepicker.-active-"},
			},
			Open: ClickTrigger{TriggerSelector: "input[data-air-datepicker]"},
			SetDate: CellClick{
				CellSelector:   ".air-datepicker-cell.-day-:not(.-other-month-)",
				DateAttribute:  "data-date",
				Format:         dayOfMonth,
				MonthAttribute: "data-month",
				YearAttribute:  "data-year",
			},
			Confirm:  ClickButton{ButtonSelector: ".air-datepicker-button"},
			Validate: InputNotEmpty{InputSelector: "input[data-air-datepicker]"},
			Fallbacks: Fallbacks{
				Open:    []OpenStrategy{AlreadyInline{PanelSelector: ".air-datepicker.-inline-"}},
				SetDate: []SetDateStrategy{InputValue{InputSelector: "input[data-air-datepicker]", Format: "02.01.2006", RangeSeparator: ","}},
				Confirm: []ConfirmStrategy{NoConfirm{}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthYear, entity.BaseDateTime),
			Documentation: Documentation{
				Library: "Air Datepicker",
				URL:     "https://air-datepicker.com",
				Notes:   "Buttons only exist when configured; otherwise selection commits directly.",
			},
		},
		{
			PickerType: entity.PickerLitepicker,
			Detection: DetectionHeuristics{
				Selectors:     []string{"input[data-litepicker]", ".litepicker"},
				ClassPatterns: []string{"litepicker"},
				GlobalCheck:   "Litepicker",
			},
			Open:     ClickTrigger{TriggerSelector: "input[data-litepicker]"},
			SetDate: CellClick{
				CellSelector:  ".litepicker .day-item:not(.is-locked)",
				MonthSelector: ".litepicker .month-item-header > div",
				MonthFormat:   monthYear,
			},
			Confirm:  ClickButton{ButtonSelector: ".litepicker .button-apply"},
			Validate: InputNotEmpty{InputSelector: "input[data-litepicker]"},
			Fallbacks: Fallbacks{
				Open:    []OpenStrategy{APIOpen{TargetSelector: "input[data-litepicker]", Method: "litepicker.show"}},
				SetDate: []SetDateStrategy{InputValue{InputSelector: "input[data-litepicker]", Format: isoDay, RangeSeparator: " - "}},
				Confirm: []ConfirmStrategy{NoConfirm{}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthToDate, entity.BaseWeek),
			Documentation: Documentation{
				Library: "Litepicker",
				URL:     "https://litepicker.com",
				Notes:   "Apply button appears only with autoApply disabled.",
			},
		},
		{
			PickerType: entity.PickerVanillaJSDatepicker,
			Detection: DetectionHeuristics{
				Selectors:      []string{"input.datepicker-input", ".datepicker-picker"},
				ClassPatterns:  []string{"datepicker-input"},
				GlobalCheck:    "Datepicker",
				PanelSelectors: []string{".datepicker.active .datepicker-picker", ".datepicker-inline .datepicker-picker"},
			},
			Open:     FocusInput{InputSelector: "input.datepicker-input"},
			SetDate: CellClick{
				CellSelector:  ".datepicker-picker .datepicker-cell.day:not(.prev):not(.next)",
				MonthSelector: ".datepicker-picker .view-switch",
				MonthFormat:   monthYear,
			},
			Confirm:  NoConfirm{},
			Validate: InputNotEmpty{InputSelector: "input.datepicker-input"},
			Fallbacks: Fallbacks{
				Open:    []OpenStrategy{ClickTrigger{TriggerSelector: "input.datepicker-input"}},
				SetDate: []SetDateStrategy{InputValue{InputSelector: "input.datepicker-input", Format: usDay}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthYear),
			Documentation: Documentation{
				Library: "vanillajs-datepicker",
				URL:     "https://mymth.github.io/vanillajs-datepicker/",
				Notes:   "Cell data-date is an epoch timestamp, so cells are matched by text under the view-switch caption.",
			},
		},
		{
			PickerType: entity.PickerBootstrapDatepicker,
			Detection: DetectionHeuristics{
				Selectors:      []string{"input[data-provide='datepicker']", "[data-provide='datepicker'] input", ".input-group.date input"},
				DataAttributes: []string{"data-date-format"},
				GlobalCheck:    "jQuery.fn.datepicker",
				PanelSelectors: []string{".datepicker-dropdown", ".datepicker-inline"},
			},
			Open:     FocusInput{InputSelector: "input[data-provide='datepicker'], [data-provide='datepicker'] input"},
			SetDate: CellClick{
				CellSelector:  ".datepicker-days td.day:not(.old):not(.new)",
				MonthSelector: ".datepicker-days .datepicker-switch",
				MonthFormat:   monthYear,
			},
			Confirm:  BlurInput{InputSelector: "input[data-provide='datepicker'], [data-provide='datepicker'] input"},
			Validate: InputNotEmpty{InputSelector: "input[data-provide='datepicker'], [data-provide='datepicker'] input"},
			Fallbacks: Fallbacks{
				Open: []OpenStrategy{ClickTrigger{TriggerSelector: ".input-group.date .input-group-addon"}},
				SetDate: []SetDateStrategy{
					InputValue{InputSelector: "input[data-provide='datepicker'], [data-provide='datepicker'] input", Format: usDay},
				},
				Confirm: []ConfirmStrategy{NoConfirm{}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthYear),
			Documentation: Documentation{
				Library: "bootstrap-datepicker",
				URL:     "https://bootstrap-datepicker.readthedocs.io",
				Notes:   "Without autoclose the dropdown only commits on blur.",
			},
		},
		{
			PickerType: entity.PickerJQueryUI,
			Detection: DetectionHeuristics{
				Selectors:     []string{"input.hasDatepicker", "#ui-datepicker-div"},
				ClassPatterns: []string{"ui-datepicker"},
				GlobalCheck:   "jQuery.datepicker",
			},
			Open:     FocusInput{InputSelector: "input.hasDatepicker"},
			SetDate: CellClick{
				CellSelector:   "#ui-datepicker-div td[data-handler='selectDay']",
				ClickSelector:  "a",
				MonthAttribute: "data-month",
				YearAttribute:  "data-year",
			},
			Confirm:  NoConfirm{},
			Validate: InputNotEmpty{InputSelector: "input.hasDatepicker"},
			Fallbacks: Fallbacks{
				Open:    []OpenStrategy{ClickTrigger{TriggerSelector: ".ui-datepicker-trigger"}},
				SetDate: []SetDateStrategy{InputValue{InputSelector: "input.hasDatepicker", Format: usDay}},
				Confirm: []ConfirmStrategy{ClickButton{ButtonSelector: ".ui-datepicker-close"}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseDateTime),
			Documentation: Documentation{
				Library: "jQuery UI Datepicker",
				URL:     "https://jqueryui.com/datepicker/",
				Notes:   "A single shared #ui-datepicker-div serves every input on the page.",
			},
		},
		{
			PickerType: entity.PickerDateRangePicker,
			Detection: DetectionHeuristics{
				Selectors:      []string{"input[data-daterangepicker]", "input[name='daterange']", ".daterangepicker"},
				ClassPatterns:  []string{"daterangepicker"},
				GlobalCheck:    "jQuery.fn.daterangepicker",
				PanelSelectors: []string{".daterangepicker.show-calendar"},
			},
			Open:     ClickTrigger{TriggerSelector: "input[data-daterangepicker], input[name='daterange']"},
			SetDate: CellClick{
				CellSelector:  ".daterangepicker .drp-calendar.left td.available:not(.off)",
				MonthSelector: ".daterangepicker .drp-calendar.left th.month",
				MonthFormat:   "Jan 2006",
			},
			Confirm:  ClickButton{ButtonSelector: ".daterangepicker .applyBtn"},
			Validate: InputNotEmpty{InputSelector: "input[data-daterangepicker], input[name='daterange']"},
			Fallbacks: Fallbacks{
				Open: []OpenStrategy{FocusInput{InputSelector: "input[data-daterangepicker], input[name='daterange']"}},
				SetDate: []SetDateStrategy{
					InputValue{InputSelector: "input[data-daterangepicker], input[name='daterange']", Format: usDay, RangeSeparator: " - "},
				},
				Confirm: []ConfirmStrategy{PressEnter{}},
			},
			SupportedBaseScenarios: bases(entity.BaseLast7Days, entity.BaseMonthToDate, entity.BaseFiscalYear, entity.BaseWeek),
			Documentation: Documentation{
				Library: "Date Range Picker",
				URL:     "https://www.daterangepicker.com",
				Notes:   "Two side by side calendars; cells are clicked in the left one and the input is only written on apply.",
			},
		},
		{
			PickerType: entity.PickerDuet,
			Detection: DetectionHeuristics{
				Selectors:      []string{"duet-date-picker", ".duet-date__input"},
				ClassPatterns:  []string{"duet-date"},
				PanelSelectors: []string{".duet-date__dialog.is-active"},
			},
			Open:     ClickTrigger{TriggerSelector: ".duet-date__toggle"},
			SetDate:  InputValue{InputSelector: "duet-date-picker", Format: isoDay},
			Confirm:  NoConfirm{},
			Validate: APIProperty{TargetSelector: "duet-date-picker", Property: "value"},
			Fallbacks: Fallbacks{
				Open:    []OpenStrategy{APIOpen{TargetSelector: "duet-date-picker", Method: "show"}},
				SetDate: []SetDateStrategy{InputValue{InputSelector: ".duet-date__input", Format: "2.1.2006"}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate),
			Documentation: Documentation{
				Library: "Duet Date Picker",
				URL:     "https://duetds.github.io/date-picker/",
				Notes:   "The host element's value property is the ISO date.",
			},
		},
		{
			PickerType: entity.PickerVueDatepicker,
			Detection: DetectionHeuristics{
				Selectors:      []string{".dp__main .dp__input", ".dp__main"},
				ClassPatterns:  []string{"dp__"},
				PanelSelectors: []string{".dp__menu"},
			},
			Open: ClickTrigger{TriggerSelector: ".dp__input"},
			SetDate: CellClick{
				CellSelector:  ".dp__calendar_item",
				DateAttribute: "id",
				Format:        isoDay,
				ClickSelector: ".dp__cell_inner",
			},
			Confirm:  ClickButton{ButtonSelector: ".dp__action_select"},
			Validate: InputNotEmpty{InputSelector: ".dp__input"},
			Fallbacks: Fallbacks{
				Open:    []OpenStrategy{FocusInput{InputSelector: ".dp__input"}, AlreadyInline{PanelSelector: ".dp__menu"}},
				SetDate: []SetDateStrategy{InputValue{InputSelector: ".dp__input", Format: usDay, RangeSeparator: " - "}},
				Confirm: []ConfirmStrategy{NoConfirm{}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthToDate,
				entity.BaseMonthYear, entity.BaseDateTime, entity.BaseWeek),
			Documentation: Documentation{
				Library: "@vuepic/vue-datepicker",
				URL:     "https://vue3datepicker.com",
				Notes:   "Select button is hidden when auto-apply is on.",
			},
		},
		{
			PickerType: entity.PickerPrimeReact,
			Detection: DetectionHeuristics{
				Selectors:      []string{".p-calendar input", ".p-datepicker-inline"},
				ClassPatterns:  []string{"p-calendar"},
				PanelSelectors: []string{".p-datepicker"},
			},
			Open:     ClickTrigger{TriggerSelector: ".p-calendar input"},
			SetDate: CellClick{
				CellSelector:  ".p-datepicker-calendar td:not(.p-datepicker-other-month) > span",
				MonthSelector: ".p-datepicker-title",
				MonthFormat:   monthYear,
			},
			Confirm:  NoConfirm{},
			Validate: InputNotEmpty{InputSelector: ".p-calendar input"},
			Fallbacks: Fallbacks{
				Open: []OpenStrategy{
					ClickTrigger{TriggerSelector: ".p-datepicker-trigger"},
					FocusInput{InputSelector: ".p-calendar input"},
				},
				SetDate: []SetDateStrategy{InputValue{InputSelector: ".p-calendar input", Format: usDay, RangeSeparator: " - "}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthYear, entity.BaseDateTime),
			Documentation: Documentation{
				Library: "PrimeReact Calendar",
				URL:     "https://primereact.org/calendar/",
				Notes:   "Overlay is appended to body by default.",
			},
		},
		{
			PickerType: entity.PickerMantine,
			Detection: DetectionHeuristics{
				Selectors:     []string{"[data-dates-input]", ".mantine-DatePickerInput-input", ".mantine-DatePicker-day"},
				ClassPatterns: []string{"mantine-"},
			},
			Open: ClickTrigger{TriggerSelector: "[data-dates-input]"},
			SetDate: CellClick{
				CellSelector:  "button[class*='-day']:not([data-outside])",
				DateAttribute: "aria-label",
				Format:        "2 January 2006",
			},
			Confirm:  NoConfirm{},
			Validate: SelectedDay{SelectedSelector: "button[data-selected]", DateAttribute: "aria-label"},
			Fallbacks: Fallbacks{
				Open:    []OpenStrategy{ClickTrigger{TriggerSelector: "button.mantine-DatePickerInput-input"}},
				SetDate: []SetDateStrategy{InputValue{InputSelector: "input[type='hidden'][name]", Format: isoDay, RangeSeparator: " – "}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthToDate, entity.BaseMonthYear),
			Documentation: Documentation{
				Library: "Mantine Dates",
				URL:     "https://mantine.dev/dates/date-picker/",
				Notes:   "The visible field is a button; the submitted value lives in a hidden input.",
			},
		},
		{
			PickerType: entity.PickerReactDates,
			Detection: DetectionHeuristics{
				Selectors:      []string{".SingleDatePicker .DateInput_input", ".DateRangePicker .DateInput_input", ".DateInput_input"},
				ClassPatterns:  []string{"DateInput"},
				PanelSelectors: []string{".DayPicker"},
			},
			Open: FocusInput{InputSelector: ".DateInput_input"},
			SetDate: CellClick{
				CellSelector:  "td.CalendarDay:not(.CalendarDay__blocked_out_of_range)",
				DateAttribute: "aria-label",
				Format:        longDay,
			},
			Confirm:  NoConfirm{},
			Validate: InputNotEmpty{InputSelector: ".DateInput_input"},
			Fallbacks: Fallbacks{
				Open: []OpenStrategy{ClickTrigger{TriggerSelector: ".DateInput"}},
				SetDate: []SetDateStrategy{
					InputValue{
						InputSelector:    ".DateInput_input",
						EndInputSelector: "input.DateInput_input[id$='endDate'], input.DateInput_input[id$='end_date']",
						Format:           usDay,
					},
				},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthToDate, entity.BaseWeek),
			Documentation: Documentation{
				Library: "react-dates",
				URL:     "https://github.com/react-dates/react-dates",
				Notes:   "Day aria-labels embed the long date, e.g. 'Choose Friday, October 17, 2026'.",
			},
		},
		{
			PickerType: entity.PickerWebComponent,
			Detection: DetectionHeuristics{
				Selectors:      []string{".wc-datepicker__input", "wc-datepicker"},
				ClassPatterns:  []string{"wc-datepicker"},
				PanelSelectors: []string{".wc-datepicker__calendar"},
			},
			Open: ClickTrigger{TriggerSelector: ".wc-datepicker__toggle"},
			SetDate: CellClick{
				CellSelector:  ".wc-datepicker__day",
				DateAttribute: "data-date",
				Format:        isoDay,
			},
			Confirm:  PressEnter{ButtonSelector: ".wc-datepicker__apply"},
			Validate: InputNotEmpty{InputSelector: ".wc-datepicker__input"},
			Fallbacks: Fallbacks{
				Open:    []OpenStrategy{FocusInput{InputSelector: ".wc-datepicker__input"}},
				SetDate: []SetDateStrategy{InputValue{InputSelector: ".wc-datepicker__input", Format: isoDay, RangeSeparator: " / "}},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseDateTime),
			Documentation: Documentation{
				Library: "wc-datepicker custom element",
				URL:     "https://github.com/Sqrrl/wc-datepicker",
				Notes:   "Renders in open shadow DOM, often nested inside other components' shadow roots.",
			},
		},
		{
			PickerType: entity.PickerNativeDate,
			Detection: DetectionHeuristics{
				Selectors: []string{"input[type='date']", "input[type='datetime-local']", "input[type='month']"},
			},
			Open:     FocusInput{InputSelector: "input[type='date']"},
			SetDate:  InputValue{InputSelector: "input[type='date']", Format: isoDay},
			Confirm:  BlurInput{InputSelector: "input[type='date'], input[type='datetime-local'], input[type='month']"},
			Validate: InputNotEmpty{InputSelector: "input[type='date'], input[type='datetime-local'], input[type='month']"},
			Fallbacks: Fallbacks{
				Open: []OpenStrategy{
					FocusInput{InputSelector: "input[type='datetime-local']"},
					FocusInput{InputSelector: "input[type='month']"},
				},
				SetDate: []SetDateStrategy{
					InputValue{InputSelector: "input[type='datetime-local']", Format: "2006-01-02T15:04"},
					InputValue{InputSelector: "input[type='month']", Format: "2006-01"},
				},
			},
			SupportedBaseScenarios: bases(entity.BaseSingleDate, entity.BaseMonthYear, entity.BaseDateTime),
			Documentation: Documentation{
				Library: "HTML input[type=date]",
				URL:     "https://developer.mozilla.org/docs/Web/HTML/Element/input/date",
				Notes:   "The value is always ISO regardless of the displayed locale format.",
			},
		},
	}
}
