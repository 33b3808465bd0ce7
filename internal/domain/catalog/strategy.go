package catalog

// Strategies are closed tagged unions: one struct per variant, selected by Kind.
// A variant carries only the fields its action needs. Empty selector fields mean
// "use the element found during detection".

type OpenKind string

const (
	OpenClickTrigger   OpenKind = "click_trigger"
	OpenFocusInput     OpenKind = "focus_input"
	OpenFocusThenClick OpenKind = "focus_then_click"
	OpenAPI            OpenKind = "api_open"
	OpenAlreadyInline  OpenKind = "already_inline"
)

type OpenStrategy interface {
	Kind() OpenKind
	openStrategy()
}

type ClickTrigger struct {
	TriggerSelector string
}

type FocusInput struct {
	InputSelector string
}

type FocusThenClick struct {
	InputSelector   string
	TriggerSelector string
}

// APIOpen calls Method on the element matched by TargetSelector.
type APIOpen struct {
	TargetSelector string
	Method         string
}

// AlreadyInline succeeds when the calendar panel is rendered permanently.
type AlreadyInline struct {
	PanelSelector string
}

func (ClickTrigger) Kind() OpenKind   { return OpenClickTrigger }
func (FocusInput) Kind() OpenKind     { return OpenFocusInput }
func (FocusThenClick) Kind() OpenKind { return OpenFocusThenClick }
func (APIOpen) Kind() OpenKind        { return OpenAPI }
func (AlreadyInline) Kind() OpenKind  { return OpenAlreadyInline }

func (ClickTrigger) openStrategy()   {}
func (FocusInput) openStrategy()     {}
func (FocusThenClick) openStrategy() {}
func (APIOpen) openStrategy()        {}
func (AlreadyInline) openStrategy()  {}

type SetDateKind string

const (
	SetDateInputValue SetDateKind = "input_value"
	SetDateCellClick  SetDateKind = "click_day_cell"
	SetDateAPICall    SetDateKind = "api_call"
)

type SetDateStrategy interface {
	Kind() SetDateKind
	setDateStrategy()
}

// InputValue writes the formatted date into an input and fires input/change.
// A range goes into EndInputSelector when set, otherwise both dates are joined
// with RangeSeparator in the same input.
type InputValue struct {
	InputSelector    string
	EndInputSelector string
	Format           string
	RangeSeparator   string
}

// CellClick clicks the calendar cell whose DateAttribute matches the date
// formatted with Format. An aria-label matches by containment, other attributes
// exactly. Without DateAttribute the cell text is compared, against Format when
// given and against the day of month otherwise. ClickSelector, when set, picks
// the clickable descendant of the matched cell.
//
// Cells that only carry the day of month need a month check. MonthSelector
// names the calendar caption, which must read as the date formatted with
// MonthFormat (whitespace and case ignored). MonthAttribute and YearAttribute
// name per-cell attributes holding the zero-based month and the year.
type CellClick struct {
	CellSelector   string
	DateAttribute  string
	Format         string
	ClickSelector  string
	MonthSelector  string
	MonthFormat    string
	MonthAttribute string
	YearAttribute  string
}

// ChecksMonth reports whether the strategy can tell the displayed month apart.
func (c CellClick) ChecksMonth() bool {
	return c.MonthSelector != "" || c.MonthAttribute != ""
}

// APICall invokes Method with the formatted start (and end) date.
type APICall struct {
	TargetSelector string
	Method         string
	Format         string
}

func (InputValue) Kind() SetDateKind { return SetDateInputValue }
func (CellClick) Kind() SetDateKind  { return SetDateCellClick }
func (APICall) Kind() SetDateKind    { return SetDateAPICall }

func (InputValue) setDateStrategy() {}
func (CellClick) setDateStrategy()  {}
func (APICall) setDateStrategy()    {}

type ConfirmKind string

const (
	ConfirmNone        ConfirmKind = "none"
	ConfirmClickButton ConfirmKind = "click_button"
	ConfirmPressEnter  ConfirmKind = "press_enter"
	ConfirmBlur        ConfirmKind = "blur_input"
)

type ConfirmStrategy interface {
	Kind() ConfirmKind
	confirmStrategy()
}

// NoConfirm is for widgets that commit on selection.
type NoConfirm struct{}

type ClickButton struct {
	ButtonSelector string
}

// PressEnter clicks ButtonSelector when it resolves and otherwise sends a
// keydown Enter to the active element.
type PressEnter struct {
	ButtonSelector string
}

type BlurInput struct {
	InputSelector string
}

func (NoConfirm) Kind() ConfirmKind   { return ConfirmNone }
func (ClickButton) Kind() ConfirmKind { return ConfirmClickButton }
func (PressEnter) Kind() ConfirmKind  { return ConfirmPressEnter }
func (BlurInput) Kind() ConfirmKind   { return ConfirmBlur }

func (NoConfirm) confirmStrategy()   {}
func (ClickButton) confirmStrategy() {}
func (PressEnter) confirmStrategy()  {}
func (BlurInput) confirmStrategy()   {}

type ValidateKind string

const (
	ValidateInputNotEmpty ValidateKind = "input_not_empty"
	ValidateSelectedDay   ValidateKind = "selected_day"
	ValidateAPIProperty   ValidateKind = "api_property"
)

type ValidateStrategy interface {
	Kind() ValidateKind
	validateStrategy()
}

type InputNotEmpty struct {
	InputSelector string
}

// SelectedDay looks for a day element carrying a selected marker. The reported
// value is read from DateAttribute, or the text when it is empty.
type SelectedDay struct {
	SelectedSelector string
	DateAttribute    string
}

type APIProperty struct {
	TargetSelector string
	Property       string
}

func (InputNotEmpty) Kind() ValidateKind { return ValidateInputNotEmpty }
func (SelectedDay) Kind() ValidateKind   { return ValidateSelectedDay }
func (APIProperty) Kind() ValidateKind   { return ValidateAPIProperty }

func (InputNotEmpty) validateStrategy() {}
func (SelectedDay) validateStrategy()   {}
func (APIProperty) validateStrategy()   {}
