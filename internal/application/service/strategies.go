package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/catalog"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

const (
	defaultFormat      = "2006-01-02"
	defaultMonthFormat = "January 2006"
	defaultSeparator   = " - "
)

func (r *CapabilityRegistry) open(det entity.DetectionResult, s catalog.OpenStrategy) (entity.AppliedStrategy, error) {
	applied := entity.AppliedStrategy{Kind: string(s.Kind())}
	switch st := s.(type) {
	case catalog.ClickTrigger:
		applied.Selector = st.TriggerSelector
		el, err := find(det, st.TriggerSelector)
		if err != nil {
			return applied, err
		}
		return applied, el.Click()
	case catalog.FocusInput:
		applied.Selector = st.InputSelector
		el, err := find(det, st.InputSelector)
		if err != nil {
			return applied, err
		}
		return applied, el.Focus()
	case catalog.FocusThenClick:
		applied.Selector = st.InputSelector + " > " + st.TriggerSelector
		in, err := find(det, st.InputSelector)
		if err != nil {
			return applied, err
		}
		trigger, err := find(det, st.TriggerSelector)
		if err != nil {
			return applied, err
		}
		if err := in.Focus(); err != nil {
			return applied, err
		}
		return applied, trigger.Click()
	case catalog.APIOpen:
		applied.Selector = st.TargetSelector
		target, err := find(det, st.TargetSelector)
		if err != nil {
			return applied, err
		}
		_, err = target.Call(st.Method)
		return applied, err
	case catalog.AlreadyInline:
		applied.Selector = st.PanelSelector
		if det.Panel != nil {
			applied.Note = "panel seen at detection"
			return applied, nil
		}
		_, err := find(det, st.PanelSelector)
		return applied, err
	default:
		return applied, fmt.Errorf("unsupported open strategy %T", s)
	}
}

func (r *CapabilityRegistry) setDate(det entity.DetectionResult, s catalog.SetDateStrategy, date time.Time, end *time.Time) (entity.AppliedStrategy, error) {
	applied := entity.AppliedStrategy{Kind: string(s.Kind())}
	switch st := s.(type) {
	case catalog.InputValue:
		applied.Selector = st.InputSelector
		return applied, setInputValue(det, st, date, end, &applied)
	case catalog.CellClick:
		applied.Selector = st.CellSelector
		return applied, clickCells(det, st, date, end, &applied)
	case catalog.APICall:
		applied.Selector = st.TargetSelector
		target, err := find(det, st.TargetSelector)
		if err != nil {
			return applied, err
		}
		layout := layoutOr(st.Format)
		args := []any{date.Format(layout)}
		if end != nil {
			args = append(args, end.Format(layout))
		}
		_, err = target.Call(st.Method, args...)
		return applied, err
	default:
		return applied, fmt.Errorf("unsupported set-date strategy %T", s)
	}
}

func setInputValue(det entity.DetectionResult, st catalog.InputValue, date time.Time, end *time.Time, applied *entity.AppliedStrategy) error {
	in, err := find(det, st.InputSelector)
	if err != nil {
		return err
	}
	layout := layoutOr(st.Format)
	value := date.Format(layout)

	if end != nil {
		if st.EndInputSelector != "" {
			endIn, err := find(det, st.EndInputSelector)
			if err == nil && endIn != nil {
				if err := writeInput(in, value); err != nil {
					return err
				}
				applied.Note = "end date in " + st.EndInputSelector
				return writeInput(endIn, end.Format(layout))
			}
			if !errors.Is(err, ErrElementNotFound) {
				return err
			}
		}
		sep := st.RangeSeparator
		if sep == "" {
			sep = defaultSeparator
		}
		value += sep + end.Format(layout)
	}
	return writeInput(in, value)
}

func writeInput(el dom.Element, value string) error {
	if err := el.SetValue(value); err != nil {
		return err
	}
	if err := el.Dispatch(dom.Event{Type: "input"}); err != nil {
		return err
	}
	return el.Dispatch(dom.Event{Type: "change"})
}

// clickCells clicks the start cell and then, independently, the end cell. The
// cell list is re-read before the second click because widgets re-render. A
// missing end cell is only noted, unless the calendar shows another month.
func clickCells(det entity.DetectionResult, st catalog.CellClick, date time.Time, end *time.Time, applied *entity.AppliedStrategy) error {
	start, err := matchCell(det, st, date)
	if err != nil {
		return err
	}
	if err := start.Click(); err != nil {
		return err
	}
	if end == nil {
		return nil
	}
	last, err := matchCell(det, st, *end)
	if err != nil {
		if errors.Is(err, ErrElementNotFound) && !errors.Is(err, ErrMonthNotShown) {
			applied.Note = "end cell not found"
			return nil
		}
		return err
	}
	if err := last.Click(); err != nil {
		applied.Note = "end cell click failed: " + err.Error()
	}
	return nil
}

func matchCell(det entity.DetectionResult, st catalog.CellClick, date time.Time) (dom.Element, error) {
	if st.MonthSelector != "" {
		if err := monthShown(det, st, date); err != nil {
			return nil, err
		}
	}
	cells, err := findAll(det, st.CellSelector)
	if err != nil {
		return nil, err
	}
	for _, cell := range cells {
		if disabled, _ := cell.Attribute("aria-disabled"); disabled == "true" {
			continue
		}
		ok, err := cellMatches(cell, st, date)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if st.ClickSelector == "" {
			return cell, nil
		}
		inner, err := cell.QuerySelector(st.ClickSelector)
		if err != nil {
			return nil, err
		}
		if inner != nil {
			return inner, nil
		}
		return cell, nil
	}
	if st.MonthAttribute != "" {
		return nil, fmt.Errorf("%w: no cell for %s in %s", ErrMonthNotShown, date.Format(defaultFormat), st.CellSelector)
	}
	return nil, fmt.Errorf("%w: no cell for %s in %s", ErrElementNotFound, date.Format(defaultFormat), st.CellSelector)
}

// monthShown compares the calendar caption with the month of date.
func monthShown(det entity.DetectionResult, st catalog.CellClick, date time.Time) error {
	caption, err := find(det, st.MonthSelector)
	if err != nil {
		return err
	}
	text, err := caption.Text()
	if err != nil {
		return err
	}
	format := st.MonthFormat
	if format == "" {
		format = defaultMonthFormat
	}
	want := date.Format(format)
	if compact(text) != compact(want) {
		return fmt.Errorf("%w: calendar shows %q, want %q", ErrMonthNotShown, strings.TrimSpace(text), want)
	}
	return nil
}

func compact(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func cellMatches(cell dom.Element, st catalog.CellClick, date time.Time) (bool, error) {
	if st.MonthAttribute != "" {
		if v, _ := cell.Attribute(st.MonthAttribute); v != strconv.Itoa(int(date.Month())-1) {
			return false, nil
		}
	}
	if st.YearAttribute != "" {
		if v, _ := cell.Attribute(st.YearAttribute); v != strconv.Itoa(date.Year()) {
			return false, nil
		}
	}
	if st.DateAttribute != "" {
		v, ok := cell.Attribute(st.DateAttribute)
		if !ok {
			return false, nil
		}
		want := date.Format(layoutOr(st.Format))
		if st.DateAttribute == "aria-label" {
			return strings.Contains(v, want), nil
		}
		return v == want, nil
	}
	text, err := cell.Text()
	if err != nil {
		return false, err
	}
	text = strings.TrimSpace(text)
	if st.Format != "" {
		return text == date.Format(st.Format), nil
	}
	return text == strconv.Itoa(date.Day()), nil
}

func (r *CapabilityRegistry) confirm(det entity.DetectionResult, s catalog.ConfirmStrategy) (entity.AppliedStrategy, error) {
	applied := entity.AppliedStrategy{Kind: string(s.Kind())}
	switch st := s.(type) {
	case catalog.NoConfirm:
		return applied, nil
	case catalog.ClickButton:
		applied.Selector = st.ButtonSelector
		btn, err := find(det, st.ButtonSelector)
		if err != nil {
			return applied, err
		}
		return applied, btn.Click()
	case catalog.PressEnter:
		applied.Selector = st.ButtonSelector
		if st.ButtonSelector != "" {
			btn, err := find(det, st.ButtonSelector)
			if err == nil {
				applied.Note = "button"
				return applied, btn.Click()
			}
			if !errors.Is(err, ErrElementNotFound) {
				return applied, err
			}
		}
		active, err := det.Root.Document().ActiveElement()
		if err != nil {
			return applied, err
		}
		applied.Note = "keydown Enter on active element"
		return applied, active.Dispatch(dom.Event{Type: "keydown", Key: "Enter"})
	case catalog.BlurInput:
		applied.Selector = st.InputSelector
		in, err := find(det, st.InputSelector)
		if err != nil {
			return applied, err
		}
		return applied, in.Blur()
	default:
		return applied, fmt.Errorf("unsupported confirm strategy %T", s)
	}
}

func (r *CapabilityRegistry) validate(det entity.DetectionResult, s catalog.ValidateStrategy) (entity.ValidationResult, error) {
	switch st := s.(type) {
	case catalog.InputNotEmpty:
		in, err := find(det, st.InputSelector)
		if errors.Is(err, ErrElementNotFound) {
			return entity.ValidationResult{Detail: "input not found: " + st.InputSelector}, nil
		}
		if err != nil {
			return entity.ValidationResult{}, err
		}
		v, err := in.Value()
		if err != nil {
			return entity.ValidationResult{}, err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return entity.ValidationResult{Detail: "input is empty"}, nil
		}
		return entity.ValidationResult{Valid: true, Value: v}, nil
	case catalog.SelectedDay:
		day, err := find(det, st.SelectedSelector)
		if errors.Is(err, ErrElementNotFound) {
			return entity.ValidationResult{Detail: "no selected day"}, nil
		}
		if err != nil {
			return entity.ValidationResult{}, err
		}
		var v string
		if st.DateAttribute != "" {
			v, _ = day.Attribute(st.DateAttribute)
		} else if v, err = day.Text(); err != nil {
			return entity.ValidationResult{}, err
		}
		return entity.ValidationResult{Valid: true, Value: strings.TrimSpace(v)}, nil
	case catalog.APIProperty:
		target, err := find(det, st.TargetSelector)
		if errors.Is(err, ErrElementNotFound) {
			return entity.ValidationResult{Detail: "target not found: " + st.TargetSelector}, nil
		}
		if err != nil {
			return entity.ValidationResult{}, err
		}
		v, ok, err := target.Property(st.Property)
		if err != nil {
			return entity.ValidationResult{}, err
		}
		if !ok || v == nil || fmt.Sprint(v) == "" {
			return entity.ValidationResult{Detail: st.Property + " is empty"}, nil
		}
		return entity.ValidationResult{Valid: true, Value: fmt.Sprint(v)}, nil
	default:
		return entity.ValidationResult{}, fmt.Errorf("unsupported validate strategy %T", s)
	}
}

// find resolves selector in the detected root first and then in every other
// searchable root of the same document, which covers portaled popups. An empty
// selector means the detected trigger.
func find(det entity.DetectionResult, selector string) (dom.Element, error) {
	if selector == "" {
		if det.Trigger == nil {
			return nil, fmt.Errorf("%w: no trigger recorded", ErrElementNotFound)
		}
		return det.Trigger, nil
	}
	for _, root := range lookupOrder(det) {
		el, err := root.QuerySelector(selector)
		if err != nil {
			return nil, err
		}
		if el != nil {
			return el, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
}

// findAll returns the matches of the first root that has any.
func findAll(det entity.DetectionResult, selector string) ([]dom.Element, error) {
	for _, root := range lookupOrder(det) {
		els, err := root.QuerySelectorAll(selector)
		if err != nil {
			return nil, err
		}
		if len(els) > 0 {
			return els, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
}

func lookupOrder(det entity.DetectionResult) []dom.Root {
	order := []dom.Root{det.Root}
	for _, root := range SearchableRoots(det.Root) {
		if root.ID() != det.Root.ID() {
			order = append(order, root)
		}
	}
	return order
}

func layoutOr(format string) string {
	if format == "" {
		return defaultFormat
	}
	return format
}
