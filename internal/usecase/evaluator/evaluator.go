// Package evaluator corroborates a finished picker flow against the page: the
// visible input, the application model and the would-be submission payload.
package evaluator

import (
	"fmt"
	"strings"
	"time"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/output"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/service"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

const isoDay = "2006-01-02"

// KnownInputSelectors are the date inputs of the supported libraries, plus a
// few generic shapes.
var KnownInputSelectors = []string{
	`input[type="date"]`,
	`input[type="datetime-local"]`,
	`input[type="month"]`,
	`input[type="week"]`,
	`.flatpickr-input`,
	`.react-datepicker__input-container input`,
	`.ant-picker-input input`,
	`.MuiPickersTextField-root input`,
	`.MuiPickersInputBase-root input`,
	`.DateInput_input`,
	`.dp__input`,
	`.p-calendar input`,
	`.mantine-DatePickerInput-input`,
	`input.hasDatepicker`,
	`input.datepicker-input`,
	`input.air-datepicker-input`,
	`input.litepicker-input`,
	`input[name="daterange"]`,
	`.duet-date__input`,
	`.wc-datepicker__input`,
	`[data-testid="date-input"]`,
	`input[name*="date"]`,
}

var layouts = map[entity.Granularity][]string{
	entity.GranularityDay: {
		isoDay, "01/02/2006", "02/01/2006", "1/2/2006", "02.01.2006",
		"January 2, 2006", "Jan 2, 2006", "2 January 2006", "2 Jan 2006",
	},
	entity.GranularityMonth: {
		"2006-01", "01/2006", "1/2006", "January 2006", "Jan 2006",
	},
	entity.GranularityYear: {
		"2006",
	},
}

// rangeSeparators are tried in order when a value does not parse as one date.
// The loose ones come last so that long layouts keep their commas.
var rangeSeparators = []string{" to ", " – ", " — ", " - ", " / ", ",", " "}

type Evaluator struct {
	logger output.LoggerPort
}

func New(logger output.LoggerPort) *Evaluator {
	return &Evaluator{logger: logger}
}

// ValidateAfterFlow checks the known date inputs in every root of scope for the
// expected dates, parsed and compared at the scenario's granularity. Without
// any known input it trusts the value the picker reported. ModelUpdated mirrors InputValueUpdated: there is no separate probe
// of application state.
func (e *Evaluator) ValidateAfterFlow(reported entity.ValidationResult, expected entity.DateRange, granularity entity.Granularity, scope dom.Root) entity.PostFlowResult {
	values := knownInputValues(scope)

	var updated bool
	var msg string
	if len(values) == 0 {
		updated = contains(reported.Value, expected.Start, granularity)
		if updated {
			msg = "no known date input; reported value contains start"
		} else {
			msg = fmt.Sprintf("no known date input; reported value %q lacks %s", reported.Value, expected.Start.Format(isoDay))
		}
	} else {
		startOK := anyMatches(values, expected.Start, granularity)
		endOK := anyMatches(values, expected.End, granularity)
		updated = startOK && endOK
		switch {
		case updated:
			msg = fmt.Sprintf("%d known input(s) agree", len(values))
		case !startOK:
			msg = fmt.Sprintf("no input shows %s (values %q)", expected.Start.Format(isoDay), values)
		default:
			msg = fmt.Sprintf("no input shows %s (values %q)", expected.End.Format(isoDay), values)
		}
	}

	result := entity.PostFlowResult{
		InputValueUpdated: updated,
		ModelUpdated:      updated,
		PayloadCorrect:    updated && !expected.End.Before(expected.Start),
		Message:           msg,
	}
	if result.PayloadCorrect {
		result.Payload = &entity.Payload{Start: expected.Start.Format(isoDay)}
		if !expected.End.Equal(expected.Start) {
			result.Payload.End = expected.End.Format(isoDay)
		}
	}

	if e.logger != nil {
		e.logger.Debug("Post-flow validation",
			"inputs", len(values),
			"input_value_updated", result.InputValueUpdated,
			"payload_correct", result.PayloadCorrect,
		)
	}
	return result
}

// knownInputValues reads the non-empty values of known date inputs in
// discovery order. Read errors are skipped.
func knownInputValues(scope dom.Root) []string {
	if scope == nil {
		return nil
	}
	var values []string
	for _, root := range service.SearchableRoots(scope) {
		for _, sel := range KnownInputSelectors {
			els, err := root.QuerySelectorAll(sel)
			if err != nil {
				continue
			}
			for _, el := range els {
				v, err := el.Value()
				if err != nil {
					continue
				}
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
		}
	}
	return values
}

func anyMatches(values []string, want time.Time, g entity.Granularity) bool {
	for _, v := range values {
		for _, got := range dates(v, candidates(g)) {
			if sameUnit(got, want, g) {
				return true
			}
		}
	}
	return false
}

// dates reads every date in value. A value is one date, a range joined by one
// of rangeSeparators, or a date followed by a time of day. Ambiguous numeric
// forms yield one reading per layout.
func dates(value string, layouts []string) []time.Time {
	value = strings.TrimSpace(value)
	if got := parseExact(value, layouts); len(got) > 0 {
		return got
	}
	for _, sep := range rangeSeparators {
		parts := strings.Split(value, sep)
		if len(parts) < 2 {
			continue
		}
		if got := parseParts(parts, layouts); len(got) > 0 {
			return got
		}
	}
	return parseLeading(value, layouts)
}

// parseParts succeeds only when every non-empty part holds a date.
func parseParts(parts []string, layouts []string) []time.Time {
	var out []time.Time
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		got := parseLeading(p, layouts)
		if len(got) == 0 {
			return nil
		}
		out = append(out, got...)
	}
	return out
}

// parseLeading parses token, or its longest prefix ending before a space or a
// 'T' that parses, so trailing times are ignored.
func parseLeading(token string, layouts []string) []time.Time {
	if got := parseExact(token, layouts); len(got) > 0 {
		return got
	}
	for i := len(token) - 1; i > 0; i-- {
		if token[i] != ' ' && token[i] != 'T' {
			continue
		}
		if got := parseExact(strings.TrimSpace(token[:i]), layouts); len(got) > 0 {
			return got
		}
	}
	return nil
}

func parseExact(token string, layouts []string) []time.Time {
	var out []time.Time
	for _, layout := range layouts {
		if t, err := time.Parse(layout, token); err == nil {
			out = append(out, t)
		}
	}
	return out
}

func sameUnit(got, want time.Time, g entity.Granularity) bool {
	switch g {
	case entity.GranularityYear:
		return got.Year() == want.Year()
	case entity.GranularityMonth:
		return got.Year() == want.Year() && got.Month() == want.Month()
	default:
		return got.Year() == want.Year() && got.YearDay() == want.YearDay()
	}
}

// contains is the loose check for a reported value that no known input
// corroborates: any rendering of want at granularity g, or a finer one, appearing
// in value counts.
func contains(value string, want time.Time, g entity.Granularity) bool {
	if value == "" {
		return false
	}
	for _, layout := range candidates(g) {
		if strings.Contains(value, want.Format(layout)) {
			return true
		}
	}
	return false
}

func candidates(g entity.Granularity) []string {
	switch g {
	case entity.GranularityYear:
		return concat(layouts[entity.GranularityDay], layouts[entity.GranularityMonth], layouts[entity.GranularityYear])
	case entity.GranularityMonth:
		return concat(layouts[entity.GranularityDay], layouts[entity.GranularityMonth])
	default:
		return layouts[entity.GranularityDay]
	}
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
