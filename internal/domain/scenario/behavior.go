// Package scenario maps base scenario ids to picker-independent semantics:
// single date or range, granularity and default dates.
package scenario

import (
	"errors"
	"fmt"
	"time"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

var ErrUnknownBaseScenario = errors.New("unknown base scenario")

type Behavior struct {
	ID          entity.BaseScenarioID
	Name        string
	Range       bool
	Granularity entity.Granularity
	window      func(today time.Time) entity.DateRange
}

// Window is the default date window for the given day.
func (b Behavior) Window(now time.Time) entity.DateRange {
	return b.window(Day(now))
}

// Target narrows a window to what the picker is asked to select. Single-date
// scenarios select the window's end.
func (b Behavior) Target(w entity.DateRange) entity.DateRange {
	if b.Range {
		return entity.DateRange{Start: Day(w.Start), End: Day(w.End)}
	}
	return entity.DateRange{Start: Day(w.End), End: Day(w.End)}
}

var behaviors = map[entity.BaseScenarioID]Behavior{
	entity.BaseSingleDate: {
		ID: entity.BaseSingleDate, Name: "single date", Granularity: entity.GranularityDay,
		window: lastDays(7),
	},
	entity.BaseLast7Days: {
		ID: entity.BaseLast7Days, Name: "last 7 days", Range: true, Granularity: entity.GranularityDay,
		window: lastDays(7),
	},
	entity.BaseMonthToDate: {
		ID: entity.BaseMonthToDate, Name: "month to date", Range: true, Granularity: entity.GranularityDay,
		window: func(today time.Time) entity.DateRange {
			return entity.DateRange{Start: firstOfMonth(today), End: today}
		},
	},
	entity.BaseMonthYear: {
		ID: entity.BaseMonthYear, Name: "month/year", Granularity: entity.GranularityMonth,
		window: currentMonth,
	},
	entity.BaseFiscalYear: {
		ID: entity.BaseFiscalYear, Name: "fiscal year", Range: true, Granularity: entity.GranularityDay,
		window: fiscalYear,
	},
	entity.BaseDateTime: {
		ID: entity.BaseDateTime, Name: "date and time", Granularity: entity.GranularityDay,
		window: func(today time.Time) entity.DateRange {
			return entity.DateRange{Start: today, End: today}
		},
	},
	entity.BaseWeek: {
		ID: entity.BaseWeek, Name: "ISO week", Range: true, Granularity: entity.GranularityDay,
		window: isoWeek,
	},
}

func Lookup(id entity.BaseScenarioID) (Behavior, bool) {
	b, ok := behaviors[id]
	return b, ok
}

// DefaultDates returns the default window of a base scenario.
func DefaultDates(id entity.BaseScenarioID, now time.Time) (entity.DateRange, error) {
	b, ok := behaviors[id]
	if !ok {
		return entity.DateRange{}, fmt.Errorf("%w: %s", ErrUnknownBaseScenario, id)
	}
	return b.Window(now), nil
}

// IsRange is false for unknown ids.
func IsRange(id entity.BaseScenarioID) bool {
	return behaviors[id].Range
}

// IDs lists every known base scenario in id order.
func IDs() []entity.BaseScenarioID {
	return []entity.BaseScenarioID{
		entity.BaseSingleDate, entity.BaseLast7Days, entity.BaseMonthToDate, entity.BaseMonthYear,
		entity.BaseFiscalYear, entity.BaseDateTime, entity.BaseWeek,
	}
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func lastDays(n int) func(time.Time) entity.DateRange {
	return func(today time.Time) entity.DateRange {
		return entity.DateRange{Start: today.AddDate(0, 0, -(n - 1)), End: today}
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func currentMonth(today time.Time) entity.DateRange {
	start := firstOfMonth(today)
	return entity.DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}

// fiscalYear runs April 1 to March 31.
func fiscalYear(today time.Time) entity.DateRange {
	year := today.Year()
	if today.Month() < time.April {
		year--
	}
	start := time.Date(year, time.April, 1, 0, 0, 0, 0, today.Location())
	return entity.DateRange{Start: start, End: start.AddDate(1, 0, -1)}
}

func isoWeek(today time.Time) entity.DateRange {
	offset := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -offset)
	return entity.DateRange{Start: monday, End: monday.AddDate(0, 0, 6)}
}
