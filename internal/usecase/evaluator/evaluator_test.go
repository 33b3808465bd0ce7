package evaluator

import (
	"strings"
	"testing"
	"time"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/dom/htmldom"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func single(t time.Time) entity.DateRange {
	return entity.DateRange{Start: t, End: t}
}

func TestValidateAfterFlow_SingleInputAgrees(t *testing.T) {
	doc := htmldom.MustParse(`<input class="flatpickr-input" value="2026-10-17">`)
	e := New(nil)

	got := e.ValidateAfterFlow(entity.ValidationResult{Valid: true, Value: "2026-10-17"},
		single(day(2026, time.October, 17)), entity.GranularityDay, doc)

	if !got.Agrees() {
		t.Fatalf("expected agreement, got %+v", got)
	}
	if got.ModelUpdated != got.InputValueUpdated {
		t.Error("ModelUpdated must mirror InputValueUpdated")
	}
	if got.Payload == nil || got.Payload.Start != "2026-10-17" || got.Payload.End != "" {
		t.Errorf("unexpected payload %+v", got.Payload)
	}
}

func TestValidateAfterFlow_RangeInSingleInput(t *testing.T) {
	doc := htmldom.MustParse(`<input class="flatpickr-input" value="2026-10-11 to 2026-10-17">`)
	e := New(nil)

	got := e.ValidateAfterFlow(entity.ValidationResult{Valid: true},
		entity.DateRange{Start: day(2026, time.October, 11), End: day(2026, time.October, 17)},
		entity.GranularityDay, doc)

	if !got.Agrees() {
		t.Fatalf("expected agreement, got %+v", got)
	}
	if got.Payload.End != "2026-10-17" {
		t.Errorf("expected payload end 2026-10-17, got %q", got.Payload.End)
	}
}

func TestValidateAfterFlow_RangeAcrossTwoInputs(t *testing.T) {
	doc := htmldom.MustParse(`
		<input class="DateInput_input" value="10/11/2026">
		<input class="DateInput_input" value="10/17/2026">`)
	e := New(nil)

	got := e.ValidateAfterFlow(entity.ValidationResult{Valid: true},
		entity.DateRange{Start: day(2026, time.October, 11), End: day(2026, time.October, 17)},
		entity.GranularityDay, doc)

	if !got.InputValueUpdated {
		t.Fatalf("expected both dates to be found, got %+v", got)
	}
}

func TestValidateAfterFlow_WrongValue(t *testing.T) {
	doc := htmldom.MustParse(`<input type="date" value="2026-10-01">`)
	e := New(nil)

	got := e.ValidateAfterFlow(entity.ValidationResult{Valid: true, Value: "2026-10-01"},
		single(day(2026, time.October, 17)), entity.GranularityDay, doc)

	if got.InputValueUpdated || got.ModelUpdated || got.PayloadCorrect {
		t.Fatalf("expected disagreement, got %+v", got)
	}
	if got.Payload != nil {
		t.Error("payload must be nil when inputs disagree")
	}
	if !strings.Contains(got.Message, "2026-10-17") {
		t.Errorf("message should name the missing date, got %q", got.Message)
	}
}

func TestValidateAfterFlow_FallsBackToReportedValue(t *testing.T) {
	doc := htmldom.MustParse(`<div class="calendar"><span aria-selected="true">17</span></div>`)
	e := New(nil)
	want := single(day(2026, time.October, 17))

	got := e.ValidateAfterFlow(entity.ValidationResult{Valid: true, Value: "Selected: Oct 17, 2026"},
		want, entity.GranularityDay, doc)
	if !got.Agrees() {
		t.Errorf("expected reported value to be trusted, got %+v", got)
	}

	got = e.ValidateAfterFlow(entity.ValidationResult{Valid: true}, want, entity.GranularityDay, doc)
	if got.InputValueUpdated {
		t.Errorf("empty reported value must not validate, got %+v", got)
	}
}

func TestValidateAfterFlow_InputInsideShadowRoot(t *testing.T) {
	doc := htmldom.MustParse(`<date-field><template shadowrootmode="open">
		<input type="date" value="2026-10-17"></template></date-field>`)
	e := New(nil)

	got := e.ValidateAfterFlow(entity.ValidationResult{}, single(day(2026, time.October, 17)),
		entity.GranularityDay, doc)
	if !got.InputValueUpdated {
		t.Errorf("expected shadow input to be read, got %+v", got)
	}
}

func TestValidateAfterFlow_MonthGranularity(t *testing.T) {
	doc := htmldom.MustParse(`<input type="month" value="2026-10">`)
	e := New(nil)

	got := e.ValidateAfterFlow(entity.ValidationResult{}, single(day(2026, time.October, 31)),
		entity.GranularityMonth, doc)
	if !got.Agrees() {
		t.Errorf("expected month value to match, got %+v", got)
	}
}

func TestValidateAfterFlow_InvertedRangeIsNotAPayload(t *testing.T) {
	doc := htmldom.MustParse(`<input type="date" value="2026-10-17 2026-10-11">`)
	e := New(nil)

	got := e.ValidateAfterFlow(entity.ValidationResult{},
		entity.DateRange{Start: day(2026, time.October, 17), End: day(2026, time.October, 11)},
		entity.GranularityDay, doc)
	if !got.InputValueUpdated {
		t.Fatalf("both dates are present, got %+v", got)
	}
	if got.PayloadCorrect {
		t.Error("end before start must not be a correct payload")
	}
}

func TestValidateAfterFlow_NilScope(t *testing.T) {
	e := New(nil)
	got := e.ValidateAfterFlow(entity.ValidationResult{Value: "2026-10-17"},
		single(day(2026, time.October, 17)), entity.GranularityDay, nil)
	if !got.InputValueUpdated {
		t.Errorf("expected fallback to reported value, got %+v", got)
	}
}

func TestValidateAfterFlow_NearMissValuesDisagree(t *testing.T) {
	e := New(nil)
	cases := []struct {
		value       string
		want        time.Time
		granularity entity.Granularity
	}{
		{"11/2/2026", day(2026, time.January, 2), entity.GranularityDay},
		{"12 Jan 2026", day(2026, time.January, 2), entity.GranularityDay},
		{"12 January 2026", day(2026, time.January, 2), entity.GranularityDay},
		{"Jan 12, 2026", day(2026, time.January, 1), entity.GranularityDay},
		{"2026-01-12", day(2026, time.January, 1), entity.GranularityDay},
		{"11/2026", day(2026, time.January, 15), entity.GranularityMonth},
		{"2026-11", day(2026, time.January, 15), entity.GranularityMonth},
	}
	for _, tc := range cases {
		doc := htmldom.MustParse(`<input class="flatpickr-input" value="` + tc.value + `">`)
		got := e.ValidateAfterFlow(entity.ValidationResult{Valid: true, Value: tc.value},
			single(tc.want), tc.granularity, doc)
		if got.InputValueUpdated {
			t.Errorf("%q must not match %s: %+v", tc.value, tc.want.Format(isoDay), got)
		}
	}
}

func TestValidateAfterFlow_ParsesDisplayFormats(t *testing.T) {
	e := New(nil)
	cases := []struct {
		value string
		want  entity.DateRange
	}{
		{"1/2/2026", single(day(2026, time.January, 2))},
		{"2 Jan 2026", single(day(2026, time.January, 2))},
		{"January 2, 2026", single(day(2026, time.January, 2))},
		{"2026-10-17T09:30", single(day(2026, time.October, 17))},
		{"10/17/2026 09:30 AM", single(day(2026, time.October, 17))},
		{"Oct 11, 2026 - Oct 17, 2026", entity.DateRange{Start: day(2026, time.October, 11), End: day(2026, time.October, 17)}},
		{"09/27/2026 – 10/03/2026", entity.DateRange{Start: day(2026, time.September, 27), End: day(2026, time.October, 3)}},
		{"11.10.2026,17.10.2026", entity.DateRange{Start: day(2026, time.October, 11), End: day(2026, time.October, 17)}},
	}
	for _, tc := range cases {
		doc := htmldom.MustParse(`<input class="flatpickr-input" value="` + tc.value + `">`)
		got := e.ValidateAfterFlow(entity.ValidationResult{Valid: true}, tc.want, entity.GranularityDay, doc)
		if !got.InputValueUpdated {
			t.Errorf("%q should match %s..%s: %+v", tc.value,
				tc.want.Start.Format(isoDay), tc.want.End.Format(isoDay), got)
		}
	}
}

func TestValidateAfterFlow_RangeEndMustBePresent(t *testing.T) {
	doc := htmldom.MustParse(`<input class="flatpickr-input" value="2026-10-11 to 2026-10-27">`)
	e := New(nil)

	got := e.ValidateAfterFlow(entity.ValidationResult{Valid: true},
		entity.DateRange{Start: day(2026, time.October, 11), End: day(2026, time.October, 17)},
		entity.GranularityDay, doc)
	if got.InputValueUpdated {
		t.Fatalf("2026-10-27 is not the expected end, got %+v", got)
	}
	if !strings.Contains(got.Message, "2026-10-17") {
		t.Errorf("message should name the missing end, got %q", got.Message)
	}
}
