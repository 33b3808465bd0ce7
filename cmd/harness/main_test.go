package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/di"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/catalog"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/screenshot"
)

func init() {
	color.NoColor = true
}

const flatpickrPage = `<!doctype html>
<html><body>
<form id="booking">
  <label for="when">Date</label>
  <input id="when" class="flatpickr-input" type="text" readonly>
</form>
</body></html>`

func writeHTML(t *testing.T, markup string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(markup), 0o644))
	return path
}

func testContainer(t *testing.T) *di.Container {
	t.Helper()
	c, err := di.NewContainer(context.Background(), di.Config{
		LogDir:  t.TempDir(),
		LogName: "cli-test",
		BaseURL: "http://localhost:5173",
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"run", "detect", "catalog", "scenarios", "serve", "snapshot", "batch"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRunCommand_Flags(t *testing.T) {
	for _, name := range []string{"html", "url", "start", "end", "json", "verbose"} {
		assert.NotNil(t, runCmd.Flags().Lookup(name), "run should have --%s", name)
	}
	assert.Equal(t, "false", serveCmd.Flags().Lookup("no-browser").DefValue)
}

func TestPageSource_NeedsBrowser(t *testing.T) {
	assert.True(t, pageSource{}.needsBrowser())
	assert.True(t, pageSource{url: "http://x"}.needsBrowser())
	assert.False(t, pageSource{html: "page.html"}.needsBrowser())
}

func TestRunScenario_DryRunFromHTML(t *testing.T) {
	c := testContainer(t)

	var steps []entity.StepName
	res, shot, err := runScenario(context.Background(), c, "DS1-FLATPICKR", runOptions{
		page:   pageSource{html: writeHTML(t, flatpickrPage)},
		start:  "2026-04-01",
		onStep: func(l entity.StepLog) { steps = append(steps, l.Step) },
	})

	require.NoError(t, err)
	assert.True(t, res.Success, "logs: %+v", res.Logs)
	assert.Empty(t, shot)
	assert.Len(t, steps, 5)
	require.NotNil(t, res.Dates)
	assert.Equal(t, "2026-04-01", res.Dates.Start.Format(dateLayout))

	var out bytes.Buffer
	require.NoError(t, printResult(&out, res, shot, false))
	assert.Contains(t, out.String(), "DS1-FLATPICKR  success")
	assert.Contains(t, out.String(), "validate")
	assert.Contains(t, out.String(), "post-flow: input=true")
}

func TestRunScenario_BadDate(t *testing.T) {
	c := testContainer(t)

	_, _, err := runScenario(context.Background(), c, "DS1-FLATPICKR", runOptions{
		page:  pageSource{html: writeHTML(t, flatpickrPage)},
		start: "April 1st",
	})
	assert.ErrorContains(t, err, "--start")
}

func TestRunScenario_NoPickerOnPage(t *testing.T) {
	c := testContainer(t)

	res, _, err := runScenario(context.Background(), c, "DS1-FLATPICKR", runOptions{
		page: pageSource{html: writeHTML(t, `<p>plain page</p>`)},
	})

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, entity.FailureDetection, res.FailureReason)

	var out bytes.Buffer
	require.NoError(t, printResult(&out, res, screenshot.Artifacts{}, true))
	assert.Contains(t, out.String(), `"failure_reason": "detection_failed"`)
}

func TestPageSource_LoadWithoutBrowser(t *testing.T) {
	c := testContainer(t)

	_, err := pageSource{url: "http://localhost:1"}.load(context.Background(), c, "")
	assert.ErrorContains(t, err, "no browser")
}

func TestPrintDetections(t *testing.T) {
	c := testContainer(t)
	doc, err := pageSource{html: writeHTML(t, flatpickrPage)}.load(context.Background(), c, "")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printDetections(&out, c.Registry.DetectAll(doc), false))
	assert.Contains(t, out.String(), "FLATPICKR")
	assert.Contains(t, out.String(), "document:")

	out.Reset()
	require.NoError(t, printDetections(&out, nil, false))
	assert.Equal(t, "No date pickers found.\n", out.String())
}

func TestPrintCatalog(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printCatalog(&out, catalog.Default()))

	lines := bytes.Count(out.Bytes(), []byte("\n"))
	assert.Equal(t, catalog.Default().Len()+1, lines)
	assert.Contains(t, out.String(), "NATIVE_DATE")

	out.Reset()
	cfg, ok := catalog.Default().StrategyFor(entity.PickerFlatpickr)
	require.True(t, ok)
	require.NoError(t, printPicker(&out, cfg))
	assert.Contains(t, out.String(), `"kind": "input_value"`)
}

func TestPrintScenarios_Filter(t *testing.T) {
	list := []entity.ScenarioMeta{
		{ID: "DS1-FLATPICKR", PickerType: entity.PickerFlatpickr, BaseScenario: entity.BaseSingleDate},
		{ID: "DS1-ANTD", PickerType: entity.PickerAntd, BaseScenario: entity.BaseSingleDate},
		{ID: "LOGIN", BaseScenario: entity.BaseSingleDate},
	}

	var out bytes.Buffer
	require.NoError(t, printScenarios(&out, list, "ANTD"))
	assert.Contains(t, out.String(), "DS1-ANTD")
	assert.NotContains(t, out.String(), "DS1-FLATPICKR")

	out.Reset()
	require.NoError(t, printScenarios(&out, list, "NOPE"))
	assert.Contains(t, out.String(), "No scenarios found.")
}

func TestWriteSnapshot_ReplaysInDryRun(t *testing.T) {
	live := `<html><head><script src="/app.js"></script></head><body>
<booking-form><template shadowrootmode="open">
  <input class="flatpickr-input" type="text" onfocus="openCalendar()">
</template></booking-form>
</body></html>`

	var buf bytes.Buffer
	require.NoError(t, writeSnapshot(&buf, live))
	assert.NotContains(t, buf.String(), "app.js")
	assert.NotContains(t, buf.String(), "openCalendar")

	c := testContainer(t)
	res, _, err := runScenario(context.Background(), c, "DS1-FLATPICKR", runOptions{
		page:  pageSource{html: writeHTML(t, buf.String())},
		start: "2026-04-01",
	})
	require.NoError(t, err)
	assert.True(t, res.Success, "logs: %+v", res.Logs)
}

func TestRunBatch(t *testing.T) {
	c := testContainer(t)
	page := writeHTML(t, flatpickrPage)

	results, err := runBatch(context.Background(), c, []string{"DS1-NATIVE_DATE", "DS1-FLATPICKR"}, batchOptions{html: page, concurrency: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "DS1-FLATPICKR", results[0].ScenarioID)
	assert.True(t, results[0].Success, "logs: %+v", results[0].Logs)
	assert.Equal(t, "DS1-NATIVE_DATE", results[1].ScenarioID)
	assert.Equal(t, entity.FailureDetection, results[1].FailureReason)

	var out bytes.Buffer
	require.NoError(t, printBatch(&out, results, false))
	assert.Contains(t, out.String(), "1/2 passed")
	assert.Contains(t, out.String(), "detection_failed")
}

func TestRunBatch_PickerFilter(t *testing.T) {
	c := testContainer(t)

	results, err := runBatch(context.Background(), c, nil, batchOptions{html: writeHTML(t, flatpickrPage), picker: "FLATPICKR"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		meta, ok := c.Scenarios.Lookup(r.ScenarioID)
		require.True(t, ok)
		assert.Equal(t, entity.PickerFlatpickr, meta.PickerType)
	}

	_, err = runBatch(context.Background(), c, []string{"DS1-NOPE"}, batchOptions{html: writeHTML(t, flatpickrPage)})
	assert.ErrorContains(t, err, "unknown scenario")

	_, err = runBatch(context.Background(), c, nil, batchOptions{html: writeHTML(t, flatpickrPage), picker: "NOPE"})
	assert.ErrorContains(t, err, "no scenarios")
}
