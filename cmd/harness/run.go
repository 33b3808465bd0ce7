package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/input"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/di"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/screenshot"
)

const dateLayout = "2006-01-02"

type runOptions struct {
	page    pageSource
	start   string
	end     string
	json    bool
	verbose bool
	onStep  func(entity.StepLog)
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run <scenario-id>",
	Short: "Run one scenario and print its result",
	Long: "Runs a scenario such as DS1-FLATPICKR against a page. Without --html or --url " +
		"the harness page for the scenario under HARNESS_BASE_URL is opened.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := newContainer(ctx, runOpts.page.needsBrowser())
		if err != nil {
			return err
		}
		defer c.Close()

		out := runOpts
		if out.verbose && !out.json {
			w := cmd.ErrOrStderr()
			out.onStep = func(l entity.StepLog) {
				outcome := color.GreenString("%-7s", l.Outcome)
				if l.Outcome != entity.OutcomeSuccess {
					outcome = color.RedString("%-7s", l.Outcome)
				}
				fmt.Fprintf(w, "  %-9s %s %s\n", l.Step, outcome, l.Detail)
			}
		}

		res, shot, err := runScenario(ctx, c, args[0], out)
		if err != nil {
			return err
		}
		if err := printResult(cmd.OutOrStdout(), res, shot, runOpts.json); err != nil {
			return err
		}
		if !res.Success {
			return errScenarioFailed
		}
		return nil
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runOpts.page.html, "html", "", "dry run against an HTML file")
	f.StringVar(&runOpts.page.url, "url", "", "page to open instead of the harness page")
	f.StringVar(&runOpts.start, "start", "", "start date (YYYY-MM-DD), defaults to the scenario window")
	f.StringVar(&runOpts.end, "end", "", "end date (YYYY-MM-DD) for range scenarios")
	f.BoolVar(&runOpts.json, "json", false, "print the result as JSON")
	f.BoolVarP(&runOpts.verbose, "verbose", "v", false, "print each step as it finishes")
}

// runScenario loads the page, runs the scenario and, on failure, stores a
// screenshot and snapshot when a browser and a screenshot dir are configured.
func runScenario(ctx context.Context, c *di.Container, id string, o runOptions) (entity.ExecutionResult, screenshot.Artifacts, error) {
	opts := input.RunOptions{OnStep: o.onStep}
	var err error
	if opts.Start, err = parseDate("start", o.start); err != nil {
		return entity.ExecutionResult{}, screenshot.Artifacts{}, err
	}
	if opts.End, err = parseDate("end", o.end); err != nil {
		return entity.ExecutionResult{}, screenshot.Artifacts{}, err
	}

	doc, err := o.page.load(ctx, c, c.Config.ScenarioURL(id))
	if err != nil {
		return entity.ExecutionResult{}, screenshot.Artifacts{}, err
	}
	opts.Scope = doc

	res := c.Runner.Run(id, opts)
	if res.Success {
		return res, screenshot.Artifacts{}, nil
	}
	return res, c.Screenshots.Capture(ctx, c.Browser, res.RunID, c.Logger), nil
}

func parseDate(name, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &t, nil
}

func printResult(w io.Writer, res entity.ExecutionResult, art screenshot.Artifacts, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			entity.ExecutionResult
			screenshot.Artifacts
		}{res, art})
	}

	status := color.GreenString("success")
	if !res.Success {
		status = color.RedString("%s", res.FailureReason)
	}
	fmt.Fprintf(w, "%s  %s  run %s\n", res.ScenarioID, status, res.RunID)
	if res.Dates != nil {
		fmt.Fprintf(w, "dates: %s .. %s\n", res.Dates.Start.Format(dateLayout), res.Dates.End.Format(dateLayout))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tOUTCOME\tDETAIL")
	for _, l := range res.Logs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Step, l.Outcome, l.Detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if v := res.Validation; v != nil {
		fmt.Fprintf(w, "post-flow: input=%t model=%t payload=%t", v.InputValueUpdated, v.ModelUpdated, v.PayloadCorrect)
		if v.Message != "" {
			fmt.Fprintf(w, " (%s)", v.Message)
		}
		fmt.Fprintln(w)
	}
	if art.Screenshot != "" {
		fmt.Fprintf(w, "screenshot: %s\n", art.Screenshot)
	}
	if art.Snapshot != "" {
		fmt.Fprintf(w, "snapshot: %s\n", art.Snapshot)
	}
	return nil
}
