package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/input"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/di"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/dom/htmldom"
)

type batchOptions struct {
	html        string
	picker      string
	concurrency int
	json        bool
}

var batchOpts = batchOptions{concurrency: 4}

var batchCmd = &cobra.Command{
	Use:   "batch --html <file> [scenario-id...]",
	Short: "Dry-run many scenarios against one HTML file",
	Long: "Parses the file once per scenario and runs the scenarios concurrently in memory. " +
		"Without ids every scenario (or every scenario of --picker) is run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := newContainer(ctx, false)
		if err != nil {
			return err
		}
		defer c.Close()

		results, err := runBatch(ctx, c, args, batchOpts)
		if err != nil {
			return err
		}
		if err := printBatch(cmd.OutOrStdout(), results, batchOpts.json); err != nil {
			return err
		}
		for _, r := range results {
			if !r.Success {
				return errScenarioFailed
			}
		}
		return nil
	},
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchOpts.html, "html", "", "HTML file every scenario runs against")
	f.StringVar(&batchOpts.picker, "picker", "", "only scenarios of this picker type")
	f.IntVarP(&batchOpts.concurrency, "concurrency", "c", batchOpts.concurrency, "scenarios run at once")
	f.BoolVar(&batchOpts.json, "json", false, "print results as JSON")
	_ = batchCmd.MarkFlagRequired("html")
}

// runBatch returns one result per scenario, sorted by scenario id. Each run
// gets its own parsed document.
func runBatch(ctx context.Context, c *di.Container, ids []string, o batchOptions) ([]entity.ExecutionResult, error) {
	data, err := os.ReadFile(o.html)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	markup := string(data)
	if _, err := htmldom.Parse(markup); err != nil {
		return nil, fmt.Errorf("parse %s: %w", o.html, err)
	}

	if len(ids) == 0 {
		for _, m := range c.Scenarios.List() {
			if o.picker == "" || string(m.PickerType) == o.picker {
				ids = append(ids, m.ID)
			}
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no scenarios to run")
	}
	for _, id := range ids {
		if _, ok := c.Scenarios.Lookup(id); !ok {
			return nil, fmt.Errorf("unknown scenario %q", id)
		}
	}

	c.Logger.Info("Batch started", "scenarios", len(ids), "concurrency", o.concurrency)

	results := make([]entity.ExecutionResult, len(ids))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := htmldom.Parse(markup)
			if err != nil {
				return err
			}
			results[i] = c.Runner.Run(id, input.RunOptions{Scope: doc})
			if !results[i].Success {
				failed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	c.Logger.Info("Batch finished", "scenarios", len(ids), "failed", failed.Load())
	sort.Slice(results, func(i, j int) bool { return results[i].ScenarioID < results[j].ScenarioID })
	return results, nil
}

func printBatch(w io.Writer, results []entity.ExecutionResult, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(results)
	}

	passed := 0
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tPICKER\tRESULT\tLAST STEP")
	for _, r := range results {
		status := "success"
		if r.Success {
			passed++
		} else {
			status = string(r.FailureReason)
		}
		last := ""
		if n := len(r.Logs); n > 0 {
			last = string(r.Logs[n-1].Step)
			if d := r.Logs[n-1].Detail; d != "" && !r.Success {
				last += ": " + strings.SplitN(d, "\n", 2)[0]
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ScenarioID, r.PickerType, status, last)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d/%d passed", passed, len(results))
	if passed == len(results) {
		summary = color.GreenString("%s", summary)
	} else {
		summary = color.RedString("%s", summary)
	}
	fmt.Fprintln(w, summary)
	return nil
}
