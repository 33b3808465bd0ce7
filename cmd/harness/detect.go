package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

var (
	detectPage pageSource
	detectJSON bool
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "List every date picker found on a page",
	Long:  "Scans the page, its open shadow roots and same-origin frames and prints each match ordered by confidence.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		c, err := newContainer(ctx, detectPage.needsBrowser())
		if err != nil {
			return err
		}
		defer c.Close()

		doc, err := detectPage.load(ctx, c, c.Config.BaseURL)
		if err != nil {
			return err
		}
		found := c.Registry.DetectAll(doc)
		c.Logger.Info("Detection finished", "matches", len(found))
		return printDetections(cmd.OutOrStdout(), found, detectJSON)
	},
}

func init() {
	detectCmd.Flags().StringVar(&detectPage.html, "html", "", "scan an HTML file instead of a live page")
	detectCmd.Flags().StringVar(&detectPage.url, "url", "", "page to open, defaults to HARNESS_BASE_URL")
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "print JSON")
}

type detectionRow struct {
	PickerType entity.PickerType `json:"picker_type"`
	Confidence float64           `json:"confidence"`
	Root       string            `json:"root"`
	Trigger    string            `json:"trigger"`
	Panel      bool              `json:"panel"`
}

func printDetections(w io.Writer, found []entity.DetectionResult, asJSON bool) error {
	rows := make([]detectionRow, 0, len(found))
	for _, d := range found {
		row := detectionRow{PickerType: d.PickerType, Confidence: d.Confidence, Panel: d.Panel != nil}
		if d.Root != nil {
			row.Root = d.Root.Kind().String() + ":" + d.Root.ID()
		}
		if d.Trigger != nil {
			row.Trigger = d.Trigger.TagName()
		}
		rows = append(rows, row)
	}

	if asJSON {
		return json.NewEncoder(w).Encode(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "No date pickers found.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PICKER\tCONFIDENCE\tROOT\tTRIGGER\tPANEL")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\t%t\n", r.PickerType, r.Confidence, r.Root, r.Trigger, r.Panel)
	}
	return tw.Flush()
}
