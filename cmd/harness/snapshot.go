package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/snapshot"
)

var (
	snapshotURL string
	snapshotOut string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [scenario-id]",
	Short: "Save a live page as HTML that detect and run --html can replay",
	Long: "Opens a page in the browser, serializes it with its open shadow roots and strips " +
		"scripts and handlers. With a scenario id the harness page for that scenario is used.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := newContainer(ctx, true)
		if err != nil {
			return err
		}
		defer c.Close()

		target := snapshotURL
		if target == "" && len(args) == 1 {
			target = c.Config.ScenarioURL(args[0])
		}
		if _, err := (pageSource{url: target}).load(ctx, c, c.Config.BaseURL); err != nil {
			return err
		}
		markup, err := c.Browser.HTML(ctx)
		if err != nil {
			return fmt.Errorf("serialize page: %w", err)
		}

		if snapshotOut == "" {
			return writeSnapshot(cmd.OutOrStdout(), markup)
		}
		f, err := os.Create(snapshotOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := writeSnapshot(f, markup); err != nil {
			return err
		}
		c.Logger.Info("Snapshot saved", "path", snapshotOut)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotURL, "url", "", "page to open instead of the harness page")
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "", "write to a file instead of stdout")
}

func writeSnapshot(w io.Writer, markup string) error {
	_, err := io.WriteString(w, snapshot.Clean(markup, nil))
	return err
}
