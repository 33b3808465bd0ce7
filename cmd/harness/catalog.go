package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/catalog"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/scenarios"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [picker-type]",
	Short: "Show supported pickers and their strategies",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := catalog.Default()
		if len(args) == 1 {
			cfg, ok := c.StrategyFor(entity.PickerType(strings.ToUpper(args[0])))
			if !ok {
				return fmt.Errorf("unknown picker type %q", args[0])
			}
			return printPicker(cmd.OutOrStdout(), cfg)
		}
		return printCatalog(cmd.OutOrStdout(), c)
	},
}

var scenariosPicker string

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List runnable scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		src, err := scenarios.Load(catalog.Default(), cfg.ScenariosFile)
		if err != nil {
			return err
		}
		return printScenarios(cmd.OutOrStdout(), src.List(), strings.ToUpper(scenariosPicker))
	},
}

func init() {
	scenariosCmd.Flags().StringVar(&scenariosPicker, "picker", "", "only scenarios for this picker type")
}

func printCatalog(w io.Writer, c *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PICKER\tLIBRARY\tOPEN\tSET DATE\tCONFIRM\tVALIDATE\tSCENARIOS")
	for _, p := range c.Entries() {
		bases := make([]string, 0, len(p.SupportedBaseScenarios))
		for _, b := range p.SupportedBaseScenarios {
			bases = append(bases, string(b))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.PickerType, p.Documentation.Library,
			p.Open.Kind(), p.SetDate.Kind(), p.Confirm.Kind(), p.Validate.Kind(),
			strings.Join(bases, ","))
	}
	return tw.Flush()
}

func printPicker(w io.Writer, p catalog.PickerConfig) error {
	view := map[string]any{
		"picker_type":              p.PickerType,
		"documentation":            p.Documentation,
		"detection":                p.Detection,
		"open":                     strategy(p.Open.Kind(), p.Open),
		"set_date":                 strategy(p.SetDate.Kind(), p.SetDate),
		"confirm":                  strategy(p.Confirm.Kind(), p.Confirm),
		"validate":                 strategy(p.Validate.Kind(), p.Validate),
		"supported_base_scenarios": p.SupportedBaseScenarios,
		"fallbacks":                p.Fallbacks,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

func strategy[K ~string](kind K, params any) map[string]any {
	return map[string]any{"kind": kind, "params": params}
}

func printScenarios(w io.Writer, list []entity.ScenarioMeta, picker string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPICKER\tBASE")
	n := 0
	for _, m := range list {
		if picker != "" && string(m.PickerType) != picker {
			continue
		}
		pt := string(m.PickerType)
		if pt == "" {
			pt = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, pt, m.BaseScenario)
		n++
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(w, "No scenarios found.")
	}
	return nil
}
