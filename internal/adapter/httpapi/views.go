package httpapi

import (
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/catalog"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

type pickerSummary struct {
	PickerType entity.PickerType       `json:"picker_type"`
	Library    string                  `json:"library"`
	URL        string                  `json:"url,omitempty"`
	Scenarios  []entity.BaseScenarioID `json:"supported_base_scenarios"`
	Open       string                  `json:"open"`
	SetDate    string                  `json:"set_date"`
	Confirm    string                  `json:"confirm"`
	Validate   string                  `json:"validate"`
}

type strategyView struct {
	Kind   string `json:"kind"`
	Params any    `json:"params"`
}

type pickerDetail struct {
	pickerSummary
	Detection  catalog.DetectionHeuristics `json:"detection"`
	Strategies struct {
		Open     strategyView `json:"open"`
		SetDate  strategyView `json:"set_date"`
		Confirm  strategyView `json:"confirm"`
		Validate strategyView `json:"validate"`
	} `json:"strategies"`
	Fallbacks struct {
		Open    []strategyView `json:"open"`
		SetDate []strategyView `json:"set_date"`
		Confirm []strategyView `json:"confirm"`
	} `json:"fallbacks"`
	Notes string `json:"notes,omitempty"`
}

func summarize(cfg catalog.PickerConfig) pickerSummary {
	return pickerSummary{
		PickerType: cfg.PickerType,
		Library:    cfg.Documentation.Library,
		URL:        cfg.Documentation.URL,
		Scenarios:  cfg.SupportedBaseScenarios,
		Open:       string(cfg.Open.Kind()),
		SetDate:    string(cfg.SetDate.Kind()),
		Confirm:    string(cfg.Confirm.Kind()),
		Validate:   string(cfg.Validate.Kind()),
	}
}

func describe(cfg catalog.PickerConfig) pickerDetail {
	d := pickerDetail{
		pickerSummary: summarize(cfg),
		Detection:     cfg.Detection,
		Notes:         cfg.Documentation.Notes,
	}
	d.Strategies.Open = strategyView{string(cfg.Open.Kind()), cfg.Open}
	d.Strategies.SetDate = strategyView{string(cfg.SetDate.Kind()), cfg.SetDate}
	d.Strategies.Confirm = strategyView{string(cfg.Confirm.Kind()), cfg.Confirm}
	d.Strategies.Validate = strategyView{string(cfg.Validate.Kind()), cfg.Validate}

	d.Fallbacks.Open = []strategyView{}
	for _, s := range cfg.Fallbacks.Open {
		d.Fallbacks.Open = append(d.Fallbacks.Open, strategyView{string(s.Kind()), s})
	}
	d.Fallbacks.SetDate = []strategyView{}
	for _, s := range cfg.Fallbacks.SetDate {
		d.Fallbacks.SetDate = append(d.Fallbacks.SetDate, strategyView{string(s.Kind()), s})
	}
	d.Fallbacks.Confirm = []strategyView{}
	for _, s := range cfg.Fallbacks.Confirm {
		d.Fallbacks.Confirm = append(d.Fallbacks.Confirm, strategyView{string(s.Kind()), s})
	}
	return d
}

func viewDetection(d entity.DetectionResult) detectionView {
	v := detectionView{
		PickerType: d.PickerType,
		Confidence: d.Confidence,
		HasPanel:   d.Panel != nil,
	}
	if d.Root != nil {
		v.RootKind = d.Root.Kind().String()
		v.RootID = d.Root.ID()
	}
	if d.Trigger != nil {
		v.Trigger = d.Trigger.TagName()
	}
	return v
}
