package entity

import "time"

type FailureReason string

const (
	FailureDetection   FailureReason = "detection_failed"
	FailureInteraction FailureReason = "interaction_failed"
	FailureValidation  FailureReason = "validation_failed"
	FailureSilent      FailureReason = "silent_failure"
)

type StepName string

const (
	StepDetect   StepName = "detect"
	StepOpen     StepName = "open"
	StepSetDate  StepName = "setDate"
	StepConfirm  StepName = "confirm"
	StepValidate StepName = "validate"
)

// Outcome is either OutcomeSuccess or a FailureReason.
type Outcome string

const OutcomeSuccess Outcome = "success"

func FailureOutcome(r FailureReason) Outcome {
	return Outcome(r)
}

type StepLog struct {
	Scenario string     `json:"scenario"`
	Picker   PickerType `json:"picker"`
	Step     StepName   `json:"strategy"`
	Outcome  Outcome    `json:"outcome"`
	Detail   string     `json:"detail,omitempty"`
	At       time.Time  `json:"at"`
}

// PostFlowResult is the DOM-side corroboration of a finished flow.
type PostFlowResult struct {
	InputValueUpdated bool     `json:"input_value_updated"`
	ModelUpdated      bool     `json:"model_updated"`
	PayloadCorrect    bool     `json:"payload_correct"`
	Message           string   `json:"message,omitempty"`
	Payload           *Payload `json:"payload,omitempty"`
}

// Payload is what a form submission would carry.
type Payload struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// Agrees reports whether every check passed.
func (r PostFlowResult) Agrees() bool {
	return r.InputValueUpdated && r.ModelUpdated && r.PayloadCorrect
}

// ExecutionResult is the single output of a scenario run.
type ExecutionResult struct {
	RunID         string           `json:"run_id"`
	ScenarioID    string           `json:"scenario_id"`
	PickerType    PickerType       `json:"picker_type,omitempty"`
	BaseScenario  BaseScenarioID   `json:"base_scenario,omitempty"`
	Success       bool             `json:"success"`
	FailureReason FailureReason    `json:"failure_reason,omitempty"`
	Logs          []StepLog        `json:"logs"`
	Detection     *DetectionResult `json:"-"`
	Validation    *PostFlowResult  `json:"validation,omitempty"`
	Dates         *DateRange       `json:"dates,omitempty"`
}
