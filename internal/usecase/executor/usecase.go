package executor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/input"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/output"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/scenario"
)

var _ input.ScenarioRunner = (*UseCase)(nil)

// PostFlowValidator corroborates a flow the picker itself reported as valid.
type PostFlowValidator interface {
	ValidateAfterFlow(reported entity.ValidationResult, expected entity.DateRange, granularity entity.Granularity, scope dom.Root) entity.PostFlowResult
}

type UseCase struct {
	registry  output.PickerRegistry
	scenarios output.ScenarioSource
	postFlow  PostFlowValidator
	logger    output.LoggerPort
	now       func() time.Time
}

type Option func(*UseCase)

// WithClock fixes "today" for default date windows.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

func New(
	registry output.PickerRegistry,
	scenarios output.ScenarioSource,
	postFlow PostFlowValidator,
	logger output.LoggerPort,
	opts ...Option,
) *UseCase {
	if logger == nil {
		logger = output.Discard
	}
	uc := &UseCase{
		registry:  registry,
		scenarios: scenarios,
		postFlow:  postFlow,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// run holds the state of one scenario run.
type run struct {
	uc     *UseCase
	opts   input.RunOptions
	result entity.ExecutionResult
	logger output.LoggerPort
}

// Run executes one scenario in a single fail-fast pass:
// detect, open, setDate, confirm, validate. Every attempted step appends
// exactly one log entry. It never panics.
func (uc *UseCase) Run(scenarioID string, opts input.RunOptions) entity.ExecutionResult {
	r := &run{
		uc:   uc,
		opts: opts,
		result: entity.ExecutionResult{
			RunID:      uuid.NewString(),
			ScenarioID: scenarioID,
			Logs:       []entity.StepLog{},
		},
	}
	r.logger = uc.logger.WithFields(map[string]any{"run_id": r.result.RunID, "scenario": scenarioID})
	r.logger.Info("Scenario run started")

	r.execute()

	if r.result.Success {
		r.logger.Info("Scenario run passed", "picker", r.result.PickerType)
	} else {
		r.logger.Warn("Scenario run failed", "picker", r.result.PickerType, "reason", r.result.FailureReason)
	}
	return r.result
}

func (r *run) execute() {
	meta, behavior, err := r.resolve()
	if err != nil {
		r.fail(entity.StepDetect, entity.FailureDetection, err.Error())
		return
	}
	r.result.PickerType = meta.PickerType
	r.result.BaseScenario = meta.BaseScenario

	dates := r.dates(behavior)
	r.result.Dates = &dates

	if r.opts.Scope == nil {
		r.fail(entity.StepDetect, entity.FailureDetection, "no scope to search")
		return
	}
	var det entity.DetectionResult
	var found bool
	if err := guard(func() error {
		det, found = r.uc.registry.Detect(r.opts.Scope)
		return nil
	}); err != nil {
		r.fail(entity.StepDetect, entity.FailureDetection, err.Error())
		return
	}
	if !found {
		r.fail(entity.StepDetect, entity.FailureDetection, "no picker found in scope")
		return
	}
	if det.PickerType != meta.PickerType {
		r.fail(entity.StepDetect, entity.FailureDetection,
			fmt.Sprintf("detected %s, scenario expects %s", det.PickerType, meta.PickerType))
		return
	}
	r.result.Detection = &det
	r.ok(entity.StepDetect, fmt.Sprintf("%s confidence %.2f in %s root", det.PickerType, det.Confidence, rootKind(det.Root)))

	var end *time.Time
	if behavior.Range {
		end = &dates.End
	}
	steps := []struct {
		name entity.StepName
		run  func() (entity.AppliedStrategy, error)
	}{
		{entity.StepOpen, func() (entity.AppliedStrategy, error) { return r.uc.registry.Open(det) }},
		{entity.StepSetDate, func() (entity.AppliedStrategy, error) { return r.uc.registry.SetDate(det, dates.Start, end) }},
		{entity.StepConfirm, func() (entity.AppliedStrategy, error) { return r.uc.registry.Confirm(det) }},
	}
	for _, step := range steps {
		var applied entity.AppliedStrategy
		err := guard(func() error {
			var err error
			applied, err = step.run()
			return err
		})
		if err != nil {
			r.fail(step.name, entity.FailureInteraction, err.Error())
			return
		}
		r.ok(step.name, applied.String())
	}

	var reported entity.ValidationResult
	if err := guard(func() error {
		var err error
		reported, err = r.uc.registry.Validate(det)
		return err
	}); err != nil {
		r.fail(entity.StepValidate, entity.FailureSilent, err.Error())
		return
	}
	if !reported.Valid {
		r.result.Validation = &entity.PostFlowResult{Message: reported.Detail}
		r.fail(entity.StepValidate, entity.FailureValidation, "picker reports no selection: "+reported.Detail)
		return
	}

	var post entity.PostFlowResult
	if err := guard(func() error {
		post = r.uc.postFlow.ValidateAfterFlow(reported, dates, behavior.Granularity, r.opts.Scope)
		return nil
	}); err != nil {
		r.fail(entity.StepValidate, entity.FailureSilent, err.Error())
		return
	}
	r.result.Validation = &post
	if !post.Agrees() {
		r.fail(entity.StepValidate, entity.FailureValidation, post.Message)
		return
	}
	r.ok(entity.StepValidate, fmt.Sprintf("value %q; %s", reported.Value, post.Message))
	r.result.Success = true
}

func (r *run) resolve() (entity.ScenarioMeta, scenario.Behavior, error) {
	var meta entity.ScenarioMeta
	var found bool
	if err := guard(func() error {
		meta, found = r.uc.scenarios.Lookup(r.result.ScenarioID)
		return nil
	}); err != nil {
		return meta, scenario.Behavior{}, err
	}
	if !found {
		return meta, scenario.Behavior{}, fmt.Errorf("unknown scenario %q", r.result.ScenarioID)
	}
	if !meta.IsPickerSpecific() {
		return meta, scenario.Behavior{}, fmt.Errorf("scenario %q is not picker-specific", r.result.ScenarioID)
	}
	behavior, ok := scenario.Lookup(meta.BaseScenario)
	if !ok {
		return meta, scenario.Behavior{}, fmt.Errorf("%w: %s", scenario.ErrUnknownBaseScenario, meta.BaseScenario)
	}
	return meta, behavior, nil
}

// dates applies caller overrides to the scenario's default target. A
// single-date scenario always has End equal to Start.
func (r *run) dates(b scenario.Behavior) entity.DateRange {
	d := b.Target(b.Window(r.uc.now()))
	if r.opts.Start != nil {
		d.Start = scenario.Day(*r.opts.Start)
	}
	if r.opts.End != nil {
		d.End = scenario.Day(*r.opts.End)
	}
	if !b.Range {
		switch {
		case r.opts.Start != nil:
			d.End = d.Start
		case r.opts.End != nil:
			d.Start = d.End
		}
	}
	return d
}

func (r *run) ok(step entity.StepName, detail string) {
	r.append(step, entity.OutcomeSuccess, detail)
}

func (r *run) fail(step entity.StepName, reason entity.FailureReason, detail string) {
	r.result.Success = false
	r.result.FailureReason = reason
	r.append(step, entity.FailureOutcome(reason), detail)
}

func (r *run) append(step entity.StepName, outcome entity.Outcome, detail string) {
	entry := entity.StepLog{
		Scenario: r.result.ScenarioID,
		Picker:   r.result.PickerType,
		Step:     step,
		Outcome:  outcome,
		Detail:   detail,
		At:       r.uc.now(),
	}
	r.result.Logs = append(r.result.Logs, entry)

	if outcome == entity.OutcomeSuccess {
		r.logger.Info("Step completed", "strategy", step, "outcome", outcome, "detail", detail)
	} else {
		r.logger.Error("Step failed", "strategy", step, "outcome", outcome, "detail", detail)
	}

	if r.opts.OnStep != nil {
		_ = guard(func() error {
			r.opts.OnStep(entry)
			return nil
		})
	}
}

func rootKind(root dom.Root) string {
	if root == nil {
		return "no"
	}
	return root.Kind().String()
}

// guard turns a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn()
}
