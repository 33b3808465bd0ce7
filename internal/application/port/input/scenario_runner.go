package input

import (
	"time"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

// RunOptions parameterises one scenario run.
type RunOptions struct {
	// Scope is where detection starts. Its document's roots are all searched.
	Scope dom.Root
	// Start and End override the scenario's default window.
	Start *time.Time
	End   *time.Time
	// OnStep observes each step log as it is produced.
	OnStep func(entity.StepLog)
}

// ScenarioRunner runs one scenario against a page. Run never fails: every
// problem is reported inside the result.
type ScenarioRunner interface {
	Run(scenarioID string, opts RunOptions) entity.ExecutionResult
}
