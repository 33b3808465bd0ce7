package output

import (
	"time"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

// PickerRegistry detects date pickers and drives them through the
// open, setDate, confirm, validate protocol.
type PickerRegistry interface {
	Detect(scope dom.Root) (entity.DetectionResult, bool)
	DetectAll(scope dom.Root) []entity.DetectionResult

	Open(det entity.DetectionResult) (entity.AppliedStrategy, error)
	SetDate(det entity.DetectionResult, date time.Time, end *time.Time) (entity.AppliedStrategy, error)
	Confirm(det entity.DetectionResult) (entity.AppliedStrategy, error)
	Validate(det entity.DetectionResult) (entity.ValidationResult, error)
}
