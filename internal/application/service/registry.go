package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/output"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/catalog"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

var (
	ErrElementNotFound = errors.New("element not found")
	ErrNoStrategy      = errors.New("no strategy succeeded")
	ErrUnknownPicker   = errors.New("picker type not in catalog")
	// ErrMonthNotShown is an ErrElementNotFound: the calendar displays another month.
	ErrMonthNotShown   = fmt.Errorf("%w: month not displayed", ErrElementNotFound)
)

const (
	selectorConfidence  = 0.9
	classSeedConfidence = 0.6
	dataSeedConfidence  = 0.5
	refineBonus         = 0.05
	missingPenalty      = 0.1
	roleBonus           = 0.02
	globalBonus         = 0.05
)

var _ output.PickerRegistry = (*CapabilityRegistry)(nil)

// CapabilityRegistry finds picker instances and drives them through the
// open, set-date, confirm, validate protocol using catalog strategies.
// It holds no per-run state and is safe to share.
type CapabilityRegistry struct {
	catalog *catalog.Catalog
}

func NewCapabilityRegistry(c *catalog.Catalog) *CapabilityRegistry {
	if c == nil {
		c = catalog.Default()
	}
	return &CapabilityRegistry{catalog: c}
}

func (r *CapabilityRegistry) Catalog() *catalog.Catalog {
	return r.catalog
}

// Detect returns the highest-confidence match across every searchable root.
// Equal confidence keeps the earlier catalog entry, then the earlier root.
func (r *CapabilityRegistry) Detect(scope dom.Root) (entity.DetectionResult, bool) {
	var best entity.DetectionResult
	found := false
	for _, m := range r.matches(scope) {
		if !found || m.Confidence > best.Confidence {
			best, found = m, true
		}
	}
	return best, found
}

// DetectAll returns every match ordered by confidence, ties in catalog order.
func (r *CapabilityRegistry) DetectAll(scope dom.Root) []entity.DetectionResult {
	all := r.matches(scope)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Confidence > all[j].Confidence
	})
	return all
}

func (r *CapabilityRegistry) matches(scope dom.Root) []entity.DetectionResult {
	roots := SearchableRoots(scope)
	var out []entity.DetectionResult
	for _, cfg := range r.catalog.Entries() {
		for _, root := range roots {
			if m, ok := score(cfg, root); ok {
				out = append(out, m)
			}
		}
	}
	return out
}

func score(cfg catalog.PickerConfig, root dom.Root) (entity.DetectionResult, bool) {
	h := cfg.Detection
	var trigger dom.Element
	confidence := 0.0

	for _, sel := range h.Selectors {
		if el := firstIn(root, sel); el != nil {
			trigger, confidence = el, selectorConfidence
			break
		}
	}
	for _, p := range h.ClassPatterns {
		el := firstIn(root, `[class*="`+p+`"]`)
		switch {
		case el != nil && trigger != nil:
			confidence += refineBonus
		case el != nil:
			trigger, confidence = el, classSeedConfidence
		case trigger != nil:
			confidence -= missingPenalty
		}
	}
	for _, a := range h.DataAttributes {
		el := firstIn(root, "["+a+"]")
		switch {
		case el != nil && trigger != nil:
			confidence += refineBonus
		case el != nil:
			trigger, confidence = el, dataSeedConfidence
		case trigger != nil:
			confidence -= missingPenalty
		}
	}
	if trigger == nil {
		return entity.DetectionResult{}, false
	}
	for _, role := range h.AriaRoles {
		if firstIn(root, `[role="`+role+`"]`) != nil {
			confidence += roleBonus
		}
	}
	if h.GlobalCheck != "" && hasGlobal(root, h.GlobalCheck) {
		confidence += globalBonus
	}

	var panel dom.Element
	for _, sel := range h.PanelSelectors {
		if el := firstIn(root, sel); el != nil {
			panel = el
			break
		}
	}

	return entity.DetectionResult{
		PickerType: cfg.PickerType,
		Root:       root,
		Trigger:    trigger,
		Panel:      panel,
		Confidence: clamp(confidence),
	}, true
}

// Open runs the primary open strategy, then each fallback until one dispatches.
func (r *CapabilityRegistry) Open(det entity.DetectionResult) (entity.AppliedStrategy, error) {
	cfg, err := r.config(det)
	if err != nil {
		return entity.AppliedStrategy{}, err
	}
	chain := append([]catalog.OpenStrategy{cfg.Open}, cfg.Fallbacks.Open...)
	return attempt("open", chain, func(s catalog.OpenStrategy) string { return string(s.Kind()) },
		func(s catalog.OpenStrategy) (entity.AppliedStrategy, error) {
			return r.open(det, s)
		})
}

// SetDate selects date, or the range date..end when end is non-nil.
func (r *CapabilityRegistry) SetDate(det entity.DetectionResult, date time.Time, end *time.Time) (entity.AppliedStrategy, error) {
	cfg, err := r.config(det)
	if err != nil {
		return entity.AppliedStrategy{}, err
	}
	chain := append([]catalog.SetDateStrategy{cfg.SetDate}, cfg.Fallbacks.SetDate...)
	return attempt("setDate", chain, func(s catalog.SetDateStrategy) string { return string(s.Kind()) },
		func(s catalog.SetDateStrategy) (entity.AppliedStrategy, error) {
			return r.setDate(det, s, date, end)
		})
}

func (r *CapabilityRegistry) Confirm(det entity.DetectionResult) (entity.AppliedStrategy, error) {
	cfg, err := r.config(det)
	if err != nil {
		return entity.AppliedStrategy{}, err
	}
	chain := append([]catalog.ConfirmStrategy{cfg.Confirm}, cfg.Fallbacks.Confirm...)
	return attempt("confirm", chain, func(s catalog.ConfirmStrategy) string { return string(s.Kind()) },
		func(s catalog.ConfirmStrategy) (entity.AppliedStrategy, error) {
			return r.confirm(det, s)
		})
}

// Validate asks the picker whether a selection is present. A missing element is
// reported as invalid; only adapter failures come back as errors.
func (r *CapabilityRegistry) Validate(det entity.DetectionResult) (entity.ValidationResult, error) {
	cfg, err := r.config(det)
	if err != nil {
		return entity.ValidationResult{}, err
	}
	return r.validate(det, cfg.Validate)
}

func (r *CapabilityRegistry) config(det entity.DetectionResult) (catalog.PickerConfig, error) {
	cfg, ok := r.catalog.Get(det.PickerType)
	if !ok {
		return catalog.PickerConfig{}, fmt.Errorf("%w: %s", ErrUnknownPicker, det.PickerType)
	}
	if det.Root == nil {
		return catalog.PickerConfig{}, fmt.Errorf("detection for %s has no root", det.PickerType)
	}
	return cfg, nil
}

// attempt walks a strategy chain in order. A panicking strategy counts as a
// failed one.
func attempt[S any](step string, chain []S, kind func(S) string, run func(S) (entity.AppliedStrategy, error)) (entity.AppliedStrategy, error) {
	var errs []error
	for i, s := range chain {
		applied, err := guarded(func() (entity.AppliedStrategy, error) { return run(s) })
		if err == nil {
			applied.Fallback = i
			return applied, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", kind(s), err))
	}
	return entity.AppliedStrategy{}, fmt.Errorf("%w for %s: %w", ErrNoStrategy, step, errors.Join(errs...))
}

func guarded(fn func() (entity.AppliedStrategy, error)) (applied entity.AppliedStrategy, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn()
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func firstIn(root dom.Root, selector string) (el dom.Element) {
	defer func() {
		if recover() != nil {
			el = nil
		}
	}()
	found, err := root.QuerySelector(selector)
	if err != nil {
		return nil
	}
	return found
}

func hasGlobal(root dom.Root, name string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	doc := root.Document()
	return doc != nil && doc.HasGlobal(name)
}
