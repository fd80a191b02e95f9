package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidStatus is returned when a requested status is not a stage of the template.
	// It wraps ErrUnknownStage.
	ErrInvalidStatus = fmt.Errorf("invalid status: %w", ErrUnknownStage)
	// ErrEmptySelection is returned when a bulk update names no shipments.
	ErrEmptySelection = errors.New("no shipments selected")
	// ErrBrokenPrefix is returned when completed stages do not form a contiguous prefix.
	ErrBrokenPrefix = errors.New("completed stages do not form a prefix")
	// ErrStatusMismatch is returned when the status disagrees with the current stage.
	ErrStatusMismatch = errors.New("status does not match current stage")
)

// Stage is one entry of a shipment's stage list.
type Stage struct {
	// Name is the stage name, taken from the template.
	Name string `json:"name"`
	// Glyph is the decorative symbol of the stage.
	Glyph string `json:"glyph"`
	// Done reports whether the shipment has reached this stage.
	Done bool `json:"done"`
}

// DeriveCurrentIndex returns the index of the last completed stage, or -1 when none is done.
func DeriveCurrentIndex(stages []Stage) int {
	for i := len(stages) - 1; i >= 0; i-- {
		if stages[i].Done {
			return i
		}
	}
	return -1
}

// ApplyStatus builds a fresh stage list where every stage up to and including
// target is done and every later stage is not.
func ApplyStatus(t *Template, target string) ([]Stage, error) {
	idx, ok := t.index[target]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	stages := make([]Stage, len(t.definitions))
	for i, def := range t.definitions {
		stages[i] = Stage{
			Name:  def.Name,
			Glyph: def.Glyph,
			Done:  i <= idx,
		}
	}
	return stages, nil
}

// CheckStages verifies the done-prefix invariant and that status names the current stage.
// A shipment with no completed stage must have an empty status.
func CheckStages(stages []Stage, status string) error {
	current := DeriveCurrentIndex(stages)
	for i := 0; i < current; i++ {
		if !stages[i].Done {
			return fmt.Errorf("%w: stage %d is pending before completed stage %d", ErrBrokenPrefix, i, current)
		}
	}

	want := ""
	if current >= 0 {
		want = stages[current].Name
	}
	if status != want {
		return fmt.Errorf("%w: status %q, current stage %q", ErrStatusMismatch, status, want)
	}
	return nil
}

// Progression applies status transitions against an injected template.
// It holds no mutable state and is safe for concurrent use.
type Progression struct {
	template *Template
	now      func() time.Time
}

// NewProgression creates a Progression over the given template.
func NewProgression(t *Template) *Progression {
	return &Progression{
		template: t,
		now:      time.Now,
	}
}

// WithClock returns a copy of p that reads the current time from now.
func (p *Progression) WithClock(now func() time.Time) *Progression {
	return &Progression{
		template: p.template,
		now:      now,
	}
}

// Template returns the template the progression works against.
func (p *Progression) Template() *Template {
	return p.template
}

// Now returns the progression clock's current time in UTC.
func (p *Progression) Now() time.Time {
	return p.now().UTC()
}

// ApplyStatus builds the stage list for target using the progression's template.
func (p *Progression) ApplyStatus(target string) ([]Stage, error) {
	return ApplyStatus(p.template, target)
}

// Transition returns a copy of s moved to target. s itself is not modified.
func (p *Progression) Transition(s Shipment, target string) (Shipment, error) {
	stages, err := p.ApplyStatus(target)
	if err != nil {
		return Shipment{}, err
	}

	s.Stages = stages
	s.Status = target
	s.LastUpdated = p.Now()
	return s, nil
}

// ValidateBulk checks a bulk selection and its target without touching any
// shipment: the selection must be non-empty and target a template stage.
func (p *Progression) ValidateBulk(ids []string, target string) error {
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	if !p.template.Contains(target) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	return nil
}

// ApplyBulkStatus moves every shipment whose ID is in ids to target.
//
// The first result is a new collection in the original order where selected
// shipments carry a fresh stage list and unselected ones are copied untouched.
// The second result holds only the updated shipments. The input slice is never
// modified and nothing is applied when validation fails.
func (p *Progression) ApplyBulkStatus(shipments []Shipment, ids []string, target string) ([]Shipment, []Shipment, error) {
	if err := p.ValidateBulk(ids, target); err != nil {
		return nil, nil, err
	}

	stages, err := p.ApplyStatus(target)
	if err != nil {
		return nil, nil, err
	}

	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	now := p.Now()
	all := make([]Shipment, len(shipments))
	updated := make([]Shipment, 0, len(ids))

	for i, s := range shipments {
		if _, ok := selected[s.ID]; !ok {
			all[i] = s
			continue
		}

		s.Stages = make([]Stage, len(stages))
		copy(s.Stages, stages)
		s.Status = target
		s.LastUpdated = now

		all[i] = s
		updated = append(updated, s)
	}

	return all, updated, nil
}
