package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownStage is returned when a stage name is not part of the template.
	ErrUnknownStage = errors.New("unknown stage")
	// ErrInvalidTemplate is returned when a template definition is malformed.
	ErrInvalidTemplate = errors.New("invalid stage template")
)

// StageDefinition describes one checkpoint of the template.
type StageDefinition struct {
	// Name identifies the stage and doubles as the shipment status value.
	Name string `json:"name" yaml:"name"`
	// Glyph is a decorative symbol shown next to the stage.
	Glyph string `json:"glyph" yaml:"glyph"`
}

// Template is the fixed, ordered catalog of stages every shipment is built from.
// A Template is immutable once created and safe for concurrent use.
type Template struct {
	definitions []StageDefinition
	index       map[string]int
}

// DefaultStageDefinitions returns the canonical stages used when no template file is configured.
func DefaultStageDefinitions() []StageDefinition {
	return []StageDefinition{
		{Name: "Received at China Warehouse", Glyph: "📦"},
		{Name: "On the way to Airport", Glyph: "🚚"},
		{Name: "Departed by Air", Glyph: "✈️"},
		{Name: "Arrived in BD Airport", Glyph: "🛬"},
		{Name: "Customs Clearance", Glyph: "🛃"},
		{Name: "In Delivery Process", Glyph: "🏍️"},
		{Name: "Delivered", Glyph: "🏠"},
	}
}

// DefaultTemplate returns a Template over DefaultStageDefinitions.
func DefaultTemplate() *Template {
	t, err := NewTemplate(DefaultStageDefinitions()...)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTemplate builds a Template from the given ordered definitions.
// Names must be non-empty and unique.
func NewTemplate(defs ...StageDefinition) (*Template, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: at least one stage is required", ErrInvalidTemplate)
	}

	t := &Template{
		definitions: make([]StageDefinition, 0, len(defs)),
		index:       make(map[string]int, len(defs)),
	}

	for i, def := range defs {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: stage %d has an empty name", ErrInvalidTemplate, i)
		}
		if _, exists := t.index[name]; exists {
			return nil, fmt.Errorf("%w: duplicate stage %q", ErrInvalidTemplate, name)
		}
		t.index[name] = i
		t.definitions = append(t.definitions, StageDefinition{Name: name, Glyph: def.Glyph})
	}

	return t, nil
}

// Len returns the number of stages in the template.
func (t *Template) Len() int {
	return len(t.definitions)
}

// Names returns the stage names in template order.
func (t *Template) Names() []string {
	names := make([]string, len(t.definitions))
	for i, def := range t.definitions {
		names[i] = def.Name
	}
	return names
}

// Definitions returns a copy of the ordered stage definitions.
func (t *Template) Definitions() []StageDefinition {
	defs := make([]StageDefinition, len(t.definitions))
	copy(defs, t.definitions)
	return defs
}

// IndexOf returns the position of the named stage.
func (t *Template) IndexOf(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownStage, name)
	}
	return i, nil
}

// GlyphFor returns the display glyph of the named stage.
func (t *Template) GlyphFor(name string) (string, error) {
	i, err := t.IndexOf(name)
	if err != nil {
		return "", err
	}
	return t.definitions[i].Glyph, nil
}

// Contains reports whether name is a stage of the template.
func (t *Template) Contains(name string) bool {
	_, ok := t.index[name]
	return ok
}
