package adapters

import (
	"fmt"
	"os"

	"cargo-tracker/internal/features/shipments/domain"

	"gopkg.in/yaml.v3"
)

// templateFile is the on-disk layout of a stage template:
//
//	stages:
//	  - name: Received
//	    glyph: "📦"
type templateFile struct {
	Stages []domain.StageDefinition `yaml:"stages"`
}

// LoadTemplate reads a stage template from a YAML file.
// An empty path returns the built-in default template.
func LoadTemplate(path string) (*domain.Template, error) {
	if path == "" {
		return domain.DefaultTemplate(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage template: %w", err)
	}

	return ParseTemplate(data)
}

// ParseTemplate decodes a YAML stage template.
func ParseTemplate(data []byte) (*domain.Template, error) {
	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse stage template: %w", err)
	}

	return domain.NewTemplate(file.Stages...)
}
