package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadTemplate parses a world template from YAML bytes. The injected
// collaborators (routine source, appearance factory) are not part of the
// file format and stay nil; callers set them before building a world.
func LoadTemplate(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &tmpl, nil
}

// LoadTemplateFile reads and parses a world template file.
func LoadTemplateFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return LoadTemplate(data)
}
