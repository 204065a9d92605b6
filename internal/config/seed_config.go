package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// FieldSettingOverride adjusts one catalog default before the first seed.
type FieldSettingOverride struct {
	FieldName    string `yaml:"fieldName"`
	Label        string `yaml:"label"`
	Description  string `yaml:"description"`
	IsVisible    *bool  `yaml:"isVisible"`
	IsRequired   *bool  `yaml:"isRequired"`
	DisplayOrder *int   `yaml:"displayOrder"`
}

// FieldSettingsYAML represents the structure of a field settings seed file.
type FieldSettingsYAML struct {
	Fields []FieldSettingOverride `yaml:"fields"`
}

// LoadFieldSettingsSeed returns the catalog defaults with the overrides in path applied.
// An empty path returns the defaults unchanged.
func LoadFieldSettingsSeed(path string) ([]domain.ProfileFieldSetting, error) {
	settings := domain.DefaultFieldSettings()
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("op=config.LoadFieldSettingsSeed: %w", err)
	}
	var doc FieldSettingsYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("op=config.LoadFieldSettingsSeed: parse %s: %w", path, err)
	}

	index := make(map[string]int, len(settings))
	for i, s := range settings {
		index[s.FieldName] = i
	}
	for _, o := range doc.Fields {
		i, ok := index[o.FieldName]
		if !ok {
			return nil, fmt.Errorf("op=config.LoadFieldSettingsSeed: %w: unknown field %q", domain.ErrInvalidArgument, o.FieldName)
		}
		s := &settings[i]
		if o.Label != "" {
			s.Label = o.Label
		}
		if o.Description != "" {
			s.Description = o.Description
		}
		if o.DisplayOrder != nil {
			s.DisplayOrder = *o.DisplayOrder
		}
		visible, required := s.IsVisible, s.IsRequired
		if o.IsVisible != nil {
			visible = *o.IsVisible
		}
		if o.IsRequired != nil {
			required = *o.IsRequired
		}
		s.Apply(visible, required)
	}
	return settings, nil
}
