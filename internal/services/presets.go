package services

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/seniormoment/seniormoment/internal/models"
)

type presetsFile struct {
	Alarms []models.AlarmPreset `yaml:"alarms"`
}

// LoadPresets reads alarm definitions from a YAML file:
//
//	alarms:
//	  - name: tea
//	    duration: 4m
//	    clip: chime
func LoadPresets(path string) ([]models.AlarmPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var f presetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse presets file %s: %w", path, err)
	}
	return f.Alarms, nil
}

// CreateFromPresets creates one alarm per preset. It stops at the first
// invalid preset.
func (s *AlarmService) CreateFromPresets(ctx context.Context, presets []models.AlarmPreset) ([]models.Alarm, error) {
	created := make([]models.Alarm, 0, len(presets))
	for i, p := range presets {
		a, err := s.Create(ctx, CreateAlarmParams{Name: p.Name, Duration: p.Duration, Clip: p.Clip})
		if err != nil {
			return created, fmt.Errorf("preset %d (%s): %w", i, p.Name, err)
		}
		created = append(created, a)
	}
	zap.S().Named("alarm_service").Infow("presets loaded", "count", len(created))
	return created, nil
}
