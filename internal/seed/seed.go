// Package seed loads business-process fixtures from YAML.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Tleuberdina/bot-project/internal/domain"
)

//go:embed sample_processes.yaml
var sampleYAML []byte

type fixture struct {
	Processes []processDef `yaml:"processes"`
}

type processDef struct {
	Name        string   `yaml:"name"`
	Responsible string   `yaml:"responsible"`
	Frequency   string   `yaml:"frequency"`
	Deadline    string   `yaml:"deadline"`
	Reminders   []string `yaml:"reminders"`
}

// Replacer is the storage operation seeding needs.
type Replacer interface {
	ReplaceProcesses(ctx context.Context, ps []domain.Process) error
}

// Sample returns the built-in sample processes.
func Sample() ([]domain.Process, error) {
	return Parse(sampleYAML)
}

// LoadFile reads processes from a YAML file with the same layout as the
// built-in sample.
func LoadFile(path string) ([]domain.Process, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a fixture document. Every entry needs exactly two reminders.
func Parse(data []byte) ([]domain.Process, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	out := make([]domain.Process, 0, len(f.Processes))
	for i, d := range f.Processes {
		if d.Name == "" || d.Responsible == "" {
			return nil, fmt.Errorf("process #%d: name and responsible are required", i+1)
		}
		if len(d.Reminders) != 2 {
			return nil, fmt.Errorf("process %q: want 2 reminders, got %d", d.Name, len(d.Reminders))
		}
		out = append(out, domain.Process{
			Name:         d.Name,
			Responsible:  d.Responsible,
			Frequency:    d.Frequency,
			DeadlineTime: d.Deadline,
			Reminder1:    d.Reminders[0],
			Reminder2:    d.Reminders[1],
		})
	}
	return out, nil
}

// Apply replaces all stored processes with ps and returns how many were written.
func Apply(ctx context.Context, r Replacer, ps []domain.Process) (int, error) {
	if err := r.ReplaceProcesses(ctx, ps); err != nil {
		return 0, err
	}
	return len(ps), nil
}
