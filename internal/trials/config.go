package trials

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is returned when a generation config cannot be satisfied
var ErrInvalidConfig = errors.New("invalid trial config")

var validate = validator.New()

// MainConfig controls main phase generation
type MainConfig struct {
	NumEntries       int       `yaml:"num_entries" json:"num_entries" validate:"gt=0"`
	HighAcc          float64   `yaml:"high_acc" json:"high_acc" validate:"gte=0,lte=1"`
	LowAcc           float64   `yaml:"low_acc" json:"low_acc" validate:"gte=0,lte=1"`
	LowAccCount      int       `yaml:"low_acc_count" json:"low_acc_count" validate:"gte=0,ltefield=NumEntries"`
	TrainingPrefix   int       `yaml:"training_prefix" json:"training_prefix" validate:"gte=0"`
	BreakInterval    int       `yaml:"break_interval" json:"break_interval" validate:"gt=0"`
	DivergenceValues []float64 `yaml:"divergence_values,omitempty" json:"divergence_values,omitempty"`
}

// DefaultMainConfig returns the study's main phase settings
func DefaultMainConfig() MainConfig {
	return MainConfig{
		NumEntries:     200,
		HighAcc:        0.93,
		LowAcc:         0.4,
		LowAccCount:    14,
		TrainingPrefix: 10,
		BreakInterval:  50,
	}
}

// Validate checks the config bounds
func (c MainConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.TrainingPrefix+c.LowAccCount > c.NumEntries {
		return fmt.Errorf("%w: training prefix (%d) plus low accuracy trials (%d) exceed %d entries",
			ErrInvalidConfig, c.TrainingPrefix, c.LowAccCount, c.NumEntries)
	}
	return nil
}

// TestConfig controls test (calibration) phase generation
type TestConfig struct {
	NumEntries int `yaml:"num_entries" json:"num_entries" validate:"gt=0"`
}

// DefaultTestConfig returns the study's calibration settings
func DefaultTestConfig() TestConfig {
	return TestConfig{NumEntries: 20}
}

// Validate checks the config bounds
func (c TestConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
