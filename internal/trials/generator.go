// Package trials generates trial configuration files for the experiment runner.
//
// Main phase trials carry an AI accuracy drawn from an exact schedule (a
// high accuracy training prefix followed by a shuffled mix of high and low
// values). Every BreakInterval-th trial except the last one is a neutral
// break trial; all others show a random orange or blue stimulus.
package trials

import (
	"math/rand/v2"
	"time"

	"github.com/AbdouB/psyki/internal/models"
)

// Generator produces trial sequences from an explicit random source
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator using rng for every random draw
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator creates a deterministic generator. A zero seed seeds
// from the clock.
func NewSeededGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// AccuracySchedule builds the per-trial AI accuracy values for cfg
func AccuracySchedule(rng *rand.Rand, cfg MainConfig) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	schedule := make([]float64, 0, cfg.NumEntries)
	for i := 0; i < cfg.TrainingPrefix; i++ {
		schedule = append(schedule, cfg.HighAcc)
	}

	rest := make([]float64, 0, cfg.NumEntries-cfg.TrainingPrefix)
	for i := 0; i < cfg.NumEntries-cfg.TrainingPrefix-cfg.LowAccCount; i++ {
		rest = append(rest, cfg.HighAcc)
	}
	for i := 0; i < cfg.LowAccCount; i++ {
		rest = append(rest, cfg.LowAcc)
	}
	rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})

	return append(schedule, rest...), nil
}

// IsBreakTrial reports whether the 1-based index is a break trial
func IsBreakTrial(index, total, interval int) bool {
	return interval > 0 && index%interval == 0 && index < total
}

// MainTrials generates the main phase trials
func (g *Generator) MainTrials(cfg MainConfig) ([]models.Trial, error) {
	schedule, err := AccuracySchedule(g.rng, cfg)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Trial, 0, cfg.NumEntries)
	for i := 0; i < cfg.NumEntries; i++ {
		index := i + 1

		color := models.ColorBreak
		if !IsBreakTrial(index, cfg.NumEntries, cfg.BreakInterval) {
			color = g.stimulus()
		}

		entry := models.Trial{
			Index:      index,
			Color:      color,
			AIAccuracy: schedule[i],
		}
		if len(cfg.DivergenceValues) > 0 {
			d := cfg.DivergenceValues[g.rng.IntN(len(cfg.DivergenceValues))]
			entry.Divergence = &d
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// TestTrials generates the calibration trials
func (g *Generator) TestTrials(cfg TestConfig) ([]models.TestTrial, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	entries := make([]models.TestTrial, 0, cfg.NumEntries)
	for i := 0; i < cfg.NumEntries; i++ {
		entries = append(entries, models.TestTrial{
			Index: i + 1,
			Color: g.stimulus(),
		})
	}
	return entries, nil
}

func (g *Generator) stimulus() int {
	return models.StimulusColors[g.rng.IntN(len(models.StimulusColors))]
}
