package trials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AbdouB/psyki/internal/models"
)

// File names read by the experiment runner
const (
	MainFileName = "dataMain.json"
	TestFileName = "dataTest.json"
)

// WriteFiles writes both trial sets into dir, creating it if needed.
// It returns the paths written.
func WriteFiles(dir string, main []models.Trial, test []models.TestTrial) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	mainPath := filepath.Join(dir, MainFileName)
	if err := writeJSON(mainPath, main); err != nil {
		return nil, err
	}
	testPath := filepath.Join(dir, TestFileName)
	if err := writeJSON(testPath, test); err != nil {
		return nil, err
	}
	return []string{mainPath, testPath}, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
