package repository

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/casablanca-dev/cashflow-api/internal/models"
)

// LoadFile reads a forecast dataset from a YAML file.
func LoadFile(path string) (*models.Forecast, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecast file: %w", err)
	}
	var forecast models.Forecast
	if err := yaml.Unmarshal(data, &forecast); err != nil {
		return nil, fmt.Errorf("failed to parse forecast file: %w", err)
	}
	return &forecast, nil
}
