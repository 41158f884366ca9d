package importer

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"
)

// BoardImport is the top-level YAML structure for a board import file.
type BoardImport struct {
	Items []ItemImport `yaml:"items"`
}

// ItemImport defines one work item in the import file. Dates are
// YYYY-MM-DD strings; empty means the date is unset.
type ItemImport struct {
	Title     string   `yaml:"title"`
	Kind      string   `yaml:"kind,omitempty"`
	Assignees []string `yaml:"assignees,omitempty"`
	Labels    []string `yaml:"labels,omitempty"`
	Start     string   `yaml:"start,omitempty"`
	Due       string   `yaml:"due,omitempty"`
}

// LoadBoardImport reads and parses a board import YAML file.
func LoadBoardImport(path string) (*BoardImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var board BoardImport
	if err := yaml.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &board, nil
}
