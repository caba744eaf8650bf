// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/media-engine/pkg/types"
)

// ResultFile is the on-disk form of a search and its results. A saved file
// can be shown again later without querying providers.
type ResultFile struct {
	Query   ResultQuery   `yaml:"query"`
	Results []types.Title `yaml:"results"`
	Summary ResultSummary `yaml:"summary"`
}

// ResultQuery records the parameters that produced the results.
type ResultQuery struct {
	Kind      types.Kind `yaml:"kind"`
	Text      string     `yaml:"text"`
	Field     string     `yaml:"field,omitempty"`
	Limit     int        `yaml:"limit,omitempty"`
	StartYear int        `yaml:"start_year,omitempty"`
	EndYear   int        `yaml:"end_year,omitempty"`
	Genre     string     `yaml:"genre,omitempty"`
	SortBy    string     `yaml:"sort_by,omitempty"`
	SortOrder string     `yaml:"sort_order,omitempty"`
	UserID    int64      `yaml:"user_id,omitempty"`
}

// ResultSummary stores result statistics and a timestamp.
type ResultSummary struct {
	Total             int       `yaml:"total"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	Fallback          bool      `yaml:"fallback,omitempty"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// WriteResultFile saves query parameters and results to a YAML file.
func WriteResultFile(path string, query ResultQuery, out SearchOutput) error {
	rf := ResultFile{
		Query:   query,
		Results: out.Results,
		Summary: ResultSummary{
			Total:             len(out.Results),
			DuplicatesRemoved: out.DupsRemoved,
			Fallback:          out.Fallback,
			Timestamp:         time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}

// Output rebuilds the SearchOutput stored in the file.
func (rf *ResultFile) Output() SearchOutput {
	return SearchOutput{
		Results:     rf.Results,
		DupsRemoved: rf.Summary.DuplicatesRemoved,
		Fallback:    rf.Summary.Fallback,
	}
}
