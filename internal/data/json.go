package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"freight-calc/internal/model"
)

// RecordList is the JSON form of a combinations table.
type RecordList struct {
	UpdatedAt string               `json:"updated_at,omitempty"` // ISO 8601 timestamp
	Records   []model.VoyageRecord `json:"records"`
}

// LoadRecordsJSON reads combinations from a JSON file. Both a bare array
// and a RecordList object are accepted.
func LoadRecordsJSON(path string) ([]model.VoyageRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}

	var recs []model.VoyageRecord
	if err := json.Unmarshal(raw, &recs); err == nil {
		return validRecords(recs)
	}

	var list RecordList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse records file: %w", err)
	}
	return validRecords(list.Records)
}

func validRecords(recs []model.VoyageRecord) ([]model.VoyageRecord, error) {
	for i, r := range recs {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return recs, nil
}

// SaveRecordsJSON writes list to path, creating parent directories.
func SaveRecordsJSON(list *RecordList, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write records file: %w", err)
	}
	return nil
}
