// Package store persists structure records: flat, order-preserving
// descriptions of a saved structure that are independent of coordinates,
// colors and animation state.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

// Structure types a record can describe.
const (
	TypeBST        = "BST"
	TypeLinkedList = "LinkedList"
)

// Record is the persisted form of a structure. Values holds the node
// values in breadth-first order from the root, so rebuilding by inserting
// them in sequence reproduces the exact original shape for search-ordered
// structures.
type Record struct {
	Modified time.Time `json:"Date Modified"`
	Type     string    `json:"Type"`
	Values   []int     `json:"Values"`
}

// NewRecord stamps a record with the current time.
func NewRecord(structType string, values []int) Record {
	return Record{
		Modified: time.Now(),
		Type:     structType,
		Values:   values,
	}
}

// Marshal encodes the record as indented JSON.
func (r Record) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("cannot encode record: %w", err)
	}
	return data, nil
}

// UnmarshalRecord decodes a record from JSON.
func UnmarshalRecord(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("cannot decode record: %w", err)
	}
	return r, nil
}

// Save writes the record to path, creating parent directories as needed.
func (r Record) Save(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write record: %w", err)
	}
	return nil
}

// Load reads a record from path.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("cannot read record: %w", err)
	}
	return UnmarshalRecord(data)
}
