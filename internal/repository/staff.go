// Package repository provides the flat-file persistence layer: the staff
// list, the inventory document, and the transaction ledger.
package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/merchco/counterpos/internal/models"
)

// StaffFile reads the staff account list from staff.json. The file is
// read fresh on every call so edits take effect without a restart.
type StaffFile struct {
	// Path is the location of staff.json.
	Path string
}

// NewStaffFile creates a StaffFile rooted in dir.
func NewStaffFile(dir string) *StaffFile {
	return &StaffFile{Path: filepath.Join(dir, "staff.json")}
}

// GetAll returns the account → staff mapping. An absent file yields an
// empty mapping, which makes every login attempt fail generically.
func (s *StaffFile) GetAll(ctx context.Context) (map[string]models.Staff, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]models.Staff{}, nil
		}
		return nil, err
	}
	staff := make(map[string]models.Staff)
	if err := json.Unmarshal(data, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}
