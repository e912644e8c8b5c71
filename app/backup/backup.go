// Package backup serializes the full dataset to JSON and validates backups
// before anything is replaced. Import is all-or-nothing: a backup either
// passes structural validation in full or the existing data stays untouched.
package backup

import (
	"encoding/json"
	"fmt"
	"strings"

	"tuition-admin/app/models"
)

// Version identifies the backup format. Bump only on incompatible changes.
const Version = 1

// File is the on-disk backup document. The structure matches what Export
// writes and what Parse accepts, so a backup round-trips by value.
type File struct {
	Version      int                  `json:"version"`
	ExportedAt   string               `json:"exported_at,omitempty"`
	Students     []models.Student     `json:"students"`
	Payments     []models.Payment     `json:"payments"`
	FeeTemplates []models.FeeTemplate `json:"fee_templates"`
	Settings     *models.Settings     `json:"settings"`
}

// ValidationError describes why a backup was rejected. The message is safe to
// show to the operator.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid backup: " + e.Reason
}

// Export serializes a snapshot as an indented JSON backup.
func Export(snap *models.Snapshot, exportedAt string) ([]byte, error) {
	settings := snap.Settings
	file := File{
		Version:      Version,
		ExportedAt:   exportedAt,
		Students:     snap.Students,
		Payments:     snap.Payments,
		FeeTemplates: snap.FeeTemplates,
		Settings:     &settings,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing backup: %w", err)
	}
	return data, nil
}

// Parse validates a backup document structurally and returns the snapshot it
// describes. No existing data is touched here; persisting the result is the
// caller's transaction.
func Parse(data []byte) (*models.Snapshot, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &ValidationError{Reason: "not a JSON backup document"}
	}
	if err := validate(&file); err != nil {
		return nil, err
	}

	snap := &models.Snapshot{
		Students:     file.Students,
		Payments:     file.Payments,
		FeeTemplates: file.FeeTemplates,
		Settings:     *file.Settings,
	}
	if snap.Students == nil {
		snap.Students = []models.Student{}
	}
	if snap.Payments == nil {
		snap.Payments = []models.Payment{}
	}
	if snap.FeeTemplates == nil {
		snap.FeeTemplates = []models.FeeTemplate{}
	}
	return snap, nil
}

func validate(file *File) error {
	if file.Version != Version {
		return &ValidationError{Reason: fmt.Sprintf("unsupported version %d", file.Version)}
	}
	if file.Settings == nil {
		return &ValidationError{Reason: "missing settings section"}
	}
	if file.Settings.InvoiceSeq < 1 {
		return &ValidationError{Reason: "settings invoice sequence must be at least 1"}
	}

	seen := make(map[string]struct{}, len(file.Students))
	for i := range file.Students {
		s := &file.Students[i]
		if strings.TrimSpace(s.ID) == "" {
			return &ValidationError{Reason: fmt.Sprintf("student %d has no id", i)}
		}
		if _, dup := seen[s.ID]; dup {
			return &ValidationError{Reason: fmt.Sprintf("duplicate student id %q", s.ID)}
		}
		seen[s.ID] = struct{}{}
		if s.Status != models.StudentActive && s.Status != models.StudentInactive {
			return &ValidationError{Reason: fmt.Sprintf("student %q has invalid status %q", s.ID, s.Status)}
		}
		for j, fee := range s.AssignedFees {
			if fee.Amount.IsNegative() {
				return &ValidationError{Reason: fmt.Sprintf("student %q fee %d has negative amount", s.ID, j)}
			}
		}
	}

	for i := range file.Payments {
		p := &file.Payments[i]
		if strings.TrimSpace(p.ID) == "" {
			return &ValidationError{Reason: fmt.Sprintf("payment %d has no id", i)}
		}
		if strings.TrimSpace(p.StudentID) == "" {
			return &ValidationError{Reason: fmt.Sprintf("payment %q has no student id", p.ID)}
		}
		if p.Amount.IsNegative() {
			return &ValidationError{Reason: fmt.Sprintf("payment %q has negative amount", p.ID)}
		}
	}

	for i := range file.FeeTemplates {
		if strings.TrimSpace(file.FeeTemplates[i].ID) == "" {
			return &ValidationError{Reason: fmt.Sprintf("fee template %d has no id", i)}
		}
	}
	return nil
}
