// Package export reads and writes journal backup files. A backup is the
// entries sequence verbatim plus a small header, so export followed by import
// restores the journal exactly.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/penpal/pkg/entry"
)

// AppName identifies backups written by this program.
const AppName = "penpal"

// Document is the backup file layout.
type Document struct {
	ExportDate string         `json:"exportDate"`
	AppName    string         `json:"appName"`
	Entries    []*entry.Entry `json:"entries"`
}

// DefaultFilename names a backup after the day it was taken.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("penpal-%s.json", now.Format("2006-01-02"))
}

// Write serializes the journal to w.
func Write(w io.Writer, entries []*entry.Entry, now time.Time) error {
	doc := Document{
		ExportDate: entry.FormatTime(now),
		AppName:    AppName,
		Entries:    entries,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Read parses a backup and validates its entries record by record. Records
// that fail validation are dropped rather than failing the whole import.
func Read(r io.Reader) ([]*entry.Entry, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("export: parse backup: %w", err)
	}
	if doc.Entries == nil {
		return nil, errors.New("export: backup has no entries field")
	}
	return entry.Filter(doc.Entries), nil
}
