// Package export writes tracked time out of the app: a per-interval CSV
// report and a full JSON backup that can be restored later.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/persist"
)

const timestampLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"Task Name", "Start Time", "End Time", "Duration", "Notes", "Type"}

// WriteCSV writes one row per interval for every task, in task order.
// Open intervals render "Running" as their end time.
func WriteCSV(w io.Writer, tasks []*domain.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, task := range tasks {
		for _, iv := range task.Intervals {
			end := "Running"
			if iv.End != 0 {
				end = formatStamp(iv.End)
			}
			kind := "Timer"
			if iv.IsAdjustment {
				kind = "Adjustment"
			}
			row := []string{
				task.Name,
				formatStamp(iv.Start),
				end,
				formatDuration(iv.Duration),
				joinNotes(iv.Notes),
				kind,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatStamp(ms int64) string {
	return time.UnixMilli(ms).Format(timestampLayout)
}

// formatDuration renders whole seconds as h:m:s without zero padding.
// Negative adjustments keep their sign.
func formatDuration(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%d:%d:%d", sign, seconds/3600, (seconds%3600)/60, seconds%60)
}

func joinNotes(notes []domain.Note) string {
	if len(notes) == 0 {
		return ""
	}
	parts := make([]string, len(notes))
	for i, n := range notes {
		parts[i] = n.Content
	}
	return strings.Join(parts, " | ")
}

// Backup wraps a snapshot with export metadata.
type Backup struct {
	ExportedAt string           `json:"exportedAt"`
	Version    string           `json:"version"`
	Snapshot   *domain.Snapshot `json:"snapshot"`
}

// WriteBackup writes the full snapshot as indented JSON.
func WriteBackup(w io.Writer, snap *domain.Snapshot, now time.Time) error {
	b := Backup{
		ExportedAt: now.Format(time.RFC3339),
		Version:    domain.AppVersion,
		Snapshot:   snap,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// ReadBackup parses a backup document and migrates the embedded snapshot
// to the current schema.
func ReadBackup(r io.Reader) (*domain.Snapshot, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	if b.Snapshot == nil {
		return nil, fmt.Errorf("backup has no snapshot")
	}
	return persist.Migrate(b.Snapshot), nil
}
