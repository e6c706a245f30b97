package operations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Report is the result of a single workflow run. It records the inputs and
// outcome so a run can be audited after the fact.
type Report struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Input     any          `json:"input"`
	Output    any          `json:"output"`
	Timestamp *time.Time   `json:"timestamp"`
	Err       *ReportError `json:"error"`
}

// NewReport creates a new report for a completed run.
func NewReport(name string, input, output any, err error) Report {
	now := time.Now().UTC()
	r := Report{
		ID:        uuid.New().String(),
		Name:      name,
		Input:     input,
		Output:    output,
		Timestamp: &now,
	}
	if err != nil {
		r.Err = &ReportError{Message: err.Error()}
	}

	return r
}

// ReportError carries an exported Message field so the error survives JSON
// marshalling.
type ReportError struct {
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ReportError) Error() string {
	return e.Message
}

// Reporter stores reports. Implementations may keep them in memory or on disk.
type Reporter interface {
	AddReport(r Report) error
}

// MemoryReporter keeps reports in memory. Safe for concurrent use.
type MemoryReporter struct {
	mu      sync.Mutex
	reports []Report
}

// NewMemoryReporter creates an empty MemoryReporter.
func NewMemoryReporter() *MemoryReporter {
	return &MemoryReporter{}
}

// AddReport appends a report.
func (m *MemoryReporter) AddReport(r Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, r)

	return nil
}

// Reports returns a copy of the stored reports.
func (m *MemoryReporter) Reports() []Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Report, len(m.reports))
	copy(out, m.reports)

	return out
}

// FileReporter writes one JSON document per report into a directory.
type FileReporter struct {
	dir string
}

// NewFileReporter creates a FileReporter rooted at dir. The directory is
// created lazily on the first write.
func NewFileReporter(dir string) *FileReporter {
	return &FileReporter{dir: dir}
}

// AddReport writes the report to "<name>-<id>.json" under the reporter
// directory.
func (f *FileReporter) AddReport(r Report) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory %s: %w", f.dir, err)
	}

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	b = append(b, '\n')

	filePath := filepath.Join(f.dir, fmt.Sprintf("%s-%s.json", r.Name, r.ID))
	if err := os.WriteFile(filePath, b, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", filePath, err)
	}

	return nil
}

// NopReporter discards all reports.
type NopReporter struct{}

// NewNopReporter creates a NopReporter.
func NewNopReporter() NopReporter {
	return NopReporter{}
}

// AddReport discards the report.
func (NopReporter) AddReport(Report) error {
	return nil
}
