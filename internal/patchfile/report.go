package patchfile

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"excise/internal/engine"
	"excise/pkg/rule"
)

// Report records the audit trail of one patched file. It is only persisted
// when the caller asks for it; by default the patched file is the run's only
// output.
type Report struct {
	File        string               `json:"file"`
	GeneratedAt time.Time            `json:"generated_at"`
	DryRun      bool                 `json:"dry_run,omitempty"`
	Applied     []engine.Application `json:"applied"`
}

// Removed returns how many applications deleted their span outright.
func (r *Report) Removed() int {
	n := 0
	for _, a := range r.Applied {
		if a.Action == rule.Delete {
			n++
		}
	}
	return n
}

// Rewritten returns how many applications replaced lines rather than
// deleting them.
func (r *Report) Rewritten() int {
	return len(r.Applied) - r.Removed()
}

// ReportStore abstracts report persistence for testability.
type ReportStore interface {
	Load() ([]Report, error)
	Save([]Report) error
}

// Merge replaces any existing report for the same file, keeping one report
// per path.
func Merge(reports []Report, r Report) []Report {
	for i := range reports {
		if reports[i].File == r.File {
			reports[i] = r
			return reports
		}
	}
	return append(reports, r)
}

// FileReportStore implements ReportStore using a JSON file.
type FileReportStore struct {
	File string
}

func NewFileReportStore(file string) *FileReportStore {
	return &FileReportStore{File: file}
}

func (fs *FileReportStore) Load() ([]Report, error) {
	var reports []Report
	f, err := os.Open(fs.File)
	if err == nil {
		defer f.Close()
		dec := json.NewDecoder(f)
		if err := dec.Decode(&reports); err != nil && err.Error() != "EOF" {
			return nil, err
		}
	}
	return reports, nil
}

func (fs *FileReportStore) Save(reports []Report) error {
	f, err := os.Create(fs.File)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// InMemoryReportStore implements ReportStore for testing (no disk I/O).
type InMemoryReportStore struct {
	mu      sync.Mutex
	reports []Report
}

func NewInMemoryReportStore() *InMemoryReportStore {
	return &InMemoryReportStore{}
}

func (ms *InMemoryReportStore) Load() ([]Report, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	cpy := make([]Report, len(ms.reports))
	copy(cpy, ms.reports)
	return cpy, nil
}

func (ms *InMemoryReportStore) Save(reports []Report) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	cpy := make([]Report, len(reports))
	copy(cpy, reports)
	ms.reports = cpy
	return nil
}
