package patchfile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"excise/internal/engine"
	"excise/internal/patchfile"
	"excise/pkg/rule"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "target.rs")
	if err := os.WriteFile(path, []byte("original\n"), 0600); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	if err := patchfile.WriteAtomic(path, []byte("patched\n"), 0600); err != nil {
		t.Fatalf("WriteAtomic() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(got) != "patched\n" {
		t.Errorf("content = %q, want %q", got, "patched\n")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("permissions = %v, want 0600", info.Mode().Perm())
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestWriteAtomicFailureLeavesNothing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-dir", "target.rs")
	if err := patchfile.WriteAtomic(missing, []byte("x"), 0644); err == nil {
		t.Fatal("WriteAtomic() error = nil, want error")
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Errorf("target exists after failed write")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, _, err := patchfile.Read(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Read() error = nil, want error")
	}
}

func sampleReport(file string) patchfile.Report {
	return patchfile.Report{
		File:        file,
		GeneratedAt: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		Applied: []engine.Application{
			{RuleID: "before-request-call", Start: 3, End: 4, Action: rule.Delete},
			{RuleID: "handle-api-error", Start: 8, End: 8, Action: rule.ReplaceLines},
		},
	}
}

func TestReportCounts(t *testing.T) {
	r := sampleReport("client.rs")
	if got := r.Removed(); got != 1 {
		t.Errorf("Removed() = %d, want 1", got)
	}
	if got := r.Rewritten(); got != 1 {
		t.Errorf("Rewritten() = %d, want 1", got)
	}
}

func TestFileReportStoreRoundTrip(t *testing.T) {
	store := patchfile.NewFileReportStore(filepath.Join(t.TempDir(), "report.json"))

	// Missing file loads as empty.
	reports, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(reports) != 0 {
		t.Fatalf("Load() = %v, want empty", reports)
	}

	saved := []patchfile.Report{sampleReport("a.rs"), sampleReport("b.rs")}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Load() returned %d reports, want 2", len(loaded))
	}
	if loaded[0].File != "a.rs" || len(loaded[0].Applied) != 2 {
		t.Errorf("loaded[0] = %+v, want a.rs with 2 applications", loaded[0])
	}
}

func TestInMemoryReportStore(t *testing.T) {
	store := patchfile.NewInMemoryReportStore()
	if err := store.Save([]patchfile.Report{sampleReport("a.rs")}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 1 || loaded[0].File != "a.rs" {
		t.Errorf("Load() = %v, want one report for a.rs", loaded)
	}
}

func TestMerge(t *testing.T) {
	reports := []patchfile.Report{sampleReport("a.rs")}
	reports = patchfile.Merge(reports, sampleReport("b.rs"))
	if len(reports) != 2 {
		t.Fatalf("Merge() appended: len = %d, want 2", len(reports))
	}

	replacement := sampleReport("a.rs")
	replacement.Applied = replacement.Applied[:1]
	reports = patchfile.Merge(reports, replacement)
	if len(reports) != 2 {
		t.Fatalf("Merge() replaced: len = %d, want 2", len(reports))
	}
	if len(reports[0].Applied) != 1 {
		t.Errorf("Merge() did not replace the existing report for a.rs")
	}
}
