package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestCsvHeader(t *testing.T) {
	path := writeTemp(t, "id,name,age\n0,test0,30\n")

	fields, err := csvHeader(path)
	if err != nil {
		t.Fatalf("csvHeader failed: %v", err)
	}
	want := []string{"id", "name", "age"}
	if len(fields) != len(want) {
		t.Fatalf("fields = %v; want %v", fields, want)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("fields[%d] = %q; want %q", i, fields[i], want[i])
		}
	}
}

func TestCsvHeaderEmptyFile(t *testing.T) {
	if _, err := csvHeader(writeTemp(t, "")); err == nil {
		t.Errorf("expected error for an empty file")
	}
}

func TestCsvHeaderBlankLine(t *testing.T) {
	if _, err := csvHeader(writeTemp(t, "\n1,2\n")); err == nil {
		t.Errorf("expected error for a blank header line")
	}
}

func TestCsvHeaderMissingFile(t *testing.T) {
	if _, err := csvHeader(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Errorf("expected error for a missing file")
	}
}
