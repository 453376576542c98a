package seed

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export.csv")
	if err := Generate(path, 20, 1); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 21 {
		t.Fatalf("expected header + 20 rows, got %d", len(rows))
	}
	if rows[0][0] != "Shift ID" || rows[0][7] != "Progress Note" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "SC-1000" || rows[20][0] != "SC-1019" {
		t.Errorf("shift ids = %s .. %s", rows[1][0], rows[20][0])
	}
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	if err := Generate(a, 15, 42); err != nil {
		t.Fatalf("Generate a: %v", err)
	}
	if err := Generate(b, 15, 42); err != nil {
		t.Fatalf("Generate b: %v", err)
	}

	rowsA, rowsB := readRows(t, a), readRows(t, b)
	if len(rowsA) != len(rowsB) {
		t.Fatalf("row counts differ: %d vs %d", len(rowsA), len(rowsB))
	}
	for i := range rowsA {
		for j := range rowsA[i] {
			if j == 1 {
				continue // date column tracks wall clock
			}
			if rowsA[i][j] != rowsB[i][j] {
				t.Fatalf("row %d col %d differs: %q vs %q", i, j, rowsA[i][j], rowsB[i][j])
			}
		}
	}
}

func TestGenerateRoster(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "staff_list.csv")
	if err := GenerateRoster(path); err != nil {
		t.Fatalf("GenerateRoster failed: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) < 2 {
		t.Fatalf("roster should have at least one staff row, got %d rows", len(rows))
	}
	if rows[0][0] != "Full Name" || rows[0][1] != "Mobile Number" {
		t.Errorf("header = %v", rows[0])
	}
	for _, row := range rows[1:] {
		if row[0] == "" || len(row[1]) != 10 || row[1][:2] != "04" {
			t.Errorf("roster row = %v", row)
		}
	}
}
