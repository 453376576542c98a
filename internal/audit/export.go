package audit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Note is one row of a shift export: the progress note plus the metadata the
// remediation workflow needs to route a fix request.
type Note struct {
	ShiftID     string
	ClientLabel string
	StaffName   string
	NoteText    string
	GoalsText   string
}

// ReadShiftExport loads a care-management shift export CSV. Rows without a
// Shift ID get a synthetic "Row-N" id so every verdict stays addressable.
func ReadShiftExport(path string) ([]Note, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	col := columnIndex(header)
	notes := make([]Note, 0, len(rows))
	for i, row := range rows {
		note := Note{
			ShiftID:     col.get(row, "Shift ID"),
			ClientLabel: col.get(row, "Client"),
			StaffName:   col.get(row, "Staff Member"),
			NoteText:    col.get(row, "Progress Note"),
			GoalsText:   col.get(row, "Goals Referenced"),
		}
		if note.ShiftID == "" {
			note.ShiftID = fmt.Sprintf("Row-%d", i+1)
		}
		notes = append(notes, note)
	}
	return notes, nil
}

type columns map[string]int

func columnIndex(header []string) columns {
	col := make(columns, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readCSV(path string) (rows [][]string, header []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s is empty", path)
	}
	return all[1:], all[0], nil
}
