package audit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vigilant-ai/vigilant/internal/domain"
)

var reportHeader = []string{
	"Shift ID", "Client", "Staff Member", "Progress Note", "Goals Referenced",
	"audit_score", "risk_level", "language_score", "detected_incidents",
	"restrictive_practice_warning", "coaching_sms", "reasoning",
}

// WriteReport saves audit results as the report CSV the dispatcher reads.
func WriteReport(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, res := range results {
		row := []string{
			res.Note.ShiftID,
			res.Note.ClientLabel,
			res.Note.StaffName,
			res.Note.NoteText,
			res.Note.GoalsText,
			string(res.Verdict.AuditScore),
			string(res.Verdict.RiskLevel),
			strconv.FormatFloat(res.Verdict.LanguageScore, 'f', -1, 64),
			strings.Join(res.Verdict.DetectedIncidents, ", "),
			strconv.FormatBool(res.Verdict.RestrictivePracticeWarning),
			res.Verdict.CoachingSMS,
			res.Verdict.Reasoning,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

// ReadReport loads a report CSV back into results for a dispatch run.
func ReadReport(path string) ([]Result, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	col := columnIndex(header)
	results := make([]Result, 0, len(rows))
	for i, row := range rows {
		score, _ := strconv.ParseFloat(col.get(row, "language_score"), 64)
		warning, _ := strconv.ParseBool(col.get(row, "restrictive_practice_warning"))

		res := Result{
			Note: Note{
				ShiftID:     col.get(row, "Shift ID"),
				ClientLabel: col.get(row, "Client"),
				StaffName:   col.get(row, "Staff Member"),
				NoteText:    col.get(row, "Progress Note"),
				GoalsText:   col.get(row, "Goals Referenced"),
			},
			Verdict: domain.Verdict{
				AuditScore:                 domain.ParseAuditScore(col.get(row, "audit_score")),
				RiskLevel:                  domain.ParseRiskLevel(col.get(row, "risk_level")),
				LanguageScore:              score,
				DetectedIncidents:          splitIncidents(col.get(row, "detected_incidents")),
				RestrictivePracticeWarning: warning,
				CoachingSMS:                col.get(row, "coaching_sms"),
				Reasoning:                  col.get(row, "reasoning"),
			},
		}
		if res.Note.ShiftID == "" {
			res.Note.ShiftID = fmt.Sprintf("Row-%d", i+1)
		}
		results = append(results, res)
	}
	return results, nil
}

func splitIncidents(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	incidents := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			incidents = append(incidents, trimmed)
		}
	}
	return incidents
}
