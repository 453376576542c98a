package audit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vigilant-ai/vigilant/internal/domain"
)

// stubGateway returns a canned verdict, or an error for notes in failFor.
type stubGateway struct {
	verdict domain.Verdict
	failFor map[string]bool
	calls   int
}

func (g *stubGateway) Audit(ctx context.Context, noteText, goalsText string) (domain.Verdict, error) {
	g.calls++
	if g.failFor[noteText] {
		return domain.Verdict{}, errors.New("API error: overloaded")
	}
	return g.verdict, nil
}

func TestRunMixedBatch(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		verdict: domain.Verdict{AuditScore: domain.ScoreFail, RiskLevel: domain.RiskMedium},
		failFor: map[string]bool{"Client had a rough day with multiple incidents.": true},
	}
	runner := NewRunner(gw)

	notes := []Note{
		{ShiftID: "SC-1", StaffName: "Sarah Jenkins", NoteText: "Quiet shift, assisted with meal prep and evening routine."},
		{ShiftID: "SC-2", StaffName: "Mike Ross", NoteText: "nan"},
		{ShiftID: "SC-3", StaffName: "Priya Patel", NoteText: ""},
		{ShiftID: "SC-4", StaffName: "Tom Nguyen", NoteText: "Client had a rough day with multiple incidents."},
	}

	results := runner.Run(context.Background(), notes)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	if results[0].Verdict.AuditScore != domain.ScoreFail {
		t.Errorf("row 1 = %q, want classifier verdict", results[0].Verdict.AuditScore)
	}
	for _, i := range []int{1, 2} {
		if results[i].Verdict.AuditScore != domain.ScoreSkipped {
			t.Errorf("row %d = %q, want SKIPPED without calling the classifier", i+1, results[i].Verdict.AuditScore)
		}
	}
	if results[3].Verdict.AuditScore != domain.ScoreError {
		t.Errorf("row 4 = %q, want ERROR on classifier failure", results[3].Verdict.AuditScore)
	}
	if results[3].Verdict.Reasoning == "" {
		t.Error("ERROR verdict should carry the failure reason")
	}

	// Trivial notes must not reach the gateway.
	if gw.calls != 2 {
		t.Errorf("gateway called %d times, want 2", gw.calls)
	}

	tally := Tally(results)
	if tally[domain.ScoreFail] != 1 || tally[domain.ScoreSkipped] != 2 || tally[domain.ScoreError] != 1 {
		t.Errorf("tally = %v", tally)
	}
}

func TestReadShiftExport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export.csv")
	csv := "Shift ID,Client,Staff Member,Progress Note,Goals Referenced\n" +
		"SC-1001,Liam H. (Participant),Sarah Jenkins,Quiet shift.,Community access\n" +
		",Mia K. (Participant),Mike Ross,Assisted with shopping trip.,\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("write export: %v", err)
	}

	notes, err := ReadShiftExport(path)
	if err != nil {
		t.Fatalf("ReadShiftExport failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}

	if notes[0].ShiftID != "SC-1001" || notes[0].StaffName != "Sarah Jenkins" || notes[0].GoalsText != "Community access" {
		t.Errorf("note 1 = %+v", notes[0])
	}
	if notes[1].ShiftID != "Row-2" {
		t.Errorf("blank shift id should get synthetic Row-2, got %q", notes[1].ShiftID)
	}
}

func TestReadShiftExportMissing(t *testing.T) {
	t.Parallel()
	if _, err := ReadShiftExport(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing export file")
	}
}
