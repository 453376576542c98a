// Package audit runs batches of progress notes through the classifier and
// produces the report the dispatcher consumes.
package audit

import (
	"context"
	"log/slog"

	"github.com/vigilant-ai/vigilant/internal/classifier"
	"github.com/vigilant-ai/vigilant/internal/domain"
)

// Result pairs one note with its verdict.
type Result struct {
	Note    Note
	Verdict domain.Verdict
}

// Runner audits notes one at a time. A classifier failure never aborts the
// batch: the row gets a synthetic ERROR verdict and the run continues.
type Runner struct {
	gateway classifier.Gateway
}

// NewRunner creates a batch auditor over the given classifier gateway.
func NewRunner(gateway classifier.Gateway) *Runner {
	return &Runner{gateway: gateway}
}

// Run audits every note. Blank, too-short or literal "nan" notes bypass the
// classifier and come back SKIPPED.
func (r *Runner) Run(ctx context.Context, notes []Note) []Result {
	results := make([]Result, 0, len(notes))
	for i, note := range notes {
		results = append(results, Result{Note: note, Verdict: r.auditOne(ctx, i+1, len(notes), note)})
	}
	return results
}

func (r *Runner) auditOne(ctx context.Context, row, total int, note Note) domain.Verdict {
	if classifier.TrivialNote(note.NoteText) {
		slog.Info("skipping trivial note", "row", row, "total", total, "staff", note.StaffName)
		return classifier.SkippedVerdict("Note empty or too short")
	}

	verdict, err := r.gateway.Audit(ctx, note.NoteText, note.GoalsText)
	if err != nil {
		slog.Warn("classifier call failed", "row", row, "staff", note.StaffName, "error", err)
		return classifier.ErrorVerdict(err.Error())
	}

	slog.Info("note audited", "row", row, "total", total, "staff", note.StaffName, "audit_score", verdict.AuditScore)
	return verdict
}

// Tally counts results per audit score.
func Tally(results []Result) map[domain.AuditScore]int {
	counts := make(map[domain.AuditScore]int)
	for _, res := range results {
		counts[res.Verdict.AuditScore]++
	}
	return counts
}
