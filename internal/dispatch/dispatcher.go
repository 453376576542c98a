// Package dispatch decides which audit verdicts warrant outreach and sends
// exactly one coherent notification per staff member.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/vigilant-ai/vigilant/internal/channel"
	"github.com/vigilant-ai/vigilant/internal/domain"
	"github.com/vigilant-ai/vigilant/internal/phonebook"
	"github.com/vigilant-ai/vigilant/internal/store"
)

// Mode selects how qualifying verdicts become deliveries.
type Mode string

const (
	// ModePerRecipient sends one message per qualifying verdict.
	ModePerRecipient Mode = "per-recipient"
	// ModeAggregate sends exactly one batch summary to the redirect address,
	// bounding messaging cost on large audit runs.
	ModeAggregate Mode = "aggregate"
)

// sampleBodyLimit caps the representative body quoted in an aggregate summary.
const sampleBodyLimit = 100

// Options configures a dispatch run. Passed at construction so behavior is
// deterministic per invocation; there are no package-level toggles.
type Options struct {
	Mode Mode
	// Redirect forces every delivery to this address when non-empty (safety
	// mode). The remediation record keeps the true recipient's address; only
	// the delivery destination changes. Aggregate mode requires it.
	Redirect string
}

// Item is one classifier verdict joined with its originating note metadata.
type Item struct {
	Note    domain.NoteRef
	Verdict domain.Verdict
}

// Summary reports what a dispatch run did.
type Summary struct {
	Flagged        int `json:"flagged"`
	Sent           int `json:"sent"`
	Skipped        int `json:"skipped"`
	SkippedNoPhone int `json:"skipped_no_phone"`
	Errors         int `json:"errors"`
	Pending        int `json:"pending"`
}

// Dispatcher consumes verdicts, records pending fixes and hands messages to
// a delivery channel.
type Dispatcher struct {
	repo store.Repository
	book *phonebook.Phonebook
	ch   channel.Channel
	opts Options
	now  func() time.Time
}

// New creates a Dispatcher.
func New(repo store.Repository, book *phonebook.Phonebook, ch channel.Channel, opts Options) (*Dispatcher, error) {
	if opts.Mode == "" {
		opts.Mode = ModePerRecipient
	}
	if opts.Mode == ModeAggregate && opts.Redirect == "" {
		return nil, fmt.Errorf("aggregate mode requires a redirect address")
	}
	return &Dispatcher{repo: repo, book: book, ch: ch, opts: opts, now: time.Now}, nil
}

type flagged struct {
	note    domain.NoteRef
	verdict domain.Verdict
	body    string
	address string
}

// Run applies the outreach predicate to every item, records a pending fix
// for each qualifying one, then delivers according to the configured mode.
// Transport failures become error counts; a store failure — recording a
// pending fix, or logging a message that already went out — aborts the run.
func (d *Dispatcher) Run(ctx context.Context, items []Item) (Summary, error) {
	var s Summary
	var queue []flagged

	for _, it := range items {
		if !it.Verdict.Flagged() {
			s.Skipped++
			continue
		}

		body := strings.TrimSpace(it.Verdict.CoachingSMS)
		if body == "" || boilerplateBody(body) {
			s.Skipped++
			continue
		}

		number, ok := d.book.Lookup(it.Note.StaffName)
		if !ok {
			slog.Warn("no phone number on roster, skipping outreach",
				"staff", it.Note.StaffName, "shift_id", it.Note.ShiftID)
			s.Skipped++
			s.SkippedNoPhone++
			continue
		}
		address := phonebook.ToE164(number)

		// The pending fix is recorded for every qualifying verdict before and
		// independent of delivery: a reply must be reconcilable even when the
		// individual message was collapsed into a summary or failed to send.
		rec := &domain.RemediationRecord{
			Address:     address,
			StaffName:   it.Note.StaffName,
			ClientLabel: it.Note.ClientLabel,
			ShiftID:     it.Note.ShiftID,
			AuditScore:  it.Verdict.AuditScore,
			RiskLevel:   it.Verdict.RiskLevel,
			MessageBody: body,
			Status:      domain.StatusAwaitingReply,
			CreatedAt:   d.now(),
		}
		if err := d.repo.PutRemediation(ctx, rec); err != nil {
			return s, fmt.Errorf("record pending fix for %s: %w", address, err)
		}
		s.Pending++
		slog.Info("pending fix recorded", "staff", it.Note.StaffName, "address", address, "shift_id", it.Note.ShiftID)

		queue = append(queue, flagged{note: it.Note, verdict: it.Verdict, body: body, address: address})
	}

	s.Flagged = len(queue)

	if d.opts.Mode == ModeAggregate {
		return s, d.sendAggregate(ctx, queue, &s)
	}
	return s, d.sendPerRecipient(ctx, queue, &s)
}

// transportFailure reports whether a send error means nothing was delivered.
// Any other error from Channel.Send means the message went out but its log
// append failed, which is a store failure.
func transportFailure(err error) bool {
	var cerr *channel.Error
	return errors.As(err, &cerr)
}

func (d *Dispatcher) sendPerRecipient(ctx context.Context, queue []flagged, s *Summary) error {
	for _, f := range queue {
		dest := f.address
		if d.opts.Redirect != "" {
			dest = phonebook.ToE164(d.opts.Redirect)
		}

		if _, err := d.ch.Send(ctx, dest, f.body, f.note.StaffName); err != nil {
			if transportFailure(err) {
				s.Errors++
				slog.Error("failed to send coaching message", "staff", f.note.StaffName, "error", err)
				continue
			}
			s.Sent++
			return fmt.Errorf("log delivery to %s: %w", dest, err)
		}
		s.Sent++
		slog.Info("coaching message sent", "staff", f.note.StaffName, "destination", dest)
	}
	return nil
}

func (d *Dispatcher) sendAggregate(ctx context.Context, queue []flagged, s *Summary) error {
	if len(queue) == 0 {
		return nil
	}

	// The collapsed individual sends are accounted as skips so run totals
	// line up between modes.
	s.Skipped += len(queue) - 1

	body := buildSummaryBody(queue)
	dest := phonebook.ToE164(d.opts.Redirect)

	if _, err := d.ch.Send(ctx, dest, body, "AUDIT_SUMMARY"); err != nil {
		if transportFailure(err) {
			s.Errors++
			slog.Error("failed to send summary message", "destination", dest, "error", err)
			return nil
		}
		s.Sent++
		return fmt.Errorf("log summary delivery to %s: %w", dest, err)
	}
	s.Sent++
	slog.Info("summary message sent", "destination", dest, "flagged", len(queue))
	return nil
}

func buildSummaryBody(queue []flagged) string {
	counts := make(map[domain.AuditScore]int)
	for _, f := range queue {
		counts[f.verdict.AuditScore]++
	}
	scores := make([]string, 0, len(counts))
	for score := range counts {
		scores = append(scores, string(score))
	}
	sort.Strings(scores)

	lines := []string{fmt.Sprintf("Vigilant Audit Summary: %d notes flagged.", len(queue))}
	for _, score := range scores {
		lines = append(lines, fmt.Sprintf("- %s: %d", score, counts[domain.AuditScore(score)]))
	}

	worst := worstOf(queue)
	sample := worst.body
	if runes := []rune(sample); len(runes) > sampleBodyLimit {
		sample = string(runes[:sampleBodyLimit])
	}
	lines = append(lines,
		fmt.Sprintf("Worst: %s (%s/%s)", worst.note.StaffName, worst.verdict.AuditScore, worst.verdict.RiskLevel),
		fmt.Sprintf("Sample: %s", sample),
	)

	return strings.Join(lines, "\n")
}

// worstOf picks the representative record: CRITICAL beats FAIL beats
// first-seen.
func worstOf(queue []flagged) flagged {
	for _, f := range queue {
		if f.verdict.AuditScore == domain.ScoreCritical {
			return f
		}
	}
	for _, f := range queue {
		if f.verdict.AuditScore == domain.ScoreFail {
			return f
		}
	}
	return queue[0]
}

func boilerplateBody(body string) bool {
	lower := strings.ToLower(body)
	return lower == "nan" || lower == "no action required."
}
