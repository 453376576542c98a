// Package reconcile matches inbound replies to outstanding remediation
// records. The live webhook and the local simulator both route through the
// one Receive contract; divergent behavior between the two surfaces would
// be a defect.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vigilant-ai/vigilant/internal/domain"
	"github.com/vigilant-ai/vigilant/internal/store"
)

// Outcome is the result class of one inbound reply.
type Outcome string

const (
	// OutcomeResolved means a pending record was found and marked fixed.
	OutcomeResolved Outcome = "RESOLVED"
	// OutcomeNoMatch means the sender has no record; nothing was written.
	OutcomeNoMatch Outcome = "NO_MATCH"
)

// Result tells the caller what happened so it can compose an acknowledgement.
type Result struct {
	Outcome     Outcome
	StaffName   string
	ClientLabel string
	ShiftID     string
}

// Reconciler transitions remediation records on inbound replies.
type Reconciler struct {
	repo   store.Repository
	fixLog *FixLog
	now    func() time.Time
}

// New creates a Reconciler.
func New(repo store.Repository, fixLog *FixLog) *Reconciler {
	return &Reconciler{repo: repo, fixLog: fixLog, now: time.Now}
}

// Receive processes one inbound reply. Write order is fixed: the inbound
// message is appended to the log before the record is overwritten, so a
// concurrent reader never sees a resolved record whose reply is missing
// from the conversation; the fix trail is appended last. A reply from an
// address with no record writes nothing and returns NO_MATCH. A second
// reply after resolution re-overwrites fix_text/fix_at and still appends
// to both logs.
func (r *Reconciler) Receive(ctx context.Context, sender, body string) (Result, error) {
	sender = strings.TrimSpace(sender)
	body = strings.TrimSpace(body)

	rec, err := r.repo.GetRemediation(ctx, sender)
	if err != nil {
		return Result{}, fmt.Errorf("look up remediation for %s: %w", sender, err)
	}
	if rec == nil {
		slog.Info("inbound reply with no pending fix", "address", sender)
		return Result{Outcome: OutcomeNoMatch}, nil
	}

	now := r.now()

	msg := &domain.ConversationMessage{
		ID:        "REPLY-" + uuid.NewString(),
		Address:   sender,
		Direction: domain.DirectionInbound,
		Body:      body,
		StaffName: rec.StaffName,
		Timestamp: now,
	}
	if err := r.repo.AppendMessage(ctx, msg); err != nil {
		return Result{}, fmt.Errorf("append inbound message: %w", err)
	}

	rec.Status = domain.StatusFixReceived
	rec.FixText = body
	rec.FixAt = &now
	if err := r.repo.PutRemediation(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("mark fix received for %s: %w", sender, err)
	}

	if err := r.fixLog.Append(rec.StaffName, sender, rec.ShiftID, body, now); err != nil {
		return Result{}, err
	}

	slog.Info("fix received", "staff", rec.StaffName, "address", sender, "shift_id", rec.ShiftID)

	return Result{
		Outcome:     OutcomeResolved,
		StaffName:   rec.StaffName,
		ClientLabel: rec.ClientLabel,
		ShiftID:     rec.ShiftID,
	}, nil
}
