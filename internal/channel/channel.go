// Package channel abstracts the transport used to deliver coaching messages.
package channel

import (
	"context"
	"fmt"
	"time"

	"github.com/vigilant-ai/vigilant/internal/domain"
	"github.com/vigilant-ai/vigilant/internal/store"
)

// Channel sends one message body to one address and returns a delivery id.
// Every implementation also appends an identically shaped OUTBOUND entry to
// the shared message log, so conversation reconstruction never needs to know
// which transport was in play.
//
// Failures that mean nothing was delivered are reported as *Error. A
// message that left the gateway but whose log append failed is reported
// with the delivery id alongside the bare store error, so callers can count
// the delivery while treating the failed write as a store failure.
type Channel interface {
	Send(ctx context.Context, address, body, staffName string) (string, error)
}

// Error wraps a transport-level delivery failure.
type Error struct {
	Address string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("send to %s: %v", e.Address, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func logOutbound(ctx context.Context, repo store.Repository, id, address, body, staffName string, at time.Time) error {
	msg := &domain.ConversationMessage{
		ID:        id,
		Address:   address,
		Direction: domain.DirectionOutbound,
		Body:      body,
		StaffName: staffName,
		Timestamp: at,
	}
	if err := repo.AppendMessage(ctx, msg); err != nil {
		return fmt.Errorf("log outbound message: %w", err)
	}
	return nil
}
