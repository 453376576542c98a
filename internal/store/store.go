// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/vigilant-ai/vigilant/internal/domain"
)

// Repository defines the interface for persisting remediation state and the
// shared message log. Implementations must be safe to open from independent
// processes: every write is a self-contained overwrite or append, and every
// read goes back to durable storage, so no process holds in-memory authority
// beyond a single operation.
type Repository interface {
	// GetRemediation retrieves the remediation record for a contact address.
	// Returns (nil, nil) when no record exists.
	GetRemediation(ctx context.Context, address string) (*domain.RemediationRecord, error)

	// PutRemediation durably persists a record, fully overwriting any prior
	// record for the same address (last-outreach-wins).
	PutRemediation(ctx context.Context, rec *domain.RemediationRecord) error

	// AllRemediations returns every record keyed by contact address.
	AllRemediations(ctx context.Context) (map[string]*domain.RemediationRecord, error)

	// AppendMessage appends one entry to the shared message log. The log is
	// append-only; no entry is ever rewritten or removed.
	AppendMessage(ctx context.Context, msg *domain.ConversationMessage) error

	// ListMessages returns the full message log in append order, which is
	// the authoritative arrival order for conversation reconstruction.
	ListMessages(ctx context.Context) ([]domain.ConversationMessage, error)

	// Ping verifies storage connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying storage handle.
	Close() error
}
