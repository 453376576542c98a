package channel

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vigilant-ai/vigilant/internal/store"
)

// Simulator is the local delivery channel: no network, just the durable
// message log. Replies are then driven through the simulator TUI against
// the exact same reconciliation contract the live webhook uses.
type Simulator struct {
	repo store.Repository
	now  func() time.Time
}

// NewSimulator creates a local simulation channel.
func NewSimulator(repo store.Repository) *Simulator {
	return &Simulator{repo: repo, now: time.Now}
}

// Send appends the outbound message to the shared log and returns a locally
// generated delivery id.
func (s *Simulator) Send(ctx context.Context, address, body, staffName string) (string, error) {
	id := "SIM-" + uuid.NewString()
	if err := logOutbound(ctx, s.repo, id, address, body, staffName, s.now()); err != nil {
		return "", &Error{Address: address, Err: err}
	}
	return id, nil
}
