package channel

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vigilant-ai/vigilant/internal/domain"
	"github.com/vigilant-ai/vigilant/internal/store"
)

func TestSimulatorSendLogsOutbound(t *testing.T) {
	t.Parallel()

	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "vigilant.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer func() { _ = repo.Close() }()

	sim := NewSimulator(repo)
	ctx := context.Background()

	id, err := sim.Send(ctx, "+61412345678", "Call your supervisor.", "Sarah Jenkins")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if !strings.HasPrefix(id, "SIM-") {
		t.Errorf("delivery id = %q, want SIM- prefix", id)
	}

	messages, err := repo.ListMessages(ctx)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 logged message, got %d", len(messages))
	}

	msg := messages[0]
	if msg.ID != id {
		t.Errorf("logged id = %q, want %q", msg.ID, id)
	}
	if msg.Direction != domain.DirectionOutbound {
		t.Errorf("direction = %q, want outbound", msg.Direction)
	}
	if msg.Address != "+61412345678" || msg.Body != "Call your supervisor." || msg.StaffName != "Sarah Jenkins" {
		t.Errorf("logged message mismatch: %+v", msg)
	}
}
