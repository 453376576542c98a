package conversation

import (
	"testing"
	"time"

	"github.com/vigilant-ai/vigilant/internal/domain"
)

func msg(address, direction, body, staff string) domain.ConversationMessage {
	return domain.ConversationMessage{
		ID:        body,
		Address:   address,
		Direction: domain.Direction(direction),
		Body:      body,
		StaffName: staff,
		Timestamp: time.Unix(1700000000, 0),
	}
}

func TestBuildGroupsByFirstAppearance(t *testing.T) {
	t.Parallel()

	messages := []domain.ConversationMessage{
		msg("+61412345678", "outbound", "Please revise your note.", "Sarah Jenkins"),
		msg("+61498765432", "outbound", "Link goals in your note.", "Mike Ross"),
		msg("+61412345678", "inbound", "Fixed, added the fall report.", "Sarah Jenkins"),
	}
	records := map[string]*domain.RemediationRecord{
		"+61412345678": {Address: "+61412345678", StaffName: "Sarah Jenkins", Status: domain.StatusFixReceived},
	}

	convs := Build(messages, records)
	if len(convs) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(convs))
	}

	// First-appearance order, not alphabetical.
	if convs[0].Address != "+61412345678" || convs[1].Address != "+61498765432" {
		t.Errorf("conversation order = %s, %s", convs[0].Address, convs[1].Address)
	}

	first := convs[0]
	if len(first.Messages) != 2 {
		t.Fatalf("expected 2 messages in first conversation, got %d", len(first.Messages))
	}
	if first.Messages[0].Direction != domain.DirectionOutbound || first.Messages[1].Direction != domain.DirectionInbound {
		t.Errorf("messages must keep log order: %+v", first.Messages)
	}
	if first.Record == nil || first.Record.Status != domain.StatusFixReceived {
		t.Errorf("record not joined: %+v", first.Record)
	}
	if first.StaffName != "Sarah Jenkins" {
		t.Errorf("StaffName = %q", first.StaffName)
	}

	if convs[1].Record != nil {
		t.Errorf("conversation without a record should carry nil, got %+v", convs[1].Record)
	}
}

func TestBuildOrphanInboundReply(t *testing.T) {
	t.Parallel()

	convs := Build([]domain.ConversationMessage{
		msg("+61499999999", "inbound", "Who is this?", ""),
	}, nil)

	if len(convs) != 1 {
		t.Fatalf("orphan reply must still produce a conversation, got %d", len(convs))
	}
	if convs[0].Record != nil {
		t.Errorf("orphan conversation record = %+v, want nil", convs[0].Record)
	}
	if convs[0].StaffName != "Unknown" {
		t.Errorf("StaffName = %q, want Unknown fallback", convs[0].StaffName)
	}
}

func TestBuildStaffNameFallsBackToRecord(t *testing.T) {
	t.Parallel()

	records := map[string]*domain.RemediationRecord{
		"+61412345678": {Address: "+61412345678", StaffName: "Sarah Jenkins"},
	}
	convs := Build([]domain.ConversationMessage{
		msg("+61412345678", "inbound", "On it.", ""),
	}, records)

	if len(convs) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(convs))
	}
	if convs[0].StaffName != "Sarah Jenkins" {
		t.Errorf("StaffName = %q, want name from the record", convs[0].StaffName)
	}
}
