// Package conversation reconstructs per-address message threads. It is a
// pure read model over the message log and the remediation store; nothing
// here mutates state.
package conversation

import (
	"context"
	"fmt"

	"github.com/vigilant-ai/vigilant/internal/domain"
	"github.com/vigilant-ai/vigilant/internal/store"
)

// Build groups messages by address and joins each group with its current
// remediation record. Conversations are ordered by first-message arrival and
// messages within a conversation keep log append order, which is the
// authoritative arrival order. An address that appears only via inbound
// messages (orphan reply) still gets a conversation, with a nil record.
func Build(messages []domain.ConversationMessage, records map[string]*domain.RemediationRecord) []domain.Conversation {
	index := make(map[string]int)
	var conversations []domain.Conversation

	for _, msg := range messages {
		i, ok := index[msg.Address]
		if !ok {
			i = len(conversations)
			index[msg.Address] = i
			conversations = append(conversations, domain.Conversation{
				Address: msg.Address,
				Record:  records[msg.Address],
			})
		}
		conversations[i].Messages = append(conversations[i].Messages, msg)
	}

	for i := range conversations {
		conversations[i].StaffName = staffNameFor(&conversations[i])
	}

	return conversations
}

// Load fetches the message log and store contents and builds the view.
func Load(ctx context.Context, repo store.Repository) ([]domain.Conversation, error) {
	messages, err := repo.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("load message log: %w", err)
	}
	records, err := repo.AllRemediations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load remediation records: %w", err)
	}
	return Build(messages, records), nil
}

func staffNameFor(c *domain.Conversation) string {
	for _, msg := range c.Messages {
		if msg.StaffName != "" {
			return msg.StaffName
		}
	}
	if c.Record != nil && c.Record.StaffName != "" {
		return c.Record.StaffName
	}
	return "Unknown"
}
