package domain

import "time"

// Direction marks which way a message travelled.
type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
)

// ConversationMessage is one immutable entry in the shared message log.
// For outbound messages Address is the delivery destination; for inbound
// messages it is the sender.
type ConversationMessage struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Direction Direction `json:"direction"`
	Body      string    `json:"body"`
	StaffName string    `json:"staff_name"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the derived, read-only view of one address's message
// thread joined with its current remediation record. It is rebuilt on every
// read and never persisted.
type Conversation struct {
	Address   string                `json:"address"`
	StaffName string                `json:"staff_name"`
	Messages  []ConversationMessage `json:"messages"`
	Record    *RemediationRecord    `json:"record,omitempty"`
}

// Status returns the remediation status for display, or empty when the
// conversation has no record (e.g. an orphan reply).
func (c *Conversation) Status() RemediationStatus {
	if c.Record == nil {
		return ""
	}
	return c.Record.Status
}

// Awaiting reports whether the conversation still owes a corrected note.
func (c *Conversation) Awaiting() bool {
	return c.Record != nil && c.Record.Status == StatusAwaitingReply
}
