package domain

import (
	"strings"
	"time"
)

// RemediationStatus is the lifecycle state of an outstanding fix request.
type RemediationStatus string

const (
	StatusAwaitingReply RemediationStatus = "AWAITING_REPLY"
	StatusFixReceived   RemediationStatus = "FIX_RECEIVED"
)

// RemediationRecord is the durable state of one request for a staff member
// to correct a note. Records are keyed by contact address: at most one
// record exists per address, and a newer outreach overwrites the prior one
// (last-outreach-wins). If replies ever become attributable to a specific
// shift, the key would need to grow to (address, shift id); today an SMS
// body carries no such marker, so the single-address key stands.
type RemediationRecord struct {
	Address     string            `json:"address"`
	StaffName   string            `json:"staff_name"`
	ClientLabel string            `json:"client"`
	ShiftID     string            `json:"shift_id"`
	AuditScore  AuditScore        `json:"audit_score"`
	RiskLevel   RiskLevel         `json:"risk_level"`
	MessageBody string            `json:"message_body"`
	Status      RemediationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	FixText     string            `json:"fix_text,omitempty"`
	FixAt       *time.Time        `json:"fix_at,omitempty"`
}

// Resolved reports whether a corrected note has been received.
func (r *RemediationRecord) Resolved() bool {
	return r.Status == StatusFixReceived
}

// FirstName returns the staff member's given name for message composition.
func (r *RemediationRecord) FirstName() string {
	fields := strings.Fields(r.StaffName)
	if len(fields) == 0 {
		return r.StaffName
	}
	return fields[0]
}
