// Package domain contains core domain types for the Vigilant remediation workflow.
package domain

import (
	"strings"
)

// AuditScore is the compliance grade the classifier assigns to one note.
type AuditScore string

const (
	ScorePass     AuditScore = "PASS"
	ScoreFail     AuditScore = "FAIL"
	ScoreCritical AuditScore = "CRITICAL"
	ScoreError    AuditScore = "ERROR"
	ScoreSkipped  AuditScore = "SKIPPED"
)

// ParseAuditScore maps free text to a known score. Anything the classifier
// emits outside the enumerated set becomes ERROR so counting stays exhaustive.
func ParseAuditScore(s string) AuditScore {
	switch AuditScore(strings.ToUpper(strings.TrimSpace(s))) {
	case ScorePass:
		return ScorePass
	case ScoreFail:
		return ScoreFail
	case ScoreCritical:
		return ScoreCritical
	case ScoreSkipped:
		return ScoreSkipped
	default:
		return ScoreError
	}
}

// RiskLevel is the classifier's judgment of harm exposure in one note.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
	RiskNA     RiskLevel = "N/A"
	RiskError  RiskLevel = "ERROR"
)

// ParseRiskLevel maps free text to a known risk level, defaulting to ERROR.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	case RiskNA:
		return RiskNA
	default:
		return RiskError
	}
}

// Verdict is the structured compliance judgment produced by the classifier
// for a single progress note. Immutable once produced.
type Verdict struct {
	AuditScore                 AuditScore `json:"audit_score"`
	RiskLevel                  RiskLevel  `json:"risk_level"`
	LanguageScore              float64    `json:"language_score"`
	DetectedIncidents          []string   `json:"detected_incidents"`
	RestrictivePracticeWarning bool       `json:"restrictive_practice_warning"`
	CoachingSMS                string     `json:"coaching_sms"`
	Reasoning                  string     `json:"reasoning"`
}

// Flagged reports whether the verdict is severe enough to warrant outreach.
func (v Verdict) Flagged() bool {
	return v.AuditScore == ScoreFail || v.AuditScore == ScoreCritical || v.RiskLevel == RiskHigh
}

// NoteRef carries the metadata of the note a verdict was produced for.
type NoteRef struct {
	StaffName   string `json:"staff_name"`
	ClientLabel string `json:"client"`
	ShiftID     string `json:"shift_id"`
}
