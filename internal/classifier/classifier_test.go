package classifier

import (
	"errors"
	"testing"

	"github.com/vigilant-ai/vigilant/internal/domain"
)

func TestTrivialNote(t *testing.T) {
	cases := map[string]bool{
		"":        true,
		"   ":     true,
		"ok":      true,
		"nan":     true,
		"NaN":     true,
		"Quiet shift, no incidents.": false,
	}
	for input, want := range cases {
		if got := TrivialNote(input); got != want {
			t.Errorf("TrivialNote(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestSyntheticVerdicts(t *testing.T) {
	errV := ErrorVerdict("API error")
	if errV.AuditScore != domain.ScoreError || errV.RiskLevel != domain.RiskError {
		t.Errorf("ErrorVerdict = %+v", errV)
	}
	if errV.LanguageScore != 0 {
		t.Errorf("ErrorVerdict language score = %v, want 0", errV.LanguageScore)
	}

	skipV := SkippedVerdict("Note empty or too short")
	if skipV.AuditScore != domain.ScoreSkipped || skipV.RiskLevel != domain.RiskNA {
		t.Errorf("SkippedVerdict = %+v", skipV)
	}
}

func TestDecodeVerdict(t *testing.T) {
	raw := `{
		"audit_score": "critical",
		"risk_level": "high",
		"language_score": 4.5,
		"detected_incidents": ["fall", "unreported injury"],
		"restrictive_practice_warning": false,
		"coaching_sms": "Call your supervisor.",
		"reasoning": "Fall not reported as incident."
	}`

	v, err := decodeVerdict(raw)
	if err != nil {
		t.Fatalf("decodeVerdict failed: %v", err)
	}
	if v.AuditScore != domain.ScoreCritical {
		t.Errorf("AuditScore = %q, want CRITICAL", v.AuditScore)
	}
	if v.RiskLevel != domain.RiskHigh {
		t.Errorf("RiskLevel = %q, want HIGH", v.RiskLevel)
	}
	if len(v.DetectedIncidents) != 2 {
		t.Errorf("DetectedIncidents = %v", v.DetectedIncidents)
	}
	if v.CoachingSMS != "Call your supervisor." {
		t.Errorf("CoachingSMS = %q", v.CoachingSMS)
	}
}

func TestDecodeVerdictUnknownEnums(t *testing.T) {
	v, err := decodeVerdict(`{"audit_score": "SPLENDID", "risk_level": "MAYBE"}`)
	if err != nil {
		t.Fatalf("decodeVerdict failed: %v", err)
	}
	if v.AuditScore != domain.ScoreError {
		t.Errorf("unknown audit score should collapse to ERROR, got %q", v.AuditScore)
	}
	if v.RiskLevel != domain.RiskError {
		t.Errorf("unknown risk level should collapse to ERROR, got %q", v.RiskLevel)
	}
}

func TestDecodeVerdictParseFailure(t *testing.T) {
	_, err := decodeVerdict(`{"audit_score": `)
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}

	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if cerr.Kind != ParseFailure {
		t.Errorf("Kind = %v, want ParseFailure", cerr.Kind)
	}
}
