package classifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/vigilant-ai/vigilant/internal/domain"
)

// Anthropic implements Gateway against the Anthropic Messages API. The
// grading rubric travels as the system prompt and the assistant turn is
// prefilled with "{" to force a JSON-object completion.
type Anthropic struct {
	client anthropic.Client
	model  anthropic.Model
	system string
}

// NewAnthropic creates a classifier gateway for the given model and rubric.
func NewAnthropic(apiKey, model, systemPrompt string) *Anthropic {
	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
		system: systemPrompt,
	}
}

// Audit grades a single note. Transport failures and undecodable responses
// are reported as *Error with the matching kind; callers substitute a
// synthetic ERROR verdict either way.
func (a *Anthropic) Audit(ctx context.Context, noteText, goalsText string) (domain.Verdict, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: a.system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(fmt.Sprintf("Note: %s\nGoals: %s", noteText, goalsText))),
			anthropic.NewAssistantMessage(anthropic.NewTextBlock("{")),
		},
	})
	if err != nil {
		return domain.Verdict{}, &Error{Kind: TransportFailure, Err: err}
	}
	if len(msg.Content) == 0 {
		return domain.Verdict{}, &Error{Kind: ParseFailure, Err: fmt.Errorf("empty response")}
	}

	// The response text is everything after the prefilled "{".
	return decodeVerdict("{" + msg.Content[0].Text)
}

// decodeVerdict parses the model's JSON verdict into the typed domain sum.
// Score and risk strings outside the enumerated sets collapse to ERROR
// rather than being silently carried through.
func decodeVerdict(raw string) (domain.Verdict, error) {
	var wire struct {
		AuditScore                 string   `json:"audit_score"`
		RiskLevel                  string   `json:"risk_level"`
		LanguageScore              float64  `json:"language_score"`
		DetectedIncidents          []string `json:"detected_incidents"`
		RestrictivePracticeWarning bool     `json:"restrictive_practice_warning"`
		CoachingSMS                string   `json:"coaching_sms"`
		Reasoning                  string   `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return domain.Verdict{}, &Error{Kind: ParseFailure, Err: err}
	}

	return domain.Verdict{
		AuditScore:                 domain.ParseAuditScore(wire.AuditScore),
		RiskLevel:                  domain.ParseRiskLevel(wire.RiskLevel),
		LanguageScore:              wire.LanguageScore,
		DetectedIncidents:          wire.DetectedIncidents,
		RestrictivePracticeWarning: wire.RestrictivePracticeWarning,
		CoachingSMS:                wire.CoachingSMS,
		Reasoning:                  wire.Reasoning,
	}, nil
}
