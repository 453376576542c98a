// Package classifier provides the gateway to the LLM note classifier.
package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/vigilant-ai/vigilant/internal/domain"
)

// Gateway audits one progress note against its referenced goals and returns
// a structured verdict. Implementations wrap a remote model; callers must
// recover any error into a synthetic ERROR verdict so batch counting stays
// consistent.
type Gateway interface {
	Audit(ctx context.Context, noteText, goalsText string) (domain.Verdict, error)
}

// ErrorKind distinguishes how a classifier call failed.
type ErrorKind int

const (
	// ParseFailure means the model responded but not with a decodable verdict.
	ParseFailure ErrorKind = iota
	// TransportFailure means the model could not be reached or errored.
	TransportFailure
)

func (k ErrorKind) String() string {
	if k == ParseFailure {
		return "parse failure"
	}
	return "transport failure"
}

// Error wraps a classifier failure with its kind.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("classifier %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// minNoteLength is the threshold below which a note is considered trivial.
const minNoteLength = 5

// TrivialNote reports whether a note should bypass the classifier entirely
// and receive a synthetic SKIPPED verdict.
func TrivialNote(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "" || len(trimmed) < minNoteLength || strings.EqualFold(trimmed, "nan")
}

// ErrorVerdict builds the synthetic verdict substituted when a classifier
// call fails.
func ErrorVerdict(reason string) domain.Verdict {
	return domain.Verdict{
		AuditScore:    domain.ScoreError,
		RiskLevel:     domain.RiskError,
		LanguageScore: 0,
		Reasoning:     reason,
	}
}

// SkippedVerdict builds the synthetic verdict for notes that never reach
// the classifier.
func SkippedVerdict(reason string) domain.Verdict {
	return domain.Verdict{
		AuditScore: domain.ScoreSkipped,
		RiskLevel:  domain.RiskNA,
		Reasoning:  reason,
	}
}
