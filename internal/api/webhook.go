package api

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vigilant-ai/vigilant/internal/conversation"
	"github.com/vigilant-ai/vigilant/internal/reconcile"
)

// twiml is the minimal TwiML document the SMS gateway expects back from a
// message webhook.
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// SMSReply handles an inbound SMS reply. The gateway is always acknowledged
// with a reply body: a confirmation when a pending fix was resolved, a "no
// pending audits" notice when the sender is unknown.
func (h *Handler) SMSReply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Error(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	sender := r.FormValue("From")
	body := r.FormValue("Body")
	slog.Info("inbound sms", "from", sender)

	res, err := h.rec.Receive(r.Context(), sender, body)
	if err != nil {
		slog.Error("failed to reconcile inbound reply", "from", sender, "error", err)
		Error(w, http.StatusInternalServerError, "failed to process reply")
		return
	}

	writeTwiML(w, ackBody(res))
}

func ackBody(res reconcile.Result) string {
	if res.Outcome == reconcile.OutcomeNoMatch {
		return "Vigilant AI: No pending audits found for your number."
	}

	first := res.StaffName
	if fields := strings.Fields(first); len(fields) > 0 {
		first = fields[0]
	}
	return fmt.Sprintf("Thanks %s! Your updated note for %s (Shift %s) has been received. Record updated.",
		first, res.ClientLabel, res.ShiftID)
}

func writeTwiML(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)

	out, err := xml.Marshal(twiml{Message: message})
	if err != nil {
		slog.Error("failed to marshal twiml response", "error", err)
		return
	}
	if _, err := w.Write(append([]byte(xml.Header), out...)); err != nil {
		slog.Warn("failed to write twiml response", "error", err)
	}
}

// Conversations returns the full conversation read model.
func (h *Handler) Conversations(w http.ResponseWriter, r *http.Request) {
	convs, err := conversation.Load(r.Context(), h.repo)
	if err != nil {
		slog.Error("failed to load conversations", "error", err)
		Error(w, http.StatusInternalServerError, "failed to load conversations")
		return
	}
	JSON(w, http.StatusOK, convs)
}

// Pending returns every remediation record keyed by address.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.AllRemediations(r.Context())
	if err != nil {
		slog.Error("failed to load remediation records", "error", err)
		Error(w, http.StatusInternalServerError, "failed to load pending fixes")
		return
	}
	JSON(w, http.StatusOK, records)
}
