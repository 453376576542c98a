package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vigilant-ai/vigilant/internal/domain"
	"github.com/vigilant-ai/vigilant/internal/reconcile"
	"github.com/vigilant-ai/vigilant/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, store.Repository) {
	t.Helper()
	dir := t.TempDir()

	repo, err := store.NewSQLite(filepath.Join(dir, "vigilant.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	rec := reconcile.New(repo, reconcile.NewFixLog(filepath.Join(dir, "fix_history.log")))

	r := chi.NewRouter()
	NewHandler(repo, rec).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, repo
}

func postReply(t *testing.T, srv *httptest.Server, from, body string) *http.Response {
	t.Helper()
	form := url.Values{"From": {from}, "Body": {body}}
	resp, err := http.PostForm(srv.URL+"/sms-reply", form)
	if err != nil {
		t.Fatalf("POST /sms-reply failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(data)
}

func TestSMSReplyResolved(t *testing.T) {
	t.Parallel()
	srv, repo := newTestServer(t)

	err := repo.PutRemediation(context.Background(), &domain.RemediationRecord{
		Address:     "+61412345678",
		StaffName:   "Sarah Jenkins",
		ClientLabel: "Liam H. (Participant)",
		ShiftID:     "SC-1001",
		AuditScore:  domain.ScoreCritical,
		RiskLevel:   domain.RiskHigh,
		MessageBody: "Call your supervisor.",
		Status:      domain.StatusAwaitingReply,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("PutRemediation failed: %v", err)
	}

	resp := postReply(t, srv, "+61412345678", "Fixed, added the fall report.")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/xml" {
		t.Errorf("Content-Type = %q, want application/xml", ct)
	}

	body := readBody(t, resp)
	want := "<Message>Thanks Sarah! Your updated note for Liam H. (Participant) (Shift SC-1001) has been received. Record updated.</Message>"
	if !strings.Contains(body, want) {
		t.Errorf("ack body = %q, want it to contain %q", body, want)
	}

	got, err := repo.GetRemediation(context.Background(), "+61412345678")
	if err != nil {
		t.Fatalf("GetRemediation failed: %v", err)
	}
	if got.Status != domain.StatusFixReceived || got.FixText != "Fixed, added the fall report." {
		t.Errorf("record after reply = %+v", got)
	}
}

func TestSMSReplyNoMatch(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	resp := postReply(t, srv, "+61499999999", "Who is this?")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 even for unknown senders", resp.StatusCode)
	}

	body := readBody(t, resp)
	if !strings.Contains(body, "<Message>Vigilant AI: No pending audits found for your number.</Message>") {
		t.Errorf("ack body = %q", body)
	}
}

func TestPendingEndpoint(t *testing.T) {
	t.Parallel()
	srv, repo := newTestServer(t)

	err := repo.PutRemediation(context.Background(), &domain.RemediationRecord{
		Address:   "+61412345678",
		StaffName: "Sarah Jenkins",
		ShiftID:   "SC-1001",
		Status:    domain.StatusAwaitingReply,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("PutRemediation failed: %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/pending")
	if err != nil {
		t.Fatalf("GET /api/pending failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var records map[string]*domain.RemediationRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("decode pending response: %v", err)
	}
	if len(records) != 1 || records["+61412345678"] == nil {
		t.Fatalf("records = %+v", records)
	}
	if records["+61412345678"].StaffName != "Sarah Jenkins" {
		t.Errorf("record = %+v", records["+61412345678"])
	}
}

func TestConversationsEndpoint(t *testing.T) {
	t.Parallel()
	srv, repo := newTestServer(t)

	err := repo.AppendMessage(context.Background(), &domain.ConversationMessage{
		ID:        "SIM-1",
		Address:   "+61412345678",
		Direction: domain.DirectionOutbound,
		Body:      "Please revise your note.",
		StaffName: "Sarah Jenkins",
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("AppendMessage failed: %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/conversations")
	if err != nil {
		t.Fatalf("GET /api/conversations failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var convs []domain.Conversation
	if err := json.NewDecoder(resp.Body).Decode(&convs); err != nil {
		t.Fatalf("decode conversations response: %v", err)
	}
	if len(convs) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(convs))
	}
	if convs[0].Address != "+61412345678" || len(convs[0].Messages) != 1 {
		t.Errorf("conversation = %+v", convs[0])
	}
}
