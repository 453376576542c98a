package channel

import (
	"context"
	"log/slog"
	"time"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/vigilant-ai/vigilant/internal/store"
)

// Twilio delivers messages through the Twilio SMS gateway.
type Twilio struct {
	client *twilio.RestClient
	from   string
	repo   store.Repository
	now    func() time.Time
}

// NewTwilio creates a live SMS channel sending from the given number.
func NewTwilio(accountSID, authToken, from string, repo store.Repository) *Twilio {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Twilio{client: client, from: from, repo: repo, now: time.Now}
}

// Send delivers one SMS and logs the outbound message with the gateway SID.
func (t *Twilio) Send(ctx context.Context, address, body, staffName string) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(address)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", &Error{Address: address, Err: err}
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}

	// The SMS is already out at this point. The append failure is a store
	// write failure, not a delivery failure, so it is not wrapped as *Error.
	if err := logOutbound(ctx, t.repo, sid, address, body, staffName, t.now()); err != nil {
		slog.Error("sms delivered but outbound log append failed", "sid", sid, "address", address, "error", err)
		return sid, err
	}
	return sid, nil
}
