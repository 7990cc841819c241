package notification

import (
	"context"

	"github.com/resend/resend-go/v2"

	"github.com/aitoolbox/gatekeeper/internal/errors"
)

// ResendDispatcher delivers messages through the Resend HTTP API.
type ResendDispatcher struct {
	client *resend.Client
	from   string
}

// NewResendDispatcher creates a new ResendDispatcher.
func NewResendDispatcher(apiKey, from string) *ResendDispatcher {
	return &ResendDispatcher{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Dispatch renders the message and sends it as a single email.
func (d *ResendDispatcher) Dispatch(ctx context.Context, msg Message) error {
	subject, html, err := Render(msg)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    d.from,
		To:      []string{msg.To},
		Subject: subject,
		Html:    html,
	}
	if _, err := d.client.Emails.SendWithContext(ctx, params); err != nil {
		return errors.Wrap(err, "failed to send email via resend")
	}

	return nil
}
