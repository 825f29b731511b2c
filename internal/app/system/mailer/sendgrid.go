package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGrid sends through the SendGrid v3 API.
type SendGrid struct {
	key  string
	from *sgmail.Email
}

func NewSendGrid(key string, from Address) *SendGrid {
	return &SendGrid{key: key, from: sgmail.NewEmail(from.Name, from.Email)}
}

func (s *SendGrid) prepare(e Email) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = e.Subject
	p.AddTos(sgmail.NewEmail("", e.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	if e.ReplyTo != "" {
		m.SetReplyTo(sgmail.NewEmail("", e.ReplyTo))
	}
	if e.TextBody != "" {
		m.AddContent(sgmail.NewContent("text/plain", e.TextBody))
	}
	if e.HTMLBody != "" {
		m.AddContent(sgmail.NewContent("text/html", e.HTMLBody))
	}
	return m
}

func (s *SendGrid) Send(ctx context.Context, e Email) error {
	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(e))

	return runWithContext(ctx, func() error {
		res, err := sendgrid.API(req)
		if err != nil {
			return fmt.Errorf("sendgrid: %w", err)
		}
		if res.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
		}
		return nil
	})
}
