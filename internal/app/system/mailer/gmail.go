package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"gopkg.in/gomail.v2"
)

const (
	gmailHost = "smtp.gmail.com"
	gmailPort = 587
)

// GmailConfig holds the OAuth2 client and refresh token of the sending
// Google account.
type GmailConfig struct {
	User         string
	ClientID     string
	ClientSecret string
	RefreshToken string
	From         Address
}

// Gmail sends through Gmail SMTP, authenticating with XOAUTH2 and an access
// token refreshed from the configured refresh token.
type Gmail struct {
	user   string
	from   Address
	tokens oauth2.TokenSource
}

func NewGmail(cfg GmailConfig) (*Gmail, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, errors.New("gmail transport needs client id, client secret and refresh token")
	}
	if cfg.User == "" {
		cfg.User = cfg.From.Email
	}
	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoints.Google,
		Scopes:       []string{"https://mail.google.com/"},
	}
	ts := conf.TokenSource(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken})
	return &Gmail{user: cfg.User, from: cfg.From, tokens: ts}, nil
}

// Send refreshes the access token and delivers e. Both steps run under ctx
// so a stalled token endpoint cannot outlive the caller's deadline.
func (g *Gmail) Send(ctx context.Context, e Email) error {
	msg := buildMessage(g.from, e)
	return runWithContext(ctx, func() error {
		tok, err := g.tokens.Token()
		if err != nil {
			return fmt.Errorf("gmail access token: %w", err)
		}
		d := gomail.NewDialer(gmailHost, gmailPort, g.user, "")
		d.Auth = xoauth2{user: g.user, token: tok.AccessToken}
		if err := d.DialAndSend(msg); err != nil {
			return fmt.Errorf("gmail send: %w", err)
		}
		return nil
	})
}

// xoauth2 implements the SASL XOAUTH2 mechanism Gmail accepts in place of a
// password.
type xoauth2 struct {
	user  string
	token string
}

func (a xoauth2) Start(*smtp.ServerInfo) (string, []byte, error) {
	resp := "user=" + a.user + "\x01auth=Bearer " + a.token + "\x01\x01"
	return "XOAUTH2", []byte(resp), nil
}

// Next is only called when the server rejects the token; its challenge
// carries the error detail.
func (a xoauth2) Next(fromServer []byte, more bool) ([]byte, error) {
	if more {
		return nil, fmt.Errorf("xoauth2 rejected: %s", fromServer)
	}
	return nil, nil
}
