package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dalemusser/auxilium/internal/app/system/htmlsanitize"
)

// ContactNotice holds a submitted contact form for the notification email.
type ContactNotice struct {
	Name        string
	Email       string
	Mobile      string
	Subject     string
	Message     string
	SubmittedAt time.Time
}

const notAvailable = "N/A"

// ContactNotification builds the email sent to the school for each contact
// form submission. To is left for the caller.
func ContactNotification(n ContactNotice) Email {
	subject := n.Subject
	if strings.TrimSpace(subject) == "" {
		subject = "No Subject"
	}
	return Email{
		ReplyTo:  n.Email,
		Subject:  "New Contact Message: " + subject,
		TextBody: buildContactText(n),
		HTMLBody: buildContactHTML(n),
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

func buildContactText(n ContactNotice) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Name: %s\n", n.Name)
	fmt.Fprintf(&buf, "Email: %s\n", n.Email)
	fmt.Fprintf(&buf, "Mobile: %s\n", orNA(n.Mobile))
	fmt.Fprintf(&buf, "Subject: %s\n\n", orNA(n.Subject))
	buf.WriteString("Message:\n")
	buf.WriteString(n.Message + "\n\n")
	fmt.Fprintf(&buf, "Submitted on: %s\n", n.SubmittedAt.Format(time.RFC1123))
	return buf.String()
}

var contactTmpl = template.Must(template.New("contact").Parse(contactHTMLTemplate))

type contactView struct {
	Name        string
	Email       string
	Mobile      string
	Subject     string
	Message     template.HTML
	SubmittedAt string
}

func buildContactHTML(n ContactNotice) string {
	var buf bytes.Buffer
	_ = contactTmpl.Execute(&buf, contactView{
		Name:        n.Name,
		Email:       n.Email,
		Mobile:      orNA(n.Mobile),
		Subject:     orNA(n.Subject),
		Message:     htmlsanitize.PlainTextToHTML(n.Message),
		SubmittedAt: n.SubmittedAt.Format(time.RFC1123),
	})
	return buf.String()
}

const contactHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>New Contact Message</title>
</head>
<body style="margin: 0; padding: 24px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; margin: 0 auto; background-color: #ffffff; border-radius: 8px;">
    <tr>
      <td style="padding: 24px 32px; border-bottom: 1px solid #e5e7eb;">
        <h1 style="margin: 0; font-size: 20px; color: #1e3a8a;">Auxilium School: new contact message</h1>
      </td>
    </tr>
    <tr>
      <td style="padding: 24px 32px; font-size: 15px; color: #374151; line-height: 1.5;">
        <p style="margin: 0 0 8px;"><strong>Name:</strong> {{.Name}}</p>
        <p style="margin: 0 0 8px;"><strong>Email:</strong> {{.Email}}</p>
        <p style="margin: 0 0 8px;"><strong>Mobile:</strong> {{.Mobile}}</p>
        <p style="margin: 0 0 16px;"><strong>Subject:</strong> {{.Subject}}</p>
        <p style="margin: 0 0 8px;"><strong>Message:</strong></p>
        <p style="margin: 0 0 16px;">{{.Message}}</p>
        <p style="margin: 0; font-size: 12px; color: #9ca3af;">Submitted on: {{.SubmittedAt}}</p>
      </td>
    </tr>
  </table>
</body>
</html>`
