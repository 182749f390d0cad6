// Package mail renders an inquiry into an outbound email and dispatches it
// over SMTP. Rendering and dispatch are separate so handlers can be tested
// without a mail account.
package mail

import (
	"context"
	"fmt"
	"html"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/tiertech/blueprint/internal/relay/config"
)

// Inquiry is the server-side view of one submitted draft. All fields are
// untrusted user input except Site and When, which are still escaped like
// everything else before embedding.
type Inquiry struct {
	Reasons   []string `json:"reasons"`
	Followups []string `json:"followups"`
	Message   string   `json:"message"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Site      string   `json:"site"`
	When      string   `json:"when"`
}

// Valid reports whether the required fields are present.
func (i Inquiry) Valid() bool {
	return i.Email != "" && i.Message != ""
}

// Subject renders the email subject from the submitted reasons.
func Subject(i Inquiry) string {
	if len(i.Reasons) == 0 {
		return "Website chat — Inquiry"
	}
	return "Website chat — " + strings.Join(i.Reasons, ", ")
}

// HTMLBody renders the structured email body. Every user-supplied value is
// HTML-escaped so markup in a message arrives as literal text.
func HTMLBody(i Inquiry) string {
	esc := html.EscapeString
	orDash := func(s string) string {
		if s == "" {
			return "—"
		}
		return s
	}
	var b strings.Builder
	b.WriteString("<h2>Website chat submission</h2>\n")
	fmt.Fprintf(&b, "<p><b>From:</b> %s &lt;%s&gt;</p>\n", esc(orDash(i.Name)), esc(i.Email))
	fmt.Fprintf(&b, "<p><b>Site:</b> %s</p>\n", esc(i.Site))
	fmt.Fprintf(&b, "<p><b>When:</b> %s</p>\n", esc(i.When))
	fmt.Fprintf(&b, "<p><b>Reasons:</b> %s</p>\n", esc(orDash(strings.Join(i.Reasons, ", "))))
	fmt.Fprintf(&b, "<p><b>Details:</b> %s</p>\n", esc(orDash(strings.Join(i.Followups, ", "))))
	b.WriteString("<p><b>Message:</b></p>\n")
	fmt.Fprintf(&b, "<pre style=\"white-space:pre-wrap;font-family:ui-monospace,Menlo,Consolas,monospace\">%s</pre>\n", esc(i.Message))
	return b.String()
}

// Sender dispatches one rendered inquiry.
type Sender interface {
	Send(ctx context.Context, i Inquiry) error
}

// SMTPSender sends through the configured SMTP account with STARTTLS. The
// envelope from is always the configured sending identity, never the
// visitor's address; the visitor is reachable via Reply-To.
type SMTPSender struct {
	cfg config.Config
}

// NewSMTPSender builds a sender from the relay config.
func NewSMTPSender(cfg config.Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, i Inquiry) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.Sender()); err != nil {
		return fmt.Errorf("mail: from address: %w", err)
	}
	if err := msg.To(s.cfg.SupportTo); err != nil {
		return fmt.Errorf("mail: to address: %w", err)
	}
	if err := msg.ReplyTo(i.Email); err != nil {
		return fmt.Errorf("mail: reply-to address: %w", err)
	}
	msg.Subject(Subject(i))
	msg.SetBodyString(gomail.TypeTextHTML, HTMLBody(i))

	client, err := gomail.NewClient(s.cfg.SMTPHost,
		gomail.WithPort(s.cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthLogin),
		gomail.WithUsername(s.cfg.SMTPUser),
		gomail.WithPassword(s.cfg.SMTPPass),
	)
	if err != nil {
		return fmt.Errorf("mail: smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}
