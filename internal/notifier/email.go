package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"sukasamasuka/internal/config"
)

type EmailMessage struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// EmailSender abstracts delivery so tests can swap in a stub.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type SMTPClient struct {
	addr string
	auth smtp.Auth
}

func NewSMTPClient(cfg config.SMTPConfig) *SMTPClient {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPClient{addr: addr, auth: auth}
}

func (c *SMTPClient) Send(ctx context.Context, msg EmailMessage) error {
	return smtp.SendMail(c.addr, c.auth, extractAddress(msg.From), msg.To, []byte(buildEmailData(msg)))
}

// MatchEmail builds the notification sent when a user's job post gains new
// matches since the last check.
func MatchEmail(cfg config.SMTPConfig, to, recipientName, jobTitle, jobGrade string, count int) EmailMessage {
	from := cfg.From
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From)
	}

	greeting := "Hi"
	if recipientName != "" {
		greeting = "Hi " + recipientName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s,\n\n", greeting)
	fmt.Fprintf(&b, "We've found %d new match(es) for your job post: %s (%s).\n\n", count, jobTitle, jobGrade)
	b.WriteString("Log in to see who you can swap with and send a connect request.\n")

	return EmailMessage{
		From:    from,
		To:      []string{to},
		Subject: "You have new swap matches!",
		Body:    b.String(),
	}
}

func buildEmailData(msg EmailMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ","))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Body)
	return b.String()
}

func extractAddress(from string) string {
	if i := strings.IndexByte(from, '<'); i >= 0 {
		if j := strings.IndexByte(from[i:], '>'); j > 0 {
			return from[i+1 : i+j]
		}
	}
	return from
}
