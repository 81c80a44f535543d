package mail

import (
	"fmt"
	netmail "net/mail"
	"regexp"
	"strings"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/passgate/passgate/internal/config"
)

// ErrComposition marks a message that cannot be built, typically because an
// address is malformed.
var ErrComposition = fmt.Errorf("mail: cannot compose message")

// markupPattern matches runs of adjacent tags so the plain-text part keeps at
// most one separator between them.
var markupPattern = regexp.MustCompile(`(?s)<[^>]*>(\s*<[^>]*>)*`)

// Vars is the fixed set of substitutions available to the subject and body
// templates.
type Vars struct {
	PlayerName string
	ServerName string
	Password   string
}

// Message is one composed notification with both body representations. The
// HTML part is rendered from the configured template; the plain part is
// derived from it by stripping markup.
type Message struct {
	From     string
	FromName string
	To       string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
	Date     time.Time
}

// Compose renders the configured templates with vars and packages the result
// as a message addressed from the configured sender to the recipient. The send
// timestamp is the composition time.
func Compose(recipient, recipientName string, vars Vars, cfg config.Mail) (*Message, error) {
	if _, err := netmail.ParseAddress(cfg.Account); err != nil {
		return nil, fmt.Errorf("%w: sender address %q: %v", ErrComposition, cfg.Account, err)
	}
	if _, err := netmail.ParseAddress(recipient); err != nil {
		return nil, fmt.Errorf("%w: recipient address %q: %v", ErrComposition, recipient, err)
	}

	subject, err := render("subject", cfg.Subject, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrComposition, err)
	}
	htmlBody, err := render("body", cfg.Body, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrComposition, err)
	}

	return &Message{
		From:     cfg.Account,
		FromName: cfg.SenderName,
		To:       recipient,
		ToName:   recipientName,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: StripMarkup(htmlBody),
		Date:     time.Now(),
	}, nil
}

// StripMarkup derives the plain-text representation from an HTML body by
// replacing tag runs with a single space.
func StripMarkup(html string) string {
	return markupPattern.ReplaceAllString(html, " ")
}

func render(name, text string, vars Vars) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return sb.String(), nil
}

// toGomail converts to the wire message. The plain part is added first so
// clients that understand multipart/alternative prefer the HTML part.
func (m *Message) toGomail() *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.From, m.FromName)
	msg.SetAddressHeader("To", m.To, m.ToName)
	msg.SetHeader("Subject", m.Subject)
	msg.SetDateHeader("Date", m.Date)
	msg.SetBody("text/plain", m.TextBody)
	msg.AddAlternative("text/html", m.HTMLBody)
	return msg
}
