package mailer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

//go:generate mockgen -destination=../../internal/domain/mocks/mock_mailer.go -package=mocks github.com/oseiserwaa/kitchen/pkg/mailer Mailer

// Mailer delivers a single rendered message
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// SMTPMailer sends through an SMTP relay with go-mail
type SMTPMailer struct {
	config   *Config
	testMode bool
}

func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{config: config}
}

// NewTestSMTPMailer builds messages but never dials
func NewTestSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{config: config, testMode: true}
}

// BuildMessage converts msg into a go-mail message with an HTML body and a
// plain text alternative
func (m *SMTPMailer) BuildMessage(msg Message) (*mail.Msg, error) {
	out := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if err := out.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return nil, fmt.Errorf("failed to set email from address: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("failed to set email recipient: %w", err)
	}
	out.Subject(msg.Subject)

	switch {
	case msg.HTML != "":
		out.SetBodyString(mail.TypeTextHTML, msg.HTML)
		if msg.Text != "" {
			out.AddAlternativeString(mail.TypeTextPlain, msg.Text)
		}
	default:
		out.SetBodyString(mail.TypeTextPlain, msg.Text)
	}
	return out, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out, err := m.BuildMessage(msg)
	if err != nil {
		return err
	}

	client, err := m.createSMTPClient()
	if err != nil {
		return err
	}
	if client == nil {
		return nil
	}

	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	if m.testMode {
		return nil, nil
	}

	clientOptions := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}

	// unauthenticated relays are allowed
	if m.config.SMTPUsername != "" && m.config.SMTPPassword != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}

// ConsoleMailer prints messages instead of sending them
type ConsoleMailer struct {
	out io.Writer
}

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{out: os.Stdout}
}

func NewConsoleMailerWithWriter(w io.Writer) *ConsoleMailer {
	return &ConsoleMailer{out: w}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	body := msg.Text
	if body == "" {
		body = msg.HTML
	}
	rule := strings.Repeat("=", 62)
	_, err := fmt.Fprintf(m.out, "%s\nTo: %s\nSubject: %s\n\n%s\n%s\n", rule, msg.To, msg.Subject, body, rule)
	return err
}
