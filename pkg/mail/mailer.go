package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/greenacres/greenacres-backend/pkg/config"
	"github.com/greenacres/greenacres-backend/pkg/logger"
)

// ErrNoTransport signals that neither sandbox SMTP nor the send API is configured.
var ErrNoTransport = errors.New("no mail transport configured")

// Message is a single outbound HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender is the surface services depend on for outbound mail.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type transport interface {
	send(ctx context.Context, from fromAddress, msg Message) error
	name() string
}

type fromAddress struct {
	Email string
	Name  string
}

// Mailer delivers HTML email through Mailtrap. Sandbox SMTP credentials take
// priority over the send API token; the transport is resolved once on first
// use and cached for the life of the process.
type Mailer struct {
	cfg  config.MailtrapConfig
	logg *logger.Logger

	once      sync.Once
	active    transport
	resolveTr error
}

// New constructs a Mailer from the Mailtrap configuration.
func New(cfg config.MailtrapConfig, logg *logger.Logger) *Mailer {
	return &Mailer{cfg: cfg, logg: logg}
}

// Send delivers the message through the resolved transport.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("recipient is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return fmt.Errorf("subject is required")
	}

	tr, err := m.transport(ctx)
	if err != nil {
		return err
	}

	from := fromAddress{Email: m.cfg.FromEmail, Name: m.cfg.FromName}
	if err := tr.send(ctx, from, msg); err != nil {
		return fmt.Errorf("%s transport: %w", tr.name(), err)
	}
	return nil
}

func (m *Mailer) transport(ctx context.Context) (transport, error) {
	m.once.Do(func() {
		m.active, m.resolveTr = resolveTransport(m.cfg)
		if m.resolveTr == nil && m.logg != nil {
			m.logg.Info(m.logg.WithField(ctx, "transport", m.active.name()), "mail transport resolved")
		}
	})
	return m.active, m.resolveTr
}

func resolveTransport(cfg config.MailtrapConfig) (transport, error) {
	if cfg.HasSandbox() {
		return &smtpTransport{
			host: cfg.SMTPHost,
			port: cfg.SMTPPort,
			user: cfg.SMTPUser,
			pass: cfg.SMTPPass,
		}, nil
	}
	if cfg.HasAPI() {
		return &apiTransport{
			url:    cfg.APIURL,
			token:  cfg.APIToken,
			client: &http.Client{Timeout: 15 * time.Second},
		}, nil
	}
	return nil, ErrNoTransport
}

type smtpTransport struct {
	host string
	port int
	user string
	pass string
}

func (t *smtpTransport) name() string { return "sandbox-smtp" }

func (t *smtpTransport) send(_ context.Context, from fromAddress, msg Message) error {
	addr := fmt.Sprintf("%s:%d", t.host, t.port)
	auth := smtp.PlainAuth("", t.user, t.pass, t.host)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", from.Name, from.Email)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	return smtp.SendMail(addr, auth, from.Email, []string{msg.To}, []byte(b.String()))
}

type apiTransport struct {
	url    string
	token  string
	client *http.Client
}

func (t *apiTransport) name() string { return "send-api" }

type apiAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type apiPayload struct {
	From    apiAddress   `json:"from"`
	To      []apiAddress `json:"to"`
	Subject string       `json:"subject"`
	HTML    string       `json:"html"`
}

func (t *apiTransport) send(ctx context.Context, from fromAddress, msg Message) error {
	payload := apiPayload{
		From:    apiAddress{Email: from.Email, Name: from.Name},
		To:      []apiAddress{{Email: msg.To}},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.token)

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
