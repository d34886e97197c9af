package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	mail "github.com/go-mail/mail"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/config"
)

// Attachment is an in-memory file attached to a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// OrderConfirmationData fills the order confirmation template.
type OrderConfirmationData struct {
	To           string
	CustomerName string
	OrderNumber  string
	Total        string
	Items        []OrderConfirmationItem
	PDF          *Attachment
}

type OrderConfirmationItem struct {
	Name     string
	Quantity int
	Total    string
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error
}

var orderConfirmationTmpl = template.Must(template.New("order").Parse(`<p>Hello {{.CustomerName}},</p>
<p>thank you for your order <strong>{{.OrderNumber}}</strong>.</p>
<table>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Total}}</td></tr>
{{end}}</table>
<p>Total: <strong>{{.Total}}</strong></p>`))

type smtpEmailService struct {
	dialer *mail.Dialer
	from   string
}

// NewSMTPEmailService sends mail through a plain SMTP relay.
func NewSMTPEmailService(cfg config.SMTPConfig) EmailService {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.Timeout = 10 * time.Second
	if cfg.Username == "" {
		d.StartTLSPolicy = mail.OpportunisticStartTLS
	}
	return &smtpEmailService{dialer: d, from: cfg.From}
}

func (s *smtpEmailService) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	var body bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render order confirmation: %w", err)
	}

	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", data.To)
	m.SetHeader("Subject", fmt.Sprintf("Your order %s", data.OrderNumber))
	m.SetBody("text/plain", fmt.Sprintf("Thank you for your order %s. Total: %s", data.OrderNumber, data.Total))
	m.AddAlternative("text/html", body.String())

	if data.PDF != nil {
		m.AttachReader(data.PDF.Filename, bytes.NewReader(data.PDF.Content))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send order confirmation to %s: %w", data.To, err)
	}

	log.Info().Str("to", data.To).Str("order_number", data.OrderNumber).Msg("order confirmation sent")
	return nil
}
