package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"
	"time"

	"selvatours/internal/shared/config"
	"selvatours/pkg/logger"
)

// EmailService delivers notifications over SMTP.
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, replyTo, subject, htmlBody, textBody string) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

func NewSMTPConfig(cfg *config.Config) *SMTPConfig {
	return &SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    true,
		Timeout:   30 * time.Second,
	}
}

func (c *SMTPConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if c.Username == "" {
		return fmt.Errorf("SMTP username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("SMTP password is required")
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// bookingRequestTemplate renders the email the operator inbox receives for
// each confirmed booking request. Template data keys match the relay
// payload field names.
const bookingRequestTemplate = `
<h2>New booking request</h2>
<p>A customer has requested a booking through the website.</p>
<table cellpadding="4" cellspacing="0" border="0">
  <tr><td><strong>Name</strong></td><td>{{.from_name}}</td></tr>
  <tr><td><strong>Email</strong></td><td>{{.customer_email}}</td></tr>
  <tr><td><strong>Phone</strong></td><td>{{.customer_phone}}</td></tr>
  <tr><td><strong>Service</strong></td><td>{{.tour_name}}</td></tr>
  <tr><td><strong>Start time</strong></td><td>{{.tour_time}}</td></tr>
  <tr><td><strong>Pickup time</strong></td><td>{{.pickup_time}}</td></tr>
  <tr><td><strong>Pickup location</strong></td><td>{{.pickup_location}}</td></tr>
  <tr><td><strong>Guests</strong></td><td>{{.guests}}</td></tr>
  <tr><td><strong>Total price</strong></td><td>${{printf "%.2f" .total_price}}</td></tr>
  <tr><td><strong>Date</strong></td><td>{{.booking_date}}</td></tr>
  <tr><td><strong>Service type</strong></td><td>{{.service_type}}</td></tr>
</table>
{{if .message}}<p><strong>Message:</strong> {{.message}}</p>{{end}}
<p>Confirmation ID: {{.confirmation_id}}</p>
`

type smtpEmailService struct {
	config   *SMTPConfig
	template *template.Template
	logger   *logger.Logger
}

func NewSMTPEmailService(config *SMTPConfig) (EmailService, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}

	tmpl, err := template.New("booking_request").Parse(bookingRequestTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse booking request template: %w", err)
	}

	return &smtpEmailService{
		config:   config,
		template: tmpl,
		logger:   logger.GetDefault(),
	}, nil
}

func (s *smtpEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	s.logger.Info("📧 Sending notification",
		"type", notification.Type,
		"recipient", notification.RecipientEmail,
	)

	htmlBody, textBody, err := s.generateContent(notification)
	if err != nil {
		return fmt.Errorf("failed to generate email content: %w", err)
	}

	return s.SendHTML(ctx, notification.RecipientEmail, notification.ReplyTo, notification.Subject, htmlBody, textBody)
}

func (s *smtpEmailService) SendHTML(ctx context.Context, to, replyTo, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, replyTo, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("📧 Email sent", "recipient", to)
	return nil
}

func (s *smtpEmailService) generateContent(notification *EmailNotification) (string, string, error) {
	switch notification.Type {
	case NotificationTypeBookingRequest:
		var htmlBuf bytes.Buffer
		if err := s.template.Execute(&htmlBuf, notification.TemplateData); err != nil {
			return "", "", err
		}

		data := notification.TemplateData
		textBody := fmt.Sprintf(
			"New booking request\n\nName: %v\nEmail: %v\nPhone: %v\nService: %v\nStart time: %v\nPickup time: %v\nPickup location: %v\nGuests: %v\nTotal price: $%.2f\nDate: %v\nService type: %v\nMessage: %v\n\nConfirmation ID: %v",
			data["from_name"],
			data["customer_email"],
			data["customer_phone"],
			data["tour_name"],
			data["tour_time"],
			data["pickup_time"],
			data["pickup_location"],
			data["guests"],
			data["total_price"],
			data["booking_date"],
			data["service_type"],
			data["message"],
			data["confirmation_id"],
		)
		return htmlBuf.String(), textBody, nil

	default:
		return "", "", fmt.Errorf("unsupported notification type: %s", notification.Type)
	}
}

// sendWithSTARTTLS connects in plaintext and upgrades, which is what most
// providers expect on port 587.
func (s *smtpEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.config.Host,
	}
	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}

func (s *smtpEmailService) buildMessage(to, replyTo, subject, htmlBody, textBody string) []byte {
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	if replyTo != "" {
		fmt.Fprintf(&msg, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%s\r\n", boundary)
	msg.WriteString("\r\n")

	if textBody != "" {
		fmt.Fprintf(&msg, "--%s\r\n", boundary)
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		msg.WriteString(textBody + "\r\n")
	}
	if htmlBody != "" {
		fmt.Fprintf(&msg, "--%s\r\n", boundary)
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		msg.WriteString(htmlBody + "\r\n")
	}
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	return msg.Bytes()
}

// MockEmailService logs instead of sending, for local development without
// SMTP credentials.
type MockEmailService struct {
	logger *logger.Logger
}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{logger: logger.GetDefault()}
}

func (s *MockEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	s.logger.Info("📧 [MOCK] Sending notification",
		"type", notification.Type,
		"recipient", notification.RecipientEmail,
		"subject", notification.Subject,
	)
	return nil
}

func (s *MockEmailService) SendHTML(ctx context.Context, to, replyTo, subject, htmlBody, textBody string) error {
	s.logger.Info("📧 [MOCK] Sending email", "to", to, "subject", subject)
	return nil
}
