package utils

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"conciergerie-backend/models"

	"go.uber.org/zap"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

func (c SMTPConfig) configured() bool {
	return c.Host != "" && c.Port != "" && c.Username != "" && c.Password != ""
}

// Mailer sends booking emails over SMTP. Without SMTP settings it only logs what
// it would have sent.
type Mailer struct {
	cfg         SMTPConfig
	frontendURL string
	logger      *zap.Logger
	send        func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg SMTPConfig, frontendURL string, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, frontendURL: frontendURL, logger: logger, send: smtp.SendMail}
}

func (m *Mailer) SendBookingConfirmation(ctx context.Context, b *models.Booking) error {
	if b.GuestEmail == "" {
		return nil
	}
	link := m.bookingLink(b.ID)

	if !m.cfg.configured() {
		m.logger.Info("[MOCK EMAIL] booking confirmation",
			zap.String("to", MaskEmail(b.GuestEmail)),
			zap.String("booking_id", b.ID),
			zap.String("link", link),
		)
		return nil
	}

	msg := buildConfirmationMessage(m.from(), b, link)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	if err := m.send(addr, auth, m.cfg.Username, []string{b.GuestEmail}, msg); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", MaskEmail(b.GuestEmail), err)
	}
	m.logger.Info("booking confirmation sent", zap.String("to", MaskEmail(b.GuestEmail)), zap.String("booking_id", b.ID))
	return nil
}

func (m *Mailer) from() string {
	name := m.cfg.FromName
	if name == "" {
		name = "Conciergerie Marrakech"
	}
	return fmt.Sprintf("%s <%s>", name, m.cfg.Username)
}

func (m *Mailer) bookingLink(id string) string {
	base := strings.TrimRight(m.frontendURL, "/")
	if base == "" {
		base = "http://localhost:3000"
	}
	return fmt.Sprintf("%s/bookings/%s", base, id)
}

func buildConfirmationMessage(from string, b *models.Booking, link string) []byte {
	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	guest := safe(strings.TrimSpace(b.GuestFirstName + " " + b.GuestLastName))
	if guest == "" {
		guest = "guest"
	}
	checkIn := b.CheckIn.Format("2006-01-02")
	checkOut := b.CheckOut.Format("2006-01-02")
	boundary := "----=_BOOKING_EMAIL_BOUNDARY"

	plain := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for your reservation. Here are the details:\n\n"+
			"Booking: %s\n"+
			"Status: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n"+
			"Nights: %d\n"+
			"Guests: %d\n"+
			"Total: %.2f\n\n"+
			"Manage your booking: %s\n",
		guest, b.ID, b.Status, checkIn, checkOut, b.Nights, b.Guests, b.TotalPrice, link,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Booking confirmation</title></head>
<body style="font-family:Arial, Helvetica, sans-serif; color:#222;">
  <h2>Your stay is booked</h2>
  <p>Dear %s,</p>
  <p><b>Booking:</b> %s<br><b>Status:</b> %s<br><b>Check-in:</b> %s<br><b>Check-out:</b> %s<br>
  <b>Nights:</b> %d<br><b>Guests:</b> %d<br><b>Total:</b> %.2f</p>
  <p><a href="%s">Manage your booking</a></p>
</body>
</html>`,
		html.EscapeString(guest), html.EscapeString(b.ID), b.Status, checkIn, checkOut, b.Nights, b.Guests, b.TotalPrice, html.EscapeString(link),
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", safe(b.GuestEmail)))
	sb.WriteString(fmt.Sprintf("Subject: Booking confirmation %s\r\n", b.ID))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))
	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plain + "\r\n")
	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")
	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return []byte(sb.String())
}

// MaskEmail hides most of an address for logs: "client@example.com" -> "c****t@e******.com".
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}
	local, domain := parts[0], parts[1]

	maskedLocal := local
	if len(local) > 2 {
		maskedLocal = local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:]
	} else if len(local) == 2 {
		maskedLocal = local[:1] + "*"
	}

	domainParts := strings.Split(domain, ".")
	if len(domainParts) >= 2 && len(domainParts[0]) > 1 {
		domainParts[0] = domainParts[0][:1] + strings.Repeat("*", len(domainParts[0])-1)
	}
	return maskedLocal + "@" + strings.Join(domainParts, ".")
}
