package utils

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"conciergerie-backend/models"

	"go.uber.org/zap"
)

func confirmedBooking() *models.Booking {
	return &models.Booking{
		ID:             "b-123",
		CheckIn:        time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC),
		CheckOut:       time.Date(2025, time.July, 22, 0, 0, 0, 0, time.UTC),
		Nights:         7,
		Guests:         2,
		TotalPrice:     2450,
		Status:         models.BookingConfirmed,
		GuestFirstName: "Jean",
		GuestLastName:  "<Dupont>",
		GuestEmail:     "client@example.com",
	}
}

func TestMailer_SendsWhenConfigured(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	m := NewMailer(SMTPConfig{Host: "smtp.test", Port: "587", Username: "bot@test", Password: "pw"}, "https://app.test/", zap.NewNop())
	m.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	if err := m.SendBookingConfirmation(context.Background(), confirmedBooking()); err != nil {
		t.Fatalf("SendBookingConfirmation: %v", err)
	}
	if gotAddr != "smtp.test:587" || len(gotTo) != 1 || gotTo[0] != "client@example.com" {
		t.Errorf("addr = %s, to = %v", gotAddr, gotTo)
	}
	for _, want := range []string{"Check-in: 2025-07-15", "Nights: 7", "https://app.test/bookings/b-123", "&lt;Dupont&gt;"} {
		if !strings.Contains(gotMsg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestMailer_FallsBackToLog(t *testing.T) {
	m := NewMailer(SMTPConfig{}, "", zap.NewNop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called without SMTP settings")
		return nil
	}
	if err := m.SendBookingConfirmation(context.Background(), confirmedBooking()); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestMailer_PropagatesSendError(t *testing.T) {
	down := errors.New("connection refused")
	m := NewMailer(SMTPConfig{Host: "h", Port: "25", Username: "u", Password: "p"}, "", zap.NewNop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return down }

	if err := m.SendBookingConfirmation(context.Background(), confirmedBooking()); !errors.Is(err, down) {
		t.Errorf("expected send error, got %v", err)
	}
}

func TestMaskEmail(t *testing.T) {
	if got := MaskEmail("client@example.com"); got != "c****t@e******.com" {
		t.Errorf("MaskEmail = %q", got)
	}
	if got := MaskEmail("not-an-email"); got != "not-an-email" {
		t.Errorf("MaskEmail = %q", got)
	}
}

func TestBuildConfirmationMessage_EscapesHTML(t *testing.T) {
	b := confirmedBooking()
	b.GuestFirstName = `Jean & "JJ"`
	msg := string(buildConfirmationMessage("bot@test", b, "https://app.test/bookings/b-123?a=1&b=2"))

	_, htmlPart, found := strings.Cut(msg, "Content-Type: text/html")
	if !found {
		t.Fatal("no html part")
	}
	for _, want := range []string{"Jean &amp; &#34;JJ&#34; &lt;Dupont&gt;", `href="https://app.test/bookings/b-123?a=1&amp;b=2"`} {
		if !strings.Contains(htmlPart, want) {
			t.Errorf("html part missing %q", want)
		}
	}
	if strings.Contains(htmlPart, "<Dupont>") {
		t.Error("guest name rendered unescaped in html")
	}
}
