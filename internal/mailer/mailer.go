// Package mailer delivers OTP verification emails through the Brevo
// transactional email API.
package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const brevoURL = "https://api.brevo.com/v3/smtp/email"

// Mailer is the outbound email contract the handlers depend on.
type Mailer interface {
	SendOTP(toEmail, otp string) error
}

// New повертає Brevo-клієнт, або log-заглушку, якщо ключ не налаштовано
// (локальна розробка: OTP просто друкується в лог).
func New(apiKey, senderEmail string) Mailer {
	if apiKey == "" {
		log.Println("Warning: BREVO_API_KEY not set, OTP emails will be logged only")
		return &logMailer{}
	}
	return &brevoMailer{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

type brevoMailer struct {
	apiKey      string
	senderEmail string
	client      *http.Client
}

type brevoParty struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoRequest struct {
	Sender      brevoParty   `json:"sender"`
	To          []brevoParty `json:"to"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
}

func (m *brevoMailer) SendOTP(toEmail, otp string) error {
	body := brevoRequest{
		Sender:  brevoParty{Name: "Connectly", Email: m.senderEmail},
		To:      []brevoParty{{Email: toEmail}},
		Subject: "Your Connectly Verification Code",
		HTMLContent: fmt.Sprintf(
			"<h2>Your OTP Code</h2><p>Your verification code is:</p><h1>%s</h1><p>It is valid for 10 minutes.</p>",
			otp),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, brevoURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("brevo responded with status %d", resp.StatusCode)
	}
	return nil
}

// logMailer — dev-заглушка без зовнішніх викликів.
type logMailer struct{}

func (m *logMailer) SendOTP(toEmail, otp string) error {
	log.Printf("MAILER (dev): OTP for %s is %s", toEmail, otp)
	return nil
}
