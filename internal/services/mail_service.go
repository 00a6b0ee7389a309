package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// MailService sends storefront contact mail over plain SMTP. With no server
// configured it logs the message instead, which keeps dev setups working.
type MailService struct {
	Addr string // host:port, empty disables delivery
	From string
	User string
	Pass string
}

func (s *MailService) Send(to, subject, body string) error {
	if to == "" || subject == "" {
		return fmt.Errorf("mail requires recipient and subject")
	}
	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if s.Addr == "" {
		log.Printf("[mail] SMTP disabled, dropping message to=%s subject=%q", to, subject)
		return nil
	}

	var auth smtp.Auth
	if s.User != "" {
		host := strings.Split(s.Addr, ":")[0]
		auth = smtp.PlainAuth("", s.User, s.Pass, host)
	}
	return smtp.SendMail(s.Addr, auth, s.From, []string{to}, []byte(msg))
}
