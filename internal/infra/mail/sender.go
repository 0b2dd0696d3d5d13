package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
	s.send = func(m *gomail.Message) error {
		return gomail.NewDialer(s.Host, s.Port, s.User, s.Password).DialAndSend(m)
	}
	return s
}

func render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("erro ao processar template %s: %w", name, err)
	}
	return body.String(), nil
}

func (s *EmailSender) deliver(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

// SendReferralStatusChanged avisa o parceiro que a indicação andou no funil.
func (s *EmailSender) SendReferralStatusChanged(to, partnerName, companyName, status, bonusAmount string) error {
	body, err := render("status_changed.html", StatusChangedEmailData{
		PartnerName: partnerName,
		CompanyName: companyName,
		Status:      status,
		BonusAmount: bonusAmount,
	})
	if err != nil {
		return err
	}
	return s.deliver(to, fmt.Sprintf("Sua indicação %s: %s", companyName, status), body)
}

func (s *EmailSender) SendPartnerDecision(to, partnerName string, approved bool) error {
	body, err := render("partner_decision.html", PartnerDecisionEmailData{
		PartnerName: partnerName,
		Approved:    approved,
	})
	if err != nil {
		return err
	}

	subject := "Seu cadastro no programa de parceiros Tillit foi aprovado"
	if !approved {
		subject = "Atualização sobre seu cadastro no programa de parceiros Tillit"
	}
	return s.deliver(to, subject, body)
}
