package mail

import "gopkg.in/gomail.v2"

type StatusChangedEmailData struct {
	PartnerName string
	CompanyName string
	Status      string
	BonusAmount string
}

type PartnerDecisionEmailData struct {
	PartnerName string
	Approved    bool
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	// send permite trocar o SMTP nos testes.
	send func(m *gomail.Message) error
}
