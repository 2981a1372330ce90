package mailer

import "log"

type demoMailer struct{}

// NewDemoMailer creates a mailer used when SMTP credentials are absent.
// Messages are logged instead of delivered.
func NewDemoMailer() Mailer {
	return &demoMailer{}
}

func (m *demoMailer) Send(to, subject, body string) error {
	log.Printf("(Demo Mode) Skipping email to %s: %s", to, subject)
	return nil
}
