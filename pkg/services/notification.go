package services

import (
	"fmt"
	"log"
	"strings"

	"beavernorth-backend/pkg/clients/mailer"
	"beavernorth-backend/pkg/clients/twilio"
	"beavernorth-backend/pkg/models"
	"beavernorth-backend/pkg/utils"
)

// SMSResult is the per-recipient outcome of the lead SMS fan-out
type SMSResult struct {
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// NotificationService sends the email and SMS side effects fired after a
// lead is captured. Failures here never block lead capture.
type NotificationService interface {
	SendLeadEmail(lead models.Lead) ([]string, error)
	SendLeadSMS(lead models.Lead) []SMSResult
}

type notificationServiceImpl struct {
	mailer          mailer.Mailer
	smsClient       twilio.Client
	emailRecipients []string
	phoneRecipients []string
}

// NewNotificationService creates the notification side-effect service
func NewNotificationService(m mailer.Mailer, smsClient twilio.Client, emails, phones []string) NotificationService {
	return &notificationServiceImpl{
		mailer:          m,
		smsClient:       smsClient,
		emailRecipients: emails,
		phoneRecipients: phones,
	}
}

func (s *notificationServiceImpl) SendLeadEmail(lead models.Lead) ([]string, error) {
	subject := fmt.Sprintf("New quote request from %s", lead.FullName())
	body := leadEmailBody(lead)

	sent := make([]string, 0, len(s.emailRecipients))
	for _, to := range s.emailRecipients {
		if err := s.mailer.Send(to, subject, body); err != nil {
			log.Printf("Error sending lead email to %s: %v", to, err)
			return sent, err
		}
		sent = append(sent, to)
	}

	log.Printf("Sent lead notification email to %d recipient(s)", len(sent))
	return sent, nil
}

func (s *notificationServiceImpl) SendLeadSMS(lead models.Lead) []SMSResult {
	body := fmt.Sprintf("New lead: %s, %s, %s. Phone: %s",
		lead.FullName(), lead.InsuranceProduct, lead.Province, lead.E164())

	results := make([]SMSResult, 0, len(s.phoneRecipients))
	for _, to := range s.phoneRecipients {
		result := SMSResult{Recipient: utils.MaskPhone(to), Success: true}
		if err := s.smsClient.SendMessage(to, body); err != nil {
			log.Printf("Error sending lead SMS to %s: %v", utils.MaskPhone(to), err)
			result.Success = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

func leadEmailBody(lead models.Lead) string {
	var b strings.Builder
	b.WriteString("<h2>New Quote Request</h2>")
	b.WriteString("<table>")
	row := func(label, value string) {
		if value == "" {
			value = "—"
		}
		fmt.Fprintf(&b, "<tr><td><b>%s</b></td><td>%s</td></tr>", label, value)
	}
	row("Name", lead.FullName())
	row("Gender", lead.Gender)
	row("Date of birth", lead.DateOfBirth)
	row("Smoking status", lead.SmokingStatus)
	row("Province", lead.Province)
	row("Product", lead.InsuranceProduct)
	row("Email", lead.Email)
	row("Phone", lead.E164())
	b.WriteString("</table>")
	return b.String()
}
