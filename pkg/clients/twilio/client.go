package twilio

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
	verify "github.com/twilio/twilio-go/rest/verify/v2"

	"beavernorth-backend/pkg/utils"
)

// Client defines the interface for the phone verification and SMS provider
type Client interface {
	// SendVerificationCode starts a verification for the phone number and
	// returns the provider's verification SID.
	SendVerificationCode(phoneNumber string) (string, error)
	// CheckVerificationCode returns whether the code was approved. A wrong
	// code is (false, nil); an error means the provider call itself failed.
	CheckVerificationCode(phoneNumber, code string) (bool, error)
	// SendMessage delivers a plain SMS to the given number
	SendMessage(to, body string) error
}

type clientImpl struct {
	client     *twilio.RestClient
	serviceID  string
	fromNumber string
}

// NewClient creates a new Twilio client
func NewClient(accountSid, authToken, serviceID, fromNumber string) Client {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &clientImpl{
		client:     client,
		serviceID:  serviceID,
		fromNumber: fromNumber,
	}
}

func (c *clientImpl) SendVerificationCode(phoneNumber string) (string, error) {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phoneNumber)
	params.SetChannel("sms")

	resp, err := c.client.VerifyV2.CreateVerification(c.serviceID, params)
	if err != nil {
		return "", fmt.Errorf("error sending verification code: %w", err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}

	log.Printf("Sent verification code to: %s, status: %s", utils.MaskPhone(phoneNumber), derefString(resp.Status))
	return sid, nil
}

func (c *clientImpl) CheckVerificationCode(phoneNumber, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phoneNumber)
	params.SetCode(code)

	resp, err := c.client.VerifyV2.CreateVerificationCheck(c.serviceID, params)
	if err != nil {
		return false, fmt.Errorf("error checking verification code: %w", err)
	}

	verified := resp.Status != nil && *resp.Status == "approved"
	log.Printf("Verification check for %s: %v", utils.MaskPhone(phoneNumber), verified)
	return verified, nil
}

func (c *clientImpl) SendMessage(to, body string) error {
	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.fromNumber)
	params.SetBody(body)

	if _, err := c.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}

	log.Printf("Successfully sent message to: %s", utils.MaskPhone(to))
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
