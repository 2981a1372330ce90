package services

import (
	"fmt"
	"log"

	"beavernorth-backend/pkg/clients/twilio"
	"beavernorth-backend/pkg/utils"
)

// CheckStatus is the outcome of a verification check. A denied check is a
// normal business outcome, distinct from a provider failure.
type CheckStatus string

const (
	StatusApproved CheckStatus = "approved"
	StatusDenied   CheckStatus = "denied"
)

// SendResult carries the outcome of starting a phone verification
type SendResult struct {
	VerificationSID string
	To              string
	Message         string
}

// VerificationService defines the stateless send/check gateway over the
// phone verification provider.
type VerificationService interface {
	Send(to string) (*SendResult, error)
	Check(to, code string) (CheckStatus, error)
}

type verificationServiceImpl struct {
	client   twilio.Client
	demoMode bool
}

// NewVerificationService creates a verification gateway. Live or demo mode
// is decided once at startup by the caller through the injected client.
func NewVerificationService(client twilio.Client, demoMode bool) VerificationService {
	return &verificationServiceImpl{
		client:   client,
		demoMode: demoMode,
	}
}

func (s *verificationServiceImpl) Send(to string) (*SendResult, error) {
	sid, err := s.client.SendVerificationCode(to)
	if err != nil {
		return nil, fmt.Errorf("error starting verification: %w", err)
	}

	message := "Verification code sent"
	if s.demoMode {
		message = "Verification code sent (Demo Mode)"
	}

	return &SendResult{
		VerificationSID: sid,
		To:              to,
		Message:         message,
	}, nil
}

func (s *verificationServiceImpl) Check(to, code string) (CheckStatus, error) {
	approved, err := s.client.CheckVerificationCode(to, code)
	if err != nil {
		return "", fmt.Errorf("error checking verification: %w", err)
	}

	if !approved {
		log.Printf("Verification denied for %s", utils.MaskPhone(to))
		return StatusDenied, nil
	}
	return StatusApproved, nil
}
