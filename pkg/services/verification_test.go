package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beavernorth-backend/pkg/clients/twilio"
)

type stubTwilioClient struct {
	sendSID  string
	sendErr  error
	approved bool
	checkErr error
}

func (s *stubTwilioClient) SendVerificationCode(string) (string, error) {
	return s.sendSID, s.sendErr
}

func (s *stubTwilioClient) CheckVerificationCode(string, string) (bool, error) {
	return s.approved, s.checkErr
}

func (s *stubTwilioClient) SendMessage(string, string) error { return nil }

func TestSend_DemoModeReturnsSyntheticSID(t *testing.T) {
	svc := NewVerificationService(twilio.NewDemoClient(), true)

	result, err := svc.Send("+14165551234")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.VerificationSID, "demo-"))
	assert.Equal(t, "+14165551234", result.To)
	assert.Contains(t, result.Message, "(Demo Mode)")
}

func TestSend_LiveModeMessageHasNoDemoTag(t *testing.T) {
	svc := NewVerificationService(&stubTwilioClient{sendSID: "VE123"}, false)

	result, err := svc.Send("+14165551234")
	require.NoError(t, err)

	assert.Equal(t, "VE123", result.VerificationSID)
	assert.NotContains(t, result.Message, "Demo")
}

func TestSend_ProviderErrorPropagates(t *testing.T) {
	svc := NewVerificationService(&stubTwilioClient{sendErr: errors.New("rejected")}, false)

	_, err := svc.Send("+14165551234")
	assert.Error(t, err)
}

func TestCheck_DemoModeApprovesExactlySixDigits(t *testing.T) {
	svc := NewVerificationService(twilio.NewDemoClient(), true)

	status, err := svc.Check("+14165551234", "123456")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)

	status, err = svc.Check("+14165551234", "12345")
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, status)

	status, err = svc.Check("+14165551234", "abcdef")
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, status)
}

func TestCheck_DeniedIsNotAnError(t *testing.T) {
	svc := NewVerificationService(&stubTwilioClient{approved: false}, false)

	status, err := svc.Check("+14165551234", "000000")
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, status)
}

func TestCheck_TransportFailureIsDistinctFromDenied(t *testing.T) {
	svc := NewVerificationService(&stubTwilioClient{checkErr: errors.New("timeout")}, false)

	status, err := svc.Check("+14165551234", "123456")
	assert.Error(t, err)
	assert.NotEqual(t, StatusDenied, status)
}
