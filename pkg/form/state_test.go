package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPersonal() Personal {
	return Personal{FirstName: "Jane", LastName: "O'Brien-Smith", Gender: "female", DateOfBirth: "1990-03-15"}
}

func validPreferences() Preferences {
	return Preferences{SmokingStatus: "non-smoker", Province: "ON", InsuranceProduct: "term-life"}
}

func validContact() Contact {
	return Contact{Email: "jane@example.com", CountryCode: "+1", Phone: "4165551234"}
}

// stateAtContact walks a fresh session to step 3 through the reducer
func stateAtContact() State {
	s := NewState()
	s = Reduce(s, SetPersonal{validPersonal()})
	s = Reduce(s, Advance{})
	s = Reduce(s, SetPreferences{validPreferences()})
	s = Reduce(s, Advance{})
	s = Reduce(s, SetContact{validContact()})
	return s
}

func TestNewState_StartsAtStepOneWithDefaultCountryCode(t *testing.T) {
	s := NewState()
	assert.Equal(t, StepPersonal, s.Step)
	assert.Equal(t, "+1", s.Contact.CountryCode)
	assert.Equal(t, VerificationIdle, s.Verification)
}

func TestAdvance_BlockedUntilStepValidates(t *testing.T) {
	s := NewState()
	s = Reduce(s, Advance{})
	assert.Equal(t, StepPersonal, s.Step)

	s = Reduce(s, SetPersonal{Personal{FirstName: "John123", DateOfBirth: "1990-03-15"}})
	s = Reduce(s, Advance{})
	assert.Equal(t, StepPersonal, s.Step)

	s = Reduce(s, SetPersonal{validPersonal()})
	s = Reduce(s, Advance{})
	assert.Equal(t, StepPreferences, s.Step)
}

func TestRetreat_KeepsEnteredData(t *testing.T) {
	s := stateAtContact()
	s = Reduce(s, Retreat{})
	assert.Equal(t, StepPreferences, s.Step)
	assert.Equal(t, validPreferences(), s.Preferences)
	assert.Equal(t, validContact(), s.Contact)

	s = Reduce(s, Retreat{})
	assert.Equal(t, StepPersonal, s.Step)
	s = Reduce(s, Retreat{})
	assert.Equal(t, StepPersonal, s.Step)
}

func TestRetreat_BlockedOnceVerificationCompletes(t *testing.T) {
	s := stateAtContact()
	s = Reduce(s, SendStarted{})
	s = Reduce(s, SendSucceeded{})
	s.Contact.OTP = "654321"

	s = Reduce(s, CheckStarted{})
	assert.Equal(t, VerificationVerifying, s.Verification)
	s = Reduce(s, Retreat{})
	assert.Equal(t, StepContact, s.Step)

	s = Reduce(s, CheckApproved{})
	s = Reduce(s, Retreat{})
	assert.Equal(t, StepContact, s.Step)

	// Field edits are frozen too
	s = Reduce(s, SetPreferences{Preferences{}})
	assert.Equal(t, validPreferences(), s.Preferences)
}

func TestSendStarted_IgnoredWhileAlreadySending(t *testing.T) {
	s := stateAtContact()
	s = Reduce(s, SendStarted{})
	assert.Equal(t, VerificationSending, s.Verification)

	again := Reduce(s, SendStarted{})
	assert.Equal(t, s, again)
}

func TestSendStarted_IgnoredDuringCooldown(t *testing.T) {
	s := stateAtContact()
	s = Reduce(s, SendStarted{})
	s = Reduce(s, SendSucceeded{})
	assert.Equal(t, ResendCooldownSeconds, s.Cooldown)

	blocked := Reduce(s, SendStarted{})
	assert.Equal(t, VerificationSent, blocked.Verification)
}

func TestTick_CountsDownToZeroAndStops(t *testing.T) {
	s := stateAtContact()
	s = Reduce(s, SendStarted{})
	s = Reduce(s, SendSucceeded{})

	for i := 0; i < ResendCooldownSeconds; i++ {
		s = Reduce(s, Tick{})
	}
	assert.Equal(t, 0, s.Cooldown)

	s = Reduce(s, Tick{})
	assert.Equal(t, 0, s.Cooldown)
	assert.True(t, CanRequestCode(s))
}

func TestSendFailed_LeavesCodeSentUnchanged(t *testing.T) {
	s := stateAtContact()
	s = Reduce(s, SendStarted{})
	s = Reduce(s, SendFailed{Message: "provider unavailable"})

	assert.Equal(t, VerificationFailed, s.Verification)
	assert.False(t, s.CodeSent)
	assert.Equal(t, "provider unavailable", s.Status)
	assert.True(t, CanRequestCode(s))
	assert.False(t, CanSubmit(s))
}

func TestCheckDenied_SetsInlineErrorOnly(t *testing.T) {
	s := stateAtContact()
	s = Reduce(s, SendStarted{})
	s = Reduce(s, SendSucceeded{})
	s.Contact.OTP = "000000"

	s = Reduce(s, CheckStarted{})
	s = Reduce(s, CheckDenied{})

	assert.Equal(t, VerificationDenied, s.Verification)
	assert.NotEmpty(t, s.OTPError)
	assert.Empty(t, s.Status)
	assert.Equal(t, StepContact, s.Step)
	assert.Equal(t, validPersonal(), s.Personal)
}

func TestCheckDenied_PermitsNewCodeWithoutNewSend(t *testing.T) {
	s := stateAtContact()
	s = Reduce(s, SendStarted{})
	s = Reduce(s, SendSucceeded{})
	s.Contact.OTP = "000000"
	s = Reduce(s, CheckStarted{})
	s = Reduce(s, CheckDenied{})

	// Typing a new code clears the inline error and re-opens the check
	contact := s.Contact
	contact.OTP = "654321"
	s = Reduce(s, SetContact{contact})
	assert.Empty(t, s.OTPError)

	s = Reduce(s, CheckStarted{})
	assert.Equal(t, VerificationVerifying, s.Verification)
}

func TestCheckFailed_DistinctFromDenied(t *testing.T) {
	s := stateAtContact()
	s = Reduce(s, SendStarted{})
	s = Reduce(s, SendSucceeded{})
	s.Contact.OTP = "654321"
	s = Reduce(s, CheckStarted{})
	s = Reduce(s, CheckFailed{Message: "network error"})

	assert.Equal(t, VerificationFailed, s.Verification)
	assert.Empty(t, s.OTPError)
	assert.Equal(t, "network error", s.Status)
	assert.True(t, s.CodeSent)
	assert.True(t, CanSubmit(s))
}

func TestSubmitFailed_PreservesApproval(t *testing.T) {
	s := stateAtContact()
	s = Reduce(s, SendStarted{})
	s = Reduce(s, SendSucceeded{})
	s.Contact.OTP = "654321"
	s = Reduce(s, CheckStarted{})
	s = Reduce(s, CheckApproved{})
	s = Reduce(s, SubmitFailed{Message: "could not save"})

	assert.Equal(t, VerificationApproved, s.Verification)
	assert.Equal(t, "could not save", s.Status)
	assert.False(t, s.Done)
}

func TestSubmitSucceeded_ClosesSession(t *testing.T) {
	s := stateAtContact()
	s = Reduce(s, SendStarted{})
	s = Reduce(s, SendSucceeded{})
	s.Contact.OTP = "654321"
	s = Reduce(s, CheckStarted{})
	s = Reduce(s, CheckApproved{})
	s = Reduce(s, SubmitSucceeded{})

	assert.True(t, s.Done)

	// A closed session ignores everything
	after := Reduce(s, SetPersonal{Personal{FirstName: "X"}})
	assert.Equal(t, s, after)
}

func TestCanSubmit_RequiresDeliveredCodeAndSixDigits(t *testing.T) {
	s := stateAtContact()
	assert.False(t, CanSubmit(s))

	s = Reduce(s, SendStarted{})
	s = Reduce(s, SendSucceeded{})
	assert.False(t, CanSubmit(s))

	contact := s.Contact
	contact.OTP = "65432"
	s = Reduce(s, SetContact{contact})
	assert.False(t, CanSubmit(s))

	contact.OTP = "654321"
	s = Reduce(s, SetContact{contact})
	assert.True(t, CanSubmit(s))
}
