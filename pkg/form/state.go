package form

// Step identifies the active page of the quote form wizard
type Step int

const (
	StepPersonal    Step = 1
	StepPreferences Step = 2
	StepContact     Step = 3
)

// VerificationState is the phone verification lifecycle. Using a single
// enumeration keeps contradictory flag combinations (sending and sent at
// once) unrepresentable.
type VerificationState int

const (
	VerificationIdle VerificationState = iota
	VerificationSending
	VerificationSent
	VerificationVerifying
	VerificationApproved
	VerificationDenied
	VerificationFailed
)

func (v VerificationState) String() string {
	switch v {
	case VerificationIdle:
		return "idle"
	case VerificationSending:
		return "sending"
	case VerificationSent:
		return "sent"
	case VerificationVerifying:
		return "verifying"
	case VerificationApproved:
		return "approved"
	case VerificationDenied:
		return "denied"
	case VerificationFailed:
		return "failed"
	}
	return "unknown"
}

// ResendCooldownSeconds is how long a user must wait between code sends
const ResendCooldownSeconds = 30

// Personal holds the step 1 fields
type Personal struct {
	FirstName   string
	LastName    string
	Gender      string
	DateOfBirth string // ISO 2006-01-02, produced by ParseDOB
}

// Preferences holds the step 2 fields
type Preferences struct {
	SmokingStatus    string
	Province         string
	InsuranceProduct string
}

// Contact holds the step 3 fields
type Contact struct {
	Email       string
	CountryCode string
	Phone       string // digits only
	OTP         string
}

// State is the whole form session. It lives for one modal session and is
// only ever changed through Reduce.
type State struct {
	Step         Step
	Personal     Personal
	Preferences  Preferences
	Contact      Contact
	Verification VerificationState
	// CodeSent records that at least one code was delivered; a later
	// failed send or check does not unset it.
	CodeSent bool
	Cooldown int // seconds until another send is allowed
	OTPError string
	Status   string // general banner message
	Done     bool
}

// NewState returns the initial form session state
func NewState() State {
	return State{
		Step:         StepPersonal,
		Contact:      Contact{CountryCode: "+1"},
		Verification: VerificationIdle,
	}
}

// Action is a form state transition. The set is closed: every mutation of
// State goes through one of these.
type Action interface{ isAction() }

// SetPersonal replaces the step 1 fields
type SetPersonal struct{ Personal Personal }

// SetPreferences replaces the step 2 fields
type SetPreferences struct{ Preferences Preferences }

// SetContact replaces the step 3 fields
type SetContact struct{ Contact Contact }

// Advance moves to the next step when the current step validates
type Advance struct{}

// Retreat moves back one step, keeping entered data
type Retreat struct{}

// SendStarted marks a code request in flight
type SendStarted struct{}

// SendSucceeded marks the provider accepting the send; starts the cooldown
type SendSucceeded struct{}

// SendFailed carries the user-facing message for a failed send
type SendFailed struct{ Message string }

// Tick advances the cooldown countdown by one second
type Tick struct{}

// CheckStarted marks a code check in flight
type CheckStarted struct{}

// CheckApproved records provider approval of the entered code
type CheckApproved struct{}

// CheckDenied records a wrong code; an expected outcome, not a failure
type CheckDenied struct{}

// CheckFailed carries the user-facing message for a provider failure
type CheckFailed struct{ Message string }

// SubmitFailed records a persistence failure; verification is preserved
type SubmitFailed struct{ Message string }

// SubmitSucceeded closes the session
type SubmitSucceeded struct{}

func (SetPersonal) isAction()     {}
func (SetPreferences) isAction()  {}
func (SetContact) isAction()      {}
func (Advance) isAction()         {}
func (Retreat) isAction()         {}
func (SendStarted) isAction()     {}
func (SendSucceeded) isAction()   {}
func (SendFailed) isAction()      {}
func (Tick) isAction()            {}
func (CheckStarted) isAction()    {}
func (CheckApproved) isAction()   {}
func (CheckDenied) isAction()     {}
func (CheckFailed) isAction()     {}
func (SubmitFailed) isAction()    {}
func (SubmitSucceeded) isAction() {}

// locked reports whether field edits and step moves are frozen because
// verification has completed or submission is under way.
func locked(s State) bool {
	return s.Verification == VerificationVerifying || s.Verification == VerificationApproved
}

// CanAdvance is the pure gate for moving past the current step
func CanAdvance(s State) bool {
	switch s.Step {
	case StepPersonal:
		return ValidatePersonal(s.Personal) == nil
	case StepPreferences:
		return ValidatePreferences(s.Preferences) == nil
	}
	return false
}

// CanRequestCode is the pure gate for starting a code send
func CanRequestCode(s State) bool {
	if s.Done || s.Step != StepContact || s.Cooldown > 0 {
		return false
	}
	switch s.Verification {
	case VerificationSending, VerificationVerifying, VerificationApproved:
		return false
	}
	return ValidatePhone(s.Contact.Phone) == nil
}

// CanSubmit is the pure gate for submitting the form
func CanSubmit(s State) bool {
	if s.Done || s.Step != StepContact || !s.CodeSent {
		return false
	}
	switch s.Verification {
	case VerificationSending, VerificationVerifying:
		return false
	}
	if ValidateOTP(s.Contact.OTP) != nil {
		return false
	}
	return ValidatePersonal(s.Personal) == nil &&
		ValidatePreferences(s.Preferences) == nil &&
		ValidateContact(s.Contact) == nil
}

// Reduce applies one action to the state and returns the next state.
// Unexpected actions for the current state are ignored, never errors.
func Reduce(s State, a Action) State {
	if s.Done {
		return s
	}

	switch a := a.(type) {
	case SetPersonal:
		if locked(s) {
			return s
		}
		s.Personal = a.Personal

	case SetPreferences:
		if locked(s) {
			return s
		}
		s.Preferences = a.Preferences

	case SetContact:
		if locked(s) {
			return s
		}
		if a.Contact.OTP != s.Contact.OTP {
			s.OTPError = ""
		}
		if a.Contact.CountryCode == "" {
			a.Contact.CountryCode = s.Contact.CountryCode
		}
		s.Contact = a.Contact

	case Advance:
		if CanAdvance(s) && s.Step < StepContact {
			s.Step++
		}

	case Retreat:
		if s.Step > StepPersonal && !locked(s) {
			s.Step--
		}

	case SendStarted:
		if CanRequestCode(s) {
			s.Verification = VerificationSending
			s.Status = ""
		}

	case SendSucceeded:
		if s.Verification == VerificationSending {
			s.Verification = VerificationSent
			s.CodeSent = true
			s.Cooldown = ResendCooldownSeconds
		}

	case SendFailed:
		if s.Verification == VerificationSending {
			s.Verification = VerificationFailed
			s.Status = a.Message
		}

	case Tick:
		if s.Cooldown > 0 {
			s.Cooldown--
		}

	case CheckStarted:
		switch s.Verification {
		case VerificationSent, VerificationDenied, VerificationFailed:
			if s.CodeSent && ValidateOTP(s.Contact.OTP) == nil {
				s.Verification = VerificationVerifying
				s.OTPError = ""
				s.Status = ""
			}
		}

	case CheckApproved:
		if s.Verification == VerificationVerifying {
			s.Verification = VerificationApproved
		}

	case CheckDenied:
		if s.Verification == VerificationVerifying {
			s.Verification = VerificationDenied
			s.OTPError = "Invalid verification code"
		}

	case CheckFailed:
		if s.Verification == VerificationVerifying {
			s.Verification = VerificationFailed
			s.Status = a.Message
		}

	case SubmitFailed:
		if s.Verification == VerificationApproved {
			s.Status = a.Message
		}

	case SubmitSucceeded:
		if s.Verification == VerificationApproved {
			s.Done = true
			s.Status = ""
		}
	}

	return s
}
