package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"beavernorth-backend/pkg/models"
	"beavernorth-backend/pkg/services"
)

// ErrNotReady is returned by Submit when the submission gate is closed
var ErrNotReady = errors.New("form is not ready to submit")

// Gateway is the verification surface the controller talks to.
// services.VerificationService satisfies it.
type Gateway interface {
	Send(to string) (*services.SendResult, error)
	Check(to, code string) (services.CheckStatus, error)
}

// Submitter persists a verified lead. services.LeadService satisfies it.
type Submitter interface {
	Submit(ctx context.Context, lead models.Lead) (string, error)
}

// Controller drives one quote-form session: it owns the State, applies
// actions through the reducer, and sequences the send/check/persist calls
// so a lead is never persisted without an approved phone verification.
type Controller struct {
	mu      sync.Mutex
	state   State
	gateway Gateway
	leads   Submitter

	tick         time.Duration
	cooldownOn   bool
	cooldownStop chan struct{}
	closed       bool
}

// NewController creates a controller for a fresh form session
func NewController(gateway Gateway, leads Submitter) *Controller {
	return &Controller{
		state:   NewState(),
		gateway: gateway,
		leads:   leads,
		tick:    time.Second,
	}
}

// State returns a snapshot of the current form state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Apply runs a field or step action through the reducer
func (c *Controller) Apply(a Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, a)
	return c.state
}

// RequestCode asks the gateway to send a verification code. It is a no-op
// while a send is in flight or the resend cooldown is running.
func (c *Controller) RequestCode() error {
	c.mu.Lock()
	if c.closed || !CanRequestCode(c.state) {
		c.mu.Unlock()
		return nil
	}
	c.state = Reduce(c.state, SendStarted{})
	to := e164(c.state.Contact)
	c.mu.Unlock()

	_, err := c.gateway.Send(to)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = Reduce(c.state, SendFailed{Message: "Could not send the verification code. Please try again."})
		return err
	}
	c.state = Reduce(c.state, SendSucceeded{})
	c.startCooldownLocked()
	return nil
}

// startCooldownLocked runs the one-second countdown. At most one ticker
// exists at a time; it stops itself at zero and on Close.
func (c *Controller) startCooldownLocked() {
	if c.cooldownOn || c.closed {
		return
	}
	c.cooldownOn = true
	stop := make(chan struct{})
	c.cooldownStop = stop

	go func() {
		ticker := time.NewTicker(c.tick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.mu.Lock()
				c.state = Reduce(c.state, Tick{})
				done := c.state.Cooldown == 0
				if done {
					c.cooldownOn = false
				}
				c.mu.Unlock()
				if done {
					return
				}
			}
		}
	}()
}

// Submit checks the entered code and, only on approval, persists the lead.
// A denied code sets an inline OTP error and never reaches the store. A
// persistence failure keeps the approved verification so the user is not
// forced to re-verify.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed || !CanSubmit(c.state) {
		c.mu.Unlock()
		return ErrNotReady
	}
	// An earlier approved check survives a failed persist attempt
	needCheck := c.state.Verification != VerificationApproved
	if needCheck {
		c.state = Reduce(c.state, CheckStarted{})
	}
	to := e164(c.state.Contact)
	code := c.state.Contact.OTP
	c.mu.Unlock()

	if needCheck {
		status, err := c.gateway.Check(to, code)

		c.mu.Lock()
		if err != nil {
			c.state = Reduce(c.state, CheckFailed{Message: "Verification is unavailable right now. Please try again."})
			c.mu.Unlock()
			return err
		}
		if status != services.StatusApproved {
			c.state = Reduce(c.state, CheckDenied{})
			c.mu.Unlock()
			return nil
		}
		c.state = Reduce(c.state, CheckApproved{})
		c.mu.Unlock()
	}

	lead := c.Lead()
	if _, err := c.leads.Submit(ctx, lead); err != nil {
		c.mu.Lock()
		c.state = Reduce(c.state, SubmitFailed{Message: "Something went wrong submitting your request. Please try again."})
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.state = Reduce(c.state, SubmitSucceeded{})
	c.mu.Unlock()
	return nil
}

// Lead assembles the submission payload from the current state
func (c *Controller) Lead() models.Lead {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	return models.Lead{
		FirstName:        s.Personal.FirstName,
		LastName:         s.Personal.LastName,
		Gender:           s.Personal.Gender,
		DateOfBirth:      s.Personal.DateOfBirth,
		SmokingStatus:    s.Preferences.SmokingStatus,
		Province:         s.Preferences.Province,
		InsuranceProduct: s.Preferences.InsuranceProduct,
		Email:            s.Contact.Email,
		CountryCode:      s.Contact.CountryCode,
		Phone:            s.Contact.Phone,
	}
}

// Close tears the session down and stops the cooldown ticker
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cooldownOn {
		close(c.cooldownStop)
		c.cooldownOn = false
	}
}

func e164(c Contact) string {
	return c.CountryCode + c.Phone
}
