package models

import "time"

// Lead represents a quote request captured by the multi-step form
// after the phone number has been verified.
type Lead struct {
	ID               string    `json:"id,omitempty"`
	FirstName        string    `json:"firstName" binding:"required"`
	LastName         string    `json:"lastName"`
	Gender           string    `json:"gender"`
	DateOfBirth      string    `json:"dateOfBirth"` // ISO 2006-01-02
	SmokingStatus    string    `json:"smokingStatus"`
	Province         string    `json:"province"`
	InsuranceProduct string    `json:"insuranceProduct"`
	Email            string    `json:"email"`
	CountryCode      string    `json:"countryCode"`
	Phone            string    `json:"phone" binding:"required"`
	PhoneHash        string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}

// FullName joins first and last name, tolerating an empty last name
func (l Lead) FullName() string {
	if l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}

// E164 builds the full international phone number from country code + digits
func (l Lead) E164() string {
	return l.CountryCode + l.Phone
}

// SendOTPRequest is the body for POST /api/send-otp
type SendOTPRequest struct {
	To         string `json:"to" binding:"required"`
	ServiceSID string `json:"serviceSid"`
}

// VerifyOTPRequest is the body for POST /api/verify-otp
type VerifyOTPRequest struct {
	To              string `json:"to" binding:"required"`
	Code            string `json:"code" binding:"required"`
	VerificationSID string `json:"verificationSid"`
}

// SubmitLeadRequest is the body for POST /api/submit-lead
type SubmitLeadRequest struct {
	LeadData Lead   `json:"leadData" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// LeadNotificationRequest wraps the lead payload for the notification endpoints
type LeadNotificationRequest struct {
	LeadData Lead `json:"leadData" binding:"required"`
}

// BlogPost is a single entry returned by the blog feed proxy
type BlogPost struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published string `json:"published"`
	URL       string `json:"url"`
}
