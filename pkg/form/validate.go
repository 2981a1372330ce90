package form

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	maxNameLength = 25
	minAge        = 18
	maxAge        = 85
)

var (
	namePattern   = regexp.MustCompile(`^[A-Za-z\s\-']+$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
	otpPattern    = regexp.MustCompile(`^\d{6}$`)
	isoPattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	nonDigits     = regexp.MustCompile(`\D`)
)

var genders = []string{"male", "female", "other"}

var smokingStatuses = []string{"smoker", "non-smoker"}

var provinces = []string{
	"AB", "BC", "MB", "NB", "NL", "NS", "NT", "NU", "ON", "PE", "QC", "SK", "YT",
}

var insuranceProducts = []string{
	"term-life", "whole-life", "universal-life",
	"mortgage-insurance", "critical-illness", "disability",
}

var countryCodes = []string{"+1", "+44", "+61", "+91"}

// ValidateName checks a name field: letters, spaces, hyphens and
// apostrophes only, at most 25 characters.
func ValidateName(name string, required bool) error {
	if name == "" {
		if required {
			return errors.New("name is required")
		}
		return nil
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("name must be at most %d characters", maxNameLength)
	}
	if !namePattern.MatchString(name) {
		return errors.New("name may only contain letters, spaces, hyphens and apostrophes")
	}
	return nil
}

// ValidateEmail checks the optional email field for a local@domain.tld shape
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return errors.New("email address is not valid")
	}
	return nil
}

// ValidatePhone checks the phone field: digits only, plausible length
func ValidatePhone(phone string) error {
	if phone == "" {
		return errors.New("phone number is required")
	}
	if !digitsPattern.MatchString(phone) {
		return errors.New("phone number may only contain digits")
	}
	if len(phone) < 7 || len(phone) > 14 {
		return errors.New("phone number length is not valid")
	}
	return nil
}

// ValidateOTP checks that the entered code is exactly six digits
func ValidateOTP(code string) error {
	if !otpPattern.MatchString(code) {
		return errors.New("verification code must be 6 digits")
	}
	return nil
}

// FormatDOBInput progressively formats typed digits as MM/DD/YYYY, the way
// the date field auto-inserts slashes while the user types.
func FormatDOBInput(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) > 8 {
		digits = digits[:8]
	}
	switch {
	case len(digits) <= 2:
		return digits
	case len(digits) <= 4:
		return digits[:2] + "/" + digits[2:]
	default:
		return digits[:2] + "/" + digits[2:4] + "/" + digits[4:]
	}
}

// ParseDOB accepts either an ISO date (native picker) or a typed MM/DD/YYYY
// date and returns the ISO form. Impossible calendar dates, future dates and
// ages outside the accepted range are rejected.
func ParseDOB(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New("date of birth is required")
	}

	layout := "01/02/2006"
	if isoPattern.MatchString(input) {
		layout = "2006-01-02"
	}

	dob, err := time.Parse(layout, input)
	if err != nil {
		return "", errors.New("date of birth is not a valid date")
	}

	now := time.Now()
	if dob.After(now) {
		return "", errors.New("date of birth cannot be in the future")
	}

	years := yearsBetween(dob, now)
	if years < minAge {
		return "", fmt.Errorf("applicants must be at least %d years old", minAge)
	}
	if years > maxAge {
		return "", fmt.Errorf("applicants must be at most %d years old", maxAge)
	}

	return dob.Format("2006-01-02"), nil
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.YearDay() < from.YearDay() {
		years--
	}
	return years
}

// ValidatePersonal gates advancing past step 1
func ValidatePersonal(p Personal) error {
	if err := ValidateName(p.FirstName, true); err != nil {
		return fmt.Errorf("first name: %w", err)
	}
	if err := ValidateName(p.LastName, false); err != nil {
		return fmt.Errorf("last name: %w", err)
	}
	if p.Gender != "" && !contains(genders, p.Gender) {
		return errors.New("gender is not valid")
	}
	if _, err := ParseDOB(p.DateOfBirth); err != nil {
		return err
	}
	return nil
}

// ValidatePreferences gates advancing past step 2
func ValidatePreferences(p Preferences) error {
	if !contains(smokingStatuses, p.SmokingStatus) {
		return errors.New("smoking status is required")
	}
	if !contains(provinces, p.Province) {
		return errors.New("province is required")
	}
	if !contains(insuranceProducts, p.InsuranceProduct) {
		return errors.New("insurance product is required")
	}
	return nil
}

// ValidateContact gates submission on step 3, OTP aside
func ValidateContact(c Contact) error {
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if !contains(countryCodes, c.CountryCode) {
		return errors.New("country code is not valid")
	}
	return ValidatePhone(c.Phone)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
