package session

import (
	"fmt"
	"net/mail"
	"strings"
)

// Contact is the submission of the final contact-form question.
type Contact struct {
	FirstName    string `json:"firstName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	ScheduleCall bool   `json:"scheduleCall"`
}

// Normalize trims whitespace from every text field.
func (c Contact) Normalize() Contact {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	return c
}

// Validate checks that the required fields are present and the email
// address parses. The returned error wraps ErrInvalidContact.
func (c Contact) Validate() error {
	c = c.Normalize()
	var problems []string
	if c.FirstName == "" {
		problems = append(problems, "first name is required")
	}
	switch {
	case c.Email == "":
		problems = append(problems, "email is required")
	case !ValidEmail(c.Email):
		problems = append(problems, fmt.Sprintf("email %q is not valid", c.Email))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidContact, strings.Join(problems, "; "))
	}
	return nil
}

// ValidEmail accepts a bare address with a dotted domain.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}
