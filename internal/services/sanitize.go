package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/wastewise/backend/internal/models"
)

// TextSanitizer strips markup from free-text input before it is stored and
// later shown in the admin panel.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Text trims s and removes every tag. Entities escaped by the policy are
// turned back into plain characters since the result is data, not HTML.
func (ts *TextSanitizer) Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(ts.policy.Sanitize(s)))
}

// Draft returns a normalized copy of d. Passwords are left untouched.
func (ts *TextSanitizer) Draft(d models.DraftUser) models.DraftUser {
	d.Name = ts.Text(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Ward = strings.TrimSpace(d.Ward)
	d.HouseNumber = ts.Text(d.HouseNumber)
	d.Street = ts.Text(d.Street)
	d.Address = ts.Text(d.Address)
	d.UserType = strings.TrimSpace(d.UserType)
	d.Status = strings.TrimSpace(d.Status)
	d.EmergencyContact = strings.TrimSpace(d.EmergencyContact)
	return d
}
