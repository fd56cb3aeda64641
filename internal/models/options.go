package models

import "fmt"

const (
	UserTypeResident   = "Resident"
	UserTypeBusiness   = "Business"
	UserTypeCommercial = "Commercial"
	UserTypeGovernment = "Government"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

const WardCount = 33

var UserTypes = []string{UserTypeResident, UserTypeBusiness, UserTypeCommercial, UserTypeGovernment}

var Statuses = []string{StatusActive, StatusInactive, StatusSuspended}

// Wards lists the municipal wards selectable on the address section.
var Wards = func() []string {
	w := make([]string, WardCount)
	for i := range w {
		w[i] = fmt.Sprintf("Ward %d", i+1)
	}
	return w
}()

var wardSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(Wards))
	for _, w := range Wards {
		s[w] = struct{}{}
	}
	return s
}()

// IsWard reports whether name is one of the fixed wards.
func IsWard(name string) bool {
	_, ok := wardSet[name]
	return ok
}

// FormOptions is what a client needs to render the select inputs.
type FormOptions struct {
	Wards     []string  `json:"wards"`
	UserTypes []string  `json:"userTypes"`
	Statuses  []string  `json:"statuses"`
	Defaults  DraftUser `json:"defaults"`
}

func NewFormOptions() FormOptions {
	return FormOptions{
		Wards:     Wards,
		UserTypes: UserTypes,
		Statuses:  Statuses,
		Defaults:  NewDraftUser(),
	}
}
