package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrFieldType    = errors.New("field does not accept this value type")
)

// TextField names a string-valued input of the add-user form.
type TextField string

const (
	FieldName             TextField = "name"
	FieldEmail            TextField = "email"
	FieldPhone            TextField = "phone"
	FieldWard             TextField = "ward"
	FieldHouseNumber      TextField = "houseNumber"
	FieldStreet           TextField = "street"
	FieldAddress          TextField = "address"
	FieldUserType         TextField = "userType"
	FieldStatus           TextField = "status"
	FieldPassword         TextField = "password"
	FieldConfirmPassword  TextField = "confirmPassword"
	FieldEmergencyContact TextField = "emergencyContact"
)

// FlagField names a checkbox input of the add-user form.
type FlagField string

const (
	FlagNotifications FlagField = "notifications"
	FlagEmailUpdates  FlagField = "emailUpdates"
	FlagSMSAlerts     FlagField = "smsAlerts"
)

var TextFields = []TextField{
	FieldName, FieldEmail, FieldPhone, FieldWard, FieldHouseNumber, FieldStreet,
	FieldAddress, FieldUserType, FieldStatus, FieldPassword, FieldConfirmPassword,
	FieldEmergencyContact,
}

var FlagFields = []FlagField{FlagNotifications, FlagEmailUpdates, FlagSMSAlerts}

// DraftUser is the in-progress user held by an open add-user form.
type DraftUser struct {
	Name             string `json:"name" validate:"notblank"`
	Email            string `json:"email" validate:"required,emailshape"`
	Phone            string `json:"phone" validate:"required,phonedigits"`
	Ward             string `json:"ward" validate:"required,ward"`
	HouseNumber      string `json:"houseNumber" validate:"notblank"`
	Street           string `json:"street"`
	Address          string `json:"address" validate:"notblank"`
	UserType         string `json:"userType" validate:"oneof=Resident Business Commercial Government"`
	Status           string `json:"status" validate:"oneof=active inactive suspended"`
	Password         string `json:"password" validate:"required,min=6"`
	ConfirmPassword  string `json:"confirmPassword" validate:"required,eqfield=Password"`
	EmergencyContact string `json:"emergencyContact" validate:"omitempty,phonedigits"`

	Notifications bool `json:"notifications"`
	EmailUpdates  bool `json:"emailUpdates"`
	SMSAlerts     bool `json:"smsAlerts"`
}

// NewDraftUser returns the draft a freshly opened form starts from.
func NewDraftUser() DraftUser {
	return DraftUser{
		UserType:      UserTypeResident,
		Status:        StatusActive,
		Notifications: true,
		EmailUpdates:  true,
	}
}

func (d *DraftUser) textRef(f TextField) *string {
	switch f {
	case FieldName:
		return &d.Name
	case FieldEmail:
		return &d.Email
	case FieldPhone:
		return &d.Phone
	case FieldWard:
		return &d.Ward
	case FieldHouseNumber:
		return &d.HouseNumber
	case FieldStreet:
		return &d.Street
	case FieldAddress:
		return &d.Address
	case FieldUserType:
		return &d.UserType
	case FieldStatus:
		return &d.Status
	case FieldPassword:
		return &d.Password
	case FieldConfirmPassword:
		return &d.ConfirmPassword
	case FieldEmergencyContact:
		return &d.EmergencyContact
	}
	return nil
}

func (d *DraftUser) flagRef(f FlagField) *bool {
	switch f {
	case FlagNotifications:
		return &d.Notifications
	case FlagEmailUpdates:
		return &d.EmailUpdates
	case FlagSMSAlerts:
		return &d.SMSAlerts
	}
	return nil
}

// SetText replaces one text field.
func (d *DraftUser) SetText(f TextField, value string) error {
	ref := d.textRef(f)
	if ref == nil {
		if d.flagRef(FlagField(f)) != nil {
			return fmt.Errorf("%w: %s is a flag", ErrFieldType, f)
		}
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	*ref = value
	return nil
}

// SetFlag replaces one preference flag.
func (d *DraftUser) SetFlag(f FlagField, value bool) error {
	ref := d.flagRef(f)
	if ref == nil {
		if d.textRef(TextField(f)) != nil {
			return fmt.Errorf("%w: %s is a text field", ErrFieldType, f)
		}
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	*ref = value
	return nil
}

// Text returns the current value of a text field.
func (d DraftUser) Text(f TextField) (string, bool) {
	ref := d.textRef(f)
	if ref == nil {
		return "", false
	}
	return *ref, true
}

// Flag returns the current value of a preference flag.
func (d DraftUser) Flag(f FlagField) (bool, bool) {
	ref := d.flagRef(f)
	if ref == nil {
		return false, false
	}
	return *ref, true
}

// FieldUpdate is a single-field change sent by the form client.
// Exactly one of Text or Flag must be set.
type FieldUpdate struct {
	Field string  `json:"field" validate:"required"`
	Text  *string `json:"text,omitempty"`
	Flag  *bool   `json:"flag,omitempty"`
}

func TextUpdate(f TextField, value string) FieldUpdate {
	return FieldUpdate{Field: string(f), Text: &value}
}

func FlagUpdate(f FlagField, value bool) FieldUpdate {
	return FieldUpdate{Field: string(f), Flag: &value}
}

// Apply writes the update into d. On error d is unchanged.
func (u FieldUpdate) Apply(d *DraftUser) error {
	switch {
	case u.Text != nil && u.Flag != nil:
		return fmt.Errorf("%w: both text and flag given for %s", ErrFieldType, u.Field)
	case u.Text != nil:
		return d.SetText(TextField(u.Field), *u.Text)
	case u.Flag != nil:
		return d.SetFlag(FlagField(u.Field), *u.Flag)
	default:
		return fmt.Errorf("%w: no value given for %s", ErrFieldType, u.Field)
	}
}

// Preferences groups the notification flags of a saved user.
type Preferences struct {
	Notifications bool `json:"notifications"`
	EmailUpdates  bool `json:"emailUpdates"`
	SMSAlerts     bool `json:"smsAlerts"`
}

// User is the finalized record produced by a successful submission.
type User struct {
	ID                 string      `json:"id" example:"USR-482913"`
	Name               string      `json:"name" example:"Sita Sharma"`
	Email              string      `json:"email" example:"sita@example.com"`
	Phone              string      `json:"phone" example:"984-123-4567"`
	Ward               string      `json:"ward" example:"Ward 12"`
	HouseNumber        string      `json:"houseNumber" example:"42"`
	Street             string      `json:"street" example:"Lakeside Road"`
	Address            string      `json:"address" example:"Near the community hall"`
	UserType           string      `json:"userType" example:"Resident"`
	Status             string      `json:"status" example:"active"`
	EmergencyContact   string      `json:"emergencyContact" example:"Not provided"`
	Reports            int         `json:"reports" example:"0"`
	JoinDate           string      `json:"joinDate" example:"2026-10-18"`
	LastActive         string      `json:"lastActive" example:"Just now"`
	VerificationStatus string      `json:"verificationStatus" example:"Pending"`
	ProfileCompletion  string      `json:"profileCompletion" example:"70%"`
	BinAssigned        string      `json:"binAssigned" example:"Not assigned"`
	Preferences        Preferences `json:"preferences"`
	CreatedAt          time.Time   `json:"createdAt"`

	PasswordHash string `json:"-"`
}

const (
	DefaultLastActive         = "Just now"
	DefaultVerificationStatus = "Pending"
	DefaultProfileCompletion  = "70%"
	DefaultBinAssigned        = "Not assigned"
	DefaultEmergencyContact   = "Not provided"
	JoinDateLayout            = "2006-01-02"
)

// NewUser shapes a validated draft into a finalized record. Callers are
// expected to have normalized the draft text and to set PasswordHash.
func NewUser(d DraftUser, id string, now time.Time) User {
	emergency := d.EmergencyContact
	if emergency == "" {
		emergency = DefaultEmergencyContact
	}

	return User{
		ID:                 id,
		Name:               d.Name,
		Email:              d.Email,
		Phone:              d.Phone,
		Ward:               d.Ward,
		HouseNumber:        d.HouseNumber,
		Street:             d.Street,
		Address:            d.Address,
		UserType:           d.UserType,
		Status:             d.Status,
		EmergencyContact:   emergency,
		Reports:            0,
		JoinDate:           now.Format(JoinDateLayout),
		LastActive:         DefaultLastActive,
		VerificationStatus: DefaultVerificationStatus,
		ProfileCompletion:  DefaultProfileCompletion,
		BinAssigned:        DefaultBinAssigned,
		Preferences: Preferences{
			Notifications: d.Notifications,
			EmailUpdates:  d.EmailUpdates,
			SMSAlerts:     d.SMSAlerts,
		},
		CreatedAt: now,
	}
}
