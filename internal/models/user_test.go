package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraftUser_Defaults(t *testing.T) {
	d := NewDraftUser()

	assert.Equal(t, "Resident", d.UserType)
	assert.Equal(t, "active", d.Status)
	assert.True(t, d.Notifications)
	assert.True(t, d.EmailUpdates)
	assert.False(t, d.SMSAlerts)
	assert.Empty(t, d.Name)
	assert.Empty(t, d.Ward)
}

func TestDraftUser_SetText(t *testing.T) {
	t.Run("replaces exactly one field", func(t *testing.T) {
		d := NewDraftUser()
		d.Email = "keep@example.com"
		before := d

		require.NoError(t, d.SetText(FieldName, "Sita"))

		assert.Equal(t, "Sita", d.Name)
		before.Name = "Sita"
		assert.Equal(t, before, d)
	})

	t.Run("every text field is addressable", func(t *testing.T) {
		d := NewDraftUser()
		for _, f := range TextFields {
			require.NoError(t, d.SetText(f, "v-"+string(f)))
			got, ok := d.Text(f)
			assert.True(t, ok)
			assert.Equal(t, "v-"+string(f), got)
		}
	})

	t.Run("flag name is a type error", func(t *testing.T) {
		d := NewDraftUser()
		err := d.SetText(TextField(FlagSMSAlerts), "true")
		assert.ErrorIs(t, err, ErrFieldType)
		assert.False(t, d.SMSAlerts)
	})

	t.Run("unknown name", func(t *testing.T) {
		d := NewDraftUser()
		assert.ErrorIs(t, d.SetText("nickname", "x"), ErrUnknownField)
	})
}

func TestDraftUser_SetFlag(t *testing.T) {
	d := NewDraftUser()
	require.NoError(t, d.SetFlag(FlagSMSAlerts, true))
	assert.True(t, d.SMSAlerts)

	got, ok := d.Flag(FlagNotifications)
	assert.True(t, ok)
	assert.True(t, got)

	assert.ErrorIs(t, d.SetFlag(FlagField(FieldEmail), true), ErrFieldType)
	assert.ErrorIs(t, d.SetFlag("darkMode", true), ErrUnknownField)
}

func TestFieldUpdate_Apply(t *testing.T) {
	d := NewDraftUser()

	require.NoError(t, TextUpdate(FieldWard, "Ward 7").Apply(&d))
	assert.Equal(t, "Ward 7", d.Ward)

	require.NoError(t, FlagUpdate(FlagEmailUpdates, false).Apply(&d))
	assert.False(t, d.EmailUpdates)

	text := "x"
	flag := true
	both := FieldUpdate{Field: string(FieldName), Text: &text, Flag: &flag}
	assert.ErrorIs(t, both.Apply(&d), ErrFieldType)

	none := FieldUpdate{Field: string(FieldName)}
	assert.ErrorIs(t, none.Apply(&d), ErrFieldType)
	assert.Empty(t, d.Name)
}

func TestNewUser(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	d := NewDraftUser()
	d.Name = "Sita Sharma"
	d.Email = "sita@example.com"
	d.Phone = "984-123-4567"
	d.Ward = "Ward 12"
	d.HouseNumber = "42"
	d.Address = "Near the community hall"
	d.SMSAlerts = true

	u := NewUser(d, "USR-000042", now)

	assert.Equal(t, "USR-000042", u.ID)
	assert.Equal(t, 0, u.Reports)
	assert.Equal(t, "2026-10-18", u.JoinDate)
	assert.Equal(t, "Just now", u.LastActive)
	assert.Equal(t, "Pending", u.VerificationStatus)
	assert.Equal(t, "70%", u.ProfileCompletion)
	assert.Equal(t, "Not assigned", u.BinAssigned)
	assert.Equal(t, "Not provided", u.EmergencyContact)
	assert.Equal(t, Preferences{Notifications: true, EmailUpdates: true, SMSAlerts: true}, u.Preferences)
	assert.Equal(t, now, u.CreatedAt)

	d.EmergencyContact = "9841000000"
	assert.Equal(t, "9841000000", NewUser(d, "USR-000043", now).EmergencyContact)
}

func TestWards(t *testing.T) {
	assert.Len(t, Wards, 33)
	assert.Equal(t, "Ward 1", Wards[0])
	assert.Equal(t, "Ward 33", Wards[32])
	assert.True(t, IsWard("Ward 17"))
	assert.False(t, IsWard("Ward 34"))
	assert.False(t, IsWard(""))
}
