package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagique/internal/status"
	"imagique/models"
)

func pinNow(t *testing.T, day string) {
	t.Helper()
	fixed, err := time.Parse(dateLayout, day)
	require.NoError(t, err)
	prev := now
	now = func() time.Time { return fixed.Add(15 * time.Hour) }
	t.Cleanup(func() { now = prev })
}

func TestFirstName(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"Ann", true},
		{"Abcdefghijklmnopqrst", true},
		{"Al", false},
		{"Abcdefghijklmnopqrstu", false},
		{"Ann1", false},
		{"Mary Jane", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, FirstName(tt.input) == "")
		})
	}
}

func TestFirstName_MatchesPattern(t *testing.T) {
	for n := 0; n <= 25; n++ {
		name := strings.Repeat("a", n)
		expected := n >= 3 && n <= 20
		assert.Equal(t, expected, FirstName(name) == "", "length %d", n)
	}
}

func TestLastName(t *testing.T) {
	assert.Empty(t, LastName("X"))
	assert.Empty(t, LastName("Doe"))
	assert.NotEmpty(t, LastName(""))
	assert.NotEmpty(t, LastName("O'Neil"))
	assert.Equal(t, "Last name must be 1-20 characters and contain only letters.", LastName(strings.Repeat("b", 21)))
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"com", "jane.doe@example.com", true},
		{"net", "a_b@host.net", true},
		{"co", "x+y@mail.co", true},
		{"in", "user@site.in", true},
		{"org rejected", "user@site.org", false},
		{"missing at", "user.example.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, Email(tt.input) == "")
		})
	}
}

func TestEmailLengthLimits(t *testing.T) {
	// 71 characters: fine for sign-up and organizer, too long for the profile.
	email := strings.Repeat("a", 61) + "@mail.com"
	require.Len(t, email, 70)
	long := "b" + email

	assert.Empty(t, Email(long))
	assert.Empty(t, OrganizerEmail(long))
	assert.Empty(t, ProfileEmail(email))
	assert.Equal(t, "Invalid email format!", ProfileEmail(long))

	huge := strings.Repeat("c", 95) + "@mail.com"
	assert.Empty(t, Email(huge))
	assert.Equal(t, "Email must not exceed 100 characters.", OrganizerEmail(huge))
}

func TestContactNumber(t *testing.T) {
	assert.Empty(t, ContactNumber("9876543210"))
	assert.Empty(t, ContactNumber("6000000000"))
	assert.Equal(t, "Contact number must start with 6-9 and be 10 digits long.", ContactNumber("1234567890"))
	assert.NotEmpty(t, ContactNumber("987654321"))
	assert.NotEmpty(t, ContactNumber("98765432101"))
	assert.NotEmpty(t, ContactNumber("98765x3210"))

	assert.Equal(t, "Contact number must be of length 10.", ProfileContactNumber("5876543210"))
	assert.Empty(t, ProfileAlternateNumber(""))
	assert.Equal(t, "Alternate number must be of length 10.", ProfileAlternateNumber("12"))
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		signUp  bool
		profile bool
	}{
		{"both symbol sets", "Passw0rd!", true, true},
		{"sign-up only symbol", "Passw0rd?", true, false},
		{"profile only symbol", "Passw0rd#", false, true},
		{"no upper", "passw0rd!", false, false},
		{"no lower", "PASSW0RD!", false, false},
		{"no digit", "Password!", false, false},
		{"no symbol", "Passw0rdd", false, false},
		{"too short", "Pa0!", false, false},
		{"too long", "Passw0rd!" + strings.Repeat("a", 12), false, false},
		{"space", "Passw0rd! ", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.signUp, Password(tt.input) == "")
			assert.Equal(t, tt.profile, ProfilePassword(tt.input) == "")
		})
	}
}

func TestConfirmPassword(t *testing.T) {
	assert.Empty(t, ConfirmPassword("a", "a"))
	assert.Equal(t, "Passwords do not match.", ConfirmPassword("a", "b"))
	assert.Equal(t, "Passwords do not match", ProfileConfirmPassword("a", "b"))
}

func TestDateOfBirth_Formulas(t *testing.T) {
	pinNow(t, "2024-03-15")

	tests := []struct {
		name      string
		dob       string
		signUp    string
		organizer string
	}{
		{"adult", "1990-01-01", "", ""},
		{"turns 18 later this year, earlier month", "2006-02-20", "", ""},
		{"turns 18 later this year, later month", "2006-11-20", "", "You must be at least 18 years old."},
		{"turns 18 same month later day", "2006-03-30", "", ""},
		{"seventeen", "2007-01-01", "You must be at least 18 years old.", "You must be at least 18 years old."},
		{"today", "2024-03-15", "You must be at least 18 years old.", "Date of birth must be in the past."},
		{"future", "2030-01-01", "Date of Birth cannot be in the future.", "Date of birth must be in the past."},
		{"garbage", "15/03/1990", "Date of birth must be a valid date.", "Date of birth must be a valid date."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.signUp, DateOfBirth(tt.dob))
			assert.Equal(t, tt.organizer, OrganizerDateOfBirth(tt.dob))
		})
	}
}

func TestWalletAmount_Boundaries(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"499", false},
		{"500", true},
		{"500.00", true},
		{"7500.50", true},
		{"10000", true},
		{"10001", false},
		{"10000.01", false},
		{"", false},
		{"abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, WalletAmount(tt.input) == "")
		})
	}
}

func TestCardAndCVV(t *testing.T) {
	assert.Empty(t, CardNumber("4111111111111111"))
	assert.Equal(t, "Card number must be 16 digits.", CardNumber("411111111111111"))
	assert.Empty(t, CVV("123"))
	assert.Equal(t, "CVV must be 3 digits.", CVV("12a"))

	assert.Equal(t, "4111111111111111", DigitsOnly("4111-1111-1111-1111-99", 16))
	assert.Equal(t, "123", DigitsOnly("1 2 3 4", 3))
}

func TestEventFieldRules(t *testing.T) {
	assert.Equal(t, "Event name is required.", Required("Event name")("  "))
	assert.Empty(t, Required("Event name")("Jazz Night"))
	assert.Empty(t, Price("0"))
	assert.Empty(t, Price("499.99"))
	assert.NotEmpty(t, Price("-1"))
	assert.NotEmpty(t, Price("free"))
	assert.Empty(t, Capacity("250"))
	assert.NotEmpty(t, Capacity("0"))
	assert.NotEmpty(t, Capacity("12.5"))
}

func TestReport(t *testing.T) {
	r := make(Report)
	assert.False(t, r.HasErrors())
	assert.NoError(t, r.Err())
	assert.True(t, r.Get(FieldEmail).OK())

	r.Set(FieldEmail, Valid())
	r.Set(FieldPassword, Invalid("bad"))
	r.Set(FieldAmount, From("too small"))

	assert.True(t, r.HasErrors())
	assert.Equal(t, map[string]string{"password": "bad", "amount": "too small"}, r.Messages())

	err := r.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrValidation))
	assert.Contains(t, err.Error(), "amount, password")
}

func TestValidateSignUp(t *testing.T) {
	pinNow(t, "2024-03-15")

	req := models.SignUpRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		ContactNumber:   "9876543210",
		AlternateNumber: "8765432109",
		DateOfBirth:     "1995-06-01",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
	}
	assert.False(t, ValidateSignUp(req).HasErrors())

	req.FirstName = "Jo"
	req.ConfirmPassword = "Secret2!"
	req.DateOfBirth = "2010-01-01"
	report := ValidateSignUp(req)

	assert.Equal(t, "First name must be 3-20 characters and contain only letters.", report.Get(FieldFirstName).Message())
	assert.Equal(t, "Passwords do not match.", report.Get(FieldConfirmPassword).Message())
	assert.Equal(t, "You must be at least 18 years old.", report.Get(FieldDateOfBirth).Message())
	assert.True(t, report.Get(FieldEmail).OK())
}

func TestValidateOrganizer_RequiresEveryField(t *testing.T) {
	report := ValidateOrganizer(models.OrganizerRequest{FirstName: "Jane"})

	assert.True(t, report.Get(FieldFirstName).OK())
	assert.Equal(t, "This field is required.", report.Get(FieldEmail).Message())
	assert.Equal(t, "This field is required.", report.Get(FieldPassword).Message())
}

func TestValidateProfileAndPasswordChange(t *testing.T) {
	report := ValidateProfile(models.ProfileUpdate{
		FullName:      "Jane Doe",
		ContactNumber: "9876543210",
		Email:         strings.Repeat("a", 70) + "@x.com",
	})
	assert.Equal(t, "Invalid email format!", report.Get(FieldEmail).Message())
	assert.True(t, report.Get(FieldAlternateNumber).OK())

	report = ValidatePasswordChange(models.PasswordChange{NewPassword: "Secret1#", ConfirmPassword: "Secret1"})
	assert.True(t, report.Get(FieldNewPassword).OK())
	assert.Equal(t, "Passwords do not match", report.Get(FieldConfirmPassword).Message())
}

func TestValidateTopUp(t *testing.T) {
	report := ValidateTopUp(models.WalletTopUp{Amount: "499", CardNumber: "4111111111111111", CVV: "12"})

	assert.Equal(t, "Amount must be between 500 and 10000.", report.Get(FieldAmount).Message())
	assert.True(t, report.Get(FieldCardNumber).OK())
	assert.Equal(t, "CVV must be 3 digits.", report.Get(FieldCVV).Message())
}
