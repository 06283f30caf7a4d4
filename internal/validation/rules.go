package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// now is swapped in tests to pin the date of birth checks.
var now = time.Now

const (
	dateLayout = "2006-01-02"

	signUpSymbols  = "@$!%*?&"
	profileSymbols = "!@#$%^&*"
)

var (
	firstNameRe       = regexp.MustCompile(`^[A-Za-z]{3,20}$`)
	lastNameRe        = regexp.MustCompile(`^[A-Za-z]{1,20}$`)
	emailRe           = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.(com|net|co|in)$`)
	contactRe         = regexp.MustCompile(`^[6-9]\d{9}$`)
	signUpPasswordRe  = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,20}$`)
	profilePasswordRe = regexp.MustCompile(`^[A-Za-z\d!@#$%^&*]{8,20}$`)
	cardNumberRe      = regexp.MustCompile(`^\d{16}$`)
	cvvRe             = regexp.MustCompile(`^\d{3}$`)

	minTopUp = decimal.NewFromInt(500)
	maxTopUp = decimal.NewFromInt(10000)
)

func FirstName(v string) string {
	if firstNameRe.MatchString(v) {
		return ""
	}
	return "First name must be 3-20 characters and contain only letters."
}

func LastName(v string) string {
	if lastNameRe.MatchString(v) {
		return ""
	}
	return "Last name must be 1-20 characters and contain only letters."
}

// Email is the sign-up check. It has no length limit.
func Email(v string) string {
	if emailRe.MatchString(v) {
		return ""
	}
	return "Email must be in the format name@example.com"
}

// OrganizerEmail caps the address at 100 characters before the format check.
func OrganizerEmail(v string) string {
	if len(v) > 100 {
		return "Email must not exceed 100 characters."
	}
	return Email(v)
}

// ProfileEmail is the profile-update check, capped at 70 characters.
func ProfileEmail(v string) string {
	if emailRe.MatchString(v) && len(v) <= 70 {
		return ""
	}
	return "Invalid email format!"
}

func ContactNumber(v string) string {
	if contactRe.MatchString(v) {
		return ""
	}
	return "Contact number must start with 6-9 and be 10 digits long."
}

func ProfileContactNumber(v string) string {
	if contactRe.MatchString(v) {
		return ""
	}
	return "Contact number must be of length 10."
}

// ProfileAlternateNumber accepts an empty value.
func ProfileAlternateNumber(v string) string {
	if v == "" || contactRe.MatchString(v) {
		return ""
	}
	return "Alternate number must be of length 10."
}

func Password(v string) string {
	if strongPassword(v, signUpPasswordRe, signUpSymbols) {
		return ""
	}
	return "Password must be 8-20 characters, with at least 1 capital letter, 1 lowercase letter, 1 number, and 1 special character."
}

func ProfilePassword(v string) string {
	if strongPassword(v, profilePasswordRe, profileSymbols) {
		return ""
	}
	return "Password must be 8-20 characters long, contain 1 uppercase letter, 1 lowercase letter, 1 special character, and 1 number."
}

func strongPassword(v string, shape *regexp.Regexp, symbols string) bool {
	if !shape.MatchString(v) {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range v {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(symbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

func ConfirmPassword(password, confirm string) string {
	if password == confirm {
		return ""
	}
	return "Passwords do not match."
}

// ProfileConfirmPassword is the change-password variant of ConfirmPassword.
func ProfileConfirmPassword(password, confirm string) string {
	if password == confirm {
		return ""
	}
	return "Passwords do not match"
}

// DateOfBirth is the sign-up rule: the year difference alone decides the age.
func DateOfBirth(v string) string {
	dob, today, ok := parseDOB(v)
	if !ok {
		return "Date of birth must be a valid date."
	}
	if dob.After(today) {
		return "Date of Birth cannot be in the future."
	}
	if today.Year()-dob.Year() < 18 {
		return "You must be at least 18 years old."
	}
	return ""
}

// OrganizerDateOfBirth is the become-organizer rule. At a year difference of
// exactly 18 it also compares months, but never days.
func OrganizerDateOfBirth(v string) string {
	dob, today, ok := parseDOB(v)
	if !ok {
		return "Date of birth must be a valid date."
	}
	if !dob.Before(today) {
		return "Date of birth must be in the past."
	}
	age := today.Year() - dob.Year()
	monthDiff := int(today.Month()) - int(dob.Month())
	if age < 18 || (age == 18 && monthDiff < 0) {
		return "You must be at least 18 years old."
	}
	return ""
}

func parseDOB(v string) (dob, today time.Time, ok bool) {
	dob, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	n := now()
	today = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return dob, today, true
}

// WalletAmount accepts amounts in [500, 10000], bounds included.
func WalletAmount(v string) string {
	amount, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil || amount.LessThan(minTopUp) || amount.GreaterThan(maxTopUp) {
		return "Amount must be between 500 and 10000."
	}
	return ""
}

func CardNumber(v string) string {
	if cardNumberRe.MatchString(v) {
		return ""
	}
	return "Card number must be 16 digits."
}

func CVV(v string) string {
	if cvvRe.MatchString(v) {
		return ""
	}
	return "CVV must be 3 digits."
}

// DigitsOnly strips non-digits and truncates to max characters, the way card
// and CVV inputs are sanitized before validation.
func DigitsOnly(v string, max int) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			if b.Len() == max {
				break
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Required returns a validator that rejects blank input.
func Required(label string) func(string) string {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return label + " is required."
		}
		return ""
	}
}

// Price accepts any non-negative decimal.
func Price(v string) string {
	p, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil || p.IsNegative() {
		return "Price must be a non-negative number."
	}
	return ""
}

// Capacity accepts a positive whole number.
func Capacity(v string) string {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return "Capacity must be a positive whole number."
	}
	return ""
}
