package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"imagique/models"
)

// rules binds struct tags to the field validators above.
var rules = map[string]func(string) string{
	"firstname":        FirstName,
	"lastname":         LastName,
	"signupemail":      Email,
	"organizeremail":   OrganizerEmail,
	"profileemail":     ProfileEmail,
	"contactnumber":    ContactNumber,
	"profilecontact":   ProfileContactNumber,
	"profilealternate": ProfileAlternateNumber,
	"password":         Password,
	"profilepassword":  ProfilePassword,
	"adult":            DateOfBirth,
	"organizeradult":   OrganizerDateOfBirth,
	"walletamount":     WalletAmount,
	"cardnumber":       CardNumber,
	"cvv":              CVV,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, fn := range rules {
		check := fn
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String()) == ""
		}); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", tag, err))
		}
	}
	return v
}

func ValidateSignUp(req models.SignUpRequest) Report {
	return check(req, ConfirmPassword)
}

func ValidateOrganizer(req models.OrganizerRequest) Report {
	return check(req, ConfirmPassword)
}

func ValidateProfile(u models.ProfileUpdate) Report {
	return check(u, ProfileConfirmPassword)
}

func ValidatePasswordChange(p models.PasswordChange) Report {
	return check(p, ProfileConfirmPassword)
}

func ValidateTopUp(t models.WalletTopUp) Report {
	return check(t, ProfileConfirmPassword)
}

func check(s any, confirm func(string, string) string) Report {
	report := make(Report)

	err := validate.Struct(s)
	if err == nil {
		return report
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable with a non-struct argument.
		report.Set(Field("_"), Invalid(err.Error()))
		return report
	}

	for _, fe := range verrs {
		field := Field(fe.Field())
		if _, seen := report[field]; seen {
			continue
		}
		value, _ := fe.Value().(string)

		switch tag := fe.Tag(); tag {
		case "required":
			report.Set(field, Invalid("This field is required."))
		case "eqfield":
			other := reflect.Indirect(reflect.ValueOf(s)).FieldByName(fe.Param()).String()
			report.Set(field, From(confirm(other, value)))
		default:
			if fn, ok := rules[tag]; ok {
				report.Set(field, From(fn(value)))
			} else {
				report.Set(field, Invalid(fe.Error()))
			}
		}
	}
	return report
}
