package validation

import (
	"fmt"
	"sort"
	"strings"

	"imagique/internal/status"
)

// Field names a form input. Values match the JSON names the backend uses.
type Field string

const (
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldFullName        Field = "fullName"
	FieldEmail           Field = "email"
	FieldContactNumber   Field = "contactNumber"
	FieldAlternateNumber Field = "alternateNumber"
	FieldDateOfBirth     Field = "dateOfBirth"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldNewPassword     Field = "newPassword"
	FieldAmount          Field = "amount"
	FieldCardNumber      Field = "cardNumber"
	FieldCVV             Field = "cvv"

	FieldEventName     Field = "eventName"
	FieldDescription   Field = "description"
	FieldDate          Field = "date"
	FieldTime          Field = "time"
	FieldCategoryID    Field = "categoryId"
	FieldSponsorName   Field = "sponsorName"
	FieldSponsorNumber Field = "sponsorContactNumber"
	FieldPriceCategory Field = "priceCategory"
	FieldPrice         Field = "price"
	FieldVenueLocation Field = "venueLocation"
	FieldMapsLink      Field = "mapsLink"
	FieldCapacity      Field = "capacity"
)

// Outcome is the result of validating one field: either valid, or invalid
// with a message for the user. The zero value is valid.
type Outcome struct {
	message string
}

func Valid() Outcome { return Outcome{} }

func Invalid(message string) Outcome { return Outcome{message: message} }

// From turns a validator's message into an Outcome.
func From(message string) Outcome { return Outcome{message: message} }

func (o Outcome) OK() bool { return o.message == "" }

func (o Outcome) Message() string { return o.message }

// Report maps fields to their latest outcome.
type Report map[Field]Outcome

func (r Report) Set(f Field, o Outcome) { r[f] = o }

// Get returns the outcome for f; unknown fields are valid.
func (r Report) Get(f Field) Outcome { return r[f] }

func (r Report) HasErrors() bool {
	for _, o := range r {
		if !o.OK() {
			return true
		}
	}
	return false
}

// Messages flattens the invalid outcomes for rendering.
func (r Report) Messages() map[string]string {
	out := make(map[string]string)
	for f, o := range r {
		if !o.OK() {
			out[string(f)] = o.Message()
		}
	}
	return out
}

// Err returns nil when every outcome is valid, otherwise an error wrapping
// status.ErrValidation that lists the failing fields.
func (r Report) Err() error {
	msgs := r.Messages()
	if len(msgs) == 0 {
		return nil
	}
	fields := make([]string, 0, len(msgs))
	for f := range msgs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Errorf("%w: %s", status.ErrValidation, strings.Join(fields, ", "))
}
