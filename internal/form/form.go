package form

import (
	"sync"

	"imagique/internal/validation"
)

// Rule validates one field. It sees the other values so cross-field checks
// like password confirmation can be expressed.
type Rule func(value string, values map[validation.Field]string) string

// Single adapts a plain field validator into a Rule.
func Single(fn func(string) string) Rule {
	return func(v string, _ map[validation.Field]string) string { return fn(v) }
}

// Matches checks that the value equals another field, using msg to word the
// failure.
func Matches(other validation.Field, msg func(string, string) string) Rule {
	return func(v string, values map[validation.Field]string) string {
		return msg(values[other], v)
	}
}

// Form holds flat field values plus their latest validation outcome.
type Form struct {
	mu       sync.RWMutex
	rules    map[validation.Field]Rule
	required []validation.Field
	values   map[validation.Field]string
	report   validation.Report
}

func New(rules map[validation.Field]Rule, required ...validation.Field) *Form {
	return &Form{
		rules:    rules,
		required: required,
		values:   make(map[validation.Field]string),
		report:   make(validation.Report),
	}
}

// Update writes the value and re-runs the field's rule. Fields without a rule
// are stored and reported valid.
func (f *Form) Update(field validation.Field, value string) validation.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[field] = value
	outcome := validation.Valid()
	if rule, ok := f.rules[field]; ok {
		outcome = validation.From(rule(value, f.values))
	}
	f.report.Set(field, outcome)
	return outcome
}

func (f *Form) Value(field validation.Field) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[field]
}

func (f *Form) Values() map[validation.Field]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[validation.Field]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *Form) Report() validation.Report {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(validation.Report, len(f.report))
	for k, v := range f.report {
		out[k] = v
	}
	return out
}

// CanSubmit is advisory: false while any outcome is invalid or a required
// field is empty.
func (f *Form) CanSubmit() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.report.HasErrors() {
		return false
	}
	for _, field := range f.required {
		if f.values[field] == "" {
			return false
		}
	}
	return true
}

func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[validation.Field]string)
	f.report = make(validation.Report)
}

// SignUpForm wires the sign-up screen rules.
func SignUpForm() *Form {
	return New(map[validation.Field]Rule{
		validation.FieldFirstName:       Single(validation.FirstName),
		validation.FieldLastName:        Single(validation.LastName),
		validation.FieldEmail:           Single(validation.Email),
		validation.FieldDateOfBirth:     Single(validation.DateOfBirth),
		validation.FieldContactNumber:   Single(validation.ContactNumber),
		validation.FieldAlternateNumber: Single(validation.ContactNumber),
		validation.FieldPassword:        Single(validation.Password),
		validation.FieldConfirmPassword: Matches(validation.FieldPassword, validation.ConfirmPassword),
	})
}

// OrganizerForm wires the become-organizer screen, where every field is
// required.
func OrganizerForm() *Form {
	return New(map[validation.Field]Rule{
		validation.FieldFirstName:       Single(validation.FirstName),
		validation.FieldLastName:        Single(validation.LastName),
		validation.FieldEmail:           Single(validation.OrganizerEmail),
		validation.FieldDateOfBirth:     Single(validation.OrganizerDateOfBirth),
		validation.FieldContactNumber:   Single(validation.ContactNumber),
		validation.FieldAlternateNumber: Single(validation.ContactNumber),
		validation.FieldPassword:        Single(validation.Password),
		validation.FieldConfirmPassword: Matches(validation.FieldPassword, validation.ConfirmPassword),
	},
		validation.FieldFirstName, validation.FieldLastName, validation.FieldEmail,
		validation.FieldContactNumber, validation.FieldAlternateNumber,
		validation.FieldDateOfBirth, validation.FieldPassword, validation.FieldConfirmPassword,
	)
}
