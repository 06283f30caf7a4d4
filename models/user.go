package models

import (
	"github.com/shopspring/decimal"
)

type UserDetails struct {
	UserDetailsID   int64           `json:"userDetailsId"`
	FullName        string          `json:"fullName"`
	Email           string          `json:"email"`
	ContactNumber   string          `json:"contactNumber"`
	AlternateNumber string          `json:"alternateNumber"`
	DateOfBirth     string          `json:"dateOfBirth,omitempty"`
	WalletAmount    decimal.Decimal `json:"walletAmount"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	FirstName       string `json:"firstName" validate:"firstname"`
	LastName        string `json:"lastName" validate:"lastname"`
	Email           string `json:"email" validate:"signupemail"`
	ContactNumber   string `json:"contactNumber" validate:"contactnumber"`
	AlternateNumber string `json:"alternateNumber" validate:"contactnumber"`
	DateOfBirth     string `json:"dateOfBirth" validate:"adult"`
	Password        string `json:"password" validate:"password"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// OrganizerRequest is the become-organizer form. It has the sign-up shape but
// stricter email and date of birth rules.
type OrganizerRequest struct {
	FirstName       string `json:"firstName" validate:"required,firstname"`
	LastName        string `json:"lastName" validate:"required,lastname"`
	Email           string `json:"email" validate:"required,organizeremail"`
	ContactNumber   string `json:"contactNumber" validate:"required,contactnumber"`
	AlternateNumber string `json:"alternateNumber" validate:"required,contactnumber"`
	DateOfBirth     string `json:"dateOfBirth" validate:"required,organizeradult"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role"`
	IsApproved      string `json:"isApproved"`
}

type ProfileUpdate struct {
	UserDetailsID   int64  `json:"userDetailsId"`
	FullName        string `json:"fullName"`
	ContactNumber   string `json:"contactNumber" validate:"profilecontact"`
	AlternateNumber string `json:"alternateNumber" validate:"profilealternate"`
	Email           string `json:"email" validate:"profileemail"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"profilepassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=NewPassword"`
}

type Organizer struct {
	UserDetailsID   int64  `json:"userDetailsId"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	ContactNumber   string `json:"contactNumber"`
	AlternateNumber string `json:"alternateNumber"`
	DateOfBirth     string `json:"dateOfBirth"`
	IsApproved      *bool  `json:"isApproved"`
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

func (o Organizer) Status() ApprovalStatus {
	switch {
	case o.IsApproved == nil:
		return ApprovalPending
	case *o.IsApproved:
		return ApprovalApproved
	default:
		return ApprovalRejected
	}
}

// Actions lists the moderation actions offered for the organizer.
func (o Organizer) Actions() []string {
	switch o.Status() {
	case ApprovalPending:
		return []string{"approve", "reject"}
	case ApprovalApproved:
		return []string{"block"}
	}
	return nil
}
