package domain

import "time"

type Role string

const (
	RoleIndividual Role = "INDIVIDUAL"
	RoleCorporate  Role = "CORPORATE"
	RoleStaff      Role = "STAFF"
)

func (r Role) Valid() bool {
	switch r {
	case RoleIndividual, RoleCorporate, RoleStaff:
		return true
	}
	return false
}

// IsCustomer reports whether the role may rent vehicles through the API.
func (r Role) IsCustomer() bool {
	return r == RoleIndividual || r == RoleCorporate
}

type StaffPosition string

const (
	StaffPositionAdmin   StaffPosition = "ADMIN"
	StaffPositionManager StaffPosition = "MANAGER"
	StaffPositionAgent   StaffPosition = "AGENT"
)

type User struct {
	ID           string    `json:"id" validate:"required,entityid"`
	PasswordHash string    `json:"password_hash" validate:"required"`
	Role         Role      `json:"role" validate:"required,oneof=INDIVIDUAL CORPORATE STAFF"`
	Name         string    `json:"name" validate:"required,min=2,max=100"`
	ContactInfo  string    `json:"contact_info" validate:"required,contact"`
	CreatedOn    time.Time `json:"created_on"`

	// Exactly one profile is set, matching Role.
	Individual *IndividualProfile `json:"individual,omitempty" validate:"omitempty"`
	Corporate  *CorporateProfile  `json:"corporate,omitempty" validate:"omitempty"`
	Staff      *StaffProfile      `json:"staff,omitempty" validate:"omitempty"`
}

type IndividualProfile struct {
	DateOfBirth   time.Time `json:"date_of_birth" validate:"required"`
	LicenseNumber string    `json:"license_number" validate:"required,alphanum,min=5,max=20"`
}

type CorporateProfile struct {
	CompanyName          string `json:"company_name" validate:"required,min=2,max=100"`
	BusinessRegistration string `json:"business_registration" validate:"required,min=2,max=50"`
	BillingAddress       string `json:"billing_address" validate:"required,min=5,max=200"`
}

type StaffProfile struct {
	EmployeeID string        `json:"employee_id" validate:"required,min=2,max=20"`
	Position   StaffPosition `json:"position" validate:"required,oneof=ADMIN MANAGER AGENT"`
}

func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}
