package domain

import "time"

type AccountType string

const (
	AccountTypeStudent       AccountType = "student"
	AccountTypeAdministrator AccountType = "administrator"
)

// Valid reports whether t is one of the two known account types.
func (t AccountType) Valid() bool {
	return t == AccountTypeStudent || t == AccountTypeAdministrator
}

// Account is the base entity shared by both account kinds. Email and
// PhoneNumber are only populated for full (administrator) accounts.
type Account struct {
	ID               int64       `json:"account_id"`
	GivenName        string      `json:"given_name"`
	FamilyName       string      `json:"family_name"`
	Username         string      `json:"username"`
	HashedPassword   string      `json:"-"`
	RegistrationTime time.Time   `json:"registration_time"`
	Type             AccountType `json:"account_type"`
	Email            *string     `json:"email"`
	PhoneNumber      *string     `json:"phone_number"`
}

// Registration carries the fields common to both registration flows.
// Password is the plaintext; it is hashed against the server-assigned
// registration time during account creation and never persisted.
type Registration struct {
	GivenName  string
	FamilyName string
	Username   string
	Password   string
	Type       AccountType
}

// FullRegistration extends Registration with the contact details required
// for a full (administrator) account.
type FullRegistration struct {
	Registration
	Email       string
	PhoneNumber *string
}

// LoggedInUser is the public profile plus access token returned by a
// successful login. Email and PhoneNumber are null for students.
type LoggedInUser struct {
	AccountID   int64   `json:"account_id"`
	AccessToken string  `json:"access_token"`
	Username    string  `json:"username"`
	GivenName   string  `json:"given_name"`
	FamilyName  string  `json:"family_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

type Website struct {
	ID    int64  `json:"website_id"`
	Title string `json:"title"`
}
