package mocks

import (
	"github.com/sitegarden/account-service/internal/core/domain"
)

// StringPtr returns a pointer to s, for optional request/record fields.
func StringPtr(s string) *string {
	return &s
}

// AdministratorRegistration is a ready-made valid full registration for test
// setup; override fields as needed.
func AdministratorRegistration(username, email string) domain.FullRegistration {
	return domain.FullRegistration{
		Registration: domain.Registration{
			GivenName:  "Lachlan Charles",
			FamilyName: "Shoesmith",
			Username:   username,
			Password:   "abjjsfdjsd",
			Type:       domain.AccountTypeAdministrator,
		},
		Email:       email,
		PhoneNumber: StringPtr("123-456-7890"),
	}
}

// StudentRegistration is a ready-made valid student registration.
func StudentRegistration(username string) domain.Registration {
	return domain.Registration{
		GivenName:  "Neffie Etta",
		FamilyName: "Denile",
		Username:   username,
		Password:   "password123",
		Type:       domain.AccountTypeStudent,
	}
}
