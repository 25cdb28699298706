package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/ports"
)

type RegistrationService struct {
	accounts ports.AccountRepository
	hasher   ports.CredentialHasher
}

var _ ports.RegistrationService = (*RegistrationService)(nil)

func NewRegistrationService(
	accounts ports.AccountRepository,
	hasher ports.CredentialHasher,
) *RegistrationService {
	return &RegistrationService{
		accounts: accounts,
		hasher:   hasher,
	}
}

// RegisterFullAccount registers a non-student account together with its
// contact details. The username/email pre-check mirrors the legacy flow, but
// the store's uniqueness constraints stay the source of truth: a racing
// insert still comes back as ErrUserAlreadyExists.
func (s *RegistrationService) RegisterFullAccount(
	ctx context.Context,
	reg domain.FullRegistration,
) (int64, error) {
	if reg.Type == domain.AccountTypeStudent {
		return 0, domain.ErrWrongAccountType
	}

	byUsername, err := s.accounts.FindByUsername(ctx, reg.Username)
	if err != nil {
		return 0, err
	}
	byEmail, err := s.accounts.FindByEmail(ctx, reg.Email)
	if err != nil {
		return 0, err
	}
	if byUsername != nil || byEmail != nil {
		return 0, domain.ErrUserAlreadyExists
	}

	var accountID int64
	err = s.accounts.Register(ctx, func(tx ports.AccountTx) error {
		id, err := s.createAccount(ctx, tx, reg.Registration)
		if err != nil {
			return err
		}
		if err := tx.CreateFullAccountExtension(ctx, id, reg.Email, reg.PhoneNumber); err != nil {
			switch {
			case errors.Is(err, domain.ErrDuplicateEmail),
				errors.Is(err, domain.ErrDuplicatePhoneNumber):
				return domain.ErrUserAlreadyExists
			}
			return err
		}
		if err := s.queueRegisteredEvent(ctx, tx, id, reg.Registration); err != nil {
			return err
		}
		accountID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return accountID, nil
}

// RegisterStudent registers a student sponsored by an existing
// administrator. Account, student extension, Teaches link, and outbox row
// are one transaction: a failure at any step rolls everything back.
func (s *RegistrationService) RegisterStudent(
	ctx context.Context,
	reg domain.Registration,
	administratorID int64,
) (int64, error) {
	if reg.Type != domain.AccountTypeStudent {
		return 0, domain.ErrWrongAccountType
	}

	exists, err := s.accounts.AdministratorExists(ctx, administratorID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, &domain.AdministratorNotFoundError{ID: administratorID}
	}

	var studentID int64
	err = s.accounts.Register(ctx, func(tx ports.AccountTx) error {
		id, err := s.createAccount(ctx, tx, reg)
		if err != nil {
			return err
		}
		if err := tx.LinkStudentToAdministrator(ctx, administratorID, id); err != nil {
			// The sponsor passed the existence check but the link still hit a
			// foreign key failure, e.g. the administrator was deleted in between.
			if errors.Is(err, domain.ErrForeignKeyViolation) {
				return &domain.AdministratorNotFoundError{ID: administratorID}
			}
			return err
		}
		if err := s.queueRegisteredEvent(ctx, tx, id, reg); err != nil {
			return err
		}
		studentID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return studentID, nil
}

// createAccount inserts the base row, derives the password hash from the
// freshly assigned registration time, persists it, and adds the type
// extension row. Must run inside the repository transaction.
func (s *RegistrationService) createAccount(
	ctx context.Context,
	tx ports.AccountTx,
	reg domain.Registration,
) (int64, error) {
	id, registeredAt, err := tx.CreateAccount(ctx, reg.GivenName, reg.FamilyName, reg.Username, reg.Type)
	if err != nil {
		return 0, translateCreateError(err)
	}

	hash, err := s.hasher.Hash(reg.Password, registeredAt)
	if err != nil {
		return 0, err
	}
	if err := tx.SetPasswordHash(ctx, id, hash); err != nil {
		return 0, err
	}

	if err := tx.CreateTypeExtension(ctx, id, reg.Type); err != nil {
		return 0, translateCreateError(err)
	}
	return id, nil
}

func (s *RegistrationService) queueRegisteredEvent(
	ctx context.Context,
	tx ports.AccountTx,
	accountID int64,
	reg domain.Registration,
) error {
	payload, err := json.Marshal(ports.AccountRegisteredEvent{
		AccountID:   accountID,
		Username:    reg.Username,
		AccountType: string(reg.Type),
	})
	if err != nil {
		return err
	}
	return tx.QueueEvent(ctx, ports.EventTypeAccountRegistered, payload)
}

func translateCreateError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		return domain.ErrUserAlreadyExists
	case errors.Is(err, domain.ErrUsernameTooLong):
		return domain.ErrUsernameTooLong
	}
	return err
}
