package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sitegarden/account-service/internal/core/ports"
)

// saltTimeLayout is the canonical string form of a registration time used as
// salt material. Fixed microsecond precision in UTC, so the value survives a
// round trip through a timestamptz column unchanged.
const saltTimeLayout = "2006-01-02 15:04:05.000000"

// maxBcryptInput is bcrypt's input limit. GenerateFromPassword rejects longer
// inputs with an error, so the salted bytes are truncated to this length the
// same way passlib does.
const maxBcryptInput = 72

// BcryptHasher hashes passwords with bcrypt, appending the account's
// registration time to the plaintext. Verification therefore always needs
// the stored registration time of the account being checked.
type BcryptHasher struct {
	cost int
}

var _ ports.CredentialHasher = (*BcryptHasher)(nil)

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string, registeredAt time.Time) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(salted(password, registeredAt), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify recomputes and compares. bcrypt's comparison is constant-time over
// the derived key; a mismatch is false, not an error.
func (h *BcryptHasher) Verify(password, hashedPassword string, registeredAt time.Time) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), salted(password, registeredAt)) == nil
}

func salted(password string, registeredAt time.Time) []byte {
	material := []byte(password + registeredAt.UTC().Format(saltTimeLayout))
	if len(material) > maxBcryptInput {
		material = material[:maxBcryptInput]
	}
	return material
}
