package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks a presented password against a stored
// credential. One variant exists per storage scheme.
type CredentialVerifier interface {
	Verify(stored, password string) bool
	// NeedsRehash reports whether the stored credential should be
	// re-written with the current scheme after a successful check.
	NeedsRehash() bool
}

type bcryptVerifier struct{}

func (bcryptVerifier) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

func (bcryptVerifier) NeedsRehash() bool { return false }

// plaintextVerifier covers legacy seed accounts whose passwords were
// stored unhashed. Matching accounts are migrated to bcrypt on their next
// successful login.
type plaintextVerifier struct{}

func (plaintextVerifier) Verify(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func (plaintextVerifier) NeedsRehash() bool { return true }

// VerifierFor picks the verifier matching the stored credential's shape.
// Bcrypt hashes start with a $2a$/$2b$/$2y$ version marker.
func VerifierFor(stored string) CredentialVerifier {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcryptVerifier{}
	}
	return plaintextVerifier{}
}

// HashPassword wraps bcrypt with the default cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
