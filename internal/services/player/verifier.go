package player

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var errPasswordMismatch = errors.New("password mismatch")

// Verifier abstracts how passwords are stored and compared, so the store's
// public contract does not change when the comparison strategy does.
type Verifier interface {
	// Hash produces the stored form of a password
	Hash(password string) (string, error)
	// Verify checks a submitted password against the stored form
	Verify(stored, given string) error
}

// PlainVerifier stores and compares passwords as given. This matches the
// historical behavior of the game backend and is the default.
type PlainVerifier struct{}

func (PlainVerifier) Hash(password string) (string, error) {
	return password, nil
}

func (PlainVerifier) Verify(stored, given string) error {
	if stored != given {
		return errPasswordMismatch
	}
	return nil
}

// BcryptVerifier stores passwords as bcrypt hashes
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Hash(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (v BcryptVerifier) Verify(stored, given string) error {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given))
}
