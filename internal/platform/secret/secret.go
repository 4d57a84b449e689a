// Package secret verifies the shared admin secret.
package secret

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned when a candidate does not match the configured secret.
var ErrMismatch = errors.New("secret mismatch")

// Verifier checks a candidate secret.
type Verifier interface {
	Verify(candidate string) error
}

// Plain compares against a secret held in configuration.
type Plain struct {
	secret []byte
}

func NewPlain(secret string) (*Plain, error) {
	if secret == "" {
		return nil, errors.New("empty admin secret")
	}
	return &Plain{secret: []byte(secret)}, nil
}

func (p *Plain) Verify(candidate string) error {
	if subtle.ConstantTimeCompare(p.secret, []byte(candidate)) != 1 {
		return ErrMismatch
	}
	return nil
}

// Bcrypt compares against a bcrypt hash of the secret.
type Bcrypt struct {
	hash []byte
}

func NewBcrypt(hash string) (*Bcrypt, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, errors.New("ADMIN_SECRET_BCRYPT is not a bcrypt hash")
	}
	return &Bcrypt{hash: []byte(hash)}, nil
}

func (b *Bcrypt) Verify(candidate string) error {
	if err := bcrypt.CompareHashAndPassword(b.hash, []byte(candidate)); err != nil {
		return ErrMismatch
	}
	return nil
}

// FromConfig returns the verifier for whichever secret form is set, or
// nil when neither is.
func FromConfig(plain, bcryptHash string) (Verifier, error) {
	switch {
	case bcryptHash != "":
		v, err := NewBcrypt(bcryptHash)
		if err != nil {
			return nil, err
		}
		return v, nil
	case plain != "":
		v, err := NewPlain(plain)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, nil
}

// Hash produces a bcrypt hash suitable for ADMIN_SECRET_BCRYPT.
func Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
