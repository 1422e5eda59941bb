package services

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "wheeltradr/internal/errors"
)

// authService checks the journal passphrase against its bcrypt hash.
type authService struct {
	passphraseHash string
}

// NewAuthService creates a new AuthServicer. An empty hash disables auth.
func NewAuthService(passphraseHash string) AuthServicer {
	return &authService{passphraseHash: passphraseHash}
}

// Enabled reports whether a passphrase is configured.
func (s *authService) Enabled() bool {
	return s.passphraseHash != ""
}

// VerifyPassphrase returns ErrInvalidCredentials unless passphrase matches.
func (s *authService) VerifyPassphrase(passphrase string) error {
	if !s.Enabled() {
		return apperrors.WithMessage(apperrors.ErrNotFound, "Authentication is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passphraseHash), []byte(passphrase)); err != nil {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

// HashPassphrase returns the bcrypt hash to configure for passphrase.
func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return string(hash), nil
}
