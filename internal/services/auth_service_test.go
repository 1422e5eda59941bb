package services

import (
	"testing"

	"wheeltradr/internal/testutil"
)

func TestAuthService(t *testing.T) {
	hash, err := HashPassphrase("correct horse")
	testutil.AssertNoError(t, err)

	t.Run("valid_passphrase", func(t *testing.T) {
		svc := NewAuthService(hash)
		if !svc.Enabled() {
			t.Fatal("expected auth enabled")
		}
		testutil.AssertNoError(t, svc.VerifyPassphrase("correct horse"))
	})

	t.Run("wrong_passphrase", func(t *testing.T) {
		err := NewAuthService(hash).VerifyPassphrase("battery staple")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("disabled", func(t *testing.T) {
		svc := NewAuthService("")
		if svc.Enabled() {
			t.Fatal("expected auth disabled")
		}
		testutil.AssertAppError(t, svc.VerifyPassphrase("anything"), "NOT_FOUND")
	})
}
