package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/patrickmn/go-cache"
)

// OTPStore keeps one-time codes in a time-bounded in-memory cache keyed
// by email. Codes expire on their own; a successful verify consumes the
// code.
type OTPStore struct {
	codes *cache.Cache
}

func NewOTPStore(ttl time.Duration) *OTPStore {
	return &OTPStore{codes: cache.New(ttl, 2*ttl)}
}

// Generate creates a 6-digit code for the email, replacing any previous
// one.
func (s *OTPStore) Generate(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)
	s.codes.Set(email, code, cache.DefaultExpiration)
	return code, nil
}

// Verify checks the code and consumes it on success.
func (s *OTPStore) Verify(email, code string) bool {
	stored, found := s.codes.Get(email)
	if !found {
		return false
	}
	if stored.(string) != code {
		return false
	}
	s.codes.Delete(email)
	return true
}
