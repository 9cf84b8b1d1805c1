package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateVerificationCode returns a numeric code of exactly `length` digits.
// The value is drawn uniformly from [10^(length-1), 10^length - 1], so the
// first digit is never zero and the rendered string never loses length.
func GenerateVerificationCode(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}

	min := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)

	// rand.Int is half-open, so the span covers min..max-1 inclusive.
	span := new(big.Int).Sub(max, min)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	return n.Add(n, min).String(), nil
}
