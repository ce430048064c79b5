package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var ten = big.NewInt(10)

// GenerateNumericCode returns a uniformly random string of length decimal digits.
// Leading zeros are kept, so "004213" is a valid six digit code.
func GenerateNumericCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits), nil
}
