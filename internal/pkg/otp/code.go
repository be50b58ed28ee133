package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeGenerator produces random numeric codes for out-of-band delivery.
type CodeGenerator interface {
	// Generate returns a zero-padded numeric code.
	Generate() (string, error)
}

// NumericCode generates codes from crypto/rand.
type NumericCode struct {
	digits int
}

// NewNumericCode constructs a NumericCode generator. Digits outside 4..10
// fall back to 6.
func NewNumericCode(digits int) *NumericCode {
	if digits < 4 || digits > 10 {
		digits = 6
	}

	return &NumericCode{digits: digits}
}

// Generate returns a zero-padded numeric code, e.g. "042719" for 6 digits.
func (n *NumericCode) Generate() (string, error) {
	limit := big.NewInt(1)
	for range n.digits {
		limit.Mul(limit, big.NewInt(10))
	}

	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", n.digits, v), nil
}
