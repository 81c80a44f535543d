package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	secretLength   = 16
	secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateSecret produces a 16-character alphanumeric temporary credential from
// the system entropy source. At 62^16 possible values a collision with the
// account's current credential is negligible and is not checked. An unavailable
// entropy source is not recoverable, so it panics rather than returning an error.
func GenerateSecret() string {
	out := make([]byte, secretLength)
	max := big.NewInt(int64(len(secretAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(fmt.Sprintf("entropy source unavailable: %v", err))
		}
		out[i] = secretAlphabet[n.Int64()]
	}
	return string(out)
}
