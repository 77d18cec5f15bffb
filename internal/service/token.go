package service

import "math/rand/v2"

const (
	TokenLength   = 5
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// TokenGenerator returns a random token of the requested length.
type TokenGenerator func(length int) string

// GenerateToken draws each character uniformly from A-Z0-9. Not suitable
// for secrets; uniqueness is the caller's job.
func GenerateToken(length int) string {
	if length <= 0 {
		length = TokenLength
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = tokenAlphabet[rand.IntN(len(tokenAlphabet))]
	}
	return string(b)
}
