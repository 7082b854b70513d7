package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateToken produces a six digit confirmation code. Short enough to type
// from an email, random enough for its one-time use.
func GenerateToken() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}
