package generator

import (
	"crypto/rand"
	"math/big"
)

// Alphabet is the set of characters short codes are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// CodeLength is the length of every code handed out by the service.
const CodeLength = 6

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// GenerateCode returns a code of the given length. Each character is an
// independent uniform draw from Alphabet; uniqueness is not guaranteed.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		b[i] = Alphabet[n.Int64()]
	}

	return string(b), nil
}
