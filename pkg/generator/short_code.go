package generator

import (
	"crypto/rand"
	"math/big"
)

const (
	base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// CodeLength of 7 gives 62^7 ≈ 3.5e12 codes. By the birthday
	// bound, collisions stay below one in a million until roughly
	// 2.6 million stored codes, so a small retry budget suffices.
	CodeLength = 7
)

func GenerateShortCode() (string, error) {
	max := big.NewInt(int64(len(base62Chars)))

	b := make([]byte, CodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = base62Chars[n.Int64()]
	}

	return string(b), nil
}
