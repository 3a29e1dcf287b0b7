// Package random wraps crypto/rand for contest rolls and link tokens.
// Entrants must not be able to predict or influence outcomes, so a
// statistical PRNG is never acceptable here.
package random

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Intn returns a uniform random value in [0, n). It panics if n <= 0.
func Intn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}

// Token returns a random string of length n drawn from a 62-symbol
// alphabet.
func Token(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[Intn(len(alphabet))]
	}
	return string(b)
}
