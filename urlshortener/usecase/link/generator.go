package link

import "math/rand"

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// CodeGenerator returns a random code of the given length. Uniqueness is the
// caller's job.
type CodeGenerator func(length int) string

// GenerateCode is not cryptographically secure.
func GenerateCode(length int) string {
	code := make([]byte, length)
	for i := range code {
		code[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(code)
}
