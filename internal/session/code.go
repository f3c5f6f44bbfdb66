package session

import (
	"math/rand"
)

const codeLength = 4
const maxRetries = 100

var letters = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ")

// GenerateCode creates a random 4-letter uppercase session code that a
// display can type to watch a session. I and O are left out so codes read
// unambiguously on screen.
func GenerateCode(existing map[string]bool) string {
	for range maxRetries {
		code := randomCode()
		if !existing[code] {
			return code
		}
	}
	// 24^4 = 331,776 combinations; exhausting retries means the server is saturated.
	return randomCode()
}

func randomCode() string {
	b := make([]rune, codeLength)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
