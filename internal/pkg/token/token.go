package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

const requestTokenBytes = 32

// entropy is swapped in tests to simulate a failing source.
var entropy io.Reader = rand.Reader

// NewRequestToken returns a random hex token, used as the OAuth state for
// one verification attempt. The token is the store key and must never be logged.
func NewRequestToken() (string, error) {
	b := make([]byte, requestTokenBytes)
	if _, err := io.ReadFull(entropy, b); err != nil {
		return "", fmt.Errorf("read %d random bytes for request token: %w", requestTokenBytes, err)
	}
	return hex.EncodeToString(b), nil
}
