package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// Entropy sizes in bytes, before encoding.
const (
	TokenSize128 = 16 // oauth state
	TokenSize256 = 32
	TokenSize512 = 64 // generated signing secrets
)

// RandomBytes reads n bytes from crypto/rand.
func RandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cryptox: size must be positive, got %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("cryptox: read random: %w", err)
	}
	return buf, nil
}

// GenerateToken returns size random bytes as unpadded base64url, safe to put
// in a cookie or a query string.
func GenerateToken(size int) (string, error) {
	buf, err := RandomBytes(size)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// RandomString draws length characters uniformly from charset.
func RandomString(length int, charset string) (string, error) {
	if length <= 0 || charset == "" {
		return "", fmt.Errorf("cryptox: invalid random string request: length=%d", length)
	}
	limit := big.NewInt(int64(len(charset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("cryptox: random index: %w", err)
		}
		out[i] = charset[n.Int64()]
	}
	return string(out), nil
}
