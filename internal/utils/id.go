package utils

import (
	"crypto/rand"
	"encoding/base64"
	"path"
	"strings"
)

// GenerateSecureToken creates a cryptographically secure random token.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewObjectKey builds a collision-free object-storage key under prefix,
// keeping the original file extension so content type survives.
func NewObjectKey(prefix, filename string) (string, error) {
	token, err := GenerateSecureToken(16)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(filename))
	return prefix + "/" + token + ext, nil
}
