package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Example usage:
//
//	signature := utils.HashString("some data", "my-secret-key")
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// EqualSecrets compares two secrets in constant time. Both sides are
// HMAC-ed with hashKey first so the comparison does not leak their lengths.
func EqualSecrets(given, expected, hashKey string) bool {
	return hmac.Equal(hashString([]byte(given), hashKey), hashString([]byte(expected), hashKey))
}

func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
