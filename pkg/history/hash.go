package history

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

const (
	// MaxHashSize is the maximum number of bytes to hash from large inputs.
	// Hashing only the first 1MB prevents memory exhaustion while still
	// providing reasonable collision resistance for integrity verification.
	MaxHashSize = 1024 * 1024 // 1MB
)

// HashContent computes the SHA-256 hash of the content and returns it as a
// hex-encoded string. For large content exceeding MaxHashSize, only the first
// MaxHashSize bytes are hashed.
//
// Returns an empty string if content is empty.
func HashContent(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	// Limit hash size to prevent memory exhaustion on large inputs
	contentToHash := content
	if len(content) > MaxHashSize {
		contentToHash = content[:MaxHashSize]
	}

	hash := sha256.Sum256(contentToHash)

	return hex.EncodeToString(hash[:])
}

// HashString is a convenience function that hashes a string and returns the
// hex-encoded SHA-256 hash.
func HashString(content string) string {
	return HashContent([]byte(content))
}

// HashFile computes the SHA-256 hash of the file at path, reading at most
// MaxHashSize bytes. An empty file hashes to an empty string.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxHashSize))
	if err != nil {
		return "", err
	}

	return HashContent(content), nil
}
