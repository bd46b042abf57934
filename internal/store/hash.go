package store

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. The username doubles as the salt, which keeps the
// hash deterministic per account without an extra column.
const (
	hashIterations = 100_000
	hashKeyLen     = 32
)

func hashPassword(username, password string) string {
	key := pbkdf2.Key([]byte(password), []byte(username), hashIterations, hashKeyLen, sha256.New)
	return hex.EncodeToString(key)
}
