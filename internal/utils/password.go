package utils

import (
    "crypto/subtle"
    "encoding/hex"

    "golang.org/x/crypto/argon2"
)

// Argon2id parameters.  Changing any of them invalidates stored hashes.
const (
    argonTime    = 1
    argonMemory  = 64 * 1024
    argonThreads = 4
    argonKeyLen  = 32
    saltBytes    = 16
)

// NewSalt returns a fresh random salt, hex encoded.  A login's salt is
// generated once at registration and stored next to the hash.
func NewSalt() (string, error) {
    return randomHex(saltBytes)
}

// HashPassword derives the hex-encoded argon2id hash of plain under salt.
// The same inputs always give the same output.
func HashPassword(plain, salt string) string {
    key := argon2.IDKey([]byte(plain), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
    return hex.EncodeToString(key)
}

// VerifyPassword reports whether plain hashes to hash under salt.  The
// comparison runs in constant time.
func VerifyPassword(hash, salt, plain string) bool {
    got := HashPassword(plain, salt)
    return subtle.ConstantTimeCompare([]byte(got), []byte(hash)) == 1
}
