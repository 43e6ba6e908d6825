// Package cryptox implements one-way password hashing for stored credentials.
//
// A stored hash is the hex-encoded random salt immediately followed by the
// hex-encoded PBKDF2-SHA512 derived key:
//
//	<32 hex chars of salt><128 hex chars of key>
//
// The salt hex string itself is fed to the KDF as the salt, which keeps hashes
// interchangeable with the ones already present in the users table.
package cryptox

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltBytes is the number of random salt bytes. Hash and verify both split
	// on SaltBytes*2 hex characters.
	SaltBytes = 16
	// KeyBytes is the PBKDF2 output length.
	KeyBytes = 64
	// Iterations is the PBKDF2 work factor.
	Iterations = 100_000
)

// Params are the key-derivation parameters.
type Params struct {
	Iterations int
	KeyBytes   int
}

// DefaultParams are the parameters every stored hash is produced with.
var DefaultParams = Params{Iterations: Iterations, KeyBytes: KeyBytes}

// HashPassword hashes password with a fresh random salt and DefaultParams.
func HashPassword(password string) (string, error) {
	return DefaultParams.Hash(password)
}

// VerifyPassword reports whether password matches hash under DefaultParams.
// Malformed hashes never match.
func VerifyPassword(password, hash string) bool {
	return DefaultParams.Verify(password, hash)
}

// Hash hashes password with a fresh random salt.
func (p Params) Hash(password string) (string, error) {
	salt := make([]byte, SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	saltHex := hex.EncodeToString(salt)

	return saltHex + hex.EncodeToString(p.derive(password, saltHex)), nil
}

// Verify re-derives the key with the salt embedded in hash and compares it to
// the stored key in constant time.
func (p Params) Verify(password, hash string) bool {
	saltLen := SaltBytes * 2
	if len(hash) != saltLen+p.KeyBytes*2 {
		return false
	}

	saltHex := hash[:saltLen]
	if _, err := hex.DecodeString(saltHex); err != nil {
		return false
	}

	stored, err := hex.DecodeString(hash[saltLen:])
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(stored, p.derive(password, saltHex)) == 1
}

func (p Params) derive(password, saltHex string) []byte {
	return pbkdf2.Key([]byte(password), []byte(saltHex), p.Iterations, p.KeyBytes, sha512.New)
}
