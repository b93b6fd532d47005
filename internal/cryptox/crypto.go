// Package cryptox bundles the cryptographic primitives of the auth core:
// salt generation, password digests, constant-time verification, key
// derivation, and AES-GCM sealing of small records.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/finkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the number of random bytes in a per-user salt.
const SaltSize = 16

// GenerateSalt produces a fresh per-user salt: SaltSize cryptographically
// random bytes rendered as a lowercase hex string. Failure of the entropy
// source surfaces as common.ErrCryptoUnavailable.
func GenerateSalt() (string, error) {
	return common.MakeRandHexString(SaltSize)
}

// HashPassword derives a verifiable digest from a plaintext password and a
// per-user salt: hex(SHA-256(password || salt)). Deterministic for a given
// (password, salt) pair and one-way; never call it with an empty salt.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword recomputes the digest for the candidate password and
// compares it against the stored digest in constant time, so the comparison
// leaks no information about where the two first differ.
func VerifyPassword(password, salt, digest string) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(digest)) == 1
}

// DeriveKey stretches a low-entropy secret into a 32-byte AES key using
// argon2id with the same cost parameters the rest of the project uses.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// SealEntry serializes the given value to JSON and encrypts it using AES-GCM.
//
// The key must be a valid AES key length (16, 24, or 32 bytes). A new random
// 12-byte nonce is generated per call; ciphertext and nonce are returned
// separately so the caller decides how to store them.
func SealEntry(entry any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(entry)
	if err != nil {
		return nil, nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}

	nonce, err = common.GenerateRandByteArray(aesgcm.NonceSize())
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// OpenEntry decrypts ciphertext produced by SealEntry and unmarshals the
// resulting JSON into v. The key and nonce must match the sealing call;
// any tampering fails authentication and returns an error.
func OpenEntry(ciphertext, nonce, key []byte, v any) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}

// LoadOrCreateKeyFile returns the 32-byte device secret stored at path,
// creating it with fresh random bytes and 0600 permissions on first use.
// The secret signs session tokens and derives the session-store seal key.
func LoadOrCreateKeyFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		if len(b) != 32 {
			return nil, fmt.Errorf("%w: device key file %s has unexpected size %d", common.ErrCryptoUnavailable, path, len(b))
		}
		return b, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading device key: %w", err)
	}

	key, err := common.GenerateRandByteArray(32)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("writing device key: %w", err)
	}
	return key, nil
}
