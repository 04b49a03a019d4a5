// Package sealer encrypts small local records at rest with XChaCha20-Poly1305.
package sealer

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// KeyLen is the length of master and derived keys.
const KeyLen = chacha20poly1305.KeySize

var (
	// ErrShortBlob is returned by Open when the input cannot hold a nonce.
	ErrShortBlob = errors.New("sealer: blob too short")
	// ErrBadKey is returned for keys of the wrong length.
	ErrBadKey = errors.New("sealer: bad key length")
)

// Rand returns n cryptographically secure random bytes.
func Rand(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// LoadOrCreateKey reads the master key at path, generating a new 0600 key file when absent.
func LoadOrCreateKey(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(b) != KeyLen {
			return nil, fmt.Errorf("%w: %s", ErrBadKey, path)
		}
		return b, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	key, err := Rand(KeyLen)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, err
	}
	return key, nil
}

// DeriveKey derives a subkey via HKDF-SHA256 using info as context.
func DeriveKey(master, info []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, master, nil, info)
	key := make([]byte, KeyLen)
	_, err := r.Read(key)
	return key, err
}

// Sealer binds a key; AAD ties each blob to its record name.
type Sealer struct {
	key []byte
}

// New constructs a Sealer for a KeyLen key.
func New(key []byte) (*Sealer, error) {
	if len(key) != KeyLen {
		return nil, ErrBadKey
	}
	return &Sealer{key: append([]byte(nil), key...)}, nil
}

// Seal encrypts plaintext as nonce||ciphertext with a random nonce.
func (s *Sealer) Seal(aad, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	nonce, err := Rand(chacha20poly1305.NonceSizeX)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, aad), nil
}

// Open decrypts a blob produced by Seal with the same AAD.
func (s *Sealer) Open(aad, blob []byte) ([]byte, error) {
	if len(blob) < chacha20poly1305.NonceSizeX {
		return nil, ErrShortBlob
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	nonce := blob[:chacha20poly1305.NonceSizeX]
	ct := blob[chacha20poly1305.NonceSizeX:]
	return aead.Open(nil, nonce, ct, aad)
}
