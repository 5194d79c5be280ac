// Package crypt seals short secrets with AES-256-GCM.
//
// Sealed values are base64url(nonce || ciphertext || tag), so one string can
// sit in a JSON file, a Redis key or a cookie.
//
//	s, err := crypt.New(config.SessionKey())
//	enc, err := s.Seal([]byte(token))
//	plain, err := s.Open(enc)
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrDecrypt is returned when a value is malformed or fails authentication,
// including values sealed under a different key.
var ErrDecrypt = errors.New("crypt: decryption failed")

// ErrNoKey is returned by New for an empty secret.
var ErrNoKey = errors.New("crypt: no key configured")

// Sealer encrypts and authenticates values under one key.
type Sealer struct {
	aead cipher.AEAD
}

// New derives an AES-256 key from secret with SHA-256.
func New(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, ErrNoKey
	}
	k := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(k[:])
	if err != nil {
		return nil, fmt.Errorf("crypt: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypt: new GCM: %w", err)
	}
	return &Sealer{aead: gcm}, nil
}

// Seal encrypts data with a fresh random nonce.
func (s *Sealer) Seal(data []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("crypt: nonce: %w", err)
	}
	return base64.URLEncoding.EncodeToString(s.aead.Seal(nonce, nonce, data, nil)), nil
}

// Open reverses Seal.
func (s *Sealer) Open(encoded string) ([]byte, error) {
	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrDecrypt
	}
	n := s.aead.NonceSize()
	if len(data) < n {
		return nil, ErrDecrypt
	}
	plain, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plain, nil
}
