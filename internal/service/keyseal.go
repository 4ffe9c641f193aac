package service

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var errSealedKey = errors.New("sealed key is corrupt")

// KeySealer encrypts household API keys at rest. The box key is derived from
// the server secret, so rotating the secret invalidates stored keys.
type KeySealer struct {
	key [32]byte
}

func NewKeySealer(secret string) *KeySealer {
	return &KeySealer{key: sha256.Sum256([]byte("pantrychef:api-key:" + secret))}
}

// Seal returns nonce || box.
func (k *KeySealer) Seal(plain string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to read nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], []byte(plain), &nonce, &k.key), nil
}

func (k *KeySealer) Open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", errSealedKey
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	out, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &k.key)
	if !ok {
		return "", errSealedKey
	}
	return string(out), nil
}
