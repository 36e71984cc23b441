package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/blake2b"
)

// GenerateKeyPair generates ed25519 (signing key, verifying) key pair
func GenerateKeyPair() ([]byte, []byte, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, nil, err
	}

	return seed, GetVerificationKeyFromSigningKey(seed), nil
}

// GetVerificationKeyFromSigningKey retrieves verification/public key from signing/private key
func GetVerificationKeyFromSigningKey(signingKey []byte) []byte {
	return ed25519.NewKeyFromSeed(signingKey).Public().(ed25519.PublicKey) //nolint:forcetypeassert
}

// GetKeyHashBytes gets Cardano key hash from arbitrary bytes
func GetKeyHashBytes(bytes []byte) ([]byte, error) {
	hasher, err := blake2b.New(KeyHashSize, nil)
	if err != nil {
		return nil, err
	}

	if _, err := hasher.Write(bytes); err != nil {
		return nil, err
	}

	return hasher.Sum(nil), nil
}

// GetKeyHash gets Cardano key hash string from arbitrary key
func GetKeyHash(bytes []byte) (string, error) {
	bytes, err := GetKeyHashBytes(bytes)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
