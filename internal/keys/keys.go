// Package keys generates and loads the Ed25519 keypairs that back
// persona ownership proofs.
//
// Each persona owns one keypair. The public key travels inside the
// persona record; the seed never leaves the key directory and is the
// only secret required to reconstruct the private key.
package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// PEM block types for persona key material.
const (
	seedBlockType   = "PERSONAGUARD ED25519 SEED"
	publicBlockType = "PERSONAGUARD ED25519 PUBLIC KEY"
)

var (
	// ErrInvalidKeyFormat means the key file is not a recognized PEM block.
	ErrInvalidKeyFormat = errors.New("keys: invalid key format")

	// ErrInvalidSeedSize means the decoded seed is not 32 bytes.
	ErrInvalidSeedSize = errors.New("keys: invalid seed size")

	// ErrKeyNotFound means no key file exists for the persona.
	ErrKeyNotFound = errors.New("keys: key not found")
)

// KeyPair holds a persona's Ed25519 keypair.
type KeyPair struct {
	// Public is the verification key, safe to store in the persona record.
	Public ed25519.PublicKey

	// Private is the signing key. Never serialized; only the seed is.
	Private ed25519.PrivateKey
}

// Generate creates a fresh Ed25519 keypair from crypto/rand.
func Generate() (*KeyPair, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	return &KeyPair{Public: public, Private: private}, nil
}

// FromSeed reconstructs a keypair from a 32-byte seed.
func FromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSeedSize, len(seed), ed25519.SeedSize)
	}
	private := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{
		Public:  private.Public().(ed25519.PublicKey),
		Private: private,
	}, nil
}

// Sign signs message with the persona's private key.
func (k *KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(k.Private, message)
}

// Verify reports whether signature is a valid signature of message
// under public.
func Verify(public ed25519.PublicKey, message, signature []byte) bool {
	if len(public) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(public, message, signature)
}

// SaveSeed writes the keypair's seed to path as a PEM block with 0600
// permissions. The parent directory is created when missing.
func (k *KeyPair) SaveSeed(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create key directory: %w", err)
	}

	block := &pem.Block{
		Type:  seedBlockType,
		Bytes: k.Private.Seed(),
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		return fmt.Errorf("write seed: %w", err)
	}
	return nil
}

// LoadSeed reads a PEM-encoded seed back into a keypair.
func LoadSeed(path string) (*KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		return nil, fmt.Errorf("read seed: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil || block.Type != seedBlockType {
		return nil, ErrInvalidKeyFormat
	}
	return FromSeed(block.Bytes)
}

// EncodePublic renders a public key as a PEM string for embedding in a
// persona record.
func EncodePublic(public ed25519.PublicKey) string {
	block := &pem.Block{
		Type:  publicBlockType,
		Bytes: public,
	}
	return string(pem.EncodeToMemory(block))
}

// DecodePublic parses a PEM string produced by EncodePublic.
func DecodePublic(encoded string) (ed25519.PublicKey, error) {
	block, _ := pem.Decode([]byte(encoded))
	if block == nil || block.Type != publicBlockType {
		return nil, ErrInvalidKeyFormat
	}
	if len(block.Bytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyFormat, len(block.Bytes), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(block.Bytes), nil
}
