// Package vault stores the persona set as a single passphrase-encrypted
// file.
//
// The on-disk format is: 16-byte scrypt salt, 24-byte secretbox nonce,
// then the NaCl secretbox ciphertext over the JSON-encoded persona list.
// A fresh salt and nonce are drawn on every save, so saving the same
// personas twice produces different files.
package vault

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/nao1215/personaguard/internal/model"
)

// scrypt parameters. N=2^15 keeps unlock under a second on commodity
// hardware while staying expensive for offline guessing.
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	saltSize     = 16
	nonceSize    = 24
	keySize      = 32
	vaultPerm    = 0600
	vaultDirPerm = 0700
)

var (
	// ErrVaultNotFound means no vault file exists at the path.
	ErrVaultNotFound = errors.New("vault: not found")

	// ErrWrongPassphrase means the passphrase failed to authenticate the
	// ciphertext. Indistinguishable from tampering by construction.
	ErrWrongPassphrase = errors.New("vault: wrong passphrase or tampered data")

	// ErrCorruptVault means the file is too short to contain a valid
	// header or holds undecodable plaintext.
	ErrCorruptVault = errors.New("vault: corrupt vault file")
)

// Vault reads and writes the encrypted persona file.
type Vault struct {
	// path is the vault file location.
	path string
}

// New returns a Vault at the given path.
func New(path string) *Vault {
	return &Vault{path: path}
}

// DefaultPath returns the XDG data location for the vault file,
// typically ~/.local/share/personaguard/vault.bin.
func DefaultPath() (string, error) {
	path, err := xdg.DataFile(filepath.Join("personaguard", "vault.bin"))
	if err != nil {
		return "", fmt.Errorf("resolve vault path: %w", err)
	}
	return path, nil
}

// Path returns the vault file location.
func (v *Vault) Path() string {
	return v.path
}

// Exists reports whether the vault file is present.
func (v *Vault) Exists() bool {
	_, err := os.Stat(v.path)
	return err == nil
}

// Save encrypts personas under passphrase and writes the vault file with
// 0600 permissions. The parent directory is created when missing.
func (v *Vault) Save(personas []model.Persona, passphrase []byte) error {
	plaintext, err := json.Marshal(personas)
	if err != nil {
		return fmt.Errorf("encode personas: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("draw salt: %w", err)
	}

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return err
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("draw nonce: %w", err)
	}

	// Layout: salt || nonce || ciphertext.
	out := make([]byte, 0, saltSize+nonceSize+len(plaintext)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, plaintext, &nonce, key)

	if err := os.MkdirAll(filepath.Dir(v.path), vaultDirPerm); err != nil {
		return fmt.Errorf("create vault directory: %w", err)
	}
	if err := os.WriteFile(v.path, out, vaultPerm); err != nil {
		return fmt.Errorf("write vault: %w", err)
	}
	return nil
}

// Load decrypts the vault file with passphrase and returns the persona
// list. A missing file yields ErrVaultNotFound; an authentication failure
// yields ErrWrongPassphrase.
func (v *Vault) Load(passphrase []byte) ([]model.Persona, error) {
	data, err := os.ReadFile(v.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrVaultNotFound, v.path)
		}
		return nil, fmt.Errorf("read vault: %w", err)
	}

	if len(data) < saltSize+nonceSize+secretbox.Overhead {
		return nil, ErrCorruptVault
	}

	salt := data[:saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], data[saltSize:saltSize+nonceSize])
	ciphertext := data[saltSize+nonceSize:]

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	plaintext, ok := secretbox.Open(nil, ciphertext, &nonce, key)
	if !ok {
		return nil, ErrWrongPassphrase
	}

	var personas []model.Persona
	if err := json.Unmarshal(plaintext, &personas); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptVault, err)
	}
	return personas, nil
}

// deriveKey stretches passphrase into a secretbox key via scrypt.
func deriveKey(passphrase, salt []byte) (*[keySize]byte, error) {
	raw, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	var key [keySize]byte
	copy(key[:], raw)
	return &key, nil
}
