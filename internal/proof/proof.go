// Package proof builds and verifies signed ownership proofs.
//
// A proof binds a persona to an account claim at a point in time: the
// persona's Ed25519 key signs a digest over the proof fields, so anyone
// holding the persona's public key can check that the claim was made by
// the keyholder and has not been altered since.
package proof

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/personaguard/internal/keys"
)

// Proof statuses as stored in the ledger.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRevoked  = "revoked"
)

var (
	// ErrInvalidSignature means the proof's signature does not match its
	// content under the given public key.
	ErrInvalidSignature = errors.New("proof: invalid signature")

	// ErrMalformedProof means required fields are missing or undecodable.
	ErrMalformedProof = errors.New("proof: malformed proof")
)

// Proof is one signed claim that a persona controls an account.
type Proof struct {
	// ID is a random UUID assigned at build time.
	ID string `json:"id"`

	// PersonaID is the claiming persona.
	PersonaID string `json:"persona_id"`

	// Account is the claimed account string, conventionally
	// "<platform>:<handle>".
	Account string `json:"account"`

	// Statement is the free-text claim that was signed.
	Statement string `json:"statement"`

	// Digest is the base64-encoded SHA-256 over the signed fields.
	Digest string `json:"digest"`

	// Signature is the base64 Ed25519 signature over the digest.
	Signature string `json:"signature"`

	// Status is one of pending, verified, or revoked.
	Status string `json:"status"`

	// CreatedAt is the proof build time in UTC.
	CreatedAt time.Time `json:"created_at"`
}

// Build signs a new ownership proof for the given persona and account.
func Build(pair *keys.KeyPair, personaID, account, statement string) (*Proof, error) {
	if personaID == "" || account == "" {
		return nil, fmt.Errorf("%w: persona id and account are required", ErrMalformedProof)
	}

	p := &Proof{
		ID:        uuid.NewString(),
		PersonaID: personaID,
		Account:   account,
		Statement: statement,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	digest := p.digest()
	p.Digest = base64.StdEncoding.EncodeToString(digest)
	p.Signature = base64.StdEncoding.EncodeToString(pair.Sign(digest))
	return p, nil
}

// Verify checks the proof's digest and signature against public.
// A nil error means the proof content is intact and was signed by the
// holder of the corresponding private key.
func (p *Proof) Verify(public ed25519.PublicKey) error {
	wantDigest := p.digest()

	gotDigest, err := base64.StdEncoding.DecodeString(p.Digest)
	if err != nil {
		return fmt.Errorf("%w: undecodable digest: %v", ErrMalformedProof, err)
	}
	if !bytes.Equal(gotDigest, wantDigest) {
		return fmt.Errorf("%w: digest does not match content", ErrInvalidSignature)
	}

	signature, err := base64.StdEncoding.DecodeString(p.Signature)
	if err != nil {
		return fmt.Errorf("%w: undecodable signature: %v", ErrMalformedProof, err)
	}
	if !keys.Verify(public, wantDigest, signature) {
		return ErrInvalidSignature
	}
	return nil
}

// digest computes the SHA-256 over the signed fields. Status is excluded
// so ledger state transitions do not invalidate the signature.
func (p *Proof) digest() []byte {
	h := sha256.New()
	h.Write([]byte(p.ID))
	h.Write([]byte{0})
	h.Write([]byte(p.PersonaID))
	h.Write([]byte{0})
	h.Write([]byte(p.Account))
	h.Write([]byte{0})
	h.Write([]byte(p.Statement))
	h.Write([]byte{0})
	h.Write([]byte(p.CreatedAt.Format(time.RFC3339Nano)))
	return h.Sum(nil)
}
