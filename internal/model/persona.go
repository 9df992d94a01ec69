package model

import "time"

// Persona is a self-contained identity unit. Each persona owns its own
// keypair, connected accounts, and private annotations; nothing in
// PrivateData is ever shared between personas.
//
// Design decision: Private attributes live in a nested PrivateData struct
// rather than flat fields so that the public projection (id, name, public
// key) is obvious at a glance and so the vault can encrypt the whole record
// without field-by-field bookkeeping.
type Persona struct {
	// ID is an opaque unique identifier, stable for the persona's lifetime.
	// It is the join key across all detectors and the graph node identity.
	ID string `json:"id"`

	// Name is the user-chosen display name for this persona.
	Name string `json:"name,omitempty"`

	// IsPublic indicates whether the persona may be disclosed to external
	// verification collaborators. The analyzer does not consume this flag.
	IsPublic bool `json:"is_public"`

	// PublicKey is the PEM-encoded Ed25519 public key of the persona.
	PublicKey string `json:"public_key,omitempty"`

	// PrivateData holds the persona's private attributes.
	PrivateData PrivateData `json:"private_data"`

	// CreatedAt is when the persona was created.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// PrivateData holds the attributes that belong exclusively to one persona.
// The analyzer treats all of it as read-only input.
type PrivateData struct {
	// Accounts is the ordered list of connected external accounts, each
	// conventionally shaped "<platform>:<handle>". The shape is not
	// enforced; strings without a colon are tolerated by the overlap
	// detector and skipped by the username detector.
	Accounts []string `json:"accounts"`

	// Notes is a single free-text annotation the user enters when creating
	// the persona. It sometimes contains data that must never be shared,
	// such as a hidden email address.
	Notes string `json:"notes,omitempty"`

	// SignedProofs is the ordered list of proof identifiers recorded on the
	// ledger for this persona. The analyzer does not consume it.
	SignedProofs []string `json:"signed_proofs,omitempty"`
}

// AccountCount returns the number of connected accounts.
func (p *Persona) AccountCount() int {
	return len(p.PrivateData.Accounts)
}

// HasAccount reports whether the persona lists the exact account string.
// Comparison is verbatim; no case folding or whitespace normalization.
func (p *Persona) HasAccount(account string) bool {
	for _, a := range p.PrivateData.Accounts {
		if a == account {
			return true
		}
	}
	return false
}
