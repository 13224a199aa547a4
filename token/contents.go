package token

import (
	"fmt"

	"github.com/suleymanmyradov/schemeguardian/csprng"
	"github.com/suleymanmyradov/schemeguardian/tai64"
)

// ProofLength is the fixed length, in bytes, of every token's proof field
// (spec §3: a 24-character lowercase-alphanumeric CSPRNG string, doubling
// as the sealed-flavor AEAD nonce).
const ProofLength = 24

// IdentityMaxLength bounds the identity field so a single malformed record
// cannot exhaust memory during deserialization (spec §7).
const IdentityMaxLength = 4096

// AttributesMaxLength bounds the opaque attributes payload for the same
// reason.
const AttributesMaxLength = 1 << 20

// TokenContents is the full data-model record carried by every issued
// token, in every flavor (spec §3).
type TokenContents struct {
	Identity      string
	Proof         string
	Timestamp     tai64.Timestamp
	Lease         Lease
	Role          Role
	AccessControl AccessControlList
	Attributes    []byte
}

// Validate checks the record against the data-model invariants: a
// non-empty identity within IdentityMaxLength, a proof of exactly
// ProofLength bytes, and attributes within AttributesMaxLength.
func (c TokenContents) Validate() error {
	if len(c.Identity) == 0 {
		return fmt.Errorf("token: identity must not be empty")
	}
	if len(c.Identity) > IdentityMaxLength {
		return fmt.Errorf("token: identity exceeds %d bytes", IdentityMaxLength)
	}
	if len(c.Proof) != ProofLength {
		return fmt.Errorf("token: proof must be exactly %d bytes, got %d", ProofLength, len(c.Proof))
	}
	if len(c.Attributes) > AttributesMaxLength {
		return fmt.Errorf("token: attributes exceed %d bytes", AttributesMaxLength)
	}
	return nil
}

// Builder assembles a TokenContents record field by field, in the
// consuming style the token engine's issuance path uses throughout: each
// With* method returns a new Builder value rather than mutating in place.
type Builder struct {
	contents TokenContents
}

// NewBuilder starts a Builder for identity under role and lease, the three
// fields every issued token must carry.
func NewBuilder(identity string, role Role, lease Lease) Builder {
	return Builder{contents: TokenContents{
		Identity: identity,
		Role:     role,
		Lease:    lease,
	}}
}

// WithAccessControl attaches an access-control list.
func (b Builder) WithAccessControl(acl AccessControlList) Builder {
	b.contents.AccessControl = acl
	return b
}

// WithAttributes attaches an opaque, application-defined attributes
// payload.
func (b Builder) WithAttributes(attrs []byte) Builder {
	b.contents.Attributes = append([]byte(nil), attrs...)
	return b
}

// Build generates a fresh proof and timestamp, validates the assembled
// record, and returns it.
func (b Builder) Build() (TokenContents, error) {
	proof, err := csprng.Proof()
	if err != nil {
		return TokenContents{}, fmt.Errorf("token: failed to generate proof: %w", err)
	}
	b.contents.Proof = proof
	b.contents.Timestamp = tai64.Now()

	if err := b.contents.Validate(); err != nil {
		return TokenContents{}, err
	}
	return b.contents, nil
}
