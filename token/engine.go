package token

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Flavor identifies which of the three wire formats a token was issued in.
type Flavor uint8

const (
	FlavorSealed Flavor = iota + 1
	FlavorHash
	FlavorComposite
)

func (f Flavor) String() string {
	switch f {
	case FlavorSealed:
		return "sealed"
	case FlavorHash:
		return "hash"
	case FlavorComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Credential is a presented token, parsed but not yet verified: enough to
// know which store key to look up and what to check the looked-up record
// against. It is the output of DetectFlavor + the per-flavor parse, and
// the input to the auth package's authenticate algorithm.
type Credential struct {
	Flavor Flavor

	// Identity is populated for Sealed and Composite credentials — the
	// plaintext store lookup key.
	Identity string

	// Digest is populated for Hash credentials — the raw store lookup key.
	Digest []byte

	// Proof is populated for Composite and Hash credentials — the value
	// to compare against the stored record's proof. Sealed credentials
	// carry no proof; the nonce comes from the stored record.
	Proof string

	// Ciphertext is populated for Sealed credentials.
	Ciphertext []byte

	// Target is populated for Composite credentials when present.
	Target string
}

// DetectFlavor classifies a presented wire string by shape: ":::" marks
// Composite; a 64-hex-digit prefix followed by ":" and a 24-character
// proof marks Hash; anything else containing a ":" is Sealed.
// The trailing-length check matters: a Sealed identity can itself be a
// 64-character hex string, so the hex-prefix test alone isn't enough to
// tell the two flavors apart.
func DetectFlavor(wire string) (Flavor, error) {
	if IsComposite(wire) {
		return FlavorComposite, nil
	}

	idx := strings.Index(wire, hashProofSeparator)
	if idx < 0 {
		return 0, fmt.Errorf("%w: no recognizable separator", ErrUnknownFlavor)
	}
	if idx == hex.EncodedLen(32) && len(wire) == idx+1+ProofLength {
		if _, err := hex.DecodeString(wire[:idx]); err == nil {
			return FlavorHash, nil
		}
	}
	return FlavorSealed, nil
}

// ParseCredential detects wire's flavor and parses it into a Credential.
func ParseCredential(wire string) (Credential, error) {
	flavor, err := DetectFlavor(wire)
	if err != nil {
		return Credential{}, err
	}

	switch flavor {
	case FlavorComposite:
		identity, proof, target, err := ParseComposite(wire)
		if err != nil {
			return Credential{}, err
		}
		return Credential{Flavor: FlavorComposite, Identity: identity, Proof: proof, Target: target}, nil

	case FlavorHash:
		digest, proof, err := ParseHashWire(wire)
		if err != nil {
			return Credential{}, err
		}
		return Credential{Flavor: FlavorHash, Digest: digest, Proof: proof}, nil

	case FlavorSealed:
		identity, ciphertext, err := ParseSealedWire(wire)
		if err != nil {
			return Credential{}, err
		}
		return Credential{Flavor: FlavorSealed, Identity: identity, Ciphertext: ciphertext}, nil

	default:
		return Credential{}, ErrUnknownFlavor
	}
}

// Issue builds a fresh TokenContents record for identity/role/lease and
// renders it in the requested flavor, returning both the wire string and
// the record (which the caller persists to the store under the flavor's
// lookup key: identity for Sealed/Composite, the digest for Hash).
func Issue(flavor Flavor, identity string, role Role, lease Lease, acl AccessControlList, attrs []byte, aeadKey, hashKey []byte, target string) (string, TokenContents, error) {
	contents, err := NewBuilder(identity, role, lease).
		WithAccessControl(acl).
		WithAttributes(attrs).
		Build()
	if err != nil {
		return "", TokenContents{}, err
	}

	wire, err := Render(flavor, contents, aeadKey, hashKey, target)
	if err != nil {
		return "", TokenContents{}, err
	}
	return wire, contents, nil
}

// Render renders an already-built record in the requested flavor.
func Render(flavor Flavor, contents TokenContents, aeadKey, hashKey []byte, target string) (string, error) {
	switch flavor {
	case FlavorSealed:
		return SealToken(contents, aeadKey)
	case FlavorHash:
		return HashToken(contents, hashKey)
	case FlavorComposite:
		return ComposeToken(contents, target)
	default:
		return "", ErrUnknownFlavor
	}
}

// Reissue swaps proof and timestamp on an existing record, preserving
// identity, lease, role, access control, and attributes, then renders the
// result in the same flavor as the original. This is the core of the
// auth package's Reissue operation (spec §4.8).
func Reissue(flavor Flavor, existing TokenContents, aeadKey, hashKey []byte, target string) (string, TokenContents, error) {
	fresh, err := NewBuilder(existing.Identity, existing.Role, existing.Lease).
		WithAccessControl(existing.AccessControl).
		WithAttributes(existing.Attributes).
		Build()
	if err != nil {
		return "", TokenContents{}, err
	}

	wire, err := Render(flavor, fresh, aeadKey, hashKey, target)
	if err != nil {
		return "", TokenContents{}, err
	}
	return wire, fresh, nil
}
