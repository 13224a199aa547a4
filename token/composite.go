package token

import (
	"fmt"
	"strings"
)

// compositeSeparator joins a composite token's fields (spec §6.3).
const compositeSeparator = ":::"

// ComposeToken renders c as a composite token: "identity:::proof" or,
// when target is non-empty, "identity:::proof:::target". Composite tokens
// carry their proof and an optional application-defined target (e.g. a
// resource path) directly on the wire, unencrypted; the store indexes the
// record by identity.
func ComposeToken(c TokenContents, target string) (string, error) {
	if len(c.Identity) == 0 {
		return "", ErrIdentityMissing
	}
	if strings.Contains(c.Identity, compositeSeparator) || strings.Contains(c.Proof, compositeSeparator) || strings.Contains(target, compositeSeparator) {
		return "", fmt.Errorf("token: identity/proof/target must not contain %q", compositeSeparator)
	}

	parts := []string{c.Identity, c.Proof}
	if target != "" {
		parts = append(parts, target)
	}
	return strings.Join(parts, compositeSeparator), nil
}

// ParseComposite splits a composite token's wire form into identity,
// proof, and an optional target (empty if absent).
func ParseComposite(wire string) (identity, proof, target string, err error) {
	parts := strings.Split(wire, compositeSeparator)
	if len(parts) != 2 && len(parts) != 3 {
		return "", "", "", fmt.Errorf("%w: expected 2 or 3 fields, got %d", ErrMalformedToken, len(parts))
	}
	identity, proof = parts[0], parts[1]
	if len(identity) == 0 {
		return "", "", "", ErrIdentityMissing
	}
	if len(proof) != ProofLength {
		return "", "", "", fmt.Errorf("%w: malformed proof", ErrMalformedToken)
	}
	if len(parts) == 3 {
		target = parts[2]
	}
	return identity, proof, target, nil
}

// IsComposite reports whether wire has the shape of a composite token,
// used by the flavor dispatcher before attempting a full parse.
func IsComposite(wire string) bool {
	return strings.Contains(wire, compositeSeparator)
}
