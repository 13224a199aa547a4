package token

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/suleymanmyradov/schemeguardian/cryptocore"
)

// hashProofSeparator joins the hex digest to its accompanying proof in a
// hash-flavor token's wire form, analogous to the composite flavor's
// triple-colon join but for a fixed-width digest prefix.
const hashProofSeparator = ":"

// digestInput builds the stable subset hashed into a hash-flavor token:
// identity, timestamp, role header, and lease header — deliberately
// excluding the proof, which travels alongside the digest instead of
// inside it (spec §6.3).
func digestInput(c TokenContents) []byte {
	var buf []byte
	buf = append(buf, c.Identity...)
	tsBytes := c.Timestamp.Bytes()
	buf = append(buf, tsBytes[:]...)
	buf = append(buf, c.Role.EncodeWire()...)
	buf = append(buf, c.Lease.EncodeWire()...)
	return buf
}

// HashToken computes c's keyed-BLAKE3 digest under key and returns the
// wire form "<64-hex-digest>:<24-char-proof>". The digest alone is opaque
// and does not by itself prove possession of the record; the accompanying
// proof is what authenticate checks against the stored record.
func HashToken(c TokenContents, key []byte) (string, error) {
	digest, err := cryptocore.KeyedHash(key, digestInput(c))
	if err != nil {
		return "", fmt.Errorf("token: hash: %w", err)
	}
	return hex.EncodeToString(digest[:]) + hashProofSeparator + c.Proof, nil
}

// ParseHashWire splits a hash-flavor wire form into its digest bytes and
// accompanying proof.
func ParseHashWire(wire string) (digest []byte, proof string, err error) {
	idx := strings.Index(wire, hashProofSeparator)
	if idx != hex.EncodedLen(cryptocore.DigestSize) {
		return nil, "", fmt.Errorf("%w: malformed digest prefix", ErrMalformedToken)
	}
	digest, err = hex.DecodeString(wire[:idx])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	proof = wire[idx+1:]
	if len(proof) != ProofLength {
		return nil, "", fmt.Errorf("%w: malformed proof", ErrMalformedToken)
	}
	return digest, proof, nil
}

// VerifyHashDigest recomputes c's digest under key and reports whether it
// matches digest, comparing the raw fixed-size digests byte by byte with
// an accumulated XOR so the comparison time does not depend on where they
// differ.
func VerifyHashDigest(c TokenContents, key []byte, digest []byte) (bool, error) {
	expected, err := cryptocore.KeyedHash(key, digestInput(c))
	if err != nil {
		return false, fmt.Errorf("token: hash: %w", err)
	}
	if len(digest) != len(expected) {
		return false, nil
	}
	var diff byte
	for i := range expected {
		diff |= expected[i] ^ digest[i]
	}
	return diff == 0, nil
}
