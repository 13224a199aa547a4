package token

import (
	"encoding/binary"
	"fmt"

	"github.com/suleymanmyradov/schemeguardian/tai64"
)

// RecordVersion is the version byte prefixed to every persisted record
// (spec §6.2). A future incompatible layout change bumps this and
// Decode rejects anything else outright.
const RecordVersion byte = 0x01

func putUint32Field(out []byte, field []byte) []byte {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(field)))
	out = append(out, lenBuf[:]...)
	return append(out, field...)
}

func readUint32Field(b []byte) (field []byte, rest []byte, err error) {
	if len(b) < 4 {
		return nil, nil, fmt.Errorf("token: truncated length prefix")
	}
	n := binary.LittleEndian.Uint32(b[:4])
	b = b[4:]
	if uint64(len(b)) < uint64(n) {
		return nil, nil, fmt.Errorf("token: truncated field, want %d bytes", n)
	}
	return b[:n], b[n:], nil
}

// Encode serializes c into the stable binary record layout: a version
// byte, then identity, proof, timestamp, lease, role, access-control list,
// and attributes, each field length-prefixed (little-endian uint32)
// except proof and timestamp, which are fixed width.
func (c TokenContents) Encode() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, 128)
	out = append(out, RecordVersion)
	out = putUint32Field(out, []byte(c.Identity))
	out = append(out, []byte(c.Proof)...)
	tsBytes := c.Timestamp.Bytes()
	out = append(out, tsBytes[:]...)
	out = putUint32Field(out, c.Lease.EncodeWire())
	out = putUint32Field(out, c.Role.EncodeWire())
	out = putUint32Field(out, c.AccessControl.EncodeWire())
	out = putUint32Field(out, c.Attributes)
	return out, nil
}

// Decode parses a binary record produced by Encode.
func Decode(b []byte) (TokenContents, error) {
	if len(b) < 1 {
		return TokenContents{}, fmt.Errorf("token: empty record")
	}
	if b[0] != RecordVersion {
		return TokenContents{}, fmt.Errorf("token: unsupported record version %d", b[0])
	}
	b = b[1:]

	identity, b, err := readUint32Field(b)
	if err != nil {
		return TokenContents{}, fmt.Errorf("token: identity: %w", err)
	}
	if len(identity) > IdentityMaxLength {
		return TokenContents{}, fmt.Errorf("token: identity exceeds %d bytes", IdentityMaxLength)
	}

	if len(b) < ProofLength+12 {
		return TokenContents{}, fmt.Errorf("token: truncated proof/timestamp")
	}
	proof := string(b[:ProofLength])
	b = b[ProofLength:]
	tsBytes := b[:12]
	b = b[12:]

	leaseField, b, err := readUint32Field(b)
	if err != nil {
		return TokenContents{}, fmt.Errorf("token: lease: %w", err)
	}
	lease, _, err := DecodeLeaseWire(leaseField)
	if err != nil {
		return TokenContents{}, err
	}

	roleField, b, err := readUint32Field(b)
	if err != nil {
		return TokenContents{}, fmt.Errorf("token: role: %w", err)
	}
	role, _, err := DecodeRoleWire(roleField)
	if err != nil {
		return TokenContents{}, err
	}

	aclField, b, err := readUint32Field(b)
	if err != nil {
		return TokenContents{}, fmt.Errorf("token: access control: %w", err)
	}
	acl := DecodeACLWire(aclField)

	attrs, _, err := readUint32Field(b)
	if err != nil {
		return TokenContents{}, fmt.Errorf("token: attributes: %w", err)
	}
	if len(attrs) > AttributesMaxLength {
		return TokenContents{}, fmt.Errorf("token: attributes exceed %d bytes", AttributesMaxLength)
	}

	ts, err := tai64.Parse(tsBytes)
	if err != nil {
		return TokenContents{}, fmt.Errorf("token: timestamp: %w", err)
	}

	c := TokenContents{
		Identity:      string(identity),
		Proof:         proof,
		Timestamp:     ts,
		Lease:         lease,
		Role:          role,
		AccessControl: acl,
		Attributes:    append([]byte(nil), attrs...),
	}
	if err := c.Validate(); err != nil {
		return TokenContents{}, err
	}
	return c, nil
}
