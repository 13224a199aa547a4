package token

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/suleymanmyradov/schemeguardian/tai64"
)

// LeaseKind tags the lease variants from spec §3. Only Lifetime and
// DateExpiryTAI carry a self-contained expiry that authenticate can
// evaluate without external state; the rest describe an event the issuing
// application must track and report back through Revoke.
type LeaseKind uint8

const (
	LeaseLifetimeKind LeaseKind = iota + 1
	LeaseDateExpiryKind
	LeaseFirstAccessKind
	LeaseOnDownloadKind
	LeaseOnDownloadsKind
	LeaseOnUploadKind
	LeaseOnUploadsKind
	LeaseOnDisconnectionKind
	LeaseCorruptedKind
)

// Lease is the tagged-variant lease type. DateExpiryTAI carries a TAI64N
// expiry instant; OnDownloads/OnUploads carry a remaining-count threshold;
// the rest are bare tags.
type Lease struct {
	kind   LeaseKind
	expiry tai64.Timestamp
	count  uint64
}

func NewLifetimeLease() Lease { return Lease{kind: LeaseLifetimeKind} }

// NewDateExpiryLease constructs a lease that expires at expiry.
func NewDateExpiryLease(expiry tai64.Timestamp) Lease {
	return Lease{kind: LeaseDateExpiryKind, expiry: expiry}
}

func NewFirstAccessLease() Lease      { return Lease{kind: LeaseFirstAccessKind} }
func NewOnDownloadLease() Lease       { return Lease{kind: LeaseOnDownloadKind} }
func NewOnUploadLease() Lease         { return Lease{kind: LeaseOnUploadKind} }
func NewOnDisconnectionLease() Lease  { return Lease{kind: LeaseOnDisconnectionKind} }
func NewCorruptedLease() Lease        { return Lease{kind: LeaseCorruptedKind} }

// NewOnDownloadsLease constructs a lease good for n downloads.
func NewOnDownloadsLease(n uint64) Lease {
	return Lease{kind: LeaseOnDownloadsKind, count: n}
}

// NewOnUploadsLease constructs a lease good for n uploads.
func NewOnUploadsLease(n uint64) Lease {
	return Lease{kind: LeaseOnUploadsKind, count: n}
}

// DefaultLease returns the conventional default lease: a date-expiry lease
// good for 24 hours from now (spec §4.5 default issuance lease).
func DefaultLease() Lease {
	return NewDateExpiryLease(tai64.FromTime(time.Now().Add(24 * time.Hour)))
}

func (l Lease) Kind() LeaseKind        { return l.kind }
func (l Lease) Expiry() tai64.Timestamp { return l.expiry }
func (l Lease) Count() uint64          { return l.count }

func (l Lease) String() string {
	switch l.kind {
	case LeaseLifetimeKind:
		return "Lifetime"
	case LeaseDateExpiryKind:
		return fmt.Sprintf("DateExpiryTAI(%s)", l.expiry.String())
	case LeaseFirstAccessKind:
		return "FirstAccess"
	case LeaseOnDownloadKind:
		return "OnDownload"
	case LeaseOnDownloadsKind:
		return fmt.Sprintf("OnDownloads(%d)", l.count)
	case LeaseOnUploadKind:
		return "OnUpload"
	case LeaseOnUploadsKind:
		return fmt.Sprintf("OnUploads(%d)", l.count)
	case LeaseOnDisconnectionKind:
		return "OnDisconnection"
	case LeaseCorruptedKind:
		return "Corrupted"
	default:
		return "Unknown"
	}
}

// Status classifies a lease's validity at instant now. Self-contained
// leases (Lifetime, DateExpiryTAI) resolve directly; every other variant
// depends on application-reported events the core cannot observe, so it
// resolves as LeaseIndeterminate — authenticate treats that conservatively
// as not-yet-valid-to-grant rather than guessing (spec §9 open question,
// preserved as specified).
type LeaseState uint8

const (
	LeaseValid LeaseState = iota
	LeaseExpired
	LeaseIndeterminate
)

func (l Lease) Status(now tai64.Timestamp) LeaseState {
	switch l.kind {
	case LeaseLifetimeKind:
		return LeaseValid
	case LeaseDateExpiryKind:
		if now.After(l.expiry) || now.Equal(l.expiry) {
			return LeaseExpired
		}
		return LeaseValid
	default:
		return LeaseIndeterminate
	}
}

// Header returns the single-byte wire tag for l's variant.
func (l Lease) Header() byte { return byte(l.kind) }

// EncodeWire renders l as its wire form: a one-byte header followed by a
// fixed-width payload for the variants that carry one (12-byte big-endian
// TAI64N for DateExpiryTAI, 8-byte little-endian count for
// OnDownloads/OnUploads).
func (l Lease) EncodeWire() []byte {
	switch l.kind {
	case LeaseDateExpiryKind:
		out := make([]byte, 1+12)
		out[0] = l.Header()
		tsBytes := l.expiry.Bytes()
		copy(out[1:], tsBytes[:])
		return out
	case LeaseOnDownloadsKind, LeaseOnUploadsKind:
		out := make([]byte, 1+8)
		out[0] = l.Header()
		binary.LittleEndian.PutUint64(out[1:], l.count)
		return out
	default:
		return []byte{l.Header()}
	}
}

// DecodeLeaseWire parses a lease from its wire form, returning the lease
// and the number of bytes consumed.
func DecodeLeaseWire(b []byte) (Lease, int, error) {
	if len(b) == 0 {
		return Lease{}, 0, fmt.Errorf("token: empty lease wire form")
	}
	kind := LeaseKind(b[0])
	switch kind {
	case LeaseLifetimeKind, LeaseFirstAccessKind, LeaseOnDownloadKind, LeaseOnUploadKind,
		LeaseOnDisconnectionKind, LeaseCorruptedKind:
		return Lease{kind: kind}, 1, nil
	case LeaseDateExpiryKind:
		if len(b) < 13 {
			return Lease{}, 0, fmt.Errorf("token: truncated date-expiry lease")
		}
		ts, err := tai64.Parse(b[1:13])
		if err != nil {
			return Lease{}, 0, fmt.Errorf("token: %w", err)
		}
		return Lease{kind: kind, expiry: ts}, 13, nil
	case LeaseOnDownloadsKind, LeaseOnUploadsKind:
		if len(b) < 9 {
			return Lease{}, 0, fmt.Errorf("token: truncated count lease")
		}
		return Lease{kind: kind, count: binary.LittleEndian.Uint64(b[1:9])}, 9, nil
	default:
		return Lease{}, 0, fmt.Errorf("token: unknown lease tag %d", b[0])
	}
}
