// Package tai64 provides a TAI64N monotonic timestamp source, independent
// of leap seconds, for use as the creation and expiry clock throughout
// SchemeGuardian.
package tai64

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"
)

// taiEpochOffset is the TAI64 label offset: second 0 of TAI64 is
// 2^62 seconds before 1970-01-01 TAI, per the external TAI64 format note.
const taiEpochOffset = uint64(1) << 62

// Size is the on-wire length of a TAI64N value: 8 bytes of seconds plus
// 4 bytes of nanoseconds.
const Size = 12

// Timestamp is a TAI64N instant: seconds since the TAI64 epoch plus a
// nanosecond fraction, held as a seconds count and a nanoseconds count
// that map directly onto the 12-byte external format.
type Timestamp struct {
	seconds     uint64
	nanoseconds uint32
}

// Now returns the current instant as a TAI64N timestamp.
func Now() Timestamp {
	return FromTime(time.Now().UTC())
}

// FromTime converts a time.Time to its TAI64N representation.
func FromTime(t time.Time) Timestamp {
	return Timestamp{
		seconds:     taiEpochOffset + uint64(t.Unix()),
		nanoseconds: uint32(t.Nanosecond()),
	}
}

// Time converts the timestamp back to a standard time.Time (UTC).
func (ts Timestamp) Time() time.Time {
	unix := int64(ts.seconds - taiEpochOffset)
	return time.Unix(unix, int64(ts.nanoseconds)).UTC()
}

// Add returns a new timestamp offset by d.
func (ts Timestamp) Add(d time.Duration) Timestamp {
	return FromTime(ts.Time().Add(d))
}

// Before reports whether ts occurs strictly before other.
func (ts Timestamp) Before(other Timestamp) bool {
	if ts.seconds != other.seconds {
		return ts.seconds < other.seconds
	}
	return ts.nanoseconds < other.nanoseconds
}

// After reports whether ts occurs strictly after other.
func (ts Timestamp) After(other Timestamp) bool {
	return other.Before(ts)
}

// Equal reports whether ts and other denote the same instant.
func (ts Timestamp) Equal(other Timestamp) bool {
	return ts.seconds == other.seconds && ts.nanoseconds == other.nanoseconds
}

// IsZero reports whether ts is the zero value.
func (ts Timestamp) IsZero() bool {
	return ts.seconds == 0 && ts.nanoseconds == 0
}

// Bytes encodes ts into its 12-byte big-endian external TAI64N form.
func (ts Timestamp) Bytes() [Size]byte {
	var out [Size]byte
	binary.BigEndian.PutUint64(out[0:8], ts.seconds)
	binary.BigEndian.PutUint32(out[8:12], ts.nanoseconds)
	return out
}

// Parse decodes a 12-byte external TAI64N form produced by Bytes.
func Parse(b []byte) (Timestamp, error) {
	if len(b) != Size {
		return Timestamp{}, fmt.Errorf("tai64: invalid length %d, want %d", len(b), Size)
	}
	return Timestamp{
		seconds:     binary.BigEndian.Uint64(b[0:8]),
		nanoseconds: binary.BigEndian.Uint32(b[8:12]),
	}, nil
}

// String renders the conventional "@" + 24 lowercase hex digit label.
func (ts Timestamp) String() string {
	b := ts.Bytes()
	return "@" + hex.EncodeToString(b[:])
}

// ParseLabel parses the conventional "@"-prefixed label produced by String.
func ParseLabel(label string) (Timestamp, error) {
	if len(label) != 25 || label[0] != '@' {
		return Timestamp{}, fmt.Errorf("tai64: malformed label %q", label)
	}
	raw, err := hex.DecodeString(label[1:])
	if err != nil {
		return Timestamp{}, fmt.Errorf("tai64: malformed label: %w", err)
	}
	return Parse(raw)
}
