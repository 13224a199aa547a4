package auth

import "github.com/suleymanmyradov/schemeguardian/store"

// Status is the full outcome enumeration returned by every auth API
// operation (spec §6.4): authentication-level outcomes alongside the
// store-level outcomes they're built on, in one coherent result space so
// a caller never has to juggle two status types.
type Status uint8

const (
	StatusUnknown Status = iota

	// Granted: the presented credential checked out against every
	// invariant the operation cares about.
	Granted
	// Denied: the credential could not be confirmed valid, for a reason
	// that doesn't warrant the more specific statuses below (most
	// notably: an indeterminate, event-driven lease that authenticate
	// conservatively refuses to treat as still valid).
	Denied
	// Expired: a DateExpiryTAI lease had already passed its expiry.
	Expired
	// Rejected: the record's role didn't match what the operation
	// required. Also returned when the presented token cannot be parsed,
	// or when a sealed token's ciphertext fails to open.
	Rejected
	// RejectedRAC: the presented proof (composite or hash flavor) did not
	// match the stored record's proof, or the credential authenticated but
	// the record's access-control list does not grant the capability the
	// caller asked Authorize to check.
	RejectedRAC
	// Revoked: Revoke succeeded in removing the record ahead of its
	// natural expiry.
	Revoked

	// Inserted, Modified, Deleted, KeyFound, KeyNotFound, FieldDropped,
	// FieldNotFound, and Empty mirror the store package's Result values,
	// surfaced directly for operations whose outcome is a store mutation
	// (Issue, Reissue).
	Inserted
	Modified
	Deleted
	KeyFound
	KeyNotFound
	FieldDropped
	FieldNotFound
	Empty

	// NotExecuted: the operation could not run at all — a malformed
	// request, an unreachable backend — distinct from Denied, which
	// means the request ran and failed a check.
	NotExecuted
)

func (s Status) String() string {
	switch s {
	case Granted:
		return "Granted"
	case Denied:
		return "Denied"
	case Expired:
		return "Expired"
	case Rejected:
		return "Rejected"
	case RejectedRAC:
		return "RejectedRAC"
	case Revoked:
		return "Revoked"
	case Inserted:
		return "Inserted"
	case Modified:
		return "Modified"
	case Deleted:
		return "Deleted"
	case KeyFound:
		return "KeyFound"
	case KeyNotFound:
		return "KeyNotFound"
	case FieldDropped:
		return "FieldDropped"
	case FieldNotFound:
		return "FieldNotFound"
	case Empty:
		return "Empty"
	case NotExecuted:
		return "NotExecuted"
	default:
		return "Unknown"
	}
}

// fromStoreResult maps a store.Result onto the equivalent Status.
func fromStoreResult(r store.Result) Status {
	switch r {
	case store.ResultInserted:
		return Inserted
	case store.ResultModified:
		return Modified
	case store.ResultDeleted:
		return Deleted
	case store.ResultKeyFound:
		return KeyFound
	case store.ResultKeyNotFound:
		return KeyNotFound
	case store.ResultFieldDropped:
		return FieldDropped
	case store.ResultFieldNotFound:
		return FieldNotFound
	case store.ResultEmpty:
		return Empty
	default:
		return NotExecuted
	}
}
