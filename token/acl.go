package token

// ACLEntry is a single access-control capability (spec §3).
type ACLEntry uint8

const (
	ACLCreate ACLEntry = 1 << iota
	ACLRead
	ACLWrite
	ACLExecute
	// ACLNoAccess dominates every other entry in the same list: if present,
	// the list grants nothing regardless of what else it contains.
	ACLNoAccess
)

func (e ACLEntry) String() string {
	switch e {
	case ACLCreate:
		return "Create"
	case ACLRead:
		return "Read"
	case ACLWrite:
		return "Write"
	case ACLExecute:
		return "Execute"
	case ACLNoAccess:
		return "NoAccess"
	default:
		return "Unknown"
	}
}

// AccessControlList is an ordered set of capability entries. Order is
// preserved for wire stability but carries no semantic weight beyond
// NoAccess dominance.
type AccessControlList []ACLEntry

// Allows reports whether the list grants entry. A NoAccess entry anywhere
// in the list dominates: it revokes every other grant, including a
// simultaneous, explicit grant of the same capability (spec §3 invariant).
func (acl AccessControlList) Allows(entry ACLEntry) bool {
	hasNoAccess := false
	granted := false
	for _, e := range acl {
		if e == ACLNoAccess {
			hasNoAccess = true
			continue
		}
		if e == entry {
			granted = true
		}
	}
	if hasNoAccess {
		return false
	}
	return granted
}

// EncodeWire renders the list as a byte slice, one byte per entry, with
// no length prefix (the record serializer adds one).
func (acl AccessControlList) EncodeWire() []byte {
	out := make([]byte, len(acl))
	for i, e := range acl {
		out[i] = byte(e)
	}
	return out
}

// DecodeACLWire parses an access-control list from its raw byte-per-entry
// wire form.
func DecodeACLWire(b []byte) AccessControlList {
	acl := make(AccessControlList, len(b))
	for i, raw := range b {
		acl[i] = ACLEntry(raw)
	}
	return acl
}
