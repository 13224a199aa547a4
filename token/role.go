package token

import "fmt"

// RoleKind tags the built-in role variants. Specified carries an
// application-defined role name as a UTF-8 suffix; the rest are fixed,
// single-byte-header roles.
type RoleKind uint8

const (
	RoleUnspecified RoleKind = iota
	RoleSuperUser
	RoleAdmin
	RoleSubAdmin
	RoleUser
	RoleKindSpecified
)

// Role is the tagged-variant role type from spec §3: a closed set of
// built-in roles plus a Specified(string) escape hatch, rather than a
// generic type parameter threaded through the auth API boundary.
type Role struct {
	kind      RoleKind
	specified string
}

// NewSuperUserRole, NewAdminRole, NewSubAdminRole, and NewUserRole construct
// the fixed built-in roles.
func NewSuperUserRole() Role { return Role{kind: RoleSuperUser} }
func NewAdminRole() Role     { return Role{kind: RoleAdmin} }
func NewSubAdminRole() Role  { return Role{kind: RoleSubAdmin} }
func NewUserRole() Role      { return Role{kind: RoleUser} }

// NewUnspecifiedRole constructs the Unspecified role.
func NewUnspecifiedRole() Role { return Role{kind: RoleUnspecified} }

// NewSpecifiedRole constructs a Specified(name) role.
func NewSpecifiedRole(name string) Role {
	return Role{kind: RoleKindSpecified, specified: name}
}

// Kind reports the role's variant tag.
func (r Role) Kind() RoleKind { return r.kind }

// Name returns the application-defined name for a Specified role, or the
// empty string for built-ins.
func (r Role) Name() string { return r.specified }

// Equal reports whether r and other denote the same role, including the
// same Specified name when both are Specified.
func (r Role) Equal(other Role) bool {
	if r.kind != other.kind {
		return false
	}
	if r.kind == RoleKindSpecified {
		return r.specified == other.specified
	}
	return true
}

func (r Role) String() string {
	switch r.kind {
	case RoleSuperUser:
		return "SuperUser"
	case RoleAdmin:
		return "Admin"
	case RoleSubAdmin:
		return "SubAdmin"
	case RoleUser:
		return "User"
	case RoleKindSpecified:
		return fmt.Sprintf("Specified(%s)", r.specified)
	default:
		return "Unspecified"
	}
}

// Header returns the single-byte wire tag for r's variant (spec §3: "a
// stable single-byte wire header encodes the non-Specified variants").
func (r Role) Header() byte { return byte(r.kind) }

// EncodeWire renders r as its wire form: a one-byte header, followed by
// the UTF-8 bytes of the specified name when r.Kind() == RoleKindSpecified.
func (r Role) EncodeWire() []byte {
	if r.kind != RoleKindSpecified {
		return []byte{r.Header()}
	}
	out := make([]byte, 0, 1+len(r.specified))
	out = append(out, r.Header())
	out = append(out, r.specified...)
	return out
}

// DecodeRoleWire parses a role from its wire form, returning the role and
// the number of bytes consumed.
func DecodeRoleWire(b []byte) (Role, int, error) {
	if len(b) == 0 {
		return Role{}, 0, fmt.Errorf("token: empty role wire form")
	}
	kind := RoleKind(b[0])
	switch kind {
	case RoleUnspecified, RoleSuperUser, RoleAdmin, RoleSubAdmin, RoleUser:
		return Role{kind: kind}, 1, nil
	case RoleKindSpecified:
		return Role{kind: kind, specified: string(b[1:])}, len(b), nil
	default:
		return Role{}, 0, fmt.Errorf("token: unknown role tag %d", b[0])
	}
}
