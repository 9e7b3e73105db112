package domain

// Role enumerates the three account categories. The string values are part of
// the wire format: tokens and registration payloads carry them verbatim.
type Role string

const (
	RoleNormalUser    Role = "Normal User"
	RoleStoreOwner    Role = "Store Owner"
	RoleAdministrator Role = "System Administrator"
)

// ParseRole maps a free-form input to a Role, rejecting anything outside the
// enumeration. Role values are validated here, at the boundary, never deeper in.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleNormalUser, RoleStoreOwner, RoleAdministrator:
		return Role(value), true
	default:
		return "", false
	}
}
