package enums

import "fmt"

// MemberRole is the staff role carried in backend-issued access tokens.
type MemberRole string

const (
	MemberRoleOwner   MemberRole = "owner"
	MemberRoleAdmin   MemberRole = "admin"
	MemberRoleManager MemberRole = "manager"
	MemberRoleKitchen MemberRole = "kitchen"
	MemberRoleWaiter  MemberRole = "waiter"
	MemberRoleViewer  MemberRole = "viewer"
)

var validMemberRoles = []MemberRole{
	MemberRoleOwner,
	MemberRoleAdmin,
	MemberRoleManager,
	MemberRoleKitchen,
	MemberRoleWaiter,
	MemberRoleViewer,
}

// CanManageOrders reports whether the role may set administrative order states.
func (m MemberRole) CanManageOrders() bool {
	return m == MemberRoleOwner || m == MemberRoleAdmin || m == MemberRoleManager
}

// CanOperateBoard reports whether the role may print tickets, move orders and change toggles.
func (m MemberRole) CanOperateBoard() bool {
	return m.IsValid() && m != MemberRoleViewer
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MemberRole.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
