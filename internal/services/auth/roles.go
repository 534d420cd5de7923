// filepath: internal/services/auth/roles.go
package auth

import "mediatheque/internal/models"

// Capability names checked by the route middleware. Roles map to explicit
// capability sets; the admin set is a superset of the others rather than
// an implicit bypass.
const (
	CapMediaView    = "media.view"
	CapMediaAdd     = "media.add"
	CapMediaEdit    = "media.edit"
	CapMediaDelete  = "media.delete"
	CapMediaBorrow  = "media.borrow"
	CapMediaReturn  = "media.return"
	CapBorrowView   = "borrow.view"
	CapMemberView   = "member.view"
	CapMemberAdd    = "member.add"
	CapMemberEdit   = "member.edit"
	CapMemberDelete = "member.delete"
)

var clientCapabilities = []string{
	CapMediaView,
	CapMediaBorrow,
	CapMediaReturn,
}

var staffCapabilities = append(clientCapabilities[:len(clientCapabilities):len(clientCapabilities)],
	CapMediaAdd,
	CapMediaEdit,
	CapBorrowView,
	CapMemberView,
	CapMemberAdd,
	CapMemberEdit,
)

var adminCapabilities = append(staffCapabilities[:len(staffCapabilities):len(staffCapabilities)],
	CapMediaDelete,
	CapMemberDelete,
)

// Capabilities returns the capability set attached to a role.
func Capabilities(role models.Role) []string {
	switch role {
	case models.RoleAdmin:
		return adminCapabilities
	case models.RoleStaff:
		return staffCapabilities
	case models.RoleClient:
		return clientCapabilities
	}
	return nil
}

// HasCapability reports whether the role's capability set contains cap.
func HasCapability(role models.Role, cap string) bool {
	for _, c := range Capabilities(role) {
		if c == cap {
			return true
		}
	}
	return false
}
