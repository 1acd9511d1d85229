package domain

// NoOwnerID is the sentinel meaning no owner account is configured.
const NoOwnerID = ""

// IsAdminOrOwner reports whether the role grants admin-level authority.
func IsAdminOrOwner(role Role) bool {
	return role == RoleAdmin || role == RoleOwner
}

// IsOwner reports whether the account holds owner authority: either its id
// matches the configured owner id or it carries the OWNER role. The
// configured id grants authority even before explicit approval.
func IsOwner(id string, role Role, ownerID string) bool {
	return (ownerID != NoOwnerID && id == ownerID) || role == RoleOwner
}

// CanMutateResource decides whether actor may edit or delete a resource
// authored by authorUsername: allowed for the author and for admins.
//
// OWNER alone does not qualify unless the owner is also the author or also
// carries ADMIN. That asymmetry matches the original policy and is kept as a
// deliberate decision rather than widened here.
func CanMutateResource(actor Identity, authorUsername string) bool {
	return actor.Username == authorUsername || actor.Role == RoleAdmin
}
