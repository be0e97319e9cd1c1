// Package role contains the pure business logic for capability
// resolution. A raw role string from the backend is resolved once per
// authentication event into a Capabilities set; call sites consume the
// set rather than re-comparing role strings.
package role

import (
	"github.com/example/taskflow/internal/models"
)

// Capabilities is the resolved capability set for an authenticated user.
// Multiple roles can co-hold a capability, so this is a set of flags
// rather than a single discriminator.
type Capabilities struct {
	UserID       int
	Role         string
	IsSuperAdmin bool
	IsAdmin      bool // superadmin implies admin
	IsIncharge   bool // organization-wide tag, independent of any project roster
	IsUser       bool

	// NeedsEmailVerification gates app access for plain users only;
	// admin, superadmin and incharge are exempt regardless of their
	// verification state.
	NeedsEmailVerification bool
}

// Resolve derives the capability set for a user. Unknown role values
// never fail: they resolve to the least-privileged set (user-equivalent
// flags with no elevated capabilities). Verification gating still
// applies only to the literal "user" role, so an unknown role is not
// blocked on email verification either.
func Resolve(user *models.User) Capabilities {
	caps := Capabilities{UserID: user.ID, Role: user.Role}

	switch user.Role {
	case models.RoleSuperAdmin:
		caps.IsSuperAdmin = true
		caps.IsAdmin = true
	case models.RoleAdmin:
		caps.IsAdmin = true
	case models.RoleIncharge:
		caps.IsIncharge = true
	case models.RoleUser:
		caps.IsUser = true
		caps.NeedsEmailVerification = user.EmailVerifiedAt == nil
	default:
		// Least-privileged fallback for unrecognized roles.
		caps.IsUser = true
	}

	return caps
}

// CanManageProject reports whether the holder may mutate task-level
// fields (status, priority, metadata) and fire accept transitions on
// tasks under the given project: admins always, plus the member holding
// the incharge relationship on that specific project.
func (c Capabilities) CanManageProject(project *models.Project) bool {
	if c.IsAdmin {
		return true
	}
	return project != nil && project.HasIncharge(c.UserID)
}
