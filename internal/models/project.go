package models

import "time"

// Project represents a project with its member roster.
type Project struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Progress    int             `json:"progress"`
	Users       []ProjectMember `json:"users"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProjectMember is a user on a project roster together with the
// project-relationship role carried on the membership row.
type ProjectMember struct {
	User
	Pivot MemberPivot `json:"pivot"`
}

// MemberPivot carries the per-project relationship payload.
type MemberPivot struct {
	Role string `json:"role"`
}

// Project-relationship role constants, distinct from the
// organization-wide roles in user.go.
const (
	MemberRoleIncharge = "incharge"
	MemberRoleMember   = "member"
)

// Project status constants
const (
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
)

// HasIncharge reports whether userID holds the incharge relationship
// on this project.
func (p *Project) HasIncharge(userID int) bool {
	for _, m := range p.Users {
		if m.ID == userID && m.Pivot.Role == MemberRoleIncharge {
			return true
		}
	}
	return false
}
