package role

import (
	"testing"
	"time"

	"github.com/example/taskflow/internal/models"
)

func TestResolve(t *testing.T) {
	verified := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		user models.User
		want Capabilities
	}{
		{
			name: "superadmin holds admin capability too",
			user: models.User{ID: 1, Role: models.RoleSuperAdmin},
			want: Capabilities{UserID: 1, Role: "superadmin", IsSuperAdmin: true, IsAdmin: true},
		},
		{
			name: "admin is admin but not superadmin",
			user: models.User{ID: 2, Role: models.RoleAdmin},
			want: Capabilities{UserID: 2, Role: "admin", IsAdmin: true},
		},
		{
			name: "incharge is organization-wide tag only",
			user: models.User{ID: 3, Role: models.RoleIncharge},
			want: Capabilities{UserID: 3, Role: "incharge", IsIncharge: true},
		},
		{
			name: "verified user",
			user: models.User{ID: 4, Role: models.RoleUser, EmailVerifiedAt: &verified},
			want: Capabilities{UserID: 4, Role: "user", IsUser: true},
		},
		{
			name: "unverified user needs verification",
			user: models.User{ID: 5, Role: models.RoleUser},
			want: Capabilities{UserID: 5, Role: "user", IsUser: true, NeedsEmailVerification: true},
		},
		{
			name: "unknown role falls back to least privilege",
			user: models.User{ID: 6, Role: "owner"},
			want: Capabilities{UserID: 6, Role: "owner", IsUser: true},
		},
		{
			name: "empty role falls back to least privilege",
			user: models.User{ID: 7, Role: ""},
			want: Capabilities{UserID: 7, Role: "", IsUser: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(&tt.user)
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNeedsEmailVerificationOnlyGatesUsers(t *testing.T) {
	// Elevated roles are exempt from verification gating even with no
	// verification stamp.
	for _, role := range []string{models.RoleSuperAdmin, models.RoleAdmin, models.RoleIncharge} {
		caps := Resolve(&models.User{ID: 1, Role: role})
		if caps.NeedsEmailVerification {
			t.Errorf("role %s should never need email verification", role)
		}
	}
}

func TestCanManageProject(t *testing.T) {
	project := &models.Project{
		ID: 10,
		Users: []models.ProjectMember{
			{User: models.User{ID: 3, Role: models.RoleIncharge}, Pivot: models.MemberPivot{Role: models.MemberRoleIncharge}},
			{User: models.User{ID: 4, Role: models.RoleUser}, Pivot: models.MemberPivot{Role: models.MemberRoleMember}},
		},
	}

	tests := []struct {
		name string
		caps Capabilities
		want bool
	}{
		{"admin manages any project", Capabilities{UserID: 99, IsAdmin: true}, true},
		{"incharge member manages their project", Capabilities{UserID: 3, IsIncharge: true}, true},
		{"plain member does not manage", Capabilities{UserID: 4, IsUser: true}, false},
		{"incharge tag without roster entry does not manage", Capabilities{UserID: 8, IsIncharge: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.caps.CanManageProject(project); got != tt.want {
				t.Errorf("CanManageProject() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("nil project only manageable by admin", func(t *testing.T) {
		if (Capabilities{UserID: 3, IsIncharge: true}).CanManageProject(nil) {
			t.Error("incharge should not manage nil project")
		}
		if !(Capabilities{UserID: 1, IsAdmin: true}).CanManageProject(nil) {
			t.Error("admin should manage regardless of roster")
		}
	})
}
