package user

import "testing"

func TestRolePerms(t *testing.T) {
	tests := []struct {
		role Role
		want Capabilities
	}{
		{role: RoleSuper, want: Capabilities{
			ManageUsers: true, CreateAssessments: true, EditAssessments: true,
			ApproveAssessments: true, DeleteAssessments: true, ExportData: true, ViewAllSchools: true,
		}},
		{role: RoleMinistry, want: Capabilities{
			ManageUsers: true, CreateAssessments: true, EditAssessments: true,
			ApproveAssessments: true, ExportData: true, ViewAllSchools: true,
		}},
		{role: RoleDistrict, want: Capabilities{
			CreateAssessments: true, EditAssessments: true, ExportData: true, ViewAllSchools: true,
		}},
		{role: RolePrincipal, want: Capabilities{CreateAssessments: true, EditAssessments: true}},
		{role: RoleTeacher, want: Capabilities{}},
		{role: Role("bogus"), want: Capabilities{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.Perms(); got != tt.want {
				t.Errorf("Perms() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRoleIsValid(t *testing.T) {
	for _, r := range AllRoles {
		if !r.IsValid() {
			t.Errorf("IsValid(%v) = false", r)
		}
	}
	if Role("admin").IsValid() {
		t.Error("IsValid(admin) = true, want false")
	}
}

func TestRolePriorities(t *testing.T) {
	// strictly ascending from teacher to super
	order := []Role{RoleTeacher, RolePrincipal, RoleDistrict, RoleMinistry, RoleSuper}
	for i := 1; i < len(order); i++ {
		if order[i].Priority() <= order[i-1].Priority() {
			t.Errorf("Priority(%v) = %d, not above %v (%d)",
				order[i], order[i].Priority(), order[i-1], order[i-1].Priority())
		}
	}
	if Role("bogus").Priority() != 0 {
		t.Errorf("Priority(bogus) = %d, want 0", Role("bogus").Priority())
	}
}

// assessment deletion is reserved for the system owner
func TestOnlySuperDeletes(t *testing.T) {
	for _, r := range AllRoles {
		if r.Perms().DeleteAssessments && r != RoleSuper {
			t.Errorf("%v can delete assessments", r)
		}
	}
}
