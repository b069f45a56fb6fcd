package user

// Role is the closed set of dashboard roles.
type Role string

const (
	RoleSuper     Role = "super"     // system owner
	RoleMinistry  Role = "ministry"  // national education officer
	RoleDistrict  Role = "district"  // district education officer
	RolePrincipal Role = "principal" // school principal
	RoleTeacher   Role = "teacher"
)

// Capabilities is an immutable record of what a role may do. Permission
// checks read these flags; they never compare role strings.
type Capabilities struct {
	ManageUsers        bool `json:"manage_users"`
	CreateAssessments  bool `json:"create_assessments"`
	EditAssessments    bool `json:"edit_assessments"`
	ApproveAssessments bool `json:"approve_assessments"`
	DeleteAssessments  bool `json:"delete_assessments"`
	ExportData         bool `json:"export_data"`
	ViewAllSchools     bool `json:"view_all_schools"`
}

var (
	AllRoles = []Role{RoleSuper, RoleMinistry, RoleDistrict, RolePrincipal, RoleTeacher}

	rolePerms = map[Role]Capabilities{
		RoleSuper: {
			ManageUsers:        true,
			CreateAssessments:  true,
			EditAssessments:    true,
			ApproveAssessments: true,
			DeleteAssessments:  true,
			ExportData:         true,
			ViewAllSchools:     true,
		},
		RoleMinistry: {
			ManageUsers:        true,
			CreateAssessments:  true,
			EditAssessments:    true,
			ApproveAssessments: true,
			ExportData:         true,
			ViewAllSchools:     true,
		},
		RoleDistrict: {
			CreateAssessments: true,
			EditAssessments:   true,
			ExportData:        true,
			ViewAllSchools:    true,
		},
		RolePrincipal: {
			CreateAssessments: true,
			EditAssessments:   true,
		},
		RoleTeacher: {},
	}

	rolePriorities = map[Role]int{
		RoleSuper:     50,
		RoleMinistry:  40,
		RoleDistrict:  30,
		RolePrincipal: 20,
		RoleTeacher:   10,
	}

	Roles = []RoleInfo{
		{Name: "Teacher", Value: RoleTeacher, Perms: rolePerms[RoleTeacher]},
		{Name: "School Principal", Value: RolePrincipal, Perms: rolePerms[RolePrincipal]},
		{Name: "District Officer", Value: RoleDistrict, Perms: rolePerms[RoleDistrict]},
		{Name: "Ministry Officer", Value: RoleMinistry, Perms: rolePerms[RoleMinistry]},
		{Name: "System Owner", Value: RoleSuper, Perms: rolePerms[RoleSuper]},
	}
)

// RoleInfo is the display projection of a role for API consumers.
type RoleInfo struct {
	Name  string       `json:"name"`
	Value Role         `json:"value"`
	Perms Capabilities `json:"perms"`
}

func (r Role) IsValid() bool {
	_, ok := rolePerms[r]
	return ok
}

// Perms returns the role's capability set; an unknown role gets the zero
// (no-capability) record.
func (r Role) Perms() Capabilities {
	return rolePerms[r]
}

func (r Role) Priority() int {
	return rolePriorities[r]
}
