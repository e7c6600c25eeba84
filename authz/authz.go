package authz

import "strings"

// AdminRole is the role name that overrides every catalog check.
const AdminRole = "admin"

// Role is a role descriptor attached to a user record.
type Role struct {
	Name        string
	DisplayName string
}

// Subject is the authorization view of a signed-in user: a set of role
// descriptors and a flat permission-name set. A nil Subject represents a
// signed-out visitor and fails every check.
type Subject struct {
	Roles       []Role
	Permissions []string
}

// HasPermission reports whether name appears in the subject's flat
// permission-name set. False, not an error, when the subject is absent.
func (s *Subject) HasPermission(name string) bool {
	if s == nil {
		return false
	}
	for _, p := range s.Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// HasRole reports whether any role descriptor matches name case-insensitively.
func (s *Subject) HasRole(name string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

func (s *Subject) isAdminRole() bool {
	return s.HasRole(AdminRole)
}

/*
====================================
PAGE ACCESS
====================================
*/

func (s *Subject) CanViewDashboard() bool {
	return s.HasPermission("dashboard.read") ||
		s.HasPermission("dashboard.metrics") ||
		s.HasPermission("dashboard.summary") ||
		s.isAdminRole()
}

func (s *Subject) CanViewUsers() bool {
	return s.HasPermission("users.read") || s.isAdminRole()
}

func (s *Subject) CanViewRoles() bool {
	return s.HasPermission("roles.read") || s.isAdminRole()
}

func (s *Subject) CanViewLogs() bool {
	return s.HasPermission("logs.read") || s.isAdminRole()
}

/*
====================================
USER MANAGEMENT
====================================
*/

func (s *Subject) CanCreateUsers() bool {
	return s.HasPermission("users.create") || s.isAdminRole()
}

func (s *Subject) CanEditUsers() bool {
	return s.HasPermission("users.update") || s.isAdminRole()
}

func (s *Subject) CanDeleteUsers() bool {
	return s.HasPermission("users.delete") || s.isAdminRole()
}

func (s *Subject) CanToggleUserStatus() bool {
	return s.HasPermission("users.toggle_status") || s.isAdminRole()
}

func (s *Subject) CanManageUserRoles() bool {
	return s.HasPermission("users.manage_roles") || s.isAdminRole()
}

func (s *Subject) CanResetPasswords() bool {
	return s.HasPermission("system.admin") ||
		s.HasPermission("users.manage_roles") ||
		s.isAdminRole()
}

/*
====================================
ROLE MANAGEMENT
====================================
*/

func (s *Subject) CanCreateRoles() bool {
	return s.HasPermission("roles.create") || s.isAdminRole()
}

func (s *Subject) CanEditRoles() bool {
	return s.HasPermission("roles.update") || s.isAdminRole()
}

func (s *Subject) CanDeleteRoles() bool {
	return s.HasPermission("roles.delete") || s.isAdminRole()
}

func (s *Subject) CanManageRolePermissions() bool {
	return s.HasPermission("roles.manage_permissions") || s.isAdminRole()
}

/*
====================================
LOGS, SYSTEM, DATA
====================================
*/

func (s *Subject) CanExportLogs() bool {
	return s.HasPermission("logs.export") || s.isAdminRole()
}

func (s *Subject) CanCreateLogs() bool {
	return s.HasPermission("logs.create") || s.isAdminRole()
}

func (s *Subject) CanAccessSystemSettings() bool {
	return s.HasPermission("system.settings") || s.isAdminRole()
}

func (s *Subject) CanPerformSystemMaintenance() bool {
	return s.HasPermission("system.maintenance") || s.isAdminRole()
}

func (s *Subject) CanExportData() bool {
	return s.HasPermission("data.export") || s.isAdminRole()
}

func (s *Subject) CanImportData() bool {
	return s.HasPermission("data.import") || s.isAdminRole()
}

/*
====================================
CONVENIENCE
====================================
*/

func (s *Subject) IsAdmin() bool {
	return s.isAdminRole() || s.HasPermission("system.admin")
}

func (s *Subject) IsEditor() bool {
	return s.HasRole("editor")
}

func (s *Subject) CanAccessUsersModule() bool {
	return s.CanViewUsers()
}

func (s *Subject) CanAccessRolesModule() bool {
	return s.CanViewRoles()
}

func (s *Subject) CanAccessLogsModule() bool {
	return s.CanViewLogs()
}
