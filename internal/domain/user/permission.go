package user

type Permission string

const (
	PermissionAttendanceMark    Permission = "attendance.mark"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceExport  Permission = "attendance.export"

	PermissionOfficeView   Permission = "office.view"
	PermissionOfficeManage Permission = "office.manage"

	PermissionEmployeeManage Permission = "employee.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceMark,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceExport,
		PermissionOfficeView,
		PermissionOfficeManage,
		PermissionEmployeeManage,
	},
	RoleEmployee: {
		PermissionAttendanceMark,
		PermissionAttendanceViewOwn,
		PermissionOfficeView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
