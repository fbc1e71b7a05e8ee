package user

type Permission string

const (
	// Self service
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionPayslipViewOwn    Permission = "payslip.view_own"

	// Administration
	PermissionWorkerManage     Permission = "worker.manage"
	PermissionAttendanceManage Permission = "attendance.manage"
	PermissionPayrollRun       Permission = "payroll.run"
	PermissionUserManage       Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceViewOwn,
		PermissionPayslipViewOwn,
		PermissionWorkerManage,
		PermissionAttendanceManage,
		PermissionPayrollRun,
		PermissionUserManage,
	},
	RoleEmployee: {
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionPayslipViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
