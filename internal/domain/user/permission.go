package user

type Permission string

// Permissions gate the backoffice-only surfaces. An employee's access to
// their own entries and receipts is ownership-based (CanAccessEmployeeData)
// and needs no permission.
const (
	PermissionReceiptViewAll Permission = "receipt.view_all"
	PermissionReceiptApprove Permission = "receipt.approve"
	PermissionVehicleManage  Permission = "vehicle.manage"
	PermissionCalendarManage Permission = "calendar.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleBackoffice: {
		PermissionReceiptViewAll,
		PermissionReceiptApprove,
		PermissionVehicleManage,
		PermissionCalendarManage,
	},
	RoleEmployee: {},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CanAccessEmployeeData reports whether actorRole acting as actorID may read or
// modify records owned by ownerID. Employees reach only their own records,
// backoffice reaches all.
func CanAccessEmployeeData(actorID string, actorRole Role, ownerID string) bool {
	if actorRole == RoleBackoffice {
		return true
	}
	return actorRole == RoleEmployee && actorID == ownerID
}
