package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission_BackofficeOnly(t *testing.T) {
	t.Parallel()
	for _, p := range []Permission{
		PermissionReceiptViewAll,
		PermissionReceiptApprove,
		PermissionVehicleManage,
		PermissionCalendarManage,
	} {
		assert.True(t, HasPermission(RoleBackoffice, p), "backoffice should hold %s", p)
		assert.False(t, HasPermission(RoleEmployee, p), "employee should not hold %s", p)
	}
}

func TestHasPermission_UnknownRole(t *testing.T) {
	t.Parallel()
	assert.False(t, HasPermission(Role("contractor"), PermissionReceiptApprove))
}

func TestCanAccessEmployeeData(t *testing.T) {
	t.Parallel()
	assert.True(t, CanAccessEmployeeData("emp-1", RoleEmployee, "emp-1"))
	assert.False(t, CanAccessEmployeeData("emp-1", RoleEmployee, "emp-2"))
	assert.True(t, CanAccessEmployeeData("admin-1", RoleBackoffice, "emp-2"))
	assert.False(t, CanAccessEmployeeData("x", Role("contractor"), "x"))
}
