package authz

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/users/model"
)

func intPtr(v int) *int       { return &v }
func i64Ptr(v int64) *int64   { return &v }

func TestHasPermission(t *testing.T) {
	role := &model.RoleModel{
		RoleID:     1,
		RoleName:   "sales",
		RoleGrants: pq.Int64Array{constants.PermAddCourse, constants.PermAddStudent},
	}

	t.Run("Admin tier bypasses grants", func(t *testing.T) {
		admin := &model.UserModel{UserUsertype: constants.UsertypeAdmin}
		super := &model.UserModel{UserUsertype: constants.UsertypeSuperAdmin}
		assert.True(t, HasPermission(admin, nil, constants.PermDeleteLesson))
		assert.True(t, HasPermission(super, nil, constants.PermDeleteLesson))
	})

	t.Run("Ordinary user needs explicit grant", func(t *testing.T) {
		u := &model.UserModel{UserUsertype: constants.UsertypeOrdinary, UserRoleID: i64Ptr(1)}
		assert.True(t, HasPermission(u, role, constants.PermAddCourse))
		assert.False(t, HasPermission(u, role, constants.PermDeleteCourse))
	})

	t.Run("Fails closed", func(t *testing.T) {
		assert.False(t, HasPermission(nil, role, constants.PermAddCourse))
		u := &model.UserModel{UserUsertype: constants.UsertypeOrdinary}
		assert.False(t, HasPermission(u, nil, constants.PermAddCourse))
	})
}

func TestTierChecks(t *testing.T) {
	assert.False(t, IsAdmin(&model.UserModel{UserUsertype: constants.UsertypeOrdinary}))
	assert.True(t, IsAdmin(&model.UserModel{UserUsertype: constants.UsertypeAdmin}))
	assert.True(t, IsAdmin(&model.UserModel{UserUsertype: constants.UsertypeSuperAdmin}))
	assert.False(t, IsSuperAdmin(&model.UserModel{UserUsertype: constants.UsertypeAdmin}))
	assert.True(t, IsSuperAdmin(&model.UserModel{UserUsertype: constants.UsertypeSuperAdmin}))
}

func TestScopeFor(t *testing.T) {
	t.Run("Admin promoted to all", func(t *testing.T) {
		u := &model.UserModel{
			UserUsertype:     constants.UsertypeAdmin,
			UserVisibleRange: intPtr(constants.VisibleSelf),
		}
		assert.Equal(t, constants.VisibleAll, ScopeFor(u).Tier)
	})

	t.Run("Unset tier yields none", func(t *testing.T) {
		u := &model.UserModel{UserUsertype: constants.UsertypeOrdinary}
		assert.Equal(t, constants.VisibleNone, ScopeFor(u).Tier)
		assert.Equal(t, constants.VisibleNone, ScopeFor(nil).Tier)
	})

	t.Run("Configured tier carries org ids", func(t *testing.T) {
		u := &model.UserModel{
			UserUsertype:     constants.UsertypeOrdinary,
			UserVisibleRange: intPtr(constants.VisibleSchool),
			UserSchoolID:     i64Ptr(3),
			UserDepartmentID: i64Ptr(9),
		}
		s := ScopeFor(u)
		assert.Equal(t, constants.VisibleSchool, s.Tier)
		assert.Equal(t, int64(3), *s.SchoolID)
		assert.Equal(t, int64(9), *s.DepartmentID)
	})
}
