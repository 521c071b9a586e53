// internals/features/users/authz/authz.go
package authz

import (
	"errors"

	"gorm.io/gorm"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/users/model"
)

/* ================= Tier checks (legacy scheme) ================= */

func IsAdmin(u *model.UserModel) bool {
	if u == nil {
		return false
	}
	return u.UserUsertype == constants.UsertypeAdmin || u.UserUsertype == constants.UsertypeSuperAdmin
}

func IsSuperAdmin(u *model.UserModel) bool {
	return u != nil && u.UserUsertype == constants.UsertypeSuperAdmin
}

/* ================= Permission resolver ================= */

// HasPermission decides a fine-grained permission code for an already
// loaded user/role pair. Admin tiers hold every code; everyone else needs
// an explicit grant. Missing user or role fails closed.
func HasPermission(u *model.UserModel, role *model.RoleModel, code int64) bool {
	if u == nil {
		return false
	}
	if IsAdmin(u) {
		return true
	}
	if role == nil {
		return false
	}
	return role.Grants(code)
}

// CheckPermission is the DB-backed variant used by controllers: it
// resolves the acting user's role and fails closed on any lookup error.
func CheckPermission(db *gorm.DB, u *model.UserModel, code int64) bool {
	if u == nil {
		return false
	}
	if IsAdmin(u) {
		return true
	}
	if u.UserRoleID == nil {
		return false
	}
	var role model.RoleModel
	if err := db.First(&role, "role_id = ?", *u.UserRoleID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			// lookup failure is treated the same as no grant
		}
		return false
	}
	return HasPermission(u, &role, code)
}

/* ================= Visibility scoper ================= */

type Scope struct {
	Tier         int
	SchoolID     *int64
	DepartmentID *int64
}

// ScopeFor maps a user to the breadth of clients they may see. Admins are
// always promoted to "all"; an unset tier yields "none", which callers
// must translate to an empty result.
func ScopeFor(u *model.UserModel) Scope {
	if u == nil {
		return Scope{Tier: constants.VisibleNone}
	}
	if IsAdmin(u) {
		return Scope{Tier: constants.VisibleAll}
	}
	if u.UserVisibleRange == nil {
		return Scope{Tier: constants.VisibleNone}
	}
	return Scope{
		Tier:         *u.UserVisibleRange,
		SchoolID:     u.UserSchoolID,
		DepartmentID: u.UserDepartmentID,
	}
}
