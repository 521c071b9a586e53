package service

import (
	"gorm.io/gorm"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/users/authz"
)

// ApplyScope narrows a client query to what the acting user may see.
// A client is visible when its creator, owner or appointer falls inside
// the scope. VisibleNone collapses the query to an empty result rather
// than erroring.
func ApplyScope(query *gorm.DB, scope authz.Scope, userID int64) *gorm.DB {
	switch scope.Tier {
	case constants.VisibleAll:
		return query
	case constants.VisibleSelf:
		return query.Where(
			"client_creator_id = ? OR client_affiliated_user_id = ? OR client_appointer_id = ?",
			userID, userID, userID)
	case constants.VisibleSchool:
		if scope.SchoolID == nil {
			return query.Where("1 = 0")
		}
		sub := "(SELECT user_id FROM users WHERE user_school_id = ?)"
		return query.Where(
			"client_creator_id IN "+sub+
				" OR client_affiliated_user_id IN "+sub+
				" OR client_appointer_id IN "+sub,
			*scope.SchoolID, *scope.SchoolID, *scope.SchoolID)
	case constants.VisibleDepartment:
		if scope.DepartmentID == nil {
			return query.Where("1 = 0")
		}
		sub := "(SELECT user_id FROM users WHERE user_department_id = ?)"
		return query.Where(
			"client_creator_id IN "+sub+
				" OR client_affiliated_user_id IN "+sub+
				" OR client_appointer_id IN "+sub,
			*scope.DepartmentID, *scope.DepartmentID, *scope.DepartmentID)
	default:
		return query.Where("1 = 0")
	}
}
