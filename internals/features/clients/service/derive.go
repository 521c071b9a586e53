package service

import (
	"yogacrm_backend/internals/features/clients/model"
	userModel "yogacrm_backend/internals/features/users/model"
)

// EffectiveSchoolID derives the branch a client belongs to from the
// staff around it: owner first, then appointer, then creator. The rows
// are passed in so the caller decides how (and whether) to load them;
// nil for a missing reference. Returns nil when nobody places the
// client anywhere.
func EffectiveSchoolID(c *model.ClientModel, owner, appointer, creator *userModel.UserModel) *int64 {
	if c == nil {
		return nil
	}
	for _, u := range []*userModel.UserModel{owner, appointer, creator} {
		if u != nil && u.UserSchoolID != nil {
			return u.UserSchoolID
		}
	}
	return nil
}
