package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogacrm_backend/internals/features/clients/model"
	userModel "yogacrm_backend/internals/features/users/model"
)

func int64Ptr(i int64) *int64 { return &i }

func TestEffectiveSchoolID(t *testing.T) {
	client := &model.ClientModel{ClientID: 1}

	t.Run("Owner wins over appointer and creator", func(t *testing.T) {
		owner := &userModel.UserModel{UserSchoolID: int64Ptr(10)}
		appointer := &userModel.UserModel{UserSchoolID: int64Ptr(20)}
		creator := &userModel.UserModel{UserSchoolID: int64Ptr(30)}

		got := EffectiveSchoolID(client, owner, appointer, creator)
		require.NotNil(t, got)
		assert.Equal(t, int64(10), *got)
	})

	t.Run("Falls through staff without a school", func(t *testing.T) {
		owner := &userModel.UserModel{}
		creator := &userModel.UserModel{UserSchoolID: int64Ptr(30)}

		got := EffectiveSchoolID(client, owner, nil, creator)
		require.NotNil(t, got)
		assert.Equal(t, int64(30), *got)
	})

	t.Run("No staff yields nil", func(t *testing.T) {
		assert.Nil(t, EffectiveSchoolID(client, nil, nil, nil))
	})

	t.Run("Nil client yields nil", func(t *testing.T) {
		assert.Nil(t, EffectiveSchoolID(nil, nil, nil, nil))
	})
}
