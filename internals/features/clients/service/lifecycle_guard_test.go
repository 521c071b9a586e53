package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/clients/model"
)

func intPtr(i int) *int { return &i }

func TestCanCancelReserve(t *testing.T) {
	t.Run("Appointed client can cancel", func(t *testing.T) {
		c := &model.ClientModel{ClientStatus: constants.ClientAppointed}
		assert.NoError(t, CanCancelReserve(c))
	})

	t.Run("Converted client cannot cancel", func(t *testing.T) {
		c := &model.ClientModel{ClientStatus: constants.ClientConverted}
		assert.ErrorIs(t, CanCancelReserve(c), ErrNotAppointed)
	})
}

func TestCanConfirmCooperation(t *testing.T) {
	t.Run("Open process may close", func(t *testing.T) {
		c := &model.ClientModel{ClientProcessStatus: intPtr(constants.ProcessOpen)}
		assert.NoError(t, CanConfirmCooperation(c))
	})

	t.Run("Nil process may close", func(t *testing.T) {
		c := &model.ClientModel{}
		assert.NoError(t, CanConfirmCooperation(c))
	})

	t.Run("Second close without cancel is refused", func(t *testing.T) {
		c := &model.ClientModel{ClientProcessStatus: intPtr(constants.ProcessClosed)}
		assert.ErrorIs(t, CanConfirmCooperation(c), ErrAlreadyClosed)
	})
}

func TestGraduationGuards(t *testing.T) {
	t.Run("Graduating twice is refused", func(t *testing.T) {
		c := &model.ClientModel{ClientStatus: constants.ClientGraduated}
		assert.ErrorIs(t, CanGraduate(c), ErrAlreadyGraduated)
	})

	t.Run("Appointed client may graduate", func(t *testing.T) {
		c := &model.ClientModel{ClientStatus: constants.ClientAppointed}
		assert.NoError(t, CanGraduate(c))
	})

	t.Run("Cancel graduate requires graduated status", func(t *testing.T) {
		c := &model.ClientModel{ClientStatus: constants.ClientAppointed}
		assert.ErrorIs(t, CanCancelGraduate(c), ErrNotGraduated)

		c.ClientStatus = constants.ClientGraduated
		assert.NoError(t, CanCancelGraduate(c))
	})
}
