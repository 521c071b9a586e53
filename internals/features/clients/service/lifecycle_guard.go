package service

import (
	"errors"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/clients/model"
)

// Pure transition guards. Controllers call these before mutating and
// translate the error text straight into the envelope message.

var (
	ErrNotAppointed     = errors.New("client has no appointment")
	ErrAlreadyClosed    = errors.New("client deal already closed")
	ErrAlreadyGraduated = errors.New("client already graduated")
	ErrNotGraduated     = errors.New("client is not graduated")
)

// CanCancelReserve requires a live appointment to cancel.
func CanCancelReserve(c *model.ClientModel) error {
	if c.ClientStatus != constants.ClientAppointed {
		return ErrNotAppointed
	}
	return nil
}

// CanConfirmCooperation refuses a second close without an intervening
// cancel, so a contract number is never silently overwritten.
func CanConfirmCooperation(c *model.ClientModel) error {
	if c.ClientProcessStatus != nil && *c.ClientProcessStatus == constants.ProcessClosed {
		return ErrAlreadyClosed
	}
	return nil
}

func CanGraduate(c *model.ClientModel) error {
	if c.ClientStatus == constants.ClientGraduated {
		return ErrAlreadyGraduated
	}
	return nil
}

// CanCancelGraduate only steps back one stage: graduated 5 → appointed 4.
func CanCancelGraduate(c *model.ClientModel) error {
	if c.ClientStatus != constants.ClientGraduated {
		return ErrNotGraduated
	}
	return nil
}
