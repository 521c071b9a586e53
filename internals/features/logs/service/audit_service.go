// internals/features/logs/service/audit_service.go
package service

import (
	"gorm.io/gorm"

	"yogacrm_backend/internals/features/logs/model"
)

// Audit writers take the caller's transaction handle so the log rows
// commit (or roll back) together with the mutation they describe.

func AppendLog(tx *gorm.DB, operatorID int64, operation string) error {
	return tx.Create(&model.LogModel{
		LogOperatorID: operatorID,
		LogOperation:  operation,
	}).Error
}

func AppendClientLog(tx *gorm.DB, clientID, operatorID int64, operation string) error {
	return tx.Create(&model.ClientLogModel{
		ClientLogClientID:   clientID,
		ClientLogOperatorID: operatorID,
		ClientLogOperation:  operation,
	}).Error
}

// AppendBoth writes the global row plus the per-client row in one go —
// the shape every lifecycle mutation uses.
func AppendBoth(tx *gorm.DB, clientID, operatorID int64, operation string) error {
	if err := AppendLog(tx, operatorID, operation); err != nil {
		return err
	}
	return AppendClientLog(tx, clientID, operatorID, operation)
}
