package service

import (
	"log"

	"gorm.io/gorm"

	"yogacrm_backend/internals/features/logs/model"
)

// TrimLogs deletes the oldest global log rows beyond keep, in one batch.
// Called after each successful login; failures are logged and swallowed —
// retention must never break a login.
func TrimLogs(db *gorm.DB, keep int) {
	if keep <= 0 {
		return
	}
	var total int64
	if err := db.Model(&model.LogModel{}).Count(&total).Error; err != nil {
		log.Printf("[ERROR] log retention count: %v", err)
		return
	}
	surplus := total - int64(keep)
	if surplus <= 0 {
		return
	}
	err := db.Exec(
		"DELETE FROM logs WHERE log_id IN (SELECT log_id FROM logs ORDER BY log_time ASC, log_id ASC LIMIT ?)",
		surplus,
	).Error
	if err != nil {
		log.Printf("[ERROR] log retention trim: %v", err)
		return
	}
	log.Printf("[INFO] log retention trimmed %d rows", surplus)
}
