package model

import (
	"time"
)

// LogModel maps the append-only global `logs` table. Trimmed to
// MAX_LOG_ROWS after each login, otherwise write-only.
type LogModel struct {
	LogID         int64     `json:"log_id" gorm:"column:log_id;primaryKey;autoIncrement"`
	LogOperatorID int64     `json:"log_operator_id" gorm:"column:log_operator_id;not null"`
	LogOperation  string    `json:"log_operation" gorm:"column:log_operation;type:text;not null"`
	LogTime       time.Time `json:"log_time" gorm:"column:log_time;type:timestamptz;not null;autoCreateTime"`
}

func (LogModel) TableName() string {
	return "logs"
}
