package model

import (
	"time"
)

// ClientLogModel maps the per-client audit trail.
type ClientLogModel struct {
	ClientLogID         int64     `json:"client_log_id" gorm:"column:client_log_id;primaryKey;autoIncrement"`
	ClientLogClientID   int64     `json:"client_log_client_id" gorm:"column:client_log_client_id;not null;index"`
	ClientLogOperatorID int64     `json:"client_log_operator_id" gorm:"column:client_log_operator_id;not null"`
	ClientLogOperation  string    `json:"client_log_operation" gorm:"column:client_log_operation;type:text;not null"`
	ClientLogTime       time.Time `json:"client_log_time" gorm:"column:client_log_time;type:timestamptz;not null;autoCreateTime"`
}

func (ClientLogModel) TableName() string {
	return "client_logs"
}
