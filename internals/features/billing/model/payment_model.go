package model

import "gorm.io/datatypes"

/* ================= Payment ================= */

// One ledger row. Income is positive, expense and refunds negative.
// Either the client id or the free-text receiver says who the money
// moved with; expenses usually carry only the receiver.
type PaymentModel struct {
	PaymentID        int64          `gorm:"column:payment_id;primaryKey;autoIncrement" json:"payment_id"`
	PaymentClientID  *int64         `gorm:"column:payment_client_id;index" json:"payment_client_id,omitempty"`
	PaymentReceiver  *string        `gorm:"column:payment_receiver;type:varchar(120)" json:"payment_receiver,omitempty"`
	PaymentTeacherID int64          `gorm:"column:payment_teacher_id;not null;index" json:"payment_teacher_id"`
	PaymentAmount    float64        `gorm:"column:payment_amount;not null" json:"payment_amount"`
	PaymentCategory  int            `gorm:"column:payment_category;not null" json:"payment_category"`
	PaymentMethod    *string        `gorm:"column:payment_method;type:varchar(50)" json:"payment_method,omitempty"`
	PaymentInfo      *string        `gorm:"column:payment_info;type:text" json:"payment_info,omitempty"`
	PaymentDate      datatypes.Date `gorm:"column:payment_date;not null;index" json:"payment_date"`
	PaymentCreatorID *int64         `gorm:"column:payment_creator_id" json:"payment_creator_id,omitempty"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
