package dto

/* ================= Payments ================= */

type SubmitPaymentRequest struct {
	ClientID      int64   `json:"client_id" validate:"required"`
	TeacherID     int64   `json:"teacher_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required"`
	Category      int     `json:"category" validate:"required,oneof=1 2 3"`
	PaymentMethod string  `json:"payment_method"`
	Info          string  `json:"info"`
}

type AddPaymentRequest struct {
	ClientID      *int64  `json:"client_id,omitempty"`
	Receiver      string  `json:"receiver"`
	TeacherID     int64   `json:"teacher_id" validate:"required"`
	Amount        float64 `json:"amount"`
	Category      int     `json:"category" validate:"required,oneof=1 2 3"`
	PaymentMethod string  `json:"payment_method"`
	Info          string  `json:"info"`
}

type UpdatePaymentRequest struct {
	ID            int64   `json:"id" validate:"required"`
	ClientID      *int64  `json:"client_id,omitempty"`
	Receiver      string  `json:"receiver"`
	TeacherID     int64   `json:"teacher_id" validate:"required"`
	Amount        float64 `json:"amount"`
	Category      int     `json:"category" validate:"required,oneof=1 2 3"`
	PaymentMethod string  `json:"payment_method"`
	Info          string  `json:"info"`
}

type PaymentIDRequest struct {
	ID int64 `json:"id" validate:"required"`
}

type ClientPaymentsRequest struct {
	ClientID int64 `json:"client_id" validate:"required"`
}

type GetPaymentsRequest struct {
	SchoolID      *int64 `json:"school_id,omitempty"`
	PaymentType   string `json:"payment_type"`
	Category      *int   `json:"category,omitempty"`
	PaymentMethod string `json:"payment_method"`
	ClientName    string `json:"client_name"`
	ClientPhone   string `json:"client_phone"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Page          int    `json:"page"`
	PerPage       int    `json:"per_page"`
}
