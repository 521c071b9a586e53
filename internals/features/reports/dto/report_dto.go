package dto

/* ================= Reports ================= */

type FunnelReportRequest struct {
	SchoolID  *int64 `json:"school_id,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type StaffPerformanceRequest struct {
	SchoolID  *int64 `json:"school_id,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page"`
}
