package dto

import "strings"

/* ================= Departments ================= */

type CreateDeptRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	SchoolID int64  `json:"school_id" validate:"required"`
}

func (r *CreateDeptRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type UpdateDeptRequest struct {
	ID       int64   `json:"id" validate:"required"`
	Name     *string `json:"name,omitempty"`
	SchoolID *int64  `json:"school_id,omitempty"`
}

/* ================= Schools ================= */

type CreateSchoolRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=120"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

func (r *CreateSchoolRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type UpdateSchoolRequest struct {
	ID      int64   `json:"id" validate:"required"`
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

/* ================= Shared ================= */

type IDRequest struct {
	ID int64 `json:"id" validate:"required"`
}

type MemberListRequest struct {
	ID      int64 `json:"id" validate:"required"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

type BudgetRequest struct {
	SchoolID  int64  `json:"school_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}
