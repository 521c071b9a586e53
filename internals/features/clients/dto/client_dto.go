package dto

import "strings"

/* =========================================================
   REQUEST: CREATE / UPDATE
========================================================= */

type CreateClientRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=120"`
	FromSource string  `json:"from_source" validate:"required"`
	Weixin     string  `json:"weixin" validate:"required"`
	Gender     *int    `json:"gender,omitempty" validate:"omitempty,oneof=1 2"`
	Age        *int    `json:"age,omitempty" validate:"omitempty,min=0,max=120"`
	IDNumber   *string `json:"id_number,omitempty"`
	Address    *string `json:"address,omitempty"`

	Phone       *string `json:"phone,omitempty"`
	QQ          *string `json:"qq,omitempty"`
	Douyin      *string `json:"douyin,omitempty"`
	Rednote     *string `json:"rednote,omitempty"`
	Shangwutong *string `json:"shangwutong,omitempty"`

	Info *string `json:"info,omitempty"`
}

func (r *CreateClientRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Weixin = strings.TrimSpace(r.Weixin)
}

// UpdateClientRequest is the allow-list of externally mutable client
// fields. Info is append-only: a value here adds a note, it never
// rewrites the list.
type UpdateClientRequest struct {
	ID         int64   `json:"id" validate:"required"`
	Name       *string `json:"name,omitempty"`
	Gender     *int    `json:"gender,omitempty" validate:"omitempty,oneof=1 2"`
	Age        *int    `json:"age,omitempty" validate:"omitempty,min=0,max=120"`
	IDNumber   *string `json:"id_number,omitempty"`
	Address    *string `json:"address,omitempty"`
	FromSource *string `json:"from_source,omitempty"`

	Phone       *string `json:"phone,omitempty"`
	Weixin      *string `json:"weixin,omitempty"`
	QQ          *string `json:"qq,omitempty"`
	Douyin      *string `json:"douyin,omitempty"`
	Rednote     *string `json:"rednote,omitempty"`
	Shangwutong *string `json:"shangwutong,omitempty"`

	Info *string `json:"info,omitempty"`
}

/* =========================================================
   REQUEST: QUERIES
========================================================= */

type ClientIDRequest struct {
	ClientID int64 `json:"client_id" validate:"required"`
}

type ClueClientsRequest struct {
	Name         string  `json:"name"`
	FromSource   []string `json:"from_source"`
	Gender       *int    `json:"gender,omitempty"`
	Age          *int    `json:"age,omitempty"`
	IDNumber     string  `json:"id_number"`
	Phone        string  `json:"phone"`
	Weixin       string  `json:"weixin"`
	QQ           string  `json:"qq"`
	Douyin       string  `json:"douyin"`
	Rednote      string  `json:"rednote"`
	Shangwutong  string  `json:"shangwutong"`
	Address      string  `json:"address"`
	ClientStatus []int   `json:"client_status"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	CreatorIDs   []int64 `json:"creator_ids"`
	OwnerIDs     []int64 `json:"owner_ids"`
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
}

type ClientsRequest struct {
	ClientStatus  *int   `json:"client_status,omitempty"`
	ProcessStatus *int   `json:"process_status,omitempty"`
	Name          string `json:"name"`
	FromSource    string `json:"from_source"`
	Gender        *int   `json:"gender,omitempty"`
	Age           *int   `json:"age,omitempty"`
	IDNumber      string `json:"id_number"`
	Phone         string `json:"phone"`
	Weixin        string `json:"weixin"`
	QQ            string `json:"qq"`
	Douyin        string `json:"douyin"`
	Rednote       string `json:"rednote"`
	Shangwutong   string `json:"shangwutong"`
	Address       string `json:"address"`
	AppointerID   *int64 `json:"appointer_id,omitempty"`
	OwnerName     string `json:"owner_name"`
	SchoolID      *int64 `json:"school_id,omitempty"`

	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	AppointStartDate  string `json:"appoint_start_date"`
	AppointEndDate    string `json:"appoint_end_date"`
	NextTalkStartDate string `json:"next_talk_start_date"`
	NextTalkEndDate   string `json:"next_talk_end_date"`

	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

type DealedClientsRequest struct {
	Name    string `json:"name"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

/* =========================================================
   REQUEST: LIFECYCLE
========================================================= */

type AssignClientsRequest struct {
	IDs    []int64 `json:"ids" validate:"required,min=1"`
	UserID int64   `json:"user_id" validate:"required"`
}

type UnassignClientsRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

type ConvertClientsRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

type SubmitReserveRequest struct {
	ClientID     int64   `json:"client_id" validate:"required"`
	AppointerID  *int64  `json:"appointer_id,omitempty"`
	AppointDate  string  `json:"appoint_date"`
	UseCombo     bool    `json:"use_combo"`
	ComboID      *int64  `json:"combo_id,omitempty"`
	CourseIDs    []int64 `json:"course_ids"`
	NextTalkDate string  `json:"next_talk_date"`
	Info         string  `json:"info"`
}

type ConfirmCooperationRequest struct {
	ClientID   int64  `json:"client_id" validate:"required"`
	ContractNo string `json:"contract_no" validate:"required"`
}

/* =========================================================
   REQUEST: BATCH IMPORT
========================================================= */

type ImportClue struct {
	Name        string `json:"name"`
	Gender      *int   `json:"gender,omitempty"`
	Age         *int   `json:"age,omitempty"`
	IDNumber    string `json:"id_number"`
	Phone       string `json:"phone"`
	Weixin      string `json:"weixin"`
	QQ          string `json:"qq"`
	Douyin      string `json:"douyin"`
	Rednote     string `json:"rednote"`
	Shangwutong string `json:"shangwutong"`
	Address     string `json:"address"`
	Info        string `json:"info"`
}

type BatchImportRequest struct {
	Clues []ImportClue `json:"clues" validate:"required,min=1"`
}
