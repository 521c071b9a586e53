// file: internals/features/users/dto/user_dto.go
package dto

import (
	"strings"

	"yogacrm_backend/internals/features/users/model"
)

/* =========================================================
   REQUEST: LOGIN / SESSION
========================================================= */

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=80"`
	Password string `json:"password" validate:"required,min=1"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

type ModifyPwdRequest struct {
	OldPwd string `json:"old_pwd" validate:"required"`
	NewPwd string `json:"new_pwd" validate:"required,min=5"`
}

/* =========================================================
   REQUEST: ADMIN USER MANAGEMENT
========================================================= */

type RegisterRequest struct {
	Username     string  `json:"username" validate:"required,min=1,max=80"`
	Password     string  `json:"password" validate:"required,min=5"`
	Gender       *int    `json:"gender,omitempty" validate:"omitempty,oneof=1 2"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
	VocationID   *int64  `json:"vocation_id,omitempty"`
	Status       *int    `json:"status,omitempty"`
	Usertype     int     `json:"usertype" validate:"omitempty,oneof=1 2 6"`
	RoleID       *int64  `json:"role_id,omitempty"`
	VisibleRange *int    `json:"visible_range,omitempty" validate:"omitempty,min=0,max=4"`
}

func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	if r.Usertype == 0 {
		r.Usertype = 1
	}
}

// UpdateUserRequest is the explicit allow-list of externally mutable
// fields. Nil means "leave untouched".
type UpdateUserRequest struct {
	ID           int64   `json:"id" validate:"required"`
	Username     *string `json:"username,omitempty"`
	Gender       *int    `json:"gender,omitempty" validate:"omitempty,oneof=1 2"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	WorkNum      *string `json:"work_num,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
	VocationID   *int64  `json:"vocation_id,omitempty"`
	Status       *int    `json:"status,omitempty"`
	Usertype     *int    `json:"usertype,omitempty" validate:"omitempty,oneof=1 2 6"`
	RoleID       *int64  `json:"role_id,omitempty"`
	VisibleRange *int    `json:"visible_range,omitempty" validate:"omitempty,min=0,max=4"`
}

type GetAllUsersRequest struct {
	Name     string `json:"name"`
	SchoolID *int64 `json:"school_id,omitempty"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
}

type UserIDRequest struct {
	ID int64 `json:"id" validate:"required"`
}

/* =========================================================
   REQUEST: ROLES
========================================================= */

type CreateRoleRequest struct {
	Name   string  `json:"name" validate:"required,min=1,max=80"`
	Grants []int64 `json:"grants"`
}

type UpdateRoleRequest struct {
	ID     int64    `json:"id" validate:"required"`
	Name   *string  `json:"name,omitempty"`
	Grants *[]int64 `json:"grants,omitempty"`
}

/* =========================================================
   RESPONSE
========================================================= */

// UserResponse is the public projection — the hash never leaves the
// model anyway (json:"-"), this keeps list payloads lean.
type UserResponse struct {
	UserID       int64   `json:"user_id"`
	Username     string  `json:"username"`
	Gender       *int    `json:"gender,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Usertype     int     `json:"usertype"`
	WorkNum      *string `json:"work_num,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	DepartmentID *int64  `json:"department_id,omitempty"`
	SchoolID     *int64  `json:"school_id,omitempty"`
	VocationID   *int64  `json:"vocation_id,omitempty"`
	Status       *int    `json:"status,omitempty"`
	RoleID       *int64  `json:"role_id,omitempty"`
	VisibleRange *int    `json:"visible_range,omitempty"`
}

func FromUserModel(m *model.UserModel) UserResponse {
	return UserResponse{
		UserID:       m.UserID,
		Username:     m.UserUsername,
		Gender:       m.UserGender,
		Email:        m.UserEmail,
		Phone:        m.UserPhone,
		Usertype:     m.UserUsertype,
		WorkNum:      m.UserWorkNum,
		AvatarURL:    m.UserAvatarURL,
		DepartmentID: m.UserDepartmentID,
		SchoolID:     m.UserSchoolID,
		VocationID:   m.UserVocationID,
		Status:       m.UserStatus,
		RoleID:       m.UserRoleID,
		VisibleRange: m.UserVisibleRange,
	}
}

func FromUserModels(ms []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromUserModel(&ms[i]))
	}
	return out
}
