package model

import (
	"golang.org/x/crypto/bcrypt"
)

// UserModel maps the `users` table: staff accounts, their tier, role and
// organizational placement. Soft-referenced by clients, payments and logs
// — never cascade-deleted.
type UserModel struct {
	UserID             int64   `json:"user_id" gorm:"column:user_id;primaryKey;autoIncrement"`
	UserUsername       string  `json:"user_username" gorm:"column:user_username;type:varchar(80);not null"`
	UserHashedPassword string  `json:"-" gorm:"column:user_hashed_password;type:text;not null"`
	UserGender         *int    `json:"user_gender,omitempty" gorm:"column:user_gender"`
	UserEmail          *string `json:"user_email,omitempty" gorm:"column:user_email;type:varchar(160)"`
	UserPhone          *string `json:"user_phone,omitempty" gorm:"column:user_phone;type:varchar(40)"`
	UserAddress        *string `json:"user_address,omitempty" gorm:"column:user_address;type:text"`

	// Tier: ordinary 1 / admin 2 / super-admin 6
	UserUsertype int `json:"user_usertype" gorm:"column:user_usertype;not null;default:1"`

	UserWorkNum   *string `json:"user_work_num,omitempty" gorm:"column:user_work_num;type:varchar(40)"`
	UserAvatarURL *string `json:"user_avatar_url,omitempty" gorm:"column:user_avatar_url;type:text"`

	// Organizational placement
	UserDepartmentID *int64 `json:"user_department_id,omitempty" gorm:"column:user_department_id"`
	UserSchoolID     *int64 `json:"user_school_id,omitempty" gorm:"column:user_school_id"`
	UserVocationID   *int64 `json:"user_vocation_id,omitempty" gorm:"column:user_vocation_id"`

	// Employment status (free-form small int, 1 active)
	UserStatus *int `json:"user_status,omitempty" gorm:"column:user_status"`

	// Fine-grained grants come through the role
	UserRoleID *int64 `json:"user_role_id,omitempty" gorm:"column:user_role_id"`

	// Client visibility tier: none 0 / self 1 / school 2 / department 3 / all 4
	UserVisibleRange *int `json:"user_visible_range,omitempty" gorm:"column:user_visible_range"`
}

func (UserModel) TableName() string {
	return "users"
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (u *UserModel) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.UserHashedPassword), []byte(password)) == nil
}
