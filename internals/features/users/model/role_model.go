package model

import (
	"github.com/lib/pq"
)

// RoleModel maps the `roles` table: a named, unordered set of permission
// code grants. Mutated only by admin-tier actors.
type RoleModel struct {
	RoleID     int64         `json:"role_id" gorm:"column:role_id;primaryKey;autoIncrement"`
	RoleName   string        `json:"role_name" gorm:"column:role_name;type:varchar(80);not null;uniqueIndex"`
	RoleGrants pq.Int64Array `json:"role_grants" gorm:"column:role_grants;type:bigint[]"`
}

func (RoleModel) TableName() string {
	return "roles"
}

func (r *RoleModel) Grants(code int64) bool {
	for _, g := range r.RoleGrants {
		if g == code {
			return true
		}
	}
	return false
}
