package service

import (
	"fmt"

	"gorm.io/gorm"

	"yogacrm_backend/internals/features/clients/model"
)

// uniqueContactColumns pairs each guarded column with the field name the
// violation message reports. Order is fixed so the first conflict wins
// deterministically.
var uniqueContactColumns = []struct {
	column string
	field  string
}{
	{"client_phone", "phone"},
	{"client_weixin", "weixin"},
	{"client_qq", "QQ"},
	{"client_douyin", "douyin"},
	{"client_rednote", "rednote"},
	{"client_shangwutong", "shangwutong"},
}

// ContactSet carries the incoming values for the guarded fields. Nil or
// empty values are not checked.
type ContactSet struct {
	Phone       *string
	Weixin      *string
	QQ          *string
	Douyin      *string
	Rednote     *string
	Shangwutong *string
}

func (s ContactSet) value(field string) *string {
	switch field {
	case "phone":
		return s.Phone
	case "weixin":
		return s.Weixin
	case "QQ":
		return s.QQ
	case "douyin":
		return s.Douyin
	case "rednote":
		return s.Rednote
	case "shangwutong":
		return s.Shangwutong
	}
	return nil
}

// ErrContactTaken names the conflicting field so the caller can surface
// it verbatim instead of a generic failure.
type ErrContactTaken struct {
	Field string
}

func (e *ErrContactTaken) Error() string {
	return fmt.Sprintf("a client with the same %s already exists", e.Field)
}

// CheckUniqueContacts verifies that none of the non-empty incoming
// contact handles belong to another client. excludeID skips the client
// being updated; pass 0 on create.
func CheckUniqueContacts(db *gorm.DB, excludeID int64, contacts ContactSet) error {
	for _, col := range uniqueContactColumns {
		v := contacts.value(col.field)
		if v == nil || *v == "" {
			continue
		}
		query := db.Model(&model.ClientModel{}).Where(col.column+" = ?", *v)
		if excludeID != 0 {
			query = query.Where("client_id <> ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ErrContactTaken{Field: col.field}
		}
	}
	return nil
}
