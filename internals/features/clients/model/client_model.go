package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ClientModel maps the `clients` table: one row follows a person all the
// way from cold lead to graduated student.
//
// Lifecycle: client_status walks unassigned 1 → assigned 2 → converted 3
// → appointed 4 → graduated 5; client_process_status 1 open / 2 closed
// tracks the contract independently. The contact handles (phone, weixin,
// QQ, douyin, rednote, shangwutong) are each unique across all clients,
// enforced in the service layer so the violation can name the field.
type ClientModel struct {
	ClientID   int64  `json:"client_id" gorm:"column:client_id;primaryKey;autoIncrement"`
	ClientName string `json:"client_name" gorm:"column:client_name;type:varchar(120);not null"`

	ClientGender     *int    `json:"client_gender,omitempty" gorm:"column:client_gender"`
	ClientAge        *int    `json:"client_age,omitempty" gorm:"column:client_age"`
	ClientIDNumber   *string `json:"client_id_number,omitempty" gorm:"column:client_id_number;type:varchar(40)"`
	ClientAddress    *string `json:"client_address,omitempty" gorm:"column:client_address;type:text"`
	ClientFromSource *string `json:"client_from_source,omitempty" gorm:"column:client_from_source;type:varchar(80)"`

	// Mutually-unique contact handles
	ClientPhone       *string `json:"client_phone,omitempty" gorm:"column:client_phone;type:varchar(40)"`
	ClientWeixin      *string `json:"client_weixin,omitempty" gorm:"column:client_weixin;type:varchar(80)"`
	ClientQQ          *string `json:"client_qq,omitempty" gorm:"column:client_qq;type:varchar(40)"`
	ClientDouyin      *string `json:"client_douyin,omitempty" gorm:"column:client_douyin;type:varchar(80)"`
	ClientRednote     *string `json:"client_rednote,omitempty" gorm:"column:client_rednote;type:varchar(80)"`
	ClientShangwutong *string `json:"client_shangwutong,omitempty" gorm:"column:client_shangwutong;type:varchar(80)"`

	ClientStatus        int  `json:"client_status" gorm:"column:client_status;not null;default:1;index"`
	ClientProcessStatus *int `json:"client_process_status,omitempty" gorm:"column:client_process_status"`

	// Staff references, soft only
	ClientCreatorID        *int64 `json:"client_creator_id,omitempty" gorm:"column:client_creator_id;index"`
	ClientAffiliatedUserID *int64 `json:"client_affiliated_user_id,omitempty" gorm:"column:client_affiliated_user_id;index"`
	ClientAppointerID      *int64 `json:"client_appointer_id,omitempty" gorm:"column:client_appointer_id"`

	ClientCreatedTime   time.Time       `json:"client_created_time" gorm:"column:client_created_time;autoCreateTime"`
	ClientToClientTime  *time.Time      `json:"client_to_client_time,omitempty" gorm:"column:client_to_client_time"`
	ClientAppointDate   *datatypes.Date `json:"client_appoint_date,omitempty" gorm:"column:client_appoint_date"`
	ClientNextTalkDate  *datatypes.Date `json:"client_next_talk_date,omitempty" gorm:"column:client_next_talk_date"`
	ClientCooperateTime *time.Time      `json:"client_cooperate_time,omitempty" gorm:"column:client_cooperate_time"`

	ClientContractNo *string `json:"client_contract_no,omitempty" gorm:"column:client_contract_no;type:varchar(80)"`

	// Catalog enrollment
	ClientComboID            *int64        `json:"client_combo_id,omitempty" gorm:"column:client_combo_id"`
	ClientCourseIDs          pq.Int64Array `json:"client_course_ids" gorm:"column:client_course_ids;type:bigint[]"`
	ClientLessonIDs          pq.Int64Array `json:"client_lesson_ids" gorm:"column:client_lesson_ids;type:bigint[]"`
	ClientGraduatedLessonIDs pq.Int64Array `json:"client_graduated_lesson_ids" gorm:"column:client_graduated_lesson_ids;type:bigint[]"`

	// Append-only free-form notes
	ClientInfo pq.StringArray `json:"client_info" gorm:"column:client_info;type:text[]"`

	// Housing
	ClientBedID       *int64          `json:"client_bed_id,omitempty" gorm:"column:client_bed_id;index"`
	ClientCheckInDate *datatypes.Date `json:"client_check_in_date,omitempty" gorm:"column:client_check_in_date"`
}

func (ClientModel) TableName() string {
	return "clients"
}
