// internals/features/appointments/appointments/model/appointment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================================================
   ENUMS
========================================================= */

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusAttended  AppointmentStatus = "ATTENDED"
	StatusNoShow    AppointmentStatus = "NO_SHOW"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusAttended, StatusNoShow:
		return true
	}
	return false
}

type AppointmentOrigin string

const (
	OriginImported AppointmentOrigin = "IMPORTED"
	OriginWalkIn   AppointmentOrigin = "WALK_IN"
)

/* =========================================================
   TIERS
   The same row shape is stored in three tables. A row lives in exactly one.
========================================================= */

type Tier string

const (
	TierActive  Tier = "active"
	TierHistory Tier = "history"
	TierCold    Tier = "cold_archive"
)

const (
	TableActive  = "appointments"
	TableHistory = "appointment_history"
	TableCold    = "appointment_cold_archive"
)

func (t Tier) Table() string {
	switch t {
	case TierHistory:
		return TableHistory
	case TierCold:
		return TableCold
	default:
		return TableActive
	}
}

/* =========================================================
   MODEL
========================================================= */

type AppointmentModel struct {
	AppointmentID uuid.UUID `gorm:"column:appointment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"appointment_id"`

	AppointmentStudentName         string  `gorm:"column:appointment_student_name;type:varchar(200);not null" json:"appointment_student_name"`
	AppointmentStudentRegistration *string `gorm:"column:appointment_student_registration;type:varchar(50)" json:"appointment_student_registration,omitempty"`
	AppointmentProcessNumber       *string `gorm:"column:appointment_process_number;type:varchar(50)" json:"appointment_process_number,omitempty"`

	AppointmentDate datatypes.Date  `gorm:"column:appointment_date;type:date;not null" json:"appointment_date"`
	AppointmentTime *datatypes.Time `gorm:"column:appointment_time;type:time" json:"appointment_time,omitempty"`

	AppointmentServiceType *string           `gorm:"column:appointment_service_type;type:varchar(120)" json:"appointment_service_type,omitempty"`
	AppointmentStatus      AppointmentStatus `gorm:"column:appointment_status;type:varchar(20);not null;default:'SCHEDULED'" json:"appointment_status"`

	// Staff is stored by display name at assignment time. Renaming a staff
	// member does not touch rows already assigned.
	AppointmentStaffName       *string `gorm:"column:appointment_staff_name;type:varchar(200)" json:"appointment_staff_name,omitempty"`
	AppointmentServiceWindow   *string `gorm:"column:appointment_service_window;type:varchar(50)" json:"appointment_service_window,omitempty"`
	AppointmentRequestCategory *string `gorm:"column:appointment_request_category;type:varchar(200)" json:"appointment_request_category,omitempty"`
	AppointmentCallNumber      *string `gorm:"column:appointment_call_number;type:varchar(30)" json:"appointment_call_number,omitempty"`
	AppointmentNotes           *string `gorm:"column:appointment_notes;type:text" json:"appointment_notes,omitempty"`

	AppointmentOrigin AppointmentOrigin `gorm:"column:appointment_origin;type:varchar(20);not null;default:'WALK_IN'" json:"appointment_origin"`
	AppointmentUnitID *uuid.UUID        `gorm:"column:appointment_unit_id;type:uuid" json:"appointment_unit_id,omitempty"`

	// nil = pending
	AppointmentAttended *bool `gorm:"column:appointment_attended" json:"appointment_attended"`

	AppointmentCreatedAt time.Time `gorm:"column:appointment_created_at;not null;autoCreateTime" json:"appointment_created_at"`
	AppointmentUpdatedAt time.Time `gorm:"column:appointment_updated_at;not null;autoUpdateTime" json:"appointment_updated_at"`
}

func (AppointmentModel) TableName() string { return TableActive }

// DateValue returns the appointment date as time.Time.
func (m *AppointmentModel) DateValue() time.Time { return time.Time(m.AppointmentDate) }

// AttendanceStatus maps the attendance flag onto the lifecycle status.
func AttendanceStatus(attended *bool) AppointmentStatus {
	switch {
	case attended == nil:
		return StatusScheduled
	case *attended:
		return StatusAttended
	default:
		return StatusNoShow
	}
}

// Columns lists the row's columns in table order. The CSV export header and
// the tier-to-tier copies use this order.
var Columns = []string{
	"appointment_id",
	"appointment_student_name",
	"appointment_student_registration",
	"appointment_process_number",
	"appointment_date",
	"appointment_time",
	"appointment_service_type",
	"appointment_status",
	"appointment_staff_name",
	"appointment_service_window",
	"appointment_request_category",
	"appointment_call_number",
	"appointment_notes",
	"appointment_origin",
	"appointment_unit_id",
	"appointment_attended",
	"appointment_created_at",
	"appointment_updated_at",
}
