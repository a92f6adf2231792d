// internals/features/appointments/appointments/dto/appointment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"cra_backend/internals/features/appointments/appointments/model"
	helper "cra_backend/internals/helpers"
	"cra_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST
========================================================= */

type CreateAppointmentRequest struct {
	StudentName         string  `json:"student_name" validate:"required,min=3,max=200"`
	StudentRegistration *string `json:"student_registration" validate:"omitempty,max=50"`
	ProcessNumber       *string `json:"process_number" validate:"omitempty,max=50"`

	Date string  `json:"date"` // YYYY-MM-DD or dd/mm/yyyy; empty = today
	Time *string `json:"time"` // HH:mm

	ServiceType     *string `json:"service_type" validate:"omitempty,max=120"`
	StaffName       *string `json:"staff_name" validate:"omitempty,max=200"`
	ServiceWindow   *string `json:"service_window" validate:"omitempty,max=50"`
	RequestCategory *string `json:"request_category" validate:"omitempty,max=200"`
	CallNumber      *string `json:"call_number" validate:"omitempty,max=30"`
	Notes           *string `json:"notes"`

	UnitID *uuid.UUID `json:"unit_id"` // honoured for SUPER_ADMIN only
}

// Normalize trims and uppercases the fields used for grouping.
func (r *CreateAppointmentRequest) Normalize() {
	r.StudentName = helper.NormalizeUpper(r.StudentName)
	r.ServiceType = helper.CleanOptionalUpper(r.ServiceType)
	r.StaffName = helper.CleanOptionalUpper(r.StaffName)
	r.StudentRegistration = helper.CleanOptional(r.StudentRegistration)
	r.ProcessNumber = helper.CleanOptional(r.ProcessNumber)
	r.ServiceWindow = helper.CleanOptional(r.ServiceWindow)
	r.RequestCategory = helper.CleanOptional(r.RequestCategory)
	r.CallNumber = helper.CleanOptional(r.CallNumber)
	r.Notes = helper.CleanOptional(r.Notes)
}

func (r *CreateAppointmentRequest) ToModel(date time.Time, clock *datatypes.Time, unitID *uuid.UUID) *model.AppointmentModel {
	return &model.AppointmentModel{
		AppointmentStudentName:         r.StudentName,
		AppointmentStudentRegistration: r.StudentRegistration,
		AppointmentProcessNumber:       r.ProcessNumber,
		AppointmentDate:                datatypes.Date(date),
		AppointmentTime:                clock,
		AppointmentServiceType:         r.ServiceType,
		AppointmentStatus:              model.StatusScheduled,
		AppointmentStaffName:           r.StaffName,
		AppointmentServiceWindow:       r.ServiceWindow,
		AppointmentRequestCategory:     r.RequestCategory,
		AppointmentCallNumber:          r.CallNumber,
		AppointmentNotes:               r.Notes,
		AppointmentOrigin:              model.OriginWalkIn,
		AppointmentUnitID:              unitID,
	}
}

// UpdateAppointmentRequest is a partial update; nil fields are left untouched.
type UpdateAppointmentRequest struct {
	StudentName         *string `json:"student_name" validate:"omitempty,min=3,max=200"`
	StudentRegistration *string `json:"student_registration" validate:"omitempty,max=50"`
	ProcessNumber       *string `json:"process_number" validate:"omitempty,max=50"`
	Date                *string `json:"date"`
	Time                *string `json:"time"`
	ServiceType         *string `json:"service_type" validate:"omitempty,max=120"`
	Status              *string `json:"status" validate:"omitempty,oneof=SCHEDULED ATTENDED NO_SHOW"`
	ServiceWindow       *string `json:"service_window" validate:"omitempty,max=50"`
	CallNumber          *string `json:"call_number" validate:"omitempty,max=30"`
	Notes               *string `json:"notes"`
}

func (r *UpdateAppointmentRequest) Normalize() {
	if r.StudentName != nil {
		v := helper.NormalizeUpper(*r.StudentName)
		r.StudentName = &v
	}
	if r.ServiceType != nil {
		v := helper.NormalizeUpper(*r.ServiceType)
		r.ServiceType = &v
	}
}

// Apply copies the set fields onto m and returns the changed columns.
func (r *UpdateAppointmentRequest) Apply(m *model.AppointmentModel) (map[string]any, error) {
	upd := map[string]any{}
	if r.StudentName != nil {
		m.AppointmentStudentName = *r.StudentName
		upd["appointment_student_name"] = *r.StudentName
	}
	if r.StudentRegistration != nil {
		m.AppointmentStudentRegistration = helper.CleanOptional(r.StudentRegistration)
		upd["appointment_student_registration"] = m.AppointmentStudentRegistration
	}
	if r.ProcessNumber != nil {
		m.AppointmentProcessNumber = helper.CleanOptional(r.ProcessNumber)
		upd["appointment_process_number"] = m.AppointmentProcessNumber
	}
	if r.Date != nil {
		d, err := dbtime.ParseDate(*r.Date)
		if err != nil {
			return nil, err
		}
		m.AppointmentDate = datatypes.Date(civil(d))
		upd["appointment_date"] = dbtime.FormatISO(d)
	}
	if r.Time != nil {
		clock, err := ParseOptionalClock(r.Time)
		if err != nil {
			return nil, err
		}
		m.AppointmentTime = clock
		upd["appointment_time"] = clock
	}
	if r.ServiceType != nil {
		m.AppointmentServiceType = helper.StrPtr(*r.ServiceType)
		upd["appointment_service_type"] = m.AppointmentServiceType
	}
	if r.Status != nil {
		st := model.AppointmentStatus(*r.Status)
		m.AppointmentStatus = st
		upd["appointment_status"] = st
		att := attendedFor(st)
		m.AppointmentAttended = att
		upd["appointment_attended"] = att
	}
	if r.ServiceWindow != nil {
		m.AppointmentServiceWindow = helper.CleanOptional(r.ServiceWindow)
		upd["appointment_service_window"] = m.AppointmentServiceWindow
	}
	if r.CallNumber != nil {
		m.AppointmentCallNumber = helper.CleanOptional(r.CallNumber)
		upd["appointment_call_number"] = m.AppointmentCallNumber
	}
	if r.Notes != nil {
		m.AppointmentNotes = helper.CleanOptional(r.Notes)
		upd["appointment_notes"] = m.AppointmentNotes
	}
	return upd, nil
}

func attendedFor(st model.AppointmentStatus) *bool {
	switch st {
	case model.StatusAttended:
		v := true
		return &v
	case model.StatusNoShow:
		v := false
		return &v
	}
	return nil
}

// AttendanceRequest: true = attended, false = no-show, null = pending.
type AttendanceRequest struct {
	Attended *bool `json:"attended"`
}

// AssignStaffRequest assigns by staff id (name and window are snapshotted)
// or by free name. Both empty clears the assignment.
type AssignStaffRequest struct {
	StaffID       *uuid.UUID `json:"staff_id"`
	StaffName     *string    `json:"staff_name" validate:"omitempty,max=200"`
	ServiceWindow *string    `json:"service_window" validate:"omitempty,max=50"`
}

type RequestCategoryRequest struct {
	RequestCategory *string `json:"request_category" validate:"omitempty,max=200"`
}

/* =========================================================
   RESPONSE
========================================================= */

type AppointmentResponse struct {
	ID                  uuid.UUID  `json:"id"`
	StudentName         string     `json:"student_name"`
	StudentRegistration *string    `json:"student_registration,omitempty"`
	ProcessNumber       *string    `json:"process_number,omitempty"`
	Date                string     `json:"date"`
	Time                string     `json:"time,omitempty"`
	ServiceType         *string    `json:"service_type,omitempty"`
	Status              string     `json:"status"`
	StaffName           *string    `json:"staff_name,omitempty"`
	ServiceWindow       *string    `json:"service_window,omitempty"`
	RequestCategory     *string    `json:"request_category,omitempty"`
	CallNumber          *string    `json:"call_number,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	Origin              string     `json:"origin"`
	UnitID              *uuid.UUID `json:"unit_id,omitempty"`
	Attended            *bool      `json:"attended"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func ToAppointmentResponse(m *model.AppointmentModel) AppointmentResponse {
	return AppointmentResponse{
		ID:                  m.AppointmentID,
		StudentName:         m.AppointmentStudentName,
		StudentRegistration: m.AppointmentStudentRegistration,
		ProcessNumber:       m.AppointmentProcessNumber,
		Date:                dbtime.FormatISO(m.DateValue()),
		Time:                dbtime.FormatClock(m.AppointmentTime),
		ServiceType:         m.AppointmentServiceType,
		Status:              string(m.AppointmentStatus),
		StaffName:           m.AppointmentStaffName,
		ServiceWindow:       m.AppointmentServiceWindow,
		RequestCategory:     m.AppointmentRequestCategory,
		CallNumber:          m.AppointmentCallNumber,
		Notes:               m.AppointmentNotes,
		Origin:              string(m.AppointmentOrigin),
		UnitID:              m.AppointmentUnitID,
		Attended:            m.AppointmentAttended,
		CreatedAt:           m.AppointmentCreatedAt,
		UpdatedAt:           m.AppointmentUpdatedAt,
	}
}

func ToAppointmentResponseList(rows []model.AppointmentModel) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToAppointmentResponse(&rows[i]))
	}
	return out
}

// CellChangeResponse carries the previous value so the client can revert
// its optimistic edit.
type CellChangeResponse struct {
	ID       uuid.UUID `json:"id"`
	Field    string    `json:"field"`
	Previous any       `json:"previous"`
	Current  any       `json:"current"`
}

type ImportResponse struct {
	Inserted int          `json:"inserted"`
	Skipped  int          `json:"skipped"`
	Date     string       `json:"date"`
	Warnings []RowWarning `json:"warnings,omitempty"`
}

type RowWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

/* =========================================================
   helpers
========================================================= */

// ParseOptionalClock: nil or blank → nil.
func ParseOptionalClock(s *string) (*datatypes.Time, error) {
	v := helper.CleanOptional(s)
	if v == nil {
		return nil, nil
	}
	t, err := dbtime.ParseClock(*v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDateOrToday parses s in the business timezone; blank is today.
func ParseDateOrToday(s string, now time.Time) (time.Time, error) {
	if helper.StrPtr(s) == nil {
		return civil(dbtime.Today(now)), nil
	}
	d, err := dbtime.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return civil(d), nil
}

// civil drops the zone so the date column stores the calendar day as given.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
