package service

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"cra_backend/internals/features/appointments/appointments/model"
)

// EncodeCSV renders rows as comma separated text: a header of column names,
// then one line per row with every value double-quoted (inner quotes
// doubled) and NULL written as "". Lines end with CRLF.
//
// encoding/csv only quotes when needed, so it cannot produce this format.
func EncodeCSV(rows []model.AppointmentModel) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(model.Columns, ","))
	buf.WriteString("\r\n")
	for i := range rows {
		rec := csvRecord(&rows[i])
		for j, v := range rec {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(v, `"`, `""`))
			buf.WriteByte('"')
		}
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}

// csvRecord follows model.Columns order.
func csvRecord(m *model.AppointmentModel) []string {
	unit := ""
	if m.AppointmentUnitID != nil {
		unit = m.AppointmentUnitID.String()
	}
	attended := ""
	if m.AppointmentAttended != nil {
		attended = strconv.FormatBool(*m.AppointmentAttended)
	}
	clock := ""
	if m.AppointmentTime != nil {
		d := time.Duration(*m.AppointmentTime)
		clock = time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format("15:04:05")
	}
	return []string{
		m.AppointmentID.String(),
		m.AppointmentStudentName,
		str(m.AppointmentStudentRegistration),
		str(m.AppointmentProcessNumber),
		time.Time(m.AppointmentDate).Format("2006-01-02"),
		clock,
		str(m.AppointmentServiceType),
		string(m.AppointmentStatus),
		str(m.AppointmentStaffName),
		str(m.AppointmentServiceWindow),
		str(m.AppointmentRequestCategory),
		str(m.AppointmentCallNumber),
		str(m.AppointmentNotes),
		string(m.AppointmentOrigin),
		unit,
		attended,
		ts(m.AppointmentCreatedAt),
		ts(m.AppointmentUpdatedAt),
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ts(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
