package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"cra_backend/internals/features/appointments/appointments/model"
)

func TestEncodeCSV(t *testing.T) {
	id := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	notes := `disse "urgente", volta amanhã`
	attended := true
	clock := datatypes.NewTime(9, 30, 0, 0)
	created := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	rows := []model.AppointmentModel{{
		AppointmentID:          id,
		AppointmentStudentName: "ANA",
		AppointmentDate:        datatypes.Date(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
		AppointmentTime:        &clock,
		AppointmentStatus:      model.StatusAttended,
		AppointmentNotes:       &notes,
		AppointmentOrigin:      model.OriginImported,
		AppointmentAttended:    &attended,
		AppointmentCreatedAt:   created,
		AppointmentUpdatedAt:   created,
	}}

	out := string(EncodeCSV(rows))
	lines := strings.Split(out, "\r\n")
	if len(lines) != 3 || lines[2] != "" {
		t.Fatalf("want header, one row and trailing CRLF; got %q", out)
	}
	if lines[0] != strings.Join(model.Columns, ",") {
		t.Errorf("header = %q", lines[0])
	}

	want := []string{
		`"aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"`,
		`"ANA"`,
		`""`, // registration is NULL
		`""`,
		`"2024-01-10"`,
		`"09:30:00"`,
		`""`,
		`"ATTENDED"`,
	}
	if !strings.HasPrefix(lines[1], strings.Join(want, ",")+",") {
		t.Errorf("row prefix = %q", lines[1])
	}
	if !strings.Contains(lines[1], `"disse ""urgente"", volta amanhã"`) {
		t.Errorf("quotes not doubled: %q", lines[1])
	}
	if !strings.Contains(lines[1], `"IMPORTED","","true","2024-01-10T12:00:00Z"`) {
		t.Errorf("tail = %q", lines[1])
	}
}

func TestEncodeCSVEmpty(t *testing.T) {
	out := string(EncodeCSV(nil))
	if out != strings.Join(model.Columns, ",")+"\r\n" {
		t.Fatalf("empty export = %q", out)
	}
}

func TestExportFileName(t *testing.T) {
	ts := time.Date(2024, 3, 5, 7, 8, 9, 123_000_000, time.FixedZone("BRT", -3*3600))
	if got := ExportFileName(ts); got != "appointment_history_20240305T100809.123Z.csv" {
		t.Fatalf("ExportFileName = %q", got)
	}
}
