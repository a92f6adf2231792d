package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"cra_backend/internals/features/appointments/appointments/model"
)

func appt(name string, day int, clock *datatypes.Time) model.AppointmentModel {
	return model.AppointmentModel{
		AppointmentStudentName: name,
		AppointmentDate:        datatypes.Date(time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)),
		AppointmentTime:        clock,
		AppointmentStatus:      model.StatusAttended,
		AppointmentOrigin:      model.OriginWalkIn,
	}
}

func clock(h, m int) *datatypes.Time {
	t := datatypes.NewTime(h, m, 0, 0)
	return &t
}

func TestSortForExport(t *testing.T) {
	rows := []model.AppointmentModel{
		appt("ZECA", 2, clock(8, 0)),
		appt("BIA", 1, nil),
		appt("ANA", 1, nil),
		appt("CARLOS", 1, clock(9, 0)),
		appt("DORA", 1, clock(8, 30)),
	}
	SortForExport(rows)

	want := []string{"DORA", "CARLOS", "ANA", "BIA", "ZECA"}
	for i, w := range want {
		if rows[i].AppointmentStudentName != w {
			t.Fatalf("pos %d = %s, want %s", i, rows[i].AppointmentStudentName, w)
		}
	}
}

func TestBuildWorkbook(t *testing.T) {
	attended := true
	a := appt("BRUNO", 5, clock(14, 5))
	a.AppointmentAttended = &attended
	rows := []model.AppointmentModel{a, appt("ALICE", 4, nil)}

	buf, err := BuildWorkbook(rows)
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("rows = %d, want 3", len(got))
	}
	if got[0][0] != "Data" || got[0][2] != "Nome" {
		t.Errorf("header = %v", got[0])
	}
	if got[1][0] != "04/03/2024" || got[1][2] != "ALICE" || got[1][7] != "Pendente" {
		t.Errorf("first row = %v", got[1])
	}
	if got[2][1] != "14:05" || got[2][6] != "Atendido" || got[2][7] != "Sim" || got[2][12] != "Espontâneo" {
		t.Errorf("second row = %v", got[2])
	}
}

func TestExportFileName(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := ExportFileName(from, to); got != "agendamentos_20240101_20240131.xlsx" {
		t.Fatalf("got %s", got)
	}
}
