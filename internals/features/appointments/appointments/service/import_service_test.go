package service

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"cra_backend/internals/features/appointments/appointments/model"
)

var header = []string{"Nº Processo", "Nome", "Matrícula", "Unidade", "Data", "Horário", "Tipo de Serviço"}

func importOpts() ImportOptions {
	unit := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	return ImportOptions{Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), UnitID: &unit}
}

func TestParseRowsMissingHeadersListsAll(t *testing.T) {
	rows := [][]string{
		{"Nº Processo", "Nome", "Unidade", "Data", "Tipo de Serviço"},
		{"1", "ANA", "X", "01/01/2024", "MATRÍCULA"},
	}
	_, err := ParseRows(rows, importOpts())

	var he *HeaderError
	if !errors.As(err, &he) {
		t.Fatalf("want HeaderError, got %v", err)
	}
	want := []string{"Matrícula", "Horário"}
	if !reflect.DeepEqual(he.Missing, want) {
		t.Fatalf("missing = %v, want %v", he.Missing, want)
	}
}

func TestParseRowsHeadersCaseInsensitive(t *testing.T) {
	rows := [][]string{
		{"  nº processo", "NOME ", "matrícula", "UNIDADE", "data", "HORÁRIO", "tipo de serviço"},
		{"10", "ana souza", "2020", "Campus", "01/01/1999", "08:30", "trancamento"},
	}
	res, err := ParseRows(rows, importOpts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows = %d", len(res.Rows))
	}
	m := res.Rows[0]
	if m.AppointmentStudentName != "ANA SOUZA" {
		t.Errorf("name = %q", m.AppointmentStudentName)
	}
	if m.AppointmentServiceType == nil || *m.AppointmentServiceType != "TRANCAMENTO" {
		t.Errorf("service type = %v", m.AppointmentServiceType)
	}
	if m.AppointmentTime == nil || m.AppointmentTime.String() != "08:30:00" {
		t.Errorf("time = %v", m.AppointmentTime)
	}
}

func TestParseRowsDropsBlankNames(t *testing.T) {
	rows := [][]string{
		header,
		{"1", "ANA", "100", "U", "01/01/2024", "08:00", "A"},
		{"2", "BRUNO", "101", "U", "01/01/2024", "08:10", "A"},
		{"3", "   ", "102", "U", "01/01/2024", "08:20", "A"},
		{"4", "CARLA", "103", "U", "01/01/2024", "08:30", "B"},
		{"5", "DANIEL", "104", "U", "01/01/2024", "08:40", "B"},
	}
	opt := importOpts()
	res, err := ParseRows(rows, opt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 4 || res.Skipped != 1 {
		t.Fatalf("rows = %d skipped = %d, want 4 and 1", len(res.Rows), res.Skipped)
	}
	for _, m := range res.Rows {
		if got := m.DateValue(); got.Year() != 2024 || got.Month() != 6 || got.Day() != 15 {
			t.Errorf("%s: date = %v, want forced 2024-06-15", m.AppointmentStudentName, got)
		}
		if m.AppointmentOrigin != model.OriginImported {
			t.Errorf("origin = %s", m.AppointmentOrigin)
		}
		if m.AppointmentUnitID == nil || *m.AppointmentUnitID != *opt.UnitID {
			t.Errorf("unit = %v", m.AppointmentUnitID)
		}
		if m.AppointmentStatus != model.StatusScheduled {
			t.Errorf("status = %s", m.AppointmentStatus)
		}
	}
	if got := DistinctServiceTypes(res.Rows); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("service types = %v", got)
	}
}

func TestParseRowsNoValidRows(t *testing.T) {
	rows := [][]string{header, {"1", "", "100"}, {"2", " "}}
	if _, err := ParseRows(rows, importOpts()); !errors.Is(err, ErrNoValidRows) {
		t.Fatalf("want ErrNoValidRows, got %v", err)
	}
	if _, err := ParseRows([][]string{header}, importOpts()); !errors.Is(err, ErrNoValidRows) {
		t.Fatalf("header only: want ErrNoValidRows, got %v", err)
	}
	if _, err := ParseRows(nil, importOpts()); !errors.Is(err, ErrEmptySheet) {
		t.Fatalf("want ErrEmptySheet, got %v", err)
	}
}

func TestParseRowsBadTimeWarns(t *testing.T) {
	rows := [][]string{header, {"1", "ANA", "", "", "", "depois do almoço", ""}}
	res, err := ParseRows(rows, importOpts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Rows[0].AppointmentTime != nil {
		t.Errorf("time should be empty")
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Row != 2 {
		t.Errorf("warnings = %+v", res.Warnings)
	}
	if res.Rows[0].AppointmentStudentRegistration != nil {
		t.Errorf("blank registration should be nil")
	}
}

func TestReadFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	_ = f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Nº Processo", "Nome"})
	_ = f.SetSheetRow("Sheet1", "A3", &[]interface{}{"7", "ANA"})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	rows, err := ReadFirstSheet(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[0][1] != "Nome" || rows[1][1] != "ANA" {
		t.Fatalf("rows = %v", rows)
	}

	if _, err := ReadFirstSheet(bytes.NewReader([]byte("not a workbook"))); err == nil || !strings.Contains(err.Error(), ".xlsx") {
		t.Fatalf("non-workbook input: err = %v", err)
	}
}

func TestIsLegacyXLS(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if isLegacyXLS(buf.Bytes()) {
		t.Fatal("xlsx taken for legacy xls")
	}
	legacy := append(append([]byte{}, oleMagic...), make([]byte, 504)...)
	if !isLegacyXLS(legacy) {
		t.Fatal("OLE2 workbook not detected")
	}
	if isLegacyXLS(oleMagic[:4]) {
		t.Fatal("truncated signature detected")
	}
}
