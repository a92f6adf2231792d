// internals/features/appointments/appointments/service/export_service.go
package service

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"cra_backend/internals/features/appointments/appointments/model"
	"cra_backend/internals/helpers/dbtime"
)

const exportSheet = "Agendamentos"

var ExportHeaders = []string{
	"Data",
	"Horário",
	"Nome",
	"Matrícula",
	"Nº Processo",
	"Tipo de Serviço",
	"Status",
	"Comparecimento",
	"Atendente",
	"Guichê",
	"Categoria da Solicitação",
	"Senha",
	"Origem",
	"Observações",
}

var statusLabels = map[model.AppointmentStatus]string{
	model.StatusScheduled: "Agendado",
	model.StatusAttended:  "Atendido",
	model.StatusNoShow:    "Não compareceu",
}

var originLabels = map[model.AppointmentOrigin]string{
	model.OriginImported: "Importado",
	model.OriginWalkIn:   "Espontâneo",
}

func attendanceLabel(a *bool) string {
	switch {
	case a == nil:
		return "Pendente"
	case *a:
		return "Sim"
	default:
		return "Não"
	}
}

// SortForExport orders by date, then time (rows without time last), then name.
func SortForExport(rows []model.AppointmentModel) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if da, db := a.DateValue(), b.DateValue(); !da.Equal(db) {
			return da.Before(db)
		}
		switch {
		case a.AppointmentTime == nil && b.AppointmentTime != nil:
			return false
		case a.AppointmentTime != nil && b.AppointmentTime == nil:
			return true
		case a.AppointmentTime != nil && *a.AppointmentTime != *b.AppointmentTime:
			return *a.AppointmentTime < *b.AppointmentTime
		}
		return a.AppointmentStudentName < b.AppointmentStudentName
	})
}

func opt(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func exportRow(m *model.AppointmentModel) []interface{} {
	status := statusLabels[m.AppointmentStatus]
	if status == "" {
		status = string(m.AppointmentStatus)
	}
	return []interface{}{
		dbtime.FormatBR(m.DateValue()),
		dbtime.FormatClock(m.AppointmentTime),
		m.AppointmentStudentName,
		opt(m.AppointmentStudentRegistration),
		opt(m.AppointmentProcessNumber),
		opt(m.AppointmentServiceType),
		status,
		attendanceLabel(m.AppointmentAttended),
		opt(m.AppointmentStaffName),
		opt(m.AppointmentServiceWindow),
		opt(m.AppointmentRequestCategory),
		opt(m.AppointmentCallNumber),
		originLabels[m.AppointmentOrigin],
		opt(m.AppointmentNotes),
	}
}

// BuildWorkbook sorts rows and writes them to a single-sheet xlsx.
func BuildWorkbook(rows []model.AppointmentModel) (*bytes.Buffer, error) {
	SortForExport(rows)

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return nil, err
	}
	if err := sw.SetColWidth(1, len(ExportHeaders), 18); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(ExportHeaders))
	for i, h := range ExportHeaders {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, exportRow(&rows[i])); err != nil {
			return nil, fmt.Errorf("linha %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// ExportFileName: agendamentos_<from>_<to>.xlsx
func ExportFileName(from, to time.Time) string {
	return fmt.Sprintf("agendamentos_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
}
