// internals/features/appointments/appointments/service/import_service.go
package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
	"gorm.io/datatypes"

	"cra_backend/internals/features/appointments/appointments/dto"
	"cra_backend/internals/features/appointments/appointments/model"
	helper "cra_backend/internals/helpers"
	"cra_backend/internals/helpers/dbtime"
)

// Spreadsheet headers, matched case-insensitively after trimming.
const (
	HeaderProcess      = "Nº Processo"
	HeaderName         = "Nome"
	HeaderRegistration = "Matrícula"
	HeaderUnit         = "Unidade"
	HeaderDate         = "Data"
	HeaderTime         = "Horário"
	HeaderServiceType  = "Tipo de Serviço"
)

var RequiredHeaders = []string{
	HeaderProcess,
	HeaderName,
	HeaderRegistration,
	HeaderUnit,
	HeaderDate,
	HeaderTime,
	HeaderServiceType,
}

var (
	ErrEmptySheet  = errors.New("a planilha está vazia")
	ErrNoValidRows = errors.New("nenhuma linha válida para importar")
)

// HeaderError lists every required header absent from the sheet.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return "cabeçalhos obrigatórios ausentes: " + strings.Join(e.Missing, ", ")
}

type ImportOptions struct {
	Date   time.Time // forced on every row; the sheet's own date column is ignored
	UnitID *uuid.UUID
}

type ImportResult struct {
	Rows     []model.AppointmentModel
	Skipped  int
	Warnings []dto.RowWarning
}

func headerKey(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// ParseRows maps a sheet (first row = headers) into appointments. Rows with
// a blank name are dropped. A bad time keeps the row without a time and adds
// a warning.
func ParseRows(rows [][]string, opt ImportOptions) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		k := headerKey(h)
		if _, dup := index[k]; !dup && k != "" {
			index[k] = i
		}
	}
	var missing []string
	for _, h := range RequiredHeaders {
		if _, ok := index[headerKey(h)]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}

	cell := func(row []string, header string) string {
		i := index[headerKey(header)]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date := datatypes.Date(time.Date(opt.Date.Year(), opt.Date.Month(), opt.Date.Day(), 0, 0, 0, 0, time.UTC))
	res := &ImportResult{}
	for n, row := range rows[1:] {
		name := helper.NormalizeUpper(cell(row, HeaderName))
		if name == "" {
			res.Skipped++
			continue
		}
		m := model.AppointmentModel{
			AppointmentStudentName:         name,
			AppointmentStudentRegistration: helper.StrPtr(cell(row, HeaderRegistration)),
			AppointmentProcessNumber:       helper.StrPtr(cell(row, HeaderProcess)),
			AppointmentDate:                date,
			AppointmentServiceType:         helper.CleanOptionalUpper(helper.StrPtr(cell(row, HeaderServiceType))),
			AppointmentStatus:              model.StatusScheduled,
			AppointmentOrigin:              model.OriginImported,
			AppointmentUnitID:              opt.UnitID,
		}
		if raw := cell(row, HeaderTime); raw != "" {
			t, err := dbtime.ParseClock(raw)
			if err != nil {
				res.Warnings = append(res.Warnings, dto.RowWarning{
					Row:     n + 2, // 1-based, after the header
					Message: fmt.Sprintf("horário ignorado: %v", err),
				})
			} else {
				m.AppointmentTime = &t
			}
		}
		res.Rows = append(res.Rows, m)
	}

	if len(res.Rows) == 0 {
		return nil, ErrNoValidRows
	}
	return res, nil
}

// oleMagic starts every legacy BIFF (.xls) workbook; OOXML files are zips.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func isLegacyXLS(data []byte) bool { return bytes.HasPrefix(data, oleMagic) }

// ReadFirstSheet returns every row of the workbook's first sheet. The format
// is picked from the content: legacy .xls or OOXML (.xlsx/.xlsm).
func ReadFirstSheet(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var rows [][]string
	if isLegacyXLS(data) {
		rows, err = readXLS(data)
	} else {
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, err
	}
	// skip leading blank lines
	for len(rows) > 0 && isBlankRow(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("não foi possível ler a planilha .xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	return f.GetRows(sheets[0])
}

// readXLS reads BIFF workbooks. The decoder panics on some malformed files,
// so a panic is reported as an unreadable sheet.
func readXLS(data []byte) (rows [][]string, err error) {
	defer func() {
		if p := recover(); p != nil {
			rows, err = nil, fmt.Errorf("não foi possível ler a planilha .xls: %v", p)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("não foi possível ler a planilha .xls: %w", err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, ErrEmptySheet
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrEmptySheet
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// DistinctServiceTypes returns the non-empty service types in first-seen order.
func DistinctServiceTypes(rows []model.AppointmentModel) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range rows {
		if r.AppointmentServiceType == nil || seen[*r.AppointmentServiceType] {
			continue
		}
		seen[*r.AppointmentServiceType] = true
		out = append(out, *r.AppointmentServiceType)
	}
	return out
}
