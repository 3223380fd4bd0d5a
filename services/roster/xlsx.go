package rostersvc

import (
	"io"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

var (
	errBadFile  = errors.New("not a valid xlsx document")
	errNoSheets = errors.New("roster file does not contain any sheets")
)

// ImportStudents reads an xlsx roster stream and creates a student per row.
// Expected columns: Name | Grade | Section, with a header in the first row.
// Rows that fail validation are skipped; the count of created students is
// returned.
func ImportStudents(r io.Reader, svc *student.Service, validate *validator.Validate) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, core.NewValidationError(errBadFile)
	}
	//goland:noinspection GoUnhandledErrorResult
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return 0, core.NewValidationError(errNoSheets)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, errors.Wrapf(err, "reading sheet %s", sheet)
	}

	var imported int
	for i, row := range rows {
		if i == 0 {
			continue // header row
		}
		var name, grade, section string
		if len(row) > 0 {
			name = row[0]
		}
		if len(row) > 1 {
			grade = row[1]
		}
		if len(row) > 2 {
			section = row[2]
		}

		g, err := strconv.Atoi(core.CleanString(grade))
		if err != nil {
			continue
		}
		ns := student.NewStudent{Name: name, Grade: &g, Section: section}
		if err := ns.Validate(validate); err != nil {
			continue
		}
		if _, err := svc.Create(ns); err != nil {
			return imported, errors.Wrap(err, "creating imported student")
		}
		imported++
	}
	return imported, nil
}

// ExportDay renders the attendance register for one day as an xlsx file,
// one row per entry with the student resolved through svc.
func ExportDay(date string, entries []attendance.Entry, svc *student.Service) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, date); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}
	sheet = date

	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Student ID", "Name", "Status", "Timestamp", "Date"}); err != nil {
		return nil, errors.Wrap(err, "writing header row")
	}
	for i, e := range entries {
		var name string
		if st, err := svc.GetByID(e.StudentID); err == nil {
			name = st.Name
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{e.StudentID, name, e.Status, e.Timestamp.Format(time.RFC3339), e.Date}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, errors.Wrapf(err, "writing row for student %d", e.StudentID)
		}
	}
	return f, nil
}
