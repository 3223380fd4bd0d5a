package rostersvc_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
	rostersvc "github.com/trezcool/darasa/services/roster"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
	testutil "github.com/trezcool/darasa/tests"
)

func setup(t *testing.T) (*student.Service, attendance.Repository, *validator.Validate) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	return student.NewService(inmemdb.NewStudentRepository(db)), inmemdb.NewAttendanceRepository(db), validate
}

func buildRoster(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Name", "Grade", "Section"}); err != nil {
		t.Fatalf("SetSheetRow() failed: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("CoordinatesToCellName() failed: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow() failed: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() failed: %v", err)
	}
	return buf
}

func TestImportStudents(t *testing.T) {
	svc, _, validate := setup(t)

	buf := buildRoster(t, [][]interface{}{
		{"John Doe", 10, "Zechariah"},
		{"Jane Smith", 10, "Zechariah"},
		{"", 11, "Malachi"},           // missing name: skipped
		{"Bad Grade", "ten", "Kings"}, // non-integer grade: skipped
		{"Peter Parker", 11, "Malachi"},
	})

	imported, err := rostersvc.ImportStudents(buf, svc, validate)
	if err != nil {
		t.Fatalf("ImportStudents() failed: %v", err)
	}
	if imported != 3 {
		t.Errorf("imported = %d; want 3", imported)
	}

	studs, err := svc.QueryAll()
	if err != nil {
		t.Fatalf("QueryAll() failed: %v", err)
	}
	names := make([]string, 0, len(studs))
	for _, st := range studs {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{"John Doe", "Jane Smith", "Peter Parker"}, names)
}

func TestImportStudents_notAnXlsx(t *testing.T) {
	svc, _, validate := setup(t)

	_, err := rostersvc.ImportStudents(bytes.NewBufferString("definitely,a,csv"), svc, validate)
	var vErr *core.ValidationError
	if !assert.ErrorAs(t, err, &vErr) {
		t.Fatalf("ImportStudents(bad file) err = %v; want ValidationError", err)
	}
}

func TestExportDay_roundTrip(t *testing.T) {
	svc, attendanceRepo, _ := setup(t)

	grade := 10
	john, err := svc.Create(student.NewStudent{Name: "John Doe", Grade: &grade, Section: "Zechariah"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	at := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	entry := testutil.MarkEntry(t, attendanceRepo, john.ID, attendance.StatusPresent, at)

	f, err := rostersvc.ExportDay(entry.Date, []attendance.Entry{entry}, svc)
	if err != nil {
		t.Fatalf("ExportDay() failed: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() failed: %v", err)
	}

	out, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader() failed: %v", err)
	}
	rows, err := out.GetRows(entry.Date)
	if err != nil {
		t.Fatalf("GetRows() failed: %v", err)
	}
	if assert.Len(t, rows, 2) {
		assert.Equal(t, []string{"Student ID", "Name", "Status", "Timestamp", "Date"}, rows[0])
		assert.Equal(t, []string{"1", "John Doe", "Present", "2026-03-02T08:30:00Z", "2026-03-02"}, rows[1])
	}
}
