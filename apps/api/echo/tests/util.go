package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
	testutil "github.com/trezcool/darasa/tests"
)

type env struct {
	server echoapi.Server
	clock  *testutil.FixedClock

	studentRepo student.Repository
	attRepo     attendance.Repository
}

func setup(t *testing.T) *env {
	t.Helper()

	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// set up the store & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	studentRepo := inmemdb.NewStudentRepository(db)
	attRepo := inmemdb.NewAttendanceRepository(db)

	// set up services
	clock := testutil.NewFixedClock(time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))
	studentSvc := student.NewService(studentRepo)
	attendanceSvc := attendance.NewService(attRepo, studentRepo, clock)

	// set up server
	server := echoapi.NewServer(&echoapi.Options{
		Conf:           conf,
		Logger:         testutil.NewLogger(t),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
		StudentSvc:     studentSvc,
		AttendanceSvc:  attendanceSvc,
		SignalShutdown: func() {},
	})

	return &env{
		server:      server,
		clock:       clock,
		studentRepo: studentRepo,
		attRepo:     attRepo,
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte // nil skips the body check
}

func (e *env) request(t *testing.T, method, path string, data ...[]byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func (e *env) run(t *testing.T, tt httpTest) {
	t.Helper()

	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	rec := e.request(t, method, tt.path, tt.body)
	checkCodeAndData(t, tt, rec)
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func successBody(t *testing.T, data interface{}) []byte {
	return marshallObj(t, map[string]interface{}{"status": "success", "data": data})
}

func errBody(t *testing.T, err interface{}) []byte {
	return marshallObj(t, map[string]interface{}{"status": "error", "error": err})
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
