package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

type (
	Options struct {
		Addr           string
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool

		StudentSvc    *student.Service
		AttendanceSvc *attendance.Service

		// SignalShutdown is called to gracefully shut the process down
		// whenever a core shutdown error is caught.
		SignalShutdown func()
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
		Close() error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := s.opts.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.opts.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Translator, s.opts.Logger, s.opts.SignalShutdown)
	s.app.Debug = debug

	s.app.GET("/", home)

	api := s.app.Group("/api")

	registerStudentAPI(api, s.opts.StudentSvc, s.opts.AttendanceSvc, s.opts.Validate)
	registerAttendanceAPI(api, s.opts.AttendanceSvc, s.opts.StudentSvc, s.opts.Validate)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Addr)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Darasa API!")
}

// successResponse is the success envelope; every 2xx body carries the
// "success" status discriminator.
type successResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Next   string      `json:"next,omitempty"`
}

func jsonSuccess(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, successResponse{Status: "success", Data: data})
}
