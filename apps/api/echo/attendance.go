package echoapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
	rostersvc "github.com/trezcool/darasa/services/roster"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type attendanceApi struct {
	svc        *attendance.Service
	studentSvc *student.Service
	validate   *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service, studentSvc *student.Service, validate *validator.Validate) {
	api := attendanceApi{
		svc:        svc,
		studentSvc: studentSvc,
		validate:   validate,
	}

	ag := g.Group("/attendance")
	ag.GET("", api.query)
	ag.POST("", api.mark)
	ag.POST("/clear", api.clearDay)
	ag.GET("/export", api.exportDay)
}

// Handlers

func (api *attendanceApi) query(ctx echo.Context) error {
	var studentID *int
	if sid := ctx.QueryParam("student_id"); sid != "" {
		id, err := strconv.Atoi(sid)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: "must be an integer"})
		}
		studentID = &id
	}

	entries, err := api.svc.Query(ctx.QueryParam("date"), studentID)
	if err != nil {
		return err
	}
	return jsonSuccess(ctx, http.StatusOK, entries)
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data attendance.MarkRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	entry, err := api.svc.Mark(data.StudentID, data.Status)
	if err != nil {
		return err
	}
	return jsonSuccess(ctx, http.StatusCreated, entry)
}

func (api *attendanceApi) clearDay(ctx echo.Context) error {
	cleared, err := api.svc.ClearDay(ctx.QueryParam("date"))
	if err != nil {
		return err
	}
	return jsonSuccess(ctx, http.StatusOK, echo.Map{"cleared": cleared})
}

func (api *attendanceApi) exportDay(ctx echo.Context) error {
	date, err := api.svc.ResolveDate(ctx.QueryParam("date"))
	if err != nil {
		return err
	}
	entries, err := api.svc.Query(date, nil)
	if err != nil {
		return err
	}

	f, err := rostersvc.ExportDay(date, entries, api.studentSvc)
	if err != nil {
		return errors.Wrap(err, "exporting day register")
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return errors.Wrap(err, "rendering day register")
	}

	ctx.Response().Header().Set(
		echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, date),
	)
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
