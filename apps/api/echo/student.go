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

type studentApi struct {
	svc      *student.Service
	attSvc   *attendance.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc *student.Service, attSvc *attendance.Service, validate *validator.Validate) {
	api := studentApi{
		svc:      svc,
		attSvc:   attSvc,
		validate: validate,
	}

	g.POST("/login", api.login)

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.POST("/import", api.importRoster)

	// detail endpoints
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
	sg.GET("/:id/attendance", api.todayStatus)
}

// LoginRequest is a claimed student identity: id plus the matching name.
type LoginRequest struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Name = core.CleanString(lr.Name)
	return validate.Struct(lr)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	filter := student.QueryFilter{
		Name:    ctx.QueryParam("name"),
		Section: ctx.QueryParam("section"),
	}
	if g := ctx.QueryParam("grade"); g != "" {
		grade, err := strconv.Atoi(g)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "grade", Error: "must be an integer"})
		}
		filter.Grade = &grade
	}

	studs, err := api.svc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "filtering students")
	}
	return jsonSuccess(ctx, http.StatusOK, studs)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return jsonSuccess(ctx, http.StatusCreated, st)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	st, err := api.svc.GetByID(id)
	if err != nil {
		return err
	}
	return jsonSuccess(ctx, http.StatusOK, st)
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.Update(id, data)
	if err != nil {
		return err
	}
	return jsonSuccess(ctx, http.StatusOK, st)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := api.svc.Delete(id); err != nil {
		return err
	}
	return jsonSuccess(ctx, http.StatusOK, echo.Map{"deleted": id})
}

func (api *studentApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.svc.Authenticate(data.ID, data.Name)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, successResponse{
		Status: "success",
		Data:   st,
		Next:   fmt.Sprintf("/api/students/%d/attendance", st.ID),
	})
}

func (api *studentApi) todayStatus(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	status, err := api.attSvc.StatusFor(id)
	if err != nil {
		return err
	}
	return jsonSuccess(ctx, http.StatusOK, status)
}

func (api *studentApi) importRoster(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "an xlsx roster file is required"})
	}
	file, err := fh.Open()
	if err != nil {
		return errors.Wrapf(err, "opening upload %s", fh.Filename)
	}
	//goland:noinspection GoUnhandledErrorResult
	defer file.Close()

	imported, err := rostersvc.ImportStudents(file, api.svc, api.validate)
	if err != nil {
		return errors.Wrapf(err, "importing roster %s", fh.Filename)
	}
	return jsonSuccess(ctx, http.StatusOK, echo.Map{"imported": imported})
}

func intParam(ctx echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be an integer"})
	}
	return v, nil
}
