package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how
// to handle our error taxonomy: validation failures map to 400, unknown ids to
// 404, duplicate same-day marks to 409 and login name mismatches to 401.
// signalShutdown is called in order to gracefully shutdown the Server whenever
// a core shutdown error is caught.
func newAppHTTPErrorHandler(translator ut.Translator, logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			switch {
			case errors.Is(err, student.ErrNotFound):
				code = http.StatusNotFound
				message = student.ErrNotFound.Error()
			case errors.Is(err, attendance.ErrAlreadyMarked):
				code = http.StatusConflict
				message = "already marked"
			case errors.Is(err, student.ErrNameMismatch):
				code = http.StatusUnauthorized
				message = student.ErrNameMismatch.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				logger.Error(msg, errors.Wrap(err, msg))

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if code == http.StatusInternalServerError && ctx.Echo().Debug {
			message = err.Error()
		}
		message = echo.Map{"status": "error", "error": message}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
