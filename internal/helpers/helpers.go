package helpers

import "github.com/labstack/echo/v4"

func errorResponse(e echo.Context, status int, error, msg string) error {
	if error == "" {
		return e.NoContent(status)
	}

	resp := map[string]string{}
	resp["error"] = error
	if msg != "" {
		resp["message"] = msg
	}

	return e.JSON(status, resp)
}

func InputError(e echo.Context, error, msg string) error {
	return errorResponse(e, 400, error, msg)
}

func NotFoundError(e echo.Context, error, msg string) error {
	return errorResponse(e, 404, error, msg)
}

func ServerError(e echo.Context, error, msg string) error {
	return errorResponse(e, 500, error, msg)
}

func UpstreamError(e echo.Context, error, msg string) error {
	return errorResponse(e, 502, error, msg)
}
