package server

import (
	"github.com/labstack/echo/v4"

	"github.com/dinhhuy2010/wdq-go/internal/helpers"
	"github.com/dinhhuy2010/wdq-go/languages"
)

func (s *Server) handleProperty(e echo.Context) error {
	lang := e.QueryParam("lang")
	if lang != "" && !languages.IsValid(lang) {
		return helpers.InputError(e, "InvalidLanguage", "")
	}

	property, err := s.client.Property(e.Request().Context(), e.Param("id"))
	if err != nil {
		return s.respondFetchError(e, err)
	}

	resp, err := summarizeEntity(&property.Entity, lang)
	if err != nil {
		s.logger.Error("unable to summarize property", "id", property.ID(), "error", err)
		return helpers.ServerError(e, "MalformedEntity", "")
	}

	datatype, err := property.Datatype()
	if err != nil {
		s.logger.Error("property has no datatype", "id", property.ID(), "error", err)
		return helpers.ServerError(e, "MalformedEntity", "")
	}
	resp.DataType = datatype

	return e.JSON(200, resp)
}
