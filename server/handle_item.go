package server

import (
	"github.com/labstack/echo/v4"

	"github.com/dinhhuy2010/wdq-go/internal/helpers"
	"github.com/dinhhuy2010/wdq-go/languages"
	"github.com/dinhhuy2010/wdq-go/wdq"
)

type entitySummaryResponse struct {
	ID                  string   `json:"id"`
	Label               string   `json:"label"`
	LabelLanguage       string   `json:"labelLanguage,omitempty"`
	Description         string   `json:"description,omitempty"`
	DescriptionLanguage string   `json:"descriptionLanguage,omitempty"`
	Aliases             []string `json:"aliases"`
	StatementCount      int      `json:"statementCount"`
	SitelinkCount       *int     `json:"sitelinkCount,omitempty"`
	DataType            string   `json:"dataType,omitempty"`
}

func summarizeEntity(ent *wdq.Entity, lang string) (*entitySummaryResponse, error) {
	labels, err := ent.Labels()
	if err != nil {
		return nil, err
	}
	descriptions, err := ent.Descriptions()
	if err != nil {
		return nil, err
	}
	aliases, err := ent.Aliases()
	if err != nil {
		return nil, err
	}
	statements, err := ent.Statements()
	if err != nil {
		return nil, err
	}

	resp := &entitySummaryResponse{
		ID:             ent.ID(),
		StatementCount: statements.Len(),
	}

	if lang != "" {
		resp.LabelLanguage, resp.Label = labels.Fallback(lang, "mul", "en")
		resp.DescriptionLanguage, resp.Description = descriptions.Fallback(lang, "mul", "en")
		resp.Aliases = aliases.Get(lang)
	} else {
		resp.LabelLanguage, resp.Label = labels.Fallback()
		resp.DescriptionLanguage, resp.Description = descriptions.Fallback()
		resp.Aliases = aliases.Fallback()
	}
	if resp.Aliases == nil {
		resp.Aliases = []string{}
	}

	return resp, nil
}

func (s *Server) handleItem(e echo.Context) error {
	lang := e.QueryParam("lang")
	if lang != "" && !languages.IsValid(lang) {
		return helpers.InputError(e, "InvalidLanguage", "")
	}

	item, err := s.client.Item(e.Request().Context(), e.Param("id"))
	if err != nil {
		return s.respondFetchError(e, err)
	}

	resp, err := summarizeEntity(&item.Entity, lang)
	if err != nil {
		s.logger.Error("unable to summarize item", "id", item.ID(), "error", err)
		return helpers.ServerError(e, "MalformedEntity", "")
	}

	sitelinks, err := item.Sitelinks()
	if err != nil {
		s.logger.Error("unable to read sitelinks", "id", item.ID(), "error", err)
		return helpers.ServerError(e, "MalformedEntity", "")
	}
	count := sitelinks.Len()
	resp.SitelinkCount = &count

	return e.JSON(200, resp)
}
