package server

import (
	"github.com/labstack/echo/v4"

	"github.com/dinhhuy2010/wdq-go/internal/helpers"
	"github.com/dinhhuy2010/wdq-go/sites"
	"github.com/dinhhuy2010/wdq-go/wdq"
)

type sitelinkResponse struct {
	Site   string   `json:"site"`
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	Badges []string `json:"badges"`
}

type sitelinksResponse struct {
	ID        string             `json:"id"`
	Sitelinks []sitelinkResponse `json:"sitelinks"`
}

func (s *Server) handleItemSitelinks(e echo.Context) error {
	var group sites.Group
	if param := e.QueryParam("group"); param != "" {
		var ok bool
		if group, ok = sites.FromString(param); !ok {
			return helpers.InputError(e, "InvalidGroup", "")
		}
	}

	item, err := s.client.Item(e.Request().Context(), e.Param("id"))
	if err != nil {
		return s.respondFetchError(e, err)
	}

	sitelinks, err := item.Sitelinks()
	if err != nil {
		s.logger.Error("unable to read sitelinks", "id", item.ID(), "error", err)
		return helpers.ServerError(e, "MalformedEntity", "")
	}

	var selected map[string]wdq.Sitelink
	if group != "" {
		if selected, err = sitelinks.ByGroup(group); err != nil {
			s.logger.Error("unable to decode sitelinks", "id", item.ID(), "error", err)
			return helpers.ServerError(e, "MalformedEntity", "")
		}
	}

	resp := sitelinksResponse{
		ID:        item.ID(),
		Sitelinks: []sitelinkResponse{},
	}
	for _, siteID := range sitelinks.Sites() {
		var link wdq.Sitelink
		if group != "" {
			var ok bool
			if link, ok = selected[siteID]; !ok {
				continue
			}
		} else {
			if link, err = sitelinks.Get(siteID); err != nil {
				s.logger.Error("unable to decode sitelink", "id", item.ID(), "site", siteID, "error", err)
				return helpers.ServerError(e, "MalformedEntity", "")
			}
		}

		badges := make([]string, 0, len(link.Badges))
		for _, b := range link.Badges {
			badges = append(badges, string(b))
		}
		resp.Sitelinks = append(resp.Sitelinks, sitelinkResponse{
			Site:   siteID,
			Title:  link.Title,
			URL:    link.URL,
			Badges: badges,
		})
	}

	return e.JSON(200, resp)
}
