package wdq

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/dinhhuy2010/wdq-go/sites"
)

// Badge marks the quality or status of a sitelinked page. The set of badge
// item ids is closed; anything else in a badge list is malformed data.
type Badge string

const (
	BadgeGoodArticle                   Badge = "Q17437798"
	BadgeFeaturedArticle               Badge = "Q17437796"
	BadgeRecommendedArticle            Badge = "Q17559452"
	BadgeFeaturedList                  Badge = "Q17506997"
	BadgeFeaturedPortal                Badge = "Q17580674"
	BadgeNotProofread                  Badge = "Q20748091"
	BadgeProblematic                   Badge = "Q20748094"
	BadgeProofread                     Badge = "Q20748092"
	BadgeValidated                     Badge = "Q20748093"
	BadgeDigitalDocument               Badge = "Q28064618"
	BadgeGoodList                      Badge = "Q51759403"
	BadgeSitelinkToRedirect            Badge = "Q70893996"
	BadgeIntentionalSitelinkToRedirect Badge = "Q70894304"
)

var knownBadges = map[Badge]struct{}{
	BadgeGoodArticle:                   {},
	BadgeFeaturedArticle:               {},
	BadgeRecommendedArticle:            {},
	BadgeFeaturedList:                  {},
	BadgeFeaturedPortal:                {},
	BadgeNotProofread:                  {},
	BadgeProblematic:                   {},
	BadgeProofread:                     {},
	BadgeValidated:                     {},
	BadgeDigitalDocument:               {},
	BadgeGoodList:                      {},
	BadgeSitelinkToRedirect:            {},
	BadgeIntentionalSitelinkToRedirect: {},
}

// ParseBadge validates a badge item id against the closed enumeration.
func ParseBadge(id string) (Badge, error) {
	b := Badge(id)
	if _, ok := knownBadges[b]; !ok {
		return "", errors.Wrapf(ErrMalformedData, "unknown sitelink badge %q", id)
	}
	return b, nil
}

// Sitelink is a link from an item to a page on a connected site.
type Sitelink struct {
	Title  string
	Badges []Badge
	URL    string
}

// Sitelinks is a read-only site-id→sitelink registry. Sitelinks decode when
// looked up; construction never fails on a bad badge id.
type Sitelinks struct {
	itemID   string
	sites    []string
	links    map[string]json.RawMessage
	classify Classifier
}

func newSitelinks(raw json.RawMessage, itemID string, classify Classifier) (*Sitelinks, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "sitelinks of %s", itemID)
	}
	return &Sitelinks{itemID: itemID, sites: obj.keys, links: obj.fields, classify: classify}, nil
}

type rawSitelink struct {
	Title  *string  `json:"title"`
	Badges []string `json:"badges"`
	URL    *string  `json:"url"`
}

func (s *Sitelinks) decode(siteID string, raw json.RawMessage) (Sitelink, error) {
	var rl rawSitelink
	if err := json.Unmarshal(raw, &rl); err != nil {
		return Sitelink{}, errors.Wrapf(ErrMalformedData, "sitelink for %q is not an object", siteID)
	}
	if rl.Title == nil {
		return Sitelink{}, errors.Wrapf(ErrMalformedData, "sitelink for %q has no title", siteID)
	}
	if rl.URL == nil {
		return Sitelink{}, errors.Wrapf(ErrMalformedData, "sitelink for %q has no url", siteID)
	}

	badges := make([]Badge, 0, len(rl.Badges))
	for _, id := range rl.Badges {
		b, err := ParseBadge(id)
		if err != nil {
			return Sitelink{}, errors.Wrapf(err, "sitelink for %q", siteID)
		}
		badges = append(badges, b)
	}

	return Sitelink{Title: *rl.Title, Badges: badges, URL: *rl.URL}, nil
}

// Get returns the sitelink for siteID, or ErrNotFound when the item has no
// link on that site.
func (s *Sitelinks) Get(siteID string) (Sitelink, error) {
	raw, ok := s.links[siteID]
	if !ok {
		return Sitelink{}, errors.Wrapf(ErrNotFound, "%s has no sitelink for site %q", s.itemID, siteID)
	}
	return s.decode(siteID, raw)
}

// ByGroup returns the sitelinks whose site the injected classifier places in
// group.
func (s *Sitelinks) ByGroup(group sites.Group) (map[string]Sitelink, error) {
	classify := s.classify
	if classify == nil {
		classify = sites.Identify
	}

	out := map[string]Sitelink{}
	for _, siteID := range s.sites {
		if classify(siteID) != group {
			continue
		}
		link, err := s.decode(siteID, s.links[siteID])
		if err != nil {
			return nil, err
		}
		out[siteID] = link
	}
	return out, nil
}

// Sites returns the connected site ids, in source order.
func (s *Sitelinks) Sites() []string {
	out := make([]string, len(s.sites))
	copy(out, s.sites)
	return out
}

// Len is the number of sitelinks present.
func (s *Sitelinks) Len() int {
	return len(s.sites)
}
