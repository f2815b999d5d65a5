// Package sites classifies Wikibase sitelink site ids into connected-site
// groups. The classification is a pure table lookup with no I/O.
package sites

import "strings"

// Group is a family of connected sites, e.g. all language Wikipedias.
type Group string

const (
	GroupWikipedia     Group = "wikipedia"
	GroupWikibooks     Group = "wikibooks"
	GroupWikinews      Group = "wikinews"
	GroupWikiquote     Group = "wikiquote"
	GroupWikisource    Group = "wikisource"
	GroupWikiversity   Group = "wikiversity"
	GroupWikivoyage    Group = "wikivoyage"
	GroupWiktionary    Group = "wiktionary"
	GroupCommons       Group = "commons"
	GroupMeta          Group = "meta"
	GroupMediaWiki     Group = "mediawiki"
	GroupSpecies       Group = "species"
	GroupWikidata      Group = "wikidata"
	GroupWikifunctions Group = "wikifunctions"
	GroupUnknown       Group = "unknown"
)

// specialSites are site ids that do not follow the {lang}{family} pattern.
var specialSites = map[string]Group{
	"commonswiki":       GroupCommons,
	"metawiki":          GroupMeta,
	"mediawikiwiki":     GroupMediaWiki,
	"specieswiki":       GroupSpecies,
	"wikidatawiki":      GroupWikidata,
	"wikifunctionswiki": GroupWikifunctions,
	"sourceswiki":       GroupWikisource, // multilingual wikisource
}

// familySuffixes is checked in order; the bare "wiki" suffix must come last
// because every other family suffix also ends in it.
var familySuffixes = []struct {
	suffix string
	group  Group
}{
	{"wikibooks", GroupWikibooks},
	{"wikinews", GroupWikinews},
	{"wikiquote", GroupWikiquote},
	{"wikisource", GroupWikisource},
	{"wikiversity", GroupWikiversity},
	{"wikivoyage", GroupWikivoyage},
	{"wiktionary", GroupWiktionary},
	{"wiki", GroupWikipedia},
}

// Identify returns the group a site id belongs to, or GroupUnknown.
func Identify(siteID string) Group {
	if group, ok := specialSites[siteID]; ok {
		return group
	}
	for _, family := range familySuffixes {
		if lang, ok := strings.CutSuffix(siteID, family.suffix); ok && lang != "" {
			return family.group
		}
	}
	return GroupUnknown
}

// FromString validates a group name, e.g. from a query parameter.
func FromString(s string) (Group, bool) {
	switch g := Group(s); g {
	case GroupWikipedia, GroupWikibooks, GroupWikinews, GroupWikiquote,
		GroupWikisource, GroupWikiversity, GroupWikivoyage, GroupWiktionary,
		GroupCommons, GroupMeta, GroupMediaWiki, GroupSpecies,
		GroupWikidata, GroupWikifunctions:
		return g, true
	default:
		return GroupUnknown, false
	}
}
