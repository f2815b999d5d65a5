// Package languages holds the table of term language codes accepted by the
// Wikibase REST API, including the "mul" pseudo-language for
// language-independent terms. Validation is a pure set lookup.
package languages

import "sort"

// Mul is the pseudo-language code for language-independent terms.
const Mul = "mul"

var codes = map[string]struct{}{}

func init() {
	for _, c := range codeList {
		codes[c] = struct{}{}
	}
}

// codeList covers the language codes seen in term containers. It is not the
// full several-hundred-entry MediaWiki table, only the codes the API serves
// terms in commonly plus the structural pseudo-language.
var codeList = []string{
	Mul,
	"aa", "ab", "af", "am", "an", "ar", "arz", "as", "ast", "az", "azb",
	"ba", "bar", "be", "bg", "bn", "bo", "br", "bs",
	"ca", "ce", "ceb", "ckb", "co", "cs", "cv", "cy",
	"da", "de", "dv", "dz",
	"el", "en", "en-ca", "en-gb", "eo", "es", "et", "eu",
	"fa", "fi", "fo", "fr", "fy",
	"ga", "gd", "gl", "gn", "gu",
	"ha", "he", "hi", "hr", "ht", "hu", "hy",
	"ia", "id", "ig", "is", "it",
	"ja", "jv",
	"ka", "kk", "km", "kn", "ko", "ku", "ky",
	"la", "lb", "lo", "lt", "lv",
	"mg", "mk", "ml", "mn", "mr", "ms", "mt", "my",
	"nb", "ne", "nl", "nn", "no",
	"oc", "om", "or",
	"pa", "pl", "ps", "pt", "pt-br",
	"qu",
	"rm", "ro", "ru", "rw",
	"sa", "sc", "sd", "se", "si", "sk", "sl", "sm", "sn", "so", "sq",
	"sr", "st", "su", "sv", "sw",
	"ta", "te", "tg", "th", "ti", "tk", "tl", "tr", "tt",
	"ug", "uk", "ur", "uz",
	"vi", "vo",
	"wa", "wo",
	"xh",
	"yi", "yo",
	"zh", "zh-hans", "zh-hant", "zu",
}

// IsValid reports whether code is a known term language code.
func IsValid(code string) bool {
	_, ok := codes[code]
	return ok
}

// Codes returns the known codes, sorted.
func Codes() []string {
	out := make([]string, 0, len(codes))
	for c := range codes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
