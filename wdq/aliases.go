package wdq

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Aliases is a read-only language→alias-set mapping. Unlike labels and
// descriptions, per-language lookup unions in the "mul" pseudo-language but
// never falls back to "en"; the upstream data model treats language-specific
// aliases and language-independent aliases as complementary sets.
type Aliases struct {
	entityID string
	langs    []string
	sets     map[string][]string
}

func newAliases(raw json.RawMessage, entityID string) (*Aliases, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "aliases of %s", entityID)
	}

	sets := make(map[string][]string, obj.len())
	for _, lang := range obj.keys {
		var aliases []string
		if err := json.Unmarshal(obj.fields[lang], &aliases); err != nil {
			return nil, errors.Wrapf(ErrMalformedData, "aliases of %s for %q are not a string list", entityID, lang)
		}
		sets[lang] = aliases
	}

	return &Aliases{entityID: entityID, langs: obj.keys, sets: sets}, nil
}

func (a *Aliases) union(chain []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, lang := range chain {
		for _, alias := range a.sets[lang] {
			if _, dup := seen[alias]; dup {
				continue
			}
			seen[alias] = struct{}{}
			out = append(out, alias)
		}
	}
	return out
}

// Get returns the union of aliases for lang and for "mul". There is no "en"
// fallback here.
func (a *Aliases) Get(lang string) []string {
	return a.union([]string{lang, "mul"})
}

// Fallback returns the union of alias sets across every language in chain,
// defaulting to ["mul", "en"].
func (a *Aliases) Fallback(chain ...string) []string {
	if len(chain) == 0 {
		chain = defaultFallbackChain
	}
	return a.union(chain)
}

// All returns the union of aliases across every language present.
func (a *Aliases) All() []string {
	return a.union(a.langs)
}

// Count is the sum of per-language set sizes. An alias present in several
// languages is counted once per language.
func (a *Aliases) Count() int {
	n := 0
	for _, aliases := range a.sets {
		n += len(aliases)
	}
	return n
}

// Languages returns the language codes present, in source order.
func (a *Aliases) Languages() []string {
	out := make([]string, len(a.langs))
	copy(out, a.langs)
	return out
}

// Len is the number of languages present.
func (a *Aliases) Len() int {
	return len(a.langs)
}
