package wdq

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// defaultFallbackChain is tried when no explicit chain is given: the
// language-independent pseudo-language first, then English.
var defaultFallbackChain = []string{"mul", "en"}

// Terms is a read-only language→text mapping used for both labels and
// descriptions. Lookups walk a fallback chain; the entity's own id serves as
// a last-resort placeholder when nothing matches and the caller asked for a
// permissive lookup.
type Terms struct {
	unit     string // "label" or "description", for error text
	entityID string
	langs    []string
	texts    map[string]string
}

func newTerms(raw json.RawMessage, unit, entityID string) (*Terms, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "%ss of %s", unit, entityID)
	}

	texts := make(map[string]string, obj.len())
	for _, lang := range obj.keys {
		var text string
		if err := json.Unmarshal(obj.fields[lang], &text); err != nil {
			return nil, errors.Wrapf(ErrMalformedData, "%s of %s for %q is not a string", unit, entityID, lang)
		}
		texts[lang] = text
	}

	return &Terms{unit: unit, entityID: entityID, langs: obj.keys, texts: texts}, nil
}

// Get returns the text for lang, falling back to "mul" and then "en".
// Returns ErrNotFound when none of the three languages is present.
func (t *Terms) Get(lang string) (string, error) {
	_, text, err := t.FallbackStrict(lang, "mul", "en")
	if err != nil {
		return "", err
	}
	return text, nil
}

// Fallback returns the first (language, text) hit in chain, defaulting to
// ["mul", "en"] when chain is empty. When nothing matches it returns an
// empty language and the entity id as a human-readable placeholder.
func (t *Terms) Fallback(chain ...string) (string, string) {
	if len(chain) == 0 {
		chain = defaultFallbackChain
	}
	for _, lang := range chain {
		if text, ok := t.texts[lang]; ok {
			return lang, text
		}
	}
	return "", t.entityID
}

// FallbackStrict is Fallback without the placeholder: a total miss returns
// ErrNotFound.
func (t *Terms) FallbackStrict(chain ...string) (string, string, error) {
	if len(chain) == 0 {
		chain = defaultFallbackChain
	}
	for _, lang := range chain {
		if text, ok := t.texts[lang]; ok {
			return lang, text, nil
		}
	}
	return "", "", errors.Wrapf(ErrNotFound, "no %s of %s in fallback chain %v", t.unit, t.entityID, chain)
}

// Has reports whether lang itself is present, without fallback.
func (t *Terms) Has(lang string) bool {
	_, ok := t.texts[lang]
	return ok
}

// Languages returns the language codes present, in source order.
func (t *Terms) Languages() []string {
	out := make([]string, len(t.langs))
	copy(out, t.langs)
	return out
}

// Len is the number of languages present, not the number of distinct texts.
func (t *Terms) Len() int {
	return len(t.langs)
}
