// Package wdq models Wikibase entities fetched from the REST API as typed,
// read-only views over the raw JSON record. Sub-containers (labels,
// descriptions, aliases, sitelinks, statements) are derived on demand and
// validated lazily: a malformed field only fails when it is accessed.
package wdq

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/dinhhuy2010/wdq-go/sites"
)

// EntityKind selects which REST entity collection an identifier belongs to.
type EntityKind string

const (
	EntityKindItem     EntityKind = "item"
	EntityKindProperty EntityKind = "property"
)

// EntityFetcher is the transport capability used for lazy cross-entity
// resolution. Implementations fetch a single raw entity record; failures are
// returned to the caller unchanged. The core never retries or caches.
type EntityFetcher interface {
	FetchEntity(ctx context.Context, kind EntityKind, id string) ([]byte, error)
}

// Classifier maps a sitelink site id to its connected-site group. It must be
// a pure lookup with no I/O.
type Classifier func(siteID string) sites.Group

type options struct {
	fetcher  EntityFetcher
	classify Classifier
}

// Option configures collaborators injected into an entity at construction.
type Option func(*options)

// WithFetcher injects the transport used by Resolve on item values and
// property references. Without it, Resolve returns ErrNoFetcher.
func WithFetcher(f EntityFetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithClassifier overrides the site-group classifier used by
// Sitelinks.ByGroup. Defaults to sites.Identify.
func WithClassifier(c Classifier) Option {
	return func(o *options) {
		o.classify = c
	}
}

// Entity is the common core of items and properties. It wraps the raw JSON
// record and is immutable once constructed.
type Entity struct {
	raw  *rawObject
	id   string
	opts options
}

// Item is an entity with sitelinks.
type Item struct {
	Entity
}

// Property is an entity with a datatype.
type Property struct {
	Entity
}

func newEntity(data []byte, o options) (Entity, error) {
	if o.classify == nil {
		o.classify = sites.Identify
	}

	raw, err := parseObject(data)
	if err != nil {
		return Entity{}, err
	}

	idRaw, ok := raw.get("id")
	if !ok {
		return Entity{}, errors.Wrap(ErrMalformedData, "entity has no id")
	}
	var id string
	if err := json.Unmarshal(idRaw, &id); err != nil {
		return Entity{}, errors.Wrap(ErrMalformedData, "entity id is not a string")
	}

	return Entity{raw: raw, id: id, opts: o}, nil
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewItem constructs an item from a raw JSON record, e.g. the response body
// of GET /entities/items/{id}.
func NewItem(data []byte, opts ...Option) (*Item, error) {
	return newItem(data, applyOptions(opts))
}

func newItem(data []byte, o options) (*Item, error) {
	ent, err := newEntity(data, o)
	if err != nil {
		return nil, err
	}
	return &Item{Entity: ent}, nil
}

// NewProperty constructs a property from a raw JSON record.
func NewProperty(data []byte, opts ...Option) (*Property, error) {
	return newProperty(data, applyOptions(opts))
}

func newProperty(data []byte, o options) (*Property, error) {
	ent, err := newEntity(data, o)
	if err != nil {
		return nil, err
	}
	return &Property{Entity: ent}, nil
}

// ID returns the entity identifier, e.g. "Q42" or "P31".
func (e *Entity) ID() string {
	return e.id
}

// Labels returns the multilingual label container.
func (e *Entity) Labels() (*Terms, error) {
	return e.terms("labels", "label")
}

// Descriptions returns the multilingual description container.
func (e *Entity) Descriptions() (*Terms, error) {
	return e.terms("descriptions", "description")
}

func (e *Entity) terms(field, unit string) (*Terms, error) {
	raw, ok := e.raw.get(field)
	if !ok {
		return &Terms{unit: unit, entityID: e.id}, nil
	}
	return newTerms(raw, unit, e.id)
}

// Aliases returns the multilingual alias container.
func (e *Entity) Aliases() (*Aliases, error) {
	raw, ok := e.raw.get("aliases")
	if !ok {
		return &Aliases{entityID: e.id, sets: map[string][]string{}}, nil
	}
	return newAliases(raw, e.id)
}

// Statements returns the statement collection. Individual statements are
// decoded when ByProperty or All is called, not here.
func (e *Entity) Statements() (*Statements, error) {
	raw, ok := e.raw.get("statements")
	if !ok {
		return &Statements{entityID: e.id, groups: map[string][]json.RawMessage{}, opts: e.opts}, nil
	}
	return newStatements(raw, e.id, e.opts)
}

// Sitelinks returns the sitelink registry. Each sitelink is decoded when it
// is looked up, so a bad badge id in one sitelink does not block the others.
func (i *Item) Sitelinks() (*Sitelinks, error) {
	raw, ok := i.raw.get("sitelinks")
	if !ok {
		return &Sitelinks{itemID: i.id, links: map[string]json.RawMessage{}, classify: i.opts.classify}, nil
	}
	return newSitelinks(raw, i.id, i.opts.classify)
}

// Datatype returns the property's datatype tag, e.g. "wikibase-item".
func (p *Property) Datatype() (string, error) {
	raw, ok := p.raw.get("data_type")
	if !ok {
		return "", errors.Wrapf(ErrMalformedData, "property %s has no data_type", p.id)
	}
	var dt string
	if err := json.Unmarshal(raw, &dt); err != nil {
		return "", errors.Wrapf(ErrMalformedData, "property %s data_type is not a string", p.id)
	}
	return dt, nil
}
