package wdq

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/cockroachdb/errors"
)

// ValueKind discriminates the closed set of value variants.
type ValueKind string

const (
	ValueKindNone       ValueKind = "novalue"
	ValueKindSome       ValueKind = "somevalue"
	ValueKindItem       ValueKind = "wikibase-item"
	ValueKindExternalID ValueKind = "external-id"
	ValueKindGeneric    ValueKind = "generic"
)

// Value is the typed payload of a statement, qualifier, or reference part.
// The variant is fully determined by the raw value's type tag and the
// property's datatype at decode time. The set of implementations is closed.
type Value interface {
	Kind() ValueKind

	sealedValue()
}

// NoValue records that the property is known to have no value.
type NoValue struct{}

func (NoValue) Kind() ValueKind { return ValueKindNone }
func (NoValue) sealedValue()    {}

// SomeValue records that a value exists but is unknown.
type SomeValue struct{}

func (SomeValue) Kind() ValueKind { return ValueKindSome }
func (SomeValue) sealedValue()    {}

// ItemValue points at another item by id.
type ItemValue struct {
	ID string

	opts options
}

func (ItemValue) Kind() ValueKind { return ValueKindItem }
func (ItemValue) sealedValue()    {}

// Resolve fetches the referenced item through the injected transport. Each
// call performs a fresh fetch; nothing is cached, and transport failures are
// returned unchanged.
func (v ItemValue) Resolve(ctx context.Context) (*Item, error) {
	if v.opts.fetcher == nil {
		return nil, errors.Wrapf(ErrNoFetcher, "cannot resolve item %s", v.ID)
	}
	data, err := v.opts.fetcher.FetchEntity(ctx, EntityKindItem, v.ID)
	if err != nil {
		return nil, err
	}
	return newItem(data, v.opts)
}

// ExternalIDValue is an identifier in an external registry, e.g. a VIAF or
// MusicBrainz id, together with the property that assigned it.
type ExternalIDValue struct {
	ID       string
	Property PropertyReference
}

func (ExternalIDValue) Kind() ValueKind { return ValueKindExternalID }
func (ExternalIDValue) sealedValue()    {}

// GenericValue carries the raw content of any other datatype (time,
// quantity, string, globe-coordinate, ...) untouched.
type GenericValue struct {
	Content  json.RawMessage
	Datatype string
}

func (GenericValue) Kind() ValueKind { return ValueKindGeneric }
func (GenericValue) sealedValue()    {}

// AsString decodes the content as a plain JSON string.
func (v GenericValue) AsString() (string, error) {
	var s string
	if err := json.Unmarshal(v.Content, &s); err != nil {
		return "", errors.Wrapf(ErrMalformedData, "%s value is not a string", v.Datatype)
	}
	return s, nil
}

// AsTime decodes a time-datatype content object and parses its timestamp.
// Wikibase timestamps carry an explicit sign prefix which is stripped before
// parsing; negative (BCE) timestamps are not representable and fail.
func (v GenericValue) AsTime() (time.Time, error) {
	var content struct {
		Time *string `json:"time"`
	}
	if err := json.Unmarshal(v.Content, &content); err != nil || content.Time == nil {
		return time.Time{}, errors.Wrapf(ErrMalformedData, "%s value has no time field", v.Datatype)
	}

	ts := *content.Time
	if strings.HasPrefix(ts, "-") {
		return time.Time{}, errors.Wrapf(ErrMalformedData, "cannot parse BCE timestamp %q", ts)
	}
	ts = strings.TrimPrefix(ts, "+")

	// Month/day may be zeroed out for low-precision dates.
	ts = strings.Replace(ts, "-00-", "-01-", 1)
	if i := strings.Index(ts, "T"); i >= 3 && strings.HasPrefix(ts[i-3:i], "-00") {
		ts = ts[:i-2] + "01" + ts[i:]
	}

	parsed, err := dateparse.ParseAny(ts)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrMalformedData, "cannot parse timestamp %q", *content.Time)
	}
	return parsed, nil
}

type rawValue struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

// resolveValue maps (property datatype, raw value) to a value variant. Pure
// dispatch: no I/O, and the same inputs always yield an equivalent variant.
func resolveValue(prop PropertyReference, raw rawValue, o options) (Value, error) {
	switch raw.Type {
	case "somevalue":
		return SomeValue{}, nil
	case "novalue":
		return NoValue{}, nil
	}

	switch prop.Datatype {
	case "wikibase-item":
		var id string
		if err := json.Unmarshal(raw.Content, &id); err != nil {
			return nil, errors.Wrapf(ErrMalformedData, "item value on %s is not a string", prop.ID)
		}
		return ItemValue{ID: id, opts: o}, nil
	case "external-id":
		var id string
		if err := json.Unmarshal(raw.Content, &id); err != nil {
			return nil, errors.Wrapf(ErrMalformedData, "external-id value on %s is not a string", prop.ID)
		}
		return ExternalIDValue{ID: id, Property: prop}, nil
	default:
		return GenericValue{Content: raw.Content, Datatype: prop.Datatype}, nil
	}
}
