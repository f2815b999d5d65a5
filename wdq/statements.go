package wdq

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Rank is the precedence tag on a statement. Ranks filter statement lists;
// they do not sort them.
type Rank string

const (
	RankPreferred  Rank = "preferred"
	RankNormal     Rank = "normal"
	RankDeprecated Rank = "deprecated"
)

// ParseRank validates a rank string. An absent rank in the source defaults
// to normal before this is ever called.
func ParseRank(s string) (Rank, error) {
	switch r := Rank(s); r {
	case RankPreferred, RankNormal, RankDeprecated:
		return r, nil
	default:
		return "", errors.Wrapf(ErrMalformedData, "unknown statement rank %q", s)
	}
}

// PropertyReference identifies a property without fetching it.
type PropertyReference struct {
	ID       string
	Datatype string

	opts options
}

// Resolve fetches the referenced property through the injected transport.
// Each call performs a fresh fetch; transport failures are returned
// unchanged.
func (p PropertyReference) Resolve(ctx context.Context) (*Property, error) {
	if p.opts.fetcher == nil {
		return nil, errors.Wrapf(ErrNoFetcher, "cannot resolve property %s", p.ID)
	}
	data, err := p.opts.fetcher.FetchEntity(ctx, EntityKindProperty, p.ID)
	if err != nil {
		return nil, err
	}
	return newProperty(data, p.opts)
}

// Statement is a single property/value claim on an entity, with optional
// qualifiers and supporting references.
type Statement struct {
	ID         string
	Rank       Rank
	Property   PropertyReference
	Value      Value
	Qualifiers []Qualifier
	References []Reference
}

// Qualifier contextualizes a statement, e.g. "as of 2001".
type Qualifier struct {
	Property PropertyReference
	Value    Value
}

// Reference is a supporting citation for a statement.
type Reference struct {
	Hash  string
	Parts []ReferencePart
}

// ReferencePart is one property/value pair inside a reference.
type ReferencePart struct {
	Property PropertyReference
	Value    Value
}

type rawPropertyRef struct {
	ID       *string `json:"id"`
	Datatype *string `json:"data_type"`
}

type rawSnak struct {
	Property *rawPropertyRef `json:"property"`
	Value    *rawValue       `json:"value"`
}

type rawReference struct {
	Hash  string    `json:"hash"`
	Parts []rawSnak `json:"parts"`
}

type rawStatement struct {
	ID         *string         `json:"id"`
	Rank       *string         `json:"rank"`
	Property   *rawPropertyRef `json:"property"`
	Value      *rawValue       `json:"value"`
	Qualifiers []rawSnak       `json:"qualifiers"`
	References []rawReference  `json:"references"`
}

func decodePropertyRef(raw *rawPropertyRef, o options) (PropertyReference, error) {
	if raw == nil || raw.ID == nil {
		return PropertyReference{}, errors.Wrap(ErrMalformedData, "missing property id")
	}
	if raw.Datatype == nil {
		return PropertyReference{}, errors.Wrapf(ErrMalformedData, "property %s has no data_type", *raw.ID)
	}
	return PropertyReference{ID: *raw.ID, Datatype: *raw.Datatype, opts: o}, nil
}

func decodeSnak(raw rawSnak, o options) (PropertyReference, Value, error) {
	prop, err := decodePropertyRef(raw.Property, o)
	if err != nil {
		return PropertyReference{}, nil, err
	}
	if raw.Value == nil {
		return PropertyReference{}, nil, errors.Wrapf(ErrMalformedData, "snak on %s has no value", prop.ID)
	}
	val, err := resolveValue(prop, *raw.Value, o)
	if err != nil {
		return PropertyReference{}, nil, err
	}
	return prop, val, nil
}

func decodeStatement(raw json.RawMessage, o options) (Statement, error) {
	var rs rawStatement
	if err := json.Unmarshal(raw, &rs); err != nil {
		return Statement{}, errors.Wrap(ErrMalformedData, "statement is not an object")
	}
	if rs.ID == nil {
		return Statement{}, errors.Wrap(ErrMalformedData, "statement has no id")
	}

	rank := RankNormal
	if rs.Rank != nil {
		var err error
		if rank, err = ParseRank(*rs.Rank); err != nil {
			return Statement{}, errors.Wrapf(err, "statement %s", *rs.ID)
		}
	}

	prop, val, err := decodeSnak(rawSnak{Property: rs.Property, Value: rs.Value}, o)
	if err != nil {
		return Statement{}, errors.Wrapf(err, "statement %s", *rs.ID)
	}

	var qualifiers []Qualifier
	for _, rq := range rs.Qualifiers {
		qp, qv, err := decodeSnak(rq, o)
		if err != nil {
			return Statement{}, errors.Wrapf(err, "qualifier of statement %s", *rs.ID)
		}
		qualifiers = append(qualifiers, Qualifier{Property: qp, Value: qv})
	}

	var references []Reference
	for _, rr := range rs.References {
		ref := Reference{Hash: rr.Hash}
		for _, rp := range rr.Parts {
			pp, pv, err := decodeSnak(rp, o)
			if err != nil {
				return Statement{}, errors.Wrapf(err, "reference of statement %s", *rs.ID)
			}
			ref.Parts = append(ref.Parts, ReferencePart{Property: pp, Value: pv})
		}
		references = append(references, ref)
	}

	return Statement{
		ID:         *rs.ID,
		Rank:       rank,
		Property:   prop,
		Value:      val,
		Qualifiers: qualifiers,
		References: references,
	}, nil
}

// Statements is a read-only property-id→statement-list collection.
// Statement lists keep source order; the property iteration order is the
// order the properties appeared in the record.
type Statements struct {
	entityID string
	props    []string
	groups   map[string][]json.RawMessage
	opts     options
}

func newStatements(raw json.RawMessage, entityID string, o options) (*Statements, error) {
	obj, err := parseObject(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "statements of %s", entityID)
	}

	groups := make(map[string][]json.RawMessage, obj.len())
	for _, pid := range obj.keys {
		var group []json.RawMessage
		if err := json.Unmarshal(obj.fields[pid], &group); err != nil {
			return nil, errors.Wrapf(ErrMalformedData, "statements of %s for %s are not a list", entityID, pid)
		}
		groups[pid] = group
	}

	return &Statements{entityID: entityID, props: obj.keys, groups: groups, opts: o}, nil
}

func matchesRanks(s Statement, ranks []Rank) bool {
	if len(ranks) == 0 {
		return true
	}
	for _, r := range ranks {
		if s.Rank == r {
			return true
		}
	}
	return false
}

func (s *Statements) decodeGroup(pid string, ranks []Rank) ([]Statement, error) {
	var out []Statement
	for _, raw := range s.groups[pid] {
		stmt, err := decodeStatement(raw, s.opts)
		if err != nil {
			return nil, err
		}
		if matchesRanks(stmt, ranks) {
			out = append(out, stmt)
		}
	}
	return out, nil
}

// ByProperty returns the statements for a property id in source order,
// filtered to ranks when any are given. An unknown property id yields an
// empty list, not an error.
func (s *Statements) ByProperty(propertyID string, ranks ...Rank) ([]Statement, error) {
	return s.decodeGroup(propertyID, ranks)
}

// All returns every statement across every property, each property group in
// source order, filtered to ranks when any are given.
func (s *Statements) All(ranks ...Rank) ([]Statement, error) {
	var out []Statement
	for _, pid := range s.props {
		group, err := s.decodeGroup(pid, ranks)
		if err != nil {
			return nil, err
		}
		out = append(out, group...)
	}
	return out, nil
}

// Properties returns the property ids present, in source order.
func (s *Statements) Properties() []string {
	out := make([]string, len(s.props))
	copy(out, s.props)
	return out
}

// Len is the total statement count across all properties, ignoring ranks.
func (s *Statements) Len() int {
	n := 0
	for _, group := range s.groups {
		n += len(group)
	}
	return n
}
