package wdq

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// rawObject is a decoded JSON object that remembers the order its keys
// appeared in. Containers are read-only views over one of these, so
// iteration order is stable for a given parse even though the underlying
// storage is a map.
type rawObject struct {
	keys   []string
	fields map[string]json.RawMessage
}

func parseObject(data []byte) (*rawObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(ErrMalformedData, "not valid JSON")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.Wrap(ErrMalformedData, "expected a JSON object")
	}

	obj := &rawObject{fields: map[string]json.RawMessage{}}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(ErrMalformedData, "truncated JSON object")
		}
		key := keyTok.(string)

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, errors.Wrapf(ErrMalformedData, "bad value for key %q", key)
		}

		if _, dup := obj.fields[key]; !dup {
			obj.keys = append(obj.keys, key)
		}
		obj.fields[key] = val
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(ErrMalformedData, "unterminated JSON object")
	}

	return obj, nil
}

func (o *rawObject) get(key string) (json.RawMessage, bool) {
	v, ok := o.fields[key]
	return v, ok
}

func (o *rawObject) len() int {
	return len(o.keys)
}
