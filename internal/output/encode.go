package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/atikulmunna/logsift/internal/model"
)

// Encoding is a structured interchange format for records.
type Encoding string

const (
	JSON Encoding = "json"
	YAML Encoding = "yaml"
)

// SerializationError reports that records could not be encoded.
type SerializationError struct {
	Encoding Encoding
	Err      error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to convert to %s: %v", e.Encoding, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// ParseEncoding validates s as an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(s); e {
	case JSON, YAML:
		return e, nil
	}
	return "", fmt.Errorf("unknown encoding %q (want json or yaml)", s)
}

// Marshal encodes recs as a single document: a pretty-printed JSON array or
// a YAML sequence. An empty or nil slice encodes as an empty list.
func Marshal(enc Encoding, recs []model.Record) ([]byte, error) {
	if recs == nil {
		recs = []model.Record{}
	}

	var buf bytes.Buffer
	switch enc {
	case JSON:
		e := json.NewEncoder(&buf)
		e.SetIndent("", "  ")
		// URLs and user agents read better unescaped.
		e.SetEscapeHTML(false)
		if err := e.Encode(recs); err != nil {
			return nil, &SerializationError{Encoding: enc, Err: err}
		}
	case YAML:
		e := yaml.NewEncoder(&buf)
		e.SetIndent(2)
		if err := e.Encode(recs); err != nil {
			return nil, &SerializationError{Encoding: enc, Err: err}
		}
		if err := e.Close(); err != nil {
			return nil, &SerializationError{Encoding: enc, Err: err}
		}
	default:
		return nil, &SerializationError{Encoding: enc, Err: fmt.Errorf("unsupported encoding")}
	}
	return buf.Bytes(), nil
}
