package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const recordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "record": {
      "type": "object",
      "required": ["content_id", "title", "subject", "difficulty", "type"],
      "properties": {
        "content_id": {"type": "integer"},
        "title":      {"type": "string"},
        "subject":    {"type": "string"},
        "difficulty": {"type": "string"},
        "type":       {"type": ["string", "null"]},
        "quiz_link":  {"type": ["string", "null"]},
        "video_link": {"type": ["string", "null"]}
      }
    },
    "records": {"type": "array", "items": {"$ref": "#/definitions/record"}}
  },
  "oneOf": [
    {"$ref": "#/definitions/records"},
    {
      "type": "object",
      "required": ["records"],
      "properties": {"records": {"$ref": "#/definitions/records"}}
    }
  ]
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func catalogSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchema))
	})
	return schema, schemaErr
}

// readJSON validates the document against the record schema before mapping it.
func readJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parseJSON(data)
}

func parseJSON(data []byte) ([]Record, error) {
	s, err := catalogSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling catalog schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(msgs, "; "))
	}

	var raw []map[string]any
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Records []map[string]any `json:"records"`
		}
		err = unmarshalNumbers(trimmed, &wrapped)
		raw = wrapped.Records
	} else {
		err = unmarshalNumbers(trimmed, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	docs := make([]map[string]string, 0, len(raw))
	for _, r := range raw {
		doc := make(map[string]string, len(r))
		for k, v := range r {
			doc[k] = jsonString(v)
		}
		docs = append(docs, doc)
	}
	return fromFields(docs)
}

func unmarshalNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func jsonString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
