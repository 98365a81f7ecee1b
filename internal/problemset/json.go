package problemset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://problemset.json"

// setSchema describes a JSON problem set:
//
//	{"name": "2023", "problems": [{"no": 1, "rows": [500, -200, 300]}]}
var setSchema = map[string]any{
	"type":     "object",
	"required": []any{"problems"},
	"properties": map[string]any{
		"name": map[string]any{"type": "string"},
		"problems": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"required":             []any{"no", "rows"},
				"additionalProperties": false,
				"properties": map[string]any{
					"no": map[string]any{"type": "integer", "minimum": 1},
					"rows": map[string]any{
						"type":     "array",
						"minItems": 1,
						"maxItems": 100,
						"items":    map[string]any{"type": "integer"},
					},
				},
			},
		},
	},
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants decoded JSON values, not Go literals.
	def, err := json.Marshal(setSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

type jsonSet struct {
	Name     string `json:"name"`
	Problems []struct {
		No   int     `json:"no"`
		Rows []int64 `json:"rows"`
	} `json:"problems"`
}

// readJSON validates the document against setSchema before decoding it.
// Unlike CSV, a JSON set is all-or-nothing.
func readJSON(r io.Reader, set *Set) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	var doc jsonSet
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if doc.Name != "" {
		set.Name = doc.Name
	}
	for i, p := range doc.Problems {
		set.add(i+1, p.No, p.Rows)
	}
	return nil
}

func countJSON(r io.Reader) (int, error) {
	var doc jsonSet
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}
	return len(doc.Problems), nil
}
