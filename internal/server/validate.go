package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docmdio/docmd/internal/common"
)

type convertOptions struct {
	Features []string `json:"features"`
	Save     bool     `json:"save"`
}

func defaultOptions() convertOptions {
	return convertOptions{Save: true}
}

const optionsSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"features": {
			"type": "array",
			"items": {"type": "string"}
		},
		"save": {"type": "boolean"}
	}
}`

var (
	optionsSchemaOnce     sync.Once
	compiledOptionsSchema *jsonschema.Schema
	optionsSchemaErr      error
)

// parseOptionsJSON validates the raw options document against the schema
// before decoding it, so malformed requests fail with a clear message instead
// of silently dropping fields.
func parseOptionsJSON(data []byte) (convertOptions, error) {
	opts := defaultOptions()

	optionsSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("options.json", bytes.NewReader([]byte(optionsSchema))); err != nil {
			optionsSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledOptionsSchema, optionsSchemaErr = compiler.Compile("options.json")
	})
	if optionsSchemaErr != nil {
		return opts, optionsSchemaErr
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return opts, fmt.Errorf("%w: options is not valid JSON: %v", common.ErrInvalidInput, err)
	}
	if err := compiledOptionsSchema.Validate(v); err != nil {
		return opts, fmt.Errorf("%w: options: %v", common.ErrInvalidInput, err)
	}

	if err := json.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("%w: options: %v", common.ErrInvalidInput, err)
	}
	return opts, nil
}
