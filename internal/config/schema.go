package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/next-action-go/internal/utils"
)

//go:embed config.schema.json
var schemaJSON []byte

const schemaURL = "config.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // Config key or JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load config schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// validateRaw checks decoded config file contents against the schema.
// Values are round-tripped through JSON so TOML and YAML documents are
// validated the same way.
func validateRaw(raw map[string]any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	if raw == nil {
		raw = map[string]any{}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return &ValidationError{Err: fmt.Errorf("failed to marshal config for validation: %w", err)}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ValidationError{Err: fmt.Errorf("failed to unmarshal config for validation: %w", err)}
	}

	if err := s.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		return schemaError(ve)
	}
	return nil
}

// schemaError reduces a jsonschema error tree to its first leaf.
func schemaError(ve *jsonschema.ValidationError) error {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if strings.HasSuffix(ve.KeywordLocation, "/not") {
		return &ValidationError{Path: "all", Err: errors.New("cannot be combined with number")}
	}
	return &ValidationError{
		Path: utils.JSONPointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}
