// Package schema compiles JSON schemas and validates documents against them.
// file: internal/schema/validator.go
//
// Schemas are registered by name, compiled once with the Draft 2020-12 rules and
// kept in memory. Validation reports every violated constraint with the location
// of the offending value.
package schema

import (
	"bytes"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/internal/logging"
	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// resourcePrefix namespaces in-memory schema documents for the compiler.
const resourcePrefix = "mem://schemas/"

// Validator compiles named schemas and validates JSON documents against them.
// It is safe for concurrent use.
type Validator struct {
	mu       sync.RWMutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
	logger   logging.Logger
}

// NewValidator creates an empty Validator.
func NewValidator(logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	return &Validator{
		compiler: compiler,
		schemas:  make(map[string]*jsonschema.Schema),
		logger:   logger.WithField("component", "schema_validator"),
	}
}

// AddSchema compiles schema (any value that marshals to a JSON schema document)
// and stores it under name.
func (v *Validator) AddSchema(name string, schema any) error {
	data, err := json.Marshal(schema)
	if err != nil {
		return NewValidationError(ErrSchemaCompileFailed, "failed to encode schema "+name, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.schemas[name]; exists {
		return NewValidationError(ErrSchemaCompileFailed, "schema already registered: "+name, nil)
	}
	url := resourcePrefix + name + ".json"
	if err := v.compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return NewValidationError(ErrSchemaCompileFailed, "failed to add schema resource "+name, errors.Wrap(err, "compiler.AddResource failed"))
	}
	compiled, err := v.compiler.Compile(url)
	if err != nil {
		return NewValidationError(ErrSchemaCompileFailed, "failed to compile schema "+name, errors.Wrap(err, "compiler.Compile failed"))
	}
	v.schemas[name] = compiled
	return nil
}

// HasSchema reports whether a schema is registered under name.
func (v *Validator) HasSchema(name string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.schemas[name]
	return ok
}

// Validate checks data against the named schema. Empty data is validated as an
// empty object.
func (v *Validator) Validate(name string, data []byte) error {
	v.mu.RLock()
	compiled, ok := v.schemas[name]
	v.mu.RUnlock()
	if !ok {
		return NewValidationError(ErrSchemaNotFound, "schema not found: "+name, nil)
	}

	if len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null" {
		data = []byte("{}")
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return NewValidationError(ErrInvalidJSONFormat, "invalid JSON", errors.Wrap(err, "json.Unmarshal failed"))
	}

	start := time.Now()
	err := compiled.Validate(instance)
	if err == nil {
		return nil
	}
	var valErr *jsonschema.ValidationError
	if errors.As(err, &valErr) {
		v.logger.Debug("Schema validation failed.", "schema", name, "duration", time.Since(start), "error", valErr.Message)
		return convertValidationError(valErr)
	}
	return NewValidationError(ErrValidationFailed, "schema validation failed with unexpected error", errors.Wrap(err, "schema.Validate failed unexpectedly"))
}
