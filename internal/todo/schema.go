package todo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todoboard/internal/utils"
)

//go:embed todos.schema.json
var collectionSchema string

const collectionSchemaURL = "todos.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidationError is a single schema violation.
type ValidationError struct {
	Path string // dotted path inside the document
	Err  error
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

// SchemaError collects every violation found in a document.
type SchemaError struct {
	Problems []*ValidationError
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "unexpected response shape: " + strings.Join(msgs, "; ")
}

func schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(collectionSchemaURL, strings.NewReader(collectionSchema)); err != nil {
			schemaErr = fmt.Errorf("load collection schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(collectionSchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile collection schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ValidateCollection checks a list response body against the collection schema.
func ValidateCollection(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return validateDocument(doc)
}

// ValidateRecord checks a single-record response body.
func ValidateRecord(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	if doc == nil {
		return &SchemaError{Problems: []*ValidationError{{Err: fmt.Errorf("expected a record, got null")}}}
	}
	err := validateDocument([]interface{}{doc})
	if se, ok := err.(*SchemaError); ok {
		// Paths were reported relative to the wrapping array.
		for _, p := range se.Problems {
			p.Path = strings.TrimPrefix(strings.TrimPrefix(p.Path, "[0]"), ".")
		}
	}
	return err
}

func validateDocument(doc interface{}) error {
	s, err := schema()
	if err != nil {
		return err
	}
	err = s.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	result := &SchemaError{}
	collectSchemaErrors(result, ve)
	return result
}

func collectSchemaErrors(result *SchemaError, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.Problems = append(result.Problems, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
