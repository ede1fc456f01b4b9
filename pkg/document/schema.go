package document

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "data.schema.json"

//go:embed data.schema.json
var schemaSource []byte

// ErrSchema is matched by SchemaError.
var ErrSchema = errors.New("document does not match schema")

// Issue is one schema violation.
type Issue struct {
	Location string
	Message  string
}

// SchemaError lists the schema violations of an encoded document.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "/"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s", ErrSchema, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

//nolint:gochecknoglobals // Compiled once from the embedded schema.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Schema returns the JSON Schema the encoded document follows.
func Schema() []byte {
	return append([]byte(nil), schemaSource...)
}

// CheckSchema validates an encoded document against the embedded schema.
func CheckSchema(payload []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return &SchemaError{Issues: []Issue{{Message: err.Error()}}}
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &SchemaError{Issues: collectIssues(verr)}
		}
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
