package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/osse101/SlotGuard_Go/configs"
)

// SchemaValidator checks JSON documents against JSON schemas
type SchemaValidator interface {
	// ValidateWithSchema validates data against schema. Compiled schemas are
	// cached under schemaName, so a name must always carry the same schema.
	ValidateWithSchema(data []byte, schemaName string, schema []byte) error
}

// SchemaError lists every location where a document broke its schema
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return ErrMsgSchemaValidation + ":\n  - " + strings.Join(e.Violations, "\n  - ")
}

type schemaValidator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

func NewSchemaValidator() SchemaValidator {
	return &schemaValidator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// ValidateMachineCatalog validates a machine catalog against the embedded catalog schema
func ValidateMachineCatalog(v SchemaValidator, data []byte) error {
	return v.ValidateWithSchema(data, MachinesSchemaName, configs.MachinesSchema)
}

func (v *schemaValidator) ValidateWithSchema(data []byte, schemaName string, schemaData []byte) error {
	schema, err := v.compile(schemaName, schemaData)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgLoadSchema, schemaName, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgParseData, err)
	}

	err = schema.Validate(doc)
	if verr, ok := err.(*jsonschema.ValidationError); ok {
		se := &SchemaError{}
		se.collect(verr)
		return se
	}
	return err
}

func (v *schemaValidator) compile(schemaName string, schemaData []byte) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if schema, ok := v.schemas[schemaName]; ok {
		return schema, nil
	}

	var schemaDoc interface{}
	if err := json.Unmarshal(schemaData, &schemaDoc); err != nil {
		return nil, err
	}
	if err := v.compiler.AddResource(schemaName, schemaDoc); err != nil {
		return nil, err
	}
	schema, err := v.compiler.Compile(schemaName)
	if err != nil {
		return nil, err
	}

	v.schemas[schemaName] = schema
	return schema, nil
}

// collect walks the cause tree depth first; leaves carry the useful keyword
func (e *SchemaError) collect(err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		e.Violations = append(e.Violations, describe(err))
		return
	}
	for _, cause := range err.Causes {
		e.collect(cause)
	}
}

func describe(err *jsonschema.ValidationError) string {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind != nil {
		if path := err.ErrorKind.KeywordPath(); len(path) > 0 {
			return fmt.Sprintf("at %s: %s validation failed", location, strings.Join(path, "."))
		}
	}
	return fmt.Sprintf("at %s: validation failed", location)
}
