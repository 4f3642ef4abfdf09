package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jackzampolin/citydir/internal/extract"
)

// recordSchema is the canonical JSON schema for exported records. A record
// must at least carry a last name, and any year must look like a plausible
// directory publication year.
const recordSchema = `{
  "type": "object",
  "properties": {
    "last_name": {"type": "string", "minLength": 1},
    "first_name": {"type": "string"},
    "spouse_name": {"type": "string"},
    "occupation": {"type": "string"},
    "residence_indicator": {"type": "string", "enum": ["", "home", "boards", "unknown"]},
    "home_address": {"type": "string"},
    "business_name": {"type": "string"},
    "year": {"type": "string", "pattern": "^(18|19|20)[0-9]{2}$"}
  },
  "required": ["last_name"]
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("record.json", strings.NewReader(recordSchema)); err != nil {
			schemaErr = fmt.Errorf("failed to load record schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("record.json")
	})
	return compiledSchema, schemaErr
}

// Validate checks every record against the canonical record schema.
func Validate(records []extract.Record) error {
	schema, err := compiled()
	if err != nil {
		return err
	}

	for i, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to serialize record %d: %w", i, err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to decode record %d for validation: %w", i, err)
		}
		if err := schema.Validate(doc); err != nil {
			return fmt.Errorf("record %d (%s) does not match schema: %w", i, rec.LastName, err)
		}
	}
	return nil
}
