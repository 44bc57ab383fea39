package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// scriptInputSchema is the JSON Schema for the external collaborator's
// input record: {pages, language, total_pages}. It is the concrete
// mechanism behind the "invalid input -> error" boundary check.
const scriptInputSchema = `{
  "type": "object",
  "required": ["pages"],
  "properties": {
    "pages": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["page_number", "text_items"],
        "properties": {
          "page_number": {"type": "integer"},
          "width": {"type": "number"},
          "height": {"type": "number"},
          "text_items": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["text", "x", "y"],
              "properties": {
                "text": {"type": "string"},
                "x": {"type": "number"},
                "y": {"type": "number"},
                "width": {"type": "number"},
                "height": {"type": "number"},
                "font_size": {"type": "number"},
                "font": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "language": {"type": "string"},
    "total_pages": {"type": "integer"}
  }
}`

var compiledScriptInputSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("script_input.json", bytes.NewReader([]byte(scriptInputSchema))); err != nil {
		panic(fmt.Sprintf("model: invalid embedded schema: %v", err))
	}
	schema, err := compiler.Compile("script_input.json")
	if err != nil {
		panic(fmt.Sprintf("model: schema compile failed: %v", err))
	}
	compiledScriptInputSchema = schema
}

// ValidateScriptInputJSON validates a raw JSON document against the
// ScriptInput schema before it is decoded into a Go struct.
func ValidateScriptInputJSON(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ValidationError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := compiledScriptInputSchema.Validate(doc); err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	return nil
}
