package service

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// personaSchemaJSON describe la forma que se le pide al LLM. Solo se usa para
// reportar desvios; un documento invalido no corta el request.
const personaSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["personaName", "description", "traits", "insights", "culturalTwin", "therapySuggestion", "culturalDNAScore", "archetype"],
  "properties": {
    "personaName": {"type": "string", "minLength": 1},
    "description": {"type": "string", "minLength": 1},
    "traits": {
      "type": "array",
      "items": {"type": "string"},
      "minItems": 3,
      "maxItems": 3
    },
    "insights": {
      "type": "object",
      "required": ["likelyInterests", "likelyBehaviors"],
      "properties": {
        "likelyInterests": {"type": "string"},
        "likelyBehaviors": {"type": "string"}
      }
    },
    "culturalTwin": {"type": "string", "minLength": 1},
    "therapySuggestion": {
      "type": "object",
      "required": ["summary", "recommendation", "resources", "dailyTip"],
      "properties": {
        "summary": {"type": "string"},
        "recommendation": {"type": "string"},
        "resources": {
          "type": "array",
          "items": {"type": "string"},
          "minItems": 1,
          "maxItems": 2
        },
        "dailyTip": {"type": "string"}
      }
    },
    "culturalDNAScore": {
      "type": "object",
      "maxProperties": 4,
      "additionalProperties": {"type": ["number", "string"]}
    },
    "archetype": {
      "type": "object",
      "required": ["name", "description"],
      "properties": {
        "name": {"type": "string"},
        "description": {"type": "string"}
      }
    }
  }
}`

var personaSchema = mustCompileSchema(personaSchemaJSON)

func mustCompileSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile persona schema: %v", err))
	}
	return schema
}

// validatePersonaDocument devuelve las violaciones de schema del documento.
func validatePersonaDocument(doc map[string]any) ([]string, error) {
	result, err := personaSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return errs, nil
}
