package store

import (
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchemaURL = "boards.schema.json"

// documentSchemaJSON describes the persisted board collection.
const documentSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": { "$ref": "#/$defs/board" },
  "$defs": {
    "id": { "type": "string", "minLength": 1 },
    "task": {
      "type": "object",
      "required": ["id", "name", "completed"],
      "properties": {
        "id": { "$ref": "#/$defs/id" },
        "name": { "type": "string" },
        "completed": { "type": "boolean" }
      }
    },
    "column": {
      "type": "object",
      "required": ["id", "name", "tasks"],
      "properties": {
        "id": { "$ref": "#/$defs/id" },
        "name": { "type": "string" },
        "tasks": { "type": "array", "items": { "$ref": "#/$defs/task" } }
      }
    },
    "board": {
      "type": "object",
      "required": ["id", "name", "columns"],
      "properties": {
        "id": { "$ref": "#/$defs/id" },
        "name": { "type": "string" },
        "columns": { "type": "array", "items": { "$ref": "#/$defs/column" } }
      }
    }
  }
}`

var documentSchema = jsonschema.MustCompileString(documentSchemaURL, documentSchemaJSON)
