package todo

// seedSchemaURL is the resource name the embedded schema is registered under.
const seedSchemaURL = "seed.schema.json"

const seedSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "todoapp seed",
  "type": "object",
  "required": ["schema_version", "tasks"],
  "additionalProperties": false,
  "properties": {
    "schema_version": {"const": 1},
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string"},
          "index": {"type": "integer", "minimum": 0},
          "text": {"type": "string", "pattern": "\\S"},
          "done": {"type": "boolean"}
        }
      }
    },
    "stats": {
      "type": "object",
      "properties": {
        "total": {"type": "integer", "minimum": 0},
        "completed": {"type": "integer", "minimum": 0},
        "pending": {"type": "integer", "minimum": 0}
      }
    }
  }
}
`

// SchemaJSON returns the JSON Schema that seed documents are checked against.
func SchemaJSON() string {
	return seedSchema
}
