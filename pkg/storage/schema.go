package storage

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Snapshot files are validated against these schemas before any decode.
// Type faults are rejected at this boundary; everything past the repository
// may assume type-valid records.

const projectsSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name"],
    "properties": {
      "id": { "type": "string", "minLength": 1 },
      "name": { "type": "string", "minLength": 1 },
      "budget": { "type": ["number", "null"], "minimum": 0 },
      "currency": { "type": "string" },
      "start_date": { "type": "string", "format": "date-time" },
      "end_date": { "type": "string", "format": "date-time" },
      "is_recurring": { "type": "boolean" },
      "user_priority": { "type": ["integer", "null"], "minimum": 1, "maximum": 5 },
      "project_type": { "type": "string" },
      "type_qualifier": { "type": "string" },
      "complexity": { "type": "string" },
      "priority_score": { "type": "integer", "minimum": 0, "maximum": 100 }
    }
  }
}`

const tasksSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "description", "estimated_time"],
    "properties": {
      "id": { "type": "string", "minLength": 1 },
      "project_id": { "type": "string" },
      "description": { "type": "string", "minLength": 1 },
      "estimated_time": { "type": "number", "exclusiveMinimum": 0 },
      "actual_time": { "type": ["number", "null"], "minimum": 0 },
      "priority_score": { "type": ["integer", "null"], "minimum": 1, "maximum": 10 },
      "due_date": { "type": "string", "format": "date-time" },
      "stage": { "type": "string" },
      "status": { "type": "string", "enum": ["", "pending", "completed"] },
      "completed_at": { "type": "string", "format": "date-time" }
    }
  }
}`

const notesSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id"],
    "properties": {
      "id": { "type": "string", "minLength": 1 },
      "project_id": { "type": "string" },
      "title": { "type": "string" },
      "content": { "type": "string" },
      "created_at": { "type": "string", "format": "date-time" }
    }
  }
}`

type jsonSchema struct {
	name   string
	loader gojsonschema.JSONLoader
}

var (
	projectsSchema = jsonSchema{name: "projects", loader: gojsonschema.NewStringLoader(projectsSchemaJSON)}
	tasksSchema    = jsonSchema{name: "tasks", loader: gojsonschema.NewStringLoader(tasksSchemaJSON)}
	notesSchema    = jsonSchema{name: "notes", loader: gojsonschema.NewStringLoader(notesSchemaJSON)}
)

// Validate checks raw snapshot bytes against the schema and reports every
// violation in one error.
func (s jsonSchema) Validate(data []byte) error {
	result, err := gojsonschema.Validate(s.loader, gojsonschema.NewStringLoader(string(data)))
	if err != nil {
		return fmt.Errorf("invalid %s snapshot: %w", s.name, err)
	}
	if result.Valid() {
		return nil
	}

	var issues []string
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("%s snapshot violates schema: %s", s.name, strings.Join(issues, "; "))
}
