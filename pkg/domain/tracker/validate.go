package tracker

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct checks a record against its validation tags. Type faults
// are rejected here, at the snapshot boundary; the scoring and insight
// functions assume type-valid input and never validate again.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var messages []string
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("field %s failed rule %q", e.StructNamespace(), e.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}

// ValidateProjects validates every project in a snapshot slice.
func ValidateProjects(projects []Project) error {
	for i, p := range projects {
		if err := ValidateStruct(p); err != nil {
			return fmt.Errorf("project %d (%s): %w", i, p.ID, err)
		}
		if p.Type != "" && !p.Type.IsValid() {
			return fmt.Errorf("project %d (%s): invalid project type %q", i, p.ID, p.Type)
		}
		if p.Complexity != "" && !p.Complexity.IsValid() {
			return fmt.Errorf("project %d (%s): invalid complexity %q", i, p.ID, p.Complexity)
		}
	}
	return nil
}

// ValidateTasks validates every task in a snapshot slice.
func ValidateTasks(tasks []Task) error {
	for i, t := range tasks {
		if err := ValidateStruct(t); err != nil {
			return fmt.Errorf("task %d (%s): %w", i, t.ID, err)
		}
		if t.Status != "" && !t.Status.IsValid() {
			return fmt.Errorf("task %d (%s): invalid status %q", i, t.ID, t.Status)
		}
	}
	return nil
}

// ValidateNotes validates every note in a snapshot slice.
func ValidateNotes(notes []Note) error {
	for i, n := range notes {
		if err := ValidateStruct(n); err != nil {
			return fmt.Errorf("note %d (%s): %w", i, n.ID, err)
		}
	}
	return nil
}
