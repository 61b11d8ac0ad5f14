package tracker

import (
	"encoding/json"
	"fmt"
)

// Complexity describes how involved a project is expected to be.
type Complexity string

const (
	ComplexityEasy   Complexity = "easy"
	ComplexityMedium Complexity = "medium"
	ComplexityHard   Complexity = "hard"
)

// complexityOrder defines the ordering of complexities (higher order = harder).
var complexityOrder = map[Complexity]int{
	ComplexityEasy:   1,
	ComplexityMedium: 2,
	ComplexityHard:   3,
}

// AllComplexities returns all valid complexity values.
func AllComplexities() []Complexity {
	return []Complexity{
		ComplexityEasy,
		ComplexityMedium,
		ComplexityHard,
	}
}

// IsValid returns true if the value is a known complexity.
func (c Complexity) IsValid() bool {
	switch c {
	case ComplexityEasy, ComplexityMedium, ComplexityHard:
		return true
	default:
		return false
	}
}

// String returns the string representation of the complexity.
func (c Complexity) String() string {
	return string(c)
}

// Order returns the numeric order of the complexity (higher = harder).
func (c Complexity) Order() int {
	if order, ok := complexityOrder[c]; ok {
		return order
	}
	return 0
}

// DisplayName returns a human-readable display name for the complexity.
func (c Complexity) DisplayName() string {
	switch c {
	case ComplexityEasy:
		return "Easy"
	case ComplexityMedium:
		return "Medium"
	case ComplexityHard:
		return "Hard"
	default:
		return string(c)
	}
}

// ParseComplexity parses a string into a Complexity.
func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid complexity: %s", s)
	}
	return c, nil
}

// MustParseComplexity parses a string into a Complexity, panicking on error.
func MustParseComplexity(s string) Complexity {
	c, err := ParseComplexity(s)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultComplexity returns the complexity assumed when a project leaves it unset.
func DefaultComplexity() Complexity {
	return ComplexityMedium
}

// MarshalJSON implements json.Marshaler interface.
func (c Complexity) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

// UnmarshalJSON implements json.Unmarshaler interface.
// An empty string is kept empty; the scorer applies its own neutral default.
func (c *Complexity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	if str == "" {
		*c = ""
		return nil
	}

	parsed := Complexity(str)
	if !parsed.IsValid() {
		return fmt.Errorf("invalid complexity: %s", str)
	}

	*c = parsed
	return nil
}
