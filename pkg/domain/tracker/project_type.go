package tracker

import (
	"encoding/json"
	"fmt"
)

// ProjectType classifies a project for scoring and aggregation purposes.
type ProjectType string

const (
	TypeClient    ProjectType = "client"
	TypeFreelance ProjectType = "freelance"
	TypeBusiness  ProjectType = "business"
	TypeCreative  ProjectType = "creative"
	TypePersonal  ProjectType = "personal"
	TypeLearning  ProjectType = "learning"
	TypeHobby     ProjectType = "hobby"
	TypeOther     ProjectType = "other"
)

// AllProjectTypes returns all valid project types.
func AllProjectTypes() []ProjectType {
	return []ProjectType{
		TypeClient,
		TypeFreelance,
		TypeBusiness,
		TypeCreative,
		TypePersonal,
		TypeLearning,
		TypeHobby,
		TypeOther,
	}
}

// IsValid returns true if the value is a known project type.
func (t ProjectType) IsValid() bool {
	switch t {
	case TypeClient, TypeFreelance, TypeBusiness, TypeCreative,
		TypePersonal, TypeLearning, TypeHobby, TypeOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the project type.
func (t ProjectType) String() string {
	return string(t)
}

// DisplayName returns a human-readable display name for the project type.
func (t ProjectType) DisplayName() string {
	switch t {
	case TypeClient:
		return "Client"
	case TypeFreelance:
		return "Freelance"
	case TypeBusiness:
		return "Business"
	case TypeCreative:
		return "Creative"
	case TypePersonal:
		return "Personal"
	case TypeLearning:
		return "Learning"
	case TypeHobby:
		return "Hobby"
	case TypeOther:
		return "Other"
	default:
		return string(t)
	}
}

// ParseProjectType parses a string into a ProjectType.
func ParseProjectType(s string) (ProjectType, error) {
	t := ProjectType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid project type: %s", s)
	}
	return t, nil
}

// MustParseProjectType parses a string into a ProjectType, panicking on error.
func MustParseProjectType(s string) ProjectType {
	t, err := ParseProjectType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// MarshalJSON implements json.Marshaler interface.
func (t ProjectType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// UnmarshalJSON implements json.Unmarshaler interface.
// An empty string is accepted and kept empty; scoring treats a missing type
// as neutral rather than rejecting the record.
func (t *ProjectType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	if str == "" {
		*t = ""
		return nil
	}

	parsed := ProjectType(str)
	if !parsed.IsValid() {
		return fmt.Errorf("invalid project type: %s", str)
	}

	*t = parsed
	return nil
}
