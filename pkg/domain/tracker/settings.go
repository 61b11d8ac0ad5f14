package tracker

import (
	"fmt"
	"strings"
)

// Timeframe classifies a workflow goal's horizon.
type Timeframe string

const (
	ShortTerm Timeframe = "short-term"
	LongTerm  Timeframe = "long-term"
)

// IsValid returns true if the value is a known timeframe.
func (t Timeframe) IsValid() bool {
	return t == ShortTerm || t == LongTerm
}

// String returns the string representation of the timeframe.
func (t Timeframe) String() string {
	return string(t)
}

// Skill is a named ability with a 1-5 proficiency rating.
type Skill struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Proficiency int    `json:"proficiency" yaml:"proficiency" validate:"min=1,max=5"`
}

// proficiencyLabels maps the 1-5 rating to its qualitative name.
var proficiencyLabels = map[int]string{
	1: "Beginner",
	2: "Novice",
	3: "Intermediate",
	4: "Advanced",
	5: "Expert",
}

// ProficiencyLabel returns the qualitative label for the skill's rating.
// Out-of-range ratings fall back to the raw number.
func (s Skill) ProficiencyLabel() string {
	if label, ok := proficiencyLabels[s.Proficiency]; ok {
		return label
	}
	return fmt.Sprintf("Level %d", s.Proficiency)
}

// Goal is a free-text objective with a horizon.
type Goal struct {
	Description string    `json:"description" yaml:"description" validate:"required"`
	Timeframe   Timeframe `json:"timeframe" yaml:"timeframe"`
}

// Stage is one named step in the user's workflow. Stages are ordered; a
// task's free-text stage field is matched against them case-insensitively.
type Stage struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NormalizeStageName canonicalizes a stage name for matching.
func NormalizeStageName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Matches reports whether a free-text stage value refers to this stage.
func (s Stage) Matches(name string) bool {
	return NormalizeStageName(s.Name) == NormalizeStageName(name)
}

// Workflow is the user's working-style configuration.
type Workflow struct {
	DisplayName       string    `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	MaxDailyHours     float64   `json:"max_daily_hours" yaml:"max_daily_hours" validate:"gte=0"`
	WorkDays          []Weekday `json:"work_days,omitempty" yaml:"work_days,omitempty" validate:"dive"`
	Goals             []Goal    `json:"goals,omitempty" yaml:"goals,omitempty" validate:"dive"`
	Stages            []Stage   `json:"stages,omitempty" yaml:"stages,omitempty" validate:"dive"`
	PreferredCurrency string    `json:"preferred_currency,omitempty" yaml:"preferred_currency,omitempty" validate:"omitempty,len=3"`
}

// DefaultMaxDailyHours is assumed when the workflow leaves the limit unset.
const DefaultMaxDailyHours = 8.0

// EffectiveMaxDailyHours returns the configured daily limit or the default.
func (w Workflow) EffectiveMaxDailyHours() float64 {
	if w.MaxDailyHours > 0 {
		return w.MaxDailyHours
	}
	return DefaultMaxDailyHours
}

// StageNames returns the ordered stage names.
func (w Workflow) StageNames() []string {
	names := make([]string, 0, len(w.Stages))
	for _, s := range w.Stages {
		names = append(names, s.Name)
	}
	return names
}

// UserSettings bundles the user's skills and workflow preferences.
type UserSettings struct {
	Skills   []Skill  `json:"skills,omitempty" yaml:"skills,omitempty" validate:"dive"`
	Workflow Workflow `json:"workflow" yaml:"workflow"`
}

// DefaultUserSettings returns settings for a fresh workspace.
func DefaultUserSettings() *UserSettings {
	return &UserSettings{
		Workflow: Workflow{
			MaxDailyHours: DefaultMaxDailyHours,
			WorkDays:      []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday},
		},
	}
}
