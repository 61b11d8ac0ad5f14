package scoring

import (
	"fmt"
	"math"

	"lodestar/pkg/domain/tracker"
)

// Weights tunes how the five factor sub-scores combine into a project score.
// Weights must sum to 1.0 so the composite stays inside [0,100] without any
// single factor dominating or underflowing.
type Weights struct {
	Cost         float64 `json:"cost" yaml:"cost"`
	Timeline     float64 `json:"timeline" yaml:"timeline"`
	UserPriority float64 `json:"user_priority" yaml:"user_priority"`
	ProjectType  float64 `json:"project_type" yaml:"project_type"`
	Complexity   float64 `json:"complexity" yaml:"complexity"`
}

// DefaultWeights returns the production weighting scheme.
func DefaultWeights() Weights {
	return Weights{
		Cost:         0.25,
		Timeline:     0.20,
		UserPriority: 0.25,
		ProjectType:  0.15,
		Complexity:   0.15,
	}
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.Cost + w.Timeline + w.UserPriority + w.ProjectType + w.Complexity
}

// Validate checks that the weights are non-negative and sum to 1.0.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"cost":          w.Cost,
		"timeline":      w.Timeline,
		"user_priority": w.UserPriority,
		"project_type":  w.ProjectType,
		"complexity":    w.Complexity,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s must not be negative, got %v", name, v)
		}
	}
	if diff := math.Abs(w.Sum() - 1.0); diff > 1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %v", w.Sum())
	}
	return nil
}

// Tables carries the versioned factor lookup tables. Tables are
// configuration data rather than code branches so a new project type only
// needs a new table entry, never a scoring change.
type Tables struct {
	Version          string                      `json:"version" yaml:"version"`
	TypeScores       map[tracker.ProjectType]int `json:"type_scores" yaml:"type_scores"`
	ComplexityScores map[tracker.Complexity]int  `json:"complexity_scores" yaml:"complexity_scores"`
}

// Neutral fallbacks applied when a lookup misses. An unknown or missing
// type is neither promoted nor punished; an unspecified complexity sits
// slightly above neutral because unspecified work is rarely trivial.
const (
	unknownTypeScore       = 50
	unknownComplexityScore = 60
)

// DefaultTables returns the v1 lookup tables.
func DefaultTables() Tables {
	return Tables{
		Version: "1",
		TypeScores: map[tracker.ProjectType]int{
			tracker.TypeClient:    90,
			tracker.TypeFreelance: 85,
			tracker.TypeBusiness:  80,
			tracker.TypeCreative:  65,
			tracker.TypePersonal:  55,
			tracker.TypeLearning:  45,
			tracker.TypeHobby:     35,
			tracker.TypeOther:     50,
		},
		ComplexityScores: map[tracker.Complexity]int{
			tracker.ComplexityEasy:   30,
			tracker.ComplexityMedium: 60,
			tracker.ComplexityHard:   90,
		},
	}
}

// TypeScore looks up the sub-score for a project type.
func (t Tables) TypeScore(pt tracker.ProjectType) int {
	if score, ok := t.TypeScores[pt]; ok {
		return score
	}
	return unknownTypeScore
}

// ComplexityScore looks up the sub-score for a complexity value.
func (t Tables) ComplexityScore(c tracker.Complexity) int {
	if score, ok := t.ComplexityScores[c]; ok {
		return score
	}
	return unknownComplexityScore
}

// Validate checks that every table entry lands in [0,100].
func (t Tables) Validate() error {
	for pt, score := range t.TypeScores {
		if score < 0 || score > 100 {
			return fmt.Errorf("type score for %s out of range: %d", pt, score)
		}
	}
	for c, score := range t.ComplexityScores {
		if score < 0 || score > 100 {
			return fmt.Errorf("complexity score for %s out of range: %d", c, score)
		}
	}
	return nil
}
