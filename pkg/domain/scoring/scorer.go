package scoring

import (
	"fmt"
	"math"
	"time"

	"lodestar/pkg/domain/tracker"
)

// Scorer converts project attributes into a single comparable priority
// number in [0,100]. Scoring is a pure function of the project and the
// as-of time: no hidden state, no history, no I/O. Missing fields degrade
// to documented neutral defaults rather than failing.
type Scorer struct {
	weights Weights
	tables  Tables
}

// NewScorer creates a scorer with the given weights and lookup tables.
func NewScorer(weights Weights, tables Tables) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tables: %w", err)
	}
	return &Scorer{weights: weights, tables: tables}, nil
}

// NewDefaultScorer creates a scorer with the production weights and tables.
func NewDefaultScorer() *Scorer {
	return &Scorer{weights: DefaultWeights(), tables: DefaultTables()}
}

// Weights returns the scorer's weighting scheme.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Tables returns the scorer's lookup tables.
func (s *Scorer) Tables() Tables {
	return s.tables
}

// Breakdown carries the five factor sub-scores behind a composite score.
// Each sub-score is already normalized to [0,100] before weighting.
type Breakdown struct {
	Cost         int `json:"cost"`
	Timeline     int `json:"timeline"`
	UserPriority int `json:"user_priority"`
	ProjectType  int `json:"project_type"`
	Complexity   int `json:"complexity"`
	Total        int `json:"total"`
}

// Score computes the composite priority score for a project as of the given
// time. The result is always in [0,100].
func (s *Scorer) Score(p tracker.Project, asOf time.Time) int {
	return s.Explain(p, asOf).Total
}

// Explain computes the composite score along with its factor breakdown.
func (s *Scorer) Explain(p tracker.Project, asOf time.Time) Breakdown {
	b := Breakdown{
		Cost:         s.costScore(p),
		Timeline:     s.timelineScore(p, asOf),
		UserPriority: s.userPriorityScore(p),
		ProjectType:  s.tables.TypeScore(p.Type),
		Complexity:   s.tables.ComplexityScore(p.Complexity),
	}

	sum := float64(b.Cost)*s.weights.Cost +
		float64(b.Timeline)*s.weights.Timeline +
		float64(b.UserPriority)*s.weights.UserPriority +
		float64(b.ProjectType)*s.weights.ProjectType +
		float64(b.Complexity)*s.weights.Complexity

	b.Total = clampScore(int(math.Round(sum)))
	return b
}

// Explanation renders the breakdown as a compact human-readable string.
func (b Breakdown) Explanation() string {
	return fmt.Sprintf(
		"cost=%d timeline=%d user_priority=%d project_type=%d complexity=%d total=%d",
		b.Cost, b.Timeline, b.UserPriority, b.ProjectType, b.Complexity, b.Total,
	)
}

// costScore maps the budget into discrete tiers. Tiers are deliberately
// step functions so the score is stable against small budget edits and each
// bracket is explainable on its own.
func (s *Scorer) costScore(p tracker.Project) int {
	if p.Budget == nil {
		return 0
	}
	budget := *p.Budget
	switch {
	case budget >= 20000:
		return 100
	case budget >= 10000:
		return 80
	case budget >= 5000:
		return 60
	case budget >= 1000:
		return 40
	default:
		return 20
	}
}

// timelineScore rates urgency from the project dates. A fixed end date
// dominates; without one, a started project is rated by its age with newly
// started work favored. Recurring work with a deadline is damped by 15
// points but never below 15: it is never fully "not urgent".
func (s *Scorer) timelineScore(p tracker.Project, asOf time.Time) int {
	if p.EndDate != nil {
		days := daysUntil(asOf, *p.EndDate)

		var score int
		switch {
		case days <= 7:
			score = 100
		case days <= 14:
			score = 85
		case days <= 30:
			score = 70
		case days <= 60:
			score = 50
		case days <= 90:
			score = 30
		default:
			score = 15
		}

		if p.IsRecurring {
			score -= 15
			if score < 15 {
				score = 15
			}
		}
		return score
	}

	if p.StartDate != nil {
		days := daysSince(asOf, *p.StartDate)
		switch {
		case days <= 7:
			return 65
		case days <= 30:
			return 50
		case days <= 90:
			return 40
		default:
			return 30
		}
	}

	return 0
}

// userPriorityScore maps the explicit 1-5 priority linearly onto 20-100.
// An unset priority resolves to 60, mid-high, so leaving the field blank is
// not read as "low priority".
func (s *Scorer) userPriorityScore(p tracker.Project) int {
	if p.UserPriority == nil {
		return 60
	}
	return *p.UserPriority * 20
}

// daysUntil returns the whole days remaining until target, rounding partial
// days up and flooring at zero for past dates.
func daysUntil(asOf, target time.Time) int {
	days := int(math.Ceil(target.Sub(asOf).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// daysSince returns the whole days elapsed since start, rounding partial
// days up and flooring at zero for future starts.
func daysSince(asOf, start time.Time) int {
	days := int(math.Ceil(asOf.Sub(start).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
