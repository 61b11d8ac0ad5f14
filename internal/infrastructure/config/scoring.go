package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lodestar/pkg/domain/scoring"
	"lodestar/pkg/domain/tracker"
	"lodestar/pkg/storage"
)

const scoringConfigFile = "scoring.yaml"

// ScoringConfig is the optional .lodestar/scoring.yaml override. Weights
// replace the defaults wholesale (they must still sum to 1.0); table entries
// merge over the built-in tables one key at a time.
type ScoringConfig struct {
	Version          string                      `yaml:"version,omitempty"`
	Weights          *scoring.Weights            `yaml:"weights,omitempty"`
	TypeScores       map[tracker.ProjectType]int `yaml:"type_scores,omitempty"`
	ComplexityScores map[tracker.Complexity]int  `yaml:"complexity_scores,omitempty"`
}

// LoadScorer builds the scorer for a workspace: compiled-in defaults,
// overlaid with scoring.yaml when present, then validated.
func LoadScorer(root string) (*scoring.Scorer, error) {
	cfg, err := LoadScoringConfig(root)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return scoring.NewDefaultScorer(), nil
	}

	weights := scoring.DefaultWeights()
	if cfg.Weights != nil {
		weights = *cfg.Weights
	}

	tables := scoring.DefaultTables()
	if cfg.Version != "" {
		tables.Version = cfg.Version
	}
	for pt, score := range cfg.TypeScores {
		if !pt.IsValid() {
			return nil, fmt.Errorf("scoring config: unknown project type %q", pt)
		}
		tables.TypeScores[pt] = score
	}
	for c, score := range cfg.ComplexityScores {
		if !c.IsValid() {
			return nil, fmt.Errorf("scoring config: unknown complexity %q", c)
		}
		tables.ComplexityScores[c] = score
	}

	scorer, err := scoring.NewScorer(weights, tables)
	if err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	return scorer, nil
}

// LoadScoringConfig reads scoring.yaml. Nil without error means no override
// file exists.
func LoadScoringConfig(root string) (*ScoringConfig, error) {
	repo := storage.NewFilesystemRepository(root)
	path, err := repo.ResolvePath(scoringConfigFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read scoring config: %w", err)
	}

	var cfg ScoringConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scoring config: %w", err)
	}

	return &cfg, nil
}

// SaveScoringConfig writes scoring.yaml.
func SaveScoringConfig(root string, cfg *ScoringConfig) error {
	if cfg == nil {
		return fmt.Errorf("scoring config is nil")
	}

	repo := storage.NewFilesystemRepository(root)
	path, err := repo.ResolvePath(scoringConfigFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal scoring config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
