// Package config loads the small TOML-based runtime configuration the CLI
// consults for search breadth and edit-rule generation ceilings.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the runtime configuration read from a sturgeon.toml file (or
// its defaults, if no file is given).
type Config struct {
	// Search holds parameters for the forest search stage.
	Search SearchConfig `toml:"search"`

	// EditRules holds parameters for the edit-rule generator.
	EditRules EditRulesConfig `toml:"edit_rules"`
}

// SearchConfig controls internal/search's forest search.
type SearchConfig struct {
	// DefaultK is the number of trees requested when a query doesn't
	// otherwise specify one (the CLI's `.k N` command overrides this for
	// the remainder of the session).
	DefaultK int `toml:"default_k"`

	// MaxPops caps the number of root-level derivations the search
	// examines, accepted or not, before it stops and returns the trees
	// accepted so far, even if fewer than K. Zero means unbounded (search
	// runs to exhaustion).
	MaxPops int `toml:"max_pops"`
}

// EditRulesConfig controls internal/editrules's rule-synthesis passes.
type EditRulesConfig struct {
	// InsertionCostCeiling discards a nonterminal-insertion candidate whose
	// total synthesized cost would exceed this value, keeping a grammar
	// with many cheap literal rules from exploding into an unusably large
	// edit-rule set. Zero (the default) means no ceiling.
	InsertionCostCeiling float64 `toml:"insertion_cost_ceiling"`

	// TranspositionCostCeiling is the same ceiling applied to synthesized
	// transposed-RHS rules.
	TranspositionCostCeiling float64 `toml:"transposition_cost_ceiling"`
}

// Default returns the configuration used when no file is loaded: K=5, no
// search pop budget, no edit-rule cost ceilings.
func Default() Config {
	return Config{
		Search: SearchConfig{
			DefaultK: 5,
		},
	}
}

// Load reads and parses a TOML config file at path, starting from Default
// and overwriting only the fields the file sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects nonsensical values before they reach the search or
// edit-rule generator stages.
func (c Config) Validate() error {
	if c.Search.DefaultK < 1 {
		return fmt.Errorf("config: search.default_k must be at least 1, got %d", c.Search.DefaultK)
	}
	if c.Search.MaxPops < 0 {
		return fmt.Errorf("config: search.max_pops must not be negative, got %d", c.Search.MaxPops)
	}
	if c.EditRules.InsertionCostCeiling < 0 {
		return fmt.Errorf("config: edit_rules.insertion_cost_ceiling must not be negative, got %g", c.EditRules.InsertionCostCeiling)
	}
	if c.EditRules.TranspositionCostCeiling < 0 {
		return fmt.Errorf("config: edit_rules.transposition_cost_ceiling must not be negative, got %g", c.EditRules.TranspositionCostCeiling)
	}
	return nil
}
