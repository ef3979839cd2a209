package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type StoreConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type DedupeConfig struct {
	// Threshold is the minimum similarity for a near-name merge. Zero means
	// the default. Kept conservative on purpose: a missed merge is
	// recoverable by a reviewer, a wrong merge is not.
	Threshold float64 `toml:"threshold"`
}

type ConcurrencyConfig struct {
	Ingest int `toml:"ingest"`
}

type DistillPrompts struct {
	Items string `toml:"items"`
}

type SummaryPrompts struct {
	Clusters string `toml:"clusters"`
}

type WorkspaceConfig struct {
	BaseDir string `toml:"base_dir"`
}

type Config struct {
	LLM         LLMConfig         `toml:"llm"`
	Store       StoreConfig       `toml:"store"`
	Dedupe      DedupeConfig      `toml:"dedupe"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	Distill     DistillPrompts    `toml:"distill"`
	Summary     SummaryPrompts    `toml:"summary"`
	Workspace   WorkspaceConfig   `toml:"workspace"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}
