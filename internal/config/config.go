package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"skipgram/internal/domain"
)

// CorpusConfig controls document loading and cleaning.
type CorpusConfig struct {
	Paths      []string `yaml:"paths"`
	WholeFiles bool     `yaml:"whole_files"`
	Stopwords  []string `yaml:"stopwords,omitempty"`
}

// VectorConfig sizes the embeddings and the context window.
type VectorConfig struct {
	Dimension int     `yaml:"dimension"`
	Window    int     `yaml:"window"`
	Threshold float64 `yaml:"threshold"`
	MinCount  int     `yaml:"min_count"`
}

// LearningConfig controls the optimization run.
type LearningConfig struct {
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	Rate         float64 `yaml:"rate"`
	Negatives    int     `yaml:"negatives"`
	MonitorEvery int     `yaml:"monitor_every"`
	Seed         int64   `yaml:"seed"`
}

// CheckpointConfig controls snapshot persistence.
type CheckpointConfig struct {
	Path        string `yaml:"path"`
	EveryEpochs int    `yaml:"every_epochs"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Vector     VectorConfig     `yaml:"vector"`
	Learning   LearningConfig   `yaml:"learning"`
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// The file is decoded over the defaults, so keys it leaves out keep
// their default values while explicit zeros stay zero (monitor_every: 0
// turns batch monitoring off).
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/skipgram/config.yaml.
// If neither exists, it writes defaults to ~/.config/skipgram/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects parameter values training cannot start with.
func (c *AppConfig) Validate() error {
	switch {
	case c.Vector.Dimension <= 0:
		return &domain.ConfigurationError{Field: "vector.dimension", Reason: "must be positive"}
	case c.Vector.Window <= 0:
		return &domain.ConfigurationError{Field: "vector.window", Reason: "must be positive"}
	case c.Vector.Threshold <= 0:
		return &domain.ConfigurationError{Field: "vector.threshold", Reason: "must be positive"}
	case c.Vector.MinCount < 0:
		return &domain.ConfigurationError{Field: "vector.min_count", Reason: "must not be negative"}
	case c.Learning.Epochs <= 0:
		return &domain.ConfigurationError{Field: "learning.epochs", Reason: "must be positive"}
	case c.Learning.BatchSize <= 0:
		return &domain.ConfigurationError{Field: "learning.batch_size", Reason: "must be positive"}
	case c.Learning.Rate <= 0:
		return &domain.ConfigurationError{Field: "learning.rate", Reason: "must be positive"}
	case c.Learning.Negatives < 0:
		return &domain.ConfigurationError{Field: "learning.negatives", Reason: "must not be negative"}
	case c.Learning.MonitorEvery < 0:
		return &domain.ConfigurationError{Field: "learning.monitor_every", Reason: "must not be negative"}
	case c.Checkpoint.EveryEpochs < 0:
		return &domain.ConfigurationError{Field: "checkpoint.every_epochs", Reason: "must not be negative"}
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "skipgram", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Corpus: CorpusConfig{Paths: []string{"corpus/*.txt"}},
		Vector: VectorConfig{Dimension: 300, Window: 10, Threshold: 1e-5, MinCount: 5},
		Learning: LearningConfig{
			Epochs: 5, BatchSize: 2048, Rate: 0.05,
			Negatives: 5, MonitorEvery: 100, Seed: 1,
		},
		Checkpoint: CheckpointConfig{Path: "skipgram.ckpt", EveryEpochs: 1},
	}
	return cfg
}
