package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for bookdex.
type Config struct {
	Crawl   CrawlConfig   `yaml:"crawl"`
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// CrawlConfig holds acquisition configuration.
type CrawlConfig struct {
	BaseURL        string `yaml:"base_url"`
	Books          int    `yaml:"books"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// IndexConfig holds indexing configuration.
type IndexConfig struct {
	Language string `yaml:"language"`
}

// SearchConfig holds query output configuration.
type SearchConfig struct {
	Color bool `yaml:"color"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Crawl: CrawlConfig{
			BaseURL:        "https://www.gutenberg.org",
			Books:          5,
			TimeoutSeconds: 30,
		},
		Index: IndexConfig{
			Language: "en",
		},
		Search: SearchConfig{
			Color: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, overlaying the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for bookdex.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "bookdex.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BooksDir returns the datalake directory of book bodies.
func BooksDir(dir string) string {
	return filepath.Join(dir, "datalake", "books")
}

// CatalogDBPath returns the path of the metadata catalog database.
func CatalogDBPath(dir string) string {
	return filepath.Join(dir, "datalake", "catalog.db")
}

// IndexDBPath returns the path of the inverted index database.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, "datamart", "index.db")
}

// EnsureDataDirs creates the datalake and datamart directories.
func EnsureDataDirs(dir string) error {
	for _, d := range []string{BooksDir(dir), filepath.Join(dir, "datamart")} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}
