package config

import "time"

// Backend names accepted in storage.backend.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config is the root application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Test    TestConfig    `yaml:"test"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects where the word list snapshot lives.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"SPELLING_STORAGE_BACKEND" env-default:"sqlite"`
	Path    string `yaml:"path"    env:"SPELLING_STORAGE_PATH"    env-default:"spelling.db"`
	Slot    string `yaml:"slot"    env:"SPELLING_STORAGE_SLOT"    env-default:"spellingWords"`
}

// TestConfig holds practice test settings.
type TestConfig struct {
	Size int `yaml:"size" env:"SPELLING_TEST_SIZE" env-default:"10"`
}

// FetchConfig holds settings for pulling word lists from web pages.
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"        env:"SPELLING_FETCH_TIMEOUT"        env-default:"30s"`
	UserAgent    string        `yaml:"user_agent"     env:"SPELLING_FETCH_USER_AGENT"     env-default:"Mozilla/5.0 (compatible; spelling/0.1)"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" env:"SPELLING_FETCH_MAX_BODY_BYTES" env-default:"10485760"`
	Workers      int           `yaml:"workers"        env:"SPELLING_FETCH_WORKERS"        env-default:"4"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"SPELLING_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"SPELLING_LOG_FORMAT" env-default:"text"`
}
