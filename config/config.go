package config

// Config represents the complete unitconv configuration
type Config struct {
	BaseDir   string          `yaml:"-"`        // Directory containing config file, for resolving relative paths
	Path      string          `yaml:"-"`        // Config file that was loaded, empty when running on defaults
	DataDir   string          `yaml:"data_dir"` // Directory for history and favorites (default: ~/.config/unitconv)
	History   HistoryConfig   `yaml:"history"`
	Favorites FavoritesConfig `yaml:"favorites"`
	Shell     ShellConfig     `yaml:"shell"`
	Batch     BatchConfig     `yaml:"batch"`
	Engine    EngineConfig    `yaml:"engine"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// HistoryConfig holds conversion history settings
type HistoryConfig struct {
	Backend    string `yaml:"backend"`     // "file" or "sqlite"
	File       string `yaml:"file"`        // Line-delimited history file, relative to data_dir
	SQLite     string `yaml:"sqlite"`      // SQLite database, relative to data_dir
	MaxEntries int    `yaml:"max_entries"` // Ring buffer capacity
}

// FavoritesConfig holds favorites settings
type FavoritesConfig struct {
	File       string `yaml:"file"`
	MaxEntries int    `yaml:"max_entries"`
}

// ShellConfig holds interactive shell settings
type ShellConfig struct {
	MaxAttempts int    `yaml:"max_attempts"` // Retries for each prompt before returning to the menu
	ClearScreen bool   `yaml:"clear_screen"` // Clear the terminal before each menu
	LineHistory string `yaml:"line_history"` // Prompt history file, "none" to disable
	Color       bool   `yaml:"color"`
}

// BatchConfig holds batch conversion settings
type BatchConfig struct {
	MaxValues int `yaml:"max_values"`
}

// EngineConfig holds conversion engine settings
type EngineConfig struct {
	MagnitudeWarning float64 `yaml:"magnitude_warning"` // Warn above this absolute value, 0 disables
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	Output string `yaml:"output"` // stderr, stdout, or file path
}

// Defaults returns a Config with sensible defaults
func Defaults() *Config {
	return &Config{
		History: HistoryConfig{
			Backend:    "file",
			File:       "history.txt",
			SQLite:     "history.db",
			MaxEntries: 100,
		},
		Favorites: FavoritesConfig{
			File:       "favorites.txt",
			MaxEntries: 20,
		},
		Shell: ShellConfig{
			MaxAttempts: 3,
			LineHistory: ".line_history",
			Color:       true,
		},
		Batch: BatchConfig{
			MaxValues: 100,
		},
		Engine: EngineConfig{
			MagnitudeWarning: 1e15,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
	}
}

// HistoryPath returns the path of the active history store.
func (c *Config) HistoryPath() string {
	if c.History.Backend == "sqlite" {
		return c.History.SQLite
	}
	return c.History.File
}
