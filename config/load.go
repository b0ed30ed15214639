package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigEnv names the environment variable that points at a config file.
const ConfigEnv = "UNITCONV_CONFIG"

// FileName is the config file name searched in the working directory and
// the user config directory.
const FileName = "unitconv.yaml"

// Load reads configuration with ENV interpolation. If configPath is empty
// it searches the default locations; finding nothing is not an error and
// yields the defaults. Relative paths are resolved and the result validated.
func Load(configPath string, getenv func(string) string) (*Config, error) {
	path, err := resolveConfigPath(configPath, getenv)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if path != "" {
		// Get absolute path and directory for resolving relative paths
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}

		data, err := os.ReadFile(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		// Interpolate environment variables
		data = interpolateEnv(data, getenv)

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		cfg.Path = absPath
		cfg.BaseDir = filepath.Dir(absPath)
	}

	if err := resolvePaths(cfg, getenv); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath finds the config file to use.
// Search order: explicit path > UNITCONV_CONFIG env > ./unitconv.yaml > ~/.config/unitconv/unitconv.yaml
// An empty result means no file was found.
func resolveConfigPath(explicit string, getenv func(string) string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	// Try UNITCONV_CONFIG environment variable
	if envPath := getenv(ConfigEnv); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s file not found: %s", ConfigEnv, envPath)
		}
		return envPath, nil
	}

	// Try ./unitconv.yaml
	if _, err := os.Stat(FileName); err == nil {
		return FileName, nil
	}

	// Try ~/.config/unitconv/unitconv.yaml
	if dir := userConfigDir(getenv); dir != "" {
		xdgPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", nil
}

// userConfigDir returns $XDG_CONFIG_HOME/unitconv or ~/.config/unitconv.
func userConfigDir(getenv func(string) string) string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "unitconv")
	}
	home := getenv("HOME")
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = h
	}
	return filepath.Join(home, ".config", "unitconv")
}

// resolvePaths makes data_dir absolute (relative to the config file) and
// the store paths absolute (relative to data_dir).
func resolvePaths(cfg *Config, getenv func(string) string) error {
	if cfg.DataDir == "" {
		cfg.DataDir = userConfigDir(getenv)
		if cfg.DataDir == "" {
			return fmt.Errorf("cannot determine data directory: set data_dir or HOME")
		}
	}
	if !filepath.IsAbs(cfg.DataDir) {
		base := cfg.BaseDir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve data_dir: %w", err)
			}
			base = wd
		}
		cfg.DataDir = filepath.Join(base, cfg.DataDir)
	}

	for _, p := range []*string{&cfg.History.File, &cfg.History.SQLite, &cfg.Favorites.File} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(cfg.DataDir, *p)
		}
	}
	if lh := cfg.Shell.LineHistory; lh != "" && lh != "none" && !filepath.IsAbs(lh) {
		cfg.Shell.LineHistory = filepath.Join(cfg.DataDir, lh)
	}
	if out := cfg.Logging.Output; out != "stderr" && out != "stdout" && out != "" && !filepath.IsAbs(out) {
		cfg.Logging.Output = filepath.Join(cfg.DataDir, out)
	}
	return nil
}

// envPattern matches ${VAR} or ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// interpolateEnv replaces ${VAR} and ${VAR:-default} patterns with environment values.
func interpolateEnv(data []byte, getenv func(string) string) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		parts := envPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := string(parts[1])
		value := getenv(varName)

		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}

		return []byte(value)
	})
}

// WithDotEnv layers the variables of a .env file under getenv: variables
// already set in the environment win. A missing file leaves getenv as is.
func WithDotEnv(path string, getenv func(string) string) (func(string) string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return getenv, nil
		}
		return getenv, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return vars[key]
	}, nil
}

// Validate checks the configuration and reports every problem at once.
func Validate(cfg *Config) error {
	var errs []string

	switch cfg.History.Backend {
	case "file":
		if cfg.History.File == "" {
			errs = append(errs, "history.file is required for the file backend")
		}
	case "sqlite":
		if cfg.History.SQLite == "" {
			errs = append(errs, "history.sqlite is required for the sqlite backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid history backend: %s (must be file or sqlite)", cfg.History.Backend))
	}
	if cfg.History.MaxEntries < 1 {
		errs = append(errs, fmt.Sprintf("invalid history.max_entries: %d (must be at least 1)", cfg.History.MaxEntries))
	}

	if cfg.Favorites.File == "" {
		errs = append(errs, "favorites.file is required")
	}
	if cfg.Favorites.MaxEntries < 1 {
		errs = append(errs, fmt.Sprintf("invalid favorites.max_entries: %d (must be at least 1)", cfg.Favorites.MaxEntries))
	}

	if cfg.Shell.MaxAttempts < 1 {
		errs = append(errs, fmt.Sprintf("invalid shell.max_attempts: %d (must be at least 1)", cfg.Shell.MaxAttempts))
	}
	if cfg.Batch.MaxValues < 1 {
		errs = append(errs, fmt.Sprintf("invalid batch.max_values: %d (must be at least 1)", cfg.Batch.MaxValues))
	}
	if cfg.Engine.MagnitudeWarning < 0 {
		errs = append(errs, fmt.Sprintf("invalid engine.magnitude_warning: %g (must not be negative)", cfg.Engine.MagnitudeWarning))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Logging.Level))
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be json or text)", cfg.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
