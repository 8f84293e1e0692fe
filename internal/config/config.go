// Package config loads and stores cu credentials.
//
// The file lives at $XDG_CONFIG_HOME/cu/config.json (default
// ~/.config/cu/config.json). CU_API_TOKEN and CU_TEAM_ID override it, and
// a .env file in the working directory is honored.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyAPIToken = "apiToken"
	KeyTeamID   = "teamId"

	tokenPrefix = "pk_"
)

// Keys lists the settable config keys.
var Keys = []string{KeyAPIToken, KeyTeamID}

type Config struct {
	APIToken string `json:"apiToken" mapstructure:"apiToken" validate:"required,startswith=pk_"`
	TeamID   string `json:"teamId" mapstructure:"teamId" validate:"required"`
}

var validate = validator.New()

// Path returns the location of the config file.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cu", "config.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cu", "config.json"), nil
}

// LoadDotEnv loads .env from the working directory without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load reads the config file, applies environment overrides and validates
// the result. The file is optional when the environment supplies everything.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.BindEnv(KeyAPIToken, "CU_API_TOKEN"); err != nil {
		return Config{}, err
	}
	if err := v.BindEnv(KeyTeamID, "CU_TEAM_ID"); err != nil {
		return Config{}, err
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return Config{}, fmt.Errorf("Config file at %s contains invalid JSON", path)
			}
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.APIToken = strings.TrimSpace(cfg.APIToken)
	cfg.TeamID = strings.TrimSpace(cfg.TeamID)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first problem with cfg. The token value is never
// included in the message.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch {
	case fe.StructField() == "APIToken" && fe.Tag() == "required":
		return errors.New("Config missing required field: apiToken")
	case fe.StructField() == "APIToken":
		return errors.New("Config apiToken must start with pk_. The configured token does not.")
	case fe.StructField() == "TeamID":
		return errors.New("Config missing required field: teamId. Run: cu config set teamId <id>")
	}
	return err
}

// LoadRaw reads the config file as-is: no env overrides, no validation.
// A missing file yields an empty Config.
func LoadRaw() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("Config file at %s contains invalid JSON", path)
	}
	return cfg, nil
}

// Write stores cfg with owner-only permissions.
func Write(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	return nil
}

func checkKey(key string) error {
	for _, k := range Keys {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("Unknown config key: %s. Valid keys: %s", key, strings.Join(Keys, ", "))
}

// Get returns the stored value of key, trimmed. ok is false when unset.
func Get(key string) (value string, ok bool, err error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	cfg, err := LoadRaw()
	if err != nil {
		return "", false, err
	}

	switch key {
	case KeyAPIToken:
		value = strings.TrimSpace(cfg.APIToken)
	case KeyTeamID:
		value = strings.TrimSpace(cfg.TeamID)
	}
	return value, value != "", nil
}

// Set validates value and merges it into the stored config.
func Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	cfg, err := LoadRaw()
	if err != nil {
		return err
	}

	switch key {
	case KeyAPIToken:
		if err := validate.Var(value, "required,startswith="+tokenPrefix); err != nil {
			return errors.New("apiToken must start with pk_")
		}
		cfg.APIToken = value
	case KeyTeamID:
		if err := validate.Var(value, "required"); err != nil {
			return errors.New("teamId cannot be empty")
		}
		cfg.TeamID = value
	}
	return Write(cfg)
}
