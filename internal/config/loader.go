package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	pkgconfig "github.com/ynxchain/ynx-indexer/pkg/config"
	"gopkg.in/yaml.v3"
)

// LookupFunc resolves an environment key. It matches the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load builds the indexer configuration in layers: defaults, the optional config file,
// .env files and finally environment variables. Invalid numeric environment values keep
// the previous layer's value and are returned as warnings.
func Load(path string) (*pkgconfig.Config, []string, error) {
	return LoadWithLookup(path, os.LookupEnv)
}

// LoadWithLookup is Load with an explicit environment source.
func LoadWithLookup(path string, lookup LookupFunc) (*pkgconfig.Config, []string, error) {
	cfg := pkgconfig.Default()

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, nil, err
		}
	}

	envFile, err := readEnvFiles(envFileCandidates(lookup))
	if err != nil {
		return nil, nil, err
	}

	warnings := applyEnv(cfg, chainLookup(lookup, envFile))

	cfg, err = processConfig(cfg)
	if err != nil {
		return nil, warnings, err
	}

	return cfg, warnings, nil
}

func decodeFile(path string, cfg *pkgconfig.Config) error {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		return decodeYAML(path, cfg)
	case ".json":
		return decodeJSON(path, cfg)
	case ".toml":
		return decodeTOML(path, cfg)
	default:
		return fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json, .toml)", ext)
	}
}

func decodeYAML(path string, cfg *pkgconfig.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func decodeJSON(path string, cfg *pkgconfig.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse JSON config: %w", err)
	}

	return nil
}

func decodeTOML(path string, cfg *pkgconfig.Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse TOML config: %w", err)
	}

	return nil
}

// envFileCandidates lists .env files in precedence order.
func envFileCandidates(lookup LookupFunc) []string {
	var candidates []string
	if v, ok := lookup("INDEXER_ENV_FILE"); ok && v != "" {
		candidates = append(candidates, v)
	}
	if v, ok := lookup("YNX_ENV_FILE"); ok && v != "" {
		candidates = append(candidates, v)
	}
	return append(candidates, ".env")
}

// readEnvFiles merges the given .env files. Missing files are skipped and
// a key defined by an earlier file is never replaced by a later one.
func readEnvFiles(paths []string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, p := range paths {
		values, err := godotenv.Read(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read env file %s: %w", p, err)
		}
		for k, v := range values {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}
	return merged, nil
}

// chainLookup resolves keys from the real environment first, then from .env values.
func chainLookup(lookup LookupFunc, envFile map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := envFile[key]
		return v, ok
	}
}

// processConfig applies defaults and validates the configuration.
func processConfig(cfg *pkgconfig.Config) (*pkgconfig.Config, error) {
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
