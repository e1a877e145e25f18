package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Load builds the configuration from defaults, the config file and the
// environment, in increasing order of precedence.
//
// An explicit path must exist. Without one, RECOMMENDER_CONFIG and then
// ~/.recommender.yaml are tried, and a missing file just means defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(NewConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		if err := checkReadable(configPath); err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, &InvalidConfigError{
				Path:    configPath,
				Message: fmt.Sprintf("YAML parse error: %v", err),
				Hint:    "Restore from .bak file if available, or run 'recommender config init'",
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, &InvalidConfigError{
			Path:    configPath,
			Message: fmt.Sprintf("failed to decode configuration: %v", err),
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, &InvalidConfigError{
			Path:    configPath,
			Message: err.Error(),
			Hint:    "Check the values above in the config file or RECOMMENDER_* variables",
		}
	}

	return cfg, nil
}

// resolvePath picks the config file to read, or "" for none.
func resolvePath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", &ConfigNotFoundError{
					Path: explicit,
					Hint: "Run 'recommender config init --path " + explicit + "' to create it",
				}
			}
			return "", fmt.Errorf("failed to access config: %w", err)
		}
		return explicit, nil
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", nil
	}
	if _, err := os.Stat(defaultPath); err == nil {
		return defaultPath, nil
	}

	return "", nil
}

// checkReadable turns permission failures into a PermissionError with a fix.
func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return &PermissionError{
				Path:    path,
				Op:      "read",
				Fix:     getReadPermissionFix(path),
				Details: getPermissionDetails(path),
			}
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return f.Close()
}

// envTransformFunc maps RECOMMENDER_CATALOG_ITEMS_PATH to catalog.items_path.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	section, field, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + field
}

// getReadPermissionFix returns platform-specific fix command
func getReadPermissionFix(path string) string {
	switch runtime.GOOS {
	case "windows":
		return fmt.Sprintf("Right-click %s → Properties → Security → Edit permissions", path)
	default: // unix-like
		return fmt.Sprintf("Run: chmod 644 %s", path)
	}
}

// getPermissionDetails checks file ownership and permissions
func getPermissionDetails(path string) string {
	if runtime.GOOS == "windows" {
		return "" // Not applicable on Windows
	}

	info, err := os.Stat(path)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("Current permissions: %04o", info.Mode().Perm())
}
