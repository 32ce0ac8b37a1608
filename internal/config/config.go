package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/monogen-dev/monogen/internal/branding"
	"github.com/monogen-dev/monogen/internal/logging"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys.
const (
	KeyScope         = "scope"
	KeyLibrariesRoot = "libraries_root"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	KeyNoColor       = "no_color"
)

// validators checks values before Set persists them. A nil check accepts
// anything.
var validators = map[string]func(string) error{
	KeyScope: func(v string) error {
		if !strings.HasPrefix(v, "@") || strings.Contains(v, "/") || len(v) < 2 {
			return fmt.Errorf("scope must look like @name, got %q", v)
		}
		return nil
	},
	KeyLibrariesRoot: func(v string) error {
		if filepath.IsAbs(v) || strings.HasPrefix(filepath.Clean(v), "..") {
			return fmt.Errorf("libraries_root must be relative to the workspace root, got %q", v)
		}
		return nil
	},
	KeyLogLevel: func(v string) error {
		_, err := logging.New(v, logging.FormatJSON, nil)
		return err
	},
	KeyLogFormat: func(v string) error {
		if v != logging.FormatConsole && v != logging.FormatJSON {
			return fmt.Errorf("log.format must be %s or %s, got %q", logging.FormatConsole, logging.FormatJSON, v)
		}
		return nil
	},
	KeyNoColor: func(v string) error {
		if _, err := strconv.ParseBool(v); err != nil {
			return fmt.Errorf("no_color must be true or false, got %q", v)
		}
		return nil
	},
}

// EnvName returns the environment variable that overrides key, e.g.
// "log.level" → "MONOGEN_LOG_LEVEL".
func EnvName(key string) string {
	return branding.EnvVar(strings.ReplaceAll(key, ".", "_"))
}

// Keys returns the known keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(validators))
	for k := range validators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Settings is the resolved configuration handed to the front ends.
type Settings struct {
	Scope         string
	LibrariesRoot string
	LogLevel      string
	LogFormat     string
	NoColor       bool
}

// Dir returns the path to the config directory (~/.monogen/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.monogen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Store is a config file plus environment overrides.
type Store struct {
	v    *viper.Viper
	path string
}

// Load reads the config file at path, or FilePath() when path is empty. A
// missing file is not an error.
func Load(path string) (*Store, error) {
	if path == "" {
		path = FilePath()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return &Store{v: v, path: path}, nil
}

// Path returns the config file location.
func (s *Store) Path() string { return s.path }

// Get returns a config value by key. Returns empty string if not set.
func (s *Store) Get(key string) string {
	return s.v.GetString(key)
}

// Settings resolves every key, applying defaults for unset ones.
func (s *Store) Settings() Settings {
	st := Settings{
		Scope:         s.v.GetString(KeyScope),
		LibrariesRoot: s.v.GetString(KeyLibrariesRoot),
		LogLevel:      s.v.GetString(KeyLogLevel),
		LogFormat:     s.v.GetString(KeyLogFormat),
		NoColor:       s.v.GetBool(KeyNoColor),
	}
	if st.Scope == "" {
		st.Scope = branding.DefaultScope()
	}
	if st.LogLevel == "" {
		st.LogLevel = "warn"
	}
	if st.LogFormat == "" {
		st.LogFormat = logging.FormatConsole
	}
	return st
}

// Set validates and writes a config key-value pair and saves the file.
func (s *Store) Set(key, value string) error {
	check, ok := validators[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := check(value); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	s.v.Set(key, value)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
