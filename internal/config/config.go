// Package config loads zalias defaults from an optional YAML file and
// ZALIAS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/zarlcorp/zalias/internal/password"
	"github.com/zarlcorp/zalias/internal/username"
)

const envPrefix = "ZALIAS_"

// Config holds generation defaults. Command-line flags override it.
type Config struct {
	Names     string         `koanf:"names"`
	Password  PasswordConfig `koanf:"password"`
	Username  UsernameConfig `koanf:"username"`
	Birthdate bool           `koanf:"birthdate"`
}

type PasswordConfig struct {
	Length  int      `koanf:"length"`
	Symbols bool     `koanf:"symbols"`
	Classes []string `koanf:"classes"`
}

type UsernameConfig struct {
	Style     string `koanf:"style"`
	Separator string `koanf:"separator"`
	Suffix    int    `koanf:"suffix"`
	Length    int    `koanf:"length"`
}

// DefaultPath returns the config file location under XDG_CONFIG_HOME.
func DefaultPath() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d + "/zalias/config.yaml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zalias.yaml"
	}
	return home + "/.config/zalias/config.yaml"
}

// Load reads path, then applies defaults and environment overrides. A
// missing file is only an error when required is set.
func Load(path string, required bool) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		err := k.Load(file.Provider(path), yaml.Parser())
		switch {
		case err == nil:
		case !required && errors.Is(err, fs.ErrNotExist):
			slog.Debug("config file not found, using defaults", "path", path)
		default:
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(k); err != nil {
		return nil, err
	}
	applyDefaults(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration with no file and no environment.
func Default() *Config {
	p := password.DefaultPolicy()
	s := username.DefaultScheme()
	return &Config{
		Password: PasswordConfig{
			Length:  p.Length,
			Symbols: p.UseSymbols,
			Classes: strings.Split(p.Classes.String(), ","),
		},
		Username: UsernameConfig{
			Style:     s.Style.String(),
			Separator: s.Separator,
			Suffix:    s.Suffix,
			Length:    s.Length,
		},
	}
}

func applyDefaults(k *koanf.Koanf) {
	d := Default()

	setDefault(k, "names", d.Names)
	setDefault(k, "birthdate", d.Birthdate)

	setDefault(k, "password.length", d.Password.Length)
	setDefault(k, "password.symbols", d.Password.Symbols)
	setDefault(k, "password.classes", d.Password.Classes)

	setDefault(k, "username.style", d.Username.Style)
	setDefault(k, "username.separator", d.Username.Separator)
	setDefault(k, "username.suffix", d.Username.Suffix)
	setDefault(k, "username.length", d.Username.Length)
}

func applyEnvOverrides(k *koanf.Koanf) error {
	for _, key := range []string{"names", "username.style", "username.separator"} {
		if v, ok := lookup(key); ok {
			k.Set(key, v)
		}
	}

	for _, key := range []string{"password.length", "username.suffix", "username.length"} {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", envName(key), err)
		}
		k.Set(key, n)
	}

	for _, key := range []string{"password.symbols", "birthdate"} {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", envName(key), err)
		}
		k.Set(key, b)
	}

	if v, ok := lookup("password.classes"); ok {
		k.Set("password.classes", strings.Split(v, ","))
	}
	return nil
}

// envName maps "password.length" to ZALIAS_PASSWORD_LENGTH.
func envName(key string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func lookup(key string) (string, bool) {
	return os.LookupEnv(envName(key))
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value any) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}

// Policy converts the password section into a generator policy.
func (c *Config) Policy() (password.Policy, error) {
	classes, err := password.ParseClasses(c.Password.Classes)
	if err != nil {
		return password.Policy{}, err
	}
	return password.Policy{
		Length:     c.Password.Length,
		UseSymbols: c.Password.Symbols,
		Classes:    classes,
	}, nil
}

// Scheme converts the username section into a generator scheme.
func (c *Config) Scheme() (username.Scheme, error) {
	style, err := username.ParseStyle(c.Username.Style)
	if err != nil {
		return username.Scheme{}, err
	}
	return username.Scheme{
		Style:     style,
		Separator: c.Username.Separator,
		Suffix:    c.Username.Suffix,
		Length:    c.Username.Length,
	}, nil
}
