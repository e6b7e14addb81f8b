// Package config assembles tutor settings from an optional YAML file and
// the environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/tutor"
	"gopkg.in/yaml.v3"
)

const defaultAddr = ":8080"

// Config is the top-level structure of the config file.
type Config struct {
	Server ServerConfig `yaml:"server"`
	LLM    llm.Config   `yaml:"llm"`
	Tutor  tutor.Config `yaml:"tutor"`
}

// ServerConfig describes the HTTP API listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: defaultAddr},
		LLM:    llm.DefaultConfig(),
		Tutor:  tutor.DefaultConfig(),
	}
}

// ReadFile reads a YAML config file over the defaults. Keys missing from
// the file keep their default values.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// WriteFile writes cfg to path as YAML.
func WriteFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Load builds the effective configuration. path may be empty, in which
// case only defaults and the environment are used. The LLM provider is
// resolved but not validated; a missing credential surfaces later as a
// chat error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		fileCfg, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.LLM = cfg.LLM.Resolve()
	return cfg, nil
}

// ApplyEnv overlays TUTOR_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	var errs []error

	if err := c.LLM.ApplyEnv(); err != nil {
		errs = append(errs, err)
	}

	if addr, ok, err := loadAddr(); err != nil {
		errs = append(errs, err)
	} else if ok {
		c.Server.Addr = addr
	}

	if v, err := parseOptionalIntEnv("TUTOR_LLM_MAX_TOKENS"); err != nil {
		errs = append(errs, err)
	} else if v != nil {
		c.Tutor.MaxTokens = *v
	}
	if v, err := parseOptionalFloatEnv("TUTOR_LLM_TEMPERATURE"); err != nil {
		errs = append(errs, err)
	} else if v != nil {
		c.Tutor.Temperature = *v
	}
	if v, err := parseOptionalFloatEnv("TUTOR_LLM_TOP_P"); err != nil {
		errs = append(errs, err)
	} else if v != nil {
		c.Tutor.TopP = *v
	}

	return errors.Join(errs...)
}

// loadAddr reads TUTOR_ADDR, falling back to PORT. A bare port becomes
// ":port"; a value containing ':' is used as given.
func loadAddr() (string, bool, error) {
	v := strings.TrimSpace(os.Getenv("TUTOR_ADDR"))
	if v == "" {
		v = strings.TrimSpace(os.Getenv("PORT"))
	}
	if v == "" {
		return "", false, nil
	}
	return normalizeAddr(v)
}

func normalizeAddr(v string) (string, bool, error) {
	if strings.Contains(v, ":") {
		return v, true, nil
	}
	if strings.Contains(v, " ") {
		return "", false, fmt.Errorf("invalid listen address: %q", v)
	}
	if _, err := strconv.Atoi(v); err != nil {
		return "", false, fmt.Errorf("invalid listen address: %q", v)
	}
	return ":" + v, true, nil
}

// NormalizeAddr turns a flag value into a listen address the same way the
// environment is interpreted.
func NormalizeAddr(v string) (string, error) {
	addr, _, err := normalizeAddr(strings.TrimSpace(v))
	return addr, err
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s: invalid value %q", key, raw)
	}
	return &v, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid value %q", key, raw)
	}
	return &v, nil
}
