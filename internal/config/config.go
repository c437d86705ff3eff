// Package config loads the allow list and backend settings shared by both
// tools. Values come from an optional YAML file, overridden by flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvPath names the config file when --config is not given.
const EnvPath = "ACCTGUARD_CONFIG"

type Config struct {
	// Keep lists the accounts that must stay enabled.
	Keep     []string      `yaml:"keep"`
	Backend  string        `yaml:"backend"`
	HostRoot string        `yaml:"host_root"`
	LogDir   string        `yaml:"log_dir"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Load reads the YAML file at path. An empty path yields the zero Config;
// a named file that is missing or malformed is an error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parse(b)
}

func parse(b []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Keep = splitNames(cfg.Keep)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	return nil
}

// splitNames accepts comma separated entries and drops blanks.
func splitNames(in []string) []string {
	var out []string
	for _, v := range in {
		for _, n := range strings.Split(v, ",") {
			if n = strings.TrimSpace(n); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

// Flags are the command-line overrides for a Config.
type Flags struct {
	fs   *pflag.FlagSet
	path string
	cfg  Config
}

// Register adds the shared flags to fs. withKeep adds --keep, which only
// the hardening tool takes.
func Register(fs *pflag.FlagSet, withKeep bool) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.path, "config", "c", "", "YAML config file (default $"+EnvPath+")")
	if withKeep {
		fs.StringSliceVarP(&f.cfg.Keep, "keep", "k", nil, "account to keep enabled (repeatable, comma separated)")
	}
	fs.StringVar(&f.cfg.Backend, "backend", "", "account store backend (default per platform)")
	fs.StringVar(&f.cfg.HostRoot, "host-root", "", "root holding etc/passwd and etc/shadow for the files backend")
	fs.StringVar(&f.cfg.LogDir, "log-dir", "", "also write daily log files under this directory")
	fs.DurationVar(&f.cfg.Timeout, "timeout", 0, "bound each external command (0 means no timeout)")
	return f
}

// Resolve loads the config file and applies every flag the user set.
// --keep entries are added to the file's list.
func (f *Flags) Resolve() (Config, error) {
	path := f.path
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	if f.fs.Changed("keep") {
		cfg.Keep = append(cfg.Keep, splitNames(f.cfg.Keep)...)
	}
	if f.fs.Changed("backend") {
		cfg.Backend = f.cfg.Backend
	}
	if f.fs.Changed("host-root") {
		cfg.HostRoot = f.cfg.HostRoot
	}
	if f.fs.Changed("log-dir") {
		cfg.LogDir = f.cfg.LogDir
	}
	if f.fs.Changed("timeout") {
		cfg.Timeout = f.cfg.Timeout
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
