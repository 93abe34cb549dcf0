// Package config loads the hashledger settings from flags, environment and
// an optional config file through viper.
package config

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/luca-patrignani/hashledger/digest"
	"github.com/luca-patrignani/hashledger/ledger"
)

const (
	KeyLogLevel        = "log-level"
	KeyFieldPolicy     = "field-policy"
	KeyMaxTransactions = "max-transactions"
	KeyVerifyWorkers   = "verify-workers"
	KeyMetricsAddr     = "metrics-addr"
	KeyHashSuite       = "hash-suite"
)

var (
	validLogLevels = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	ValidLogLevels = strings.Join(slices.Sorted(maps.Keys(validLogLevels)), "|")
)

var envKeyReplacer = strings.NewReplacer("-", "_")

// Setup points v at the config file locations and the HASHLEDGER_
// environment prefix.
func Setup(v *viper.Viper) {
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.hashledger")
	v.AddConfigPath("/etc/hashledger")

	v.SetEnvPrefix("hashledger")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	SetDefaults(v)
}

type Config struct {
	LogLevel        string
	FieldPolicy     ledger.FieldPolicy
	MaxTransactions int
	VerifyWorkers   int
	MetricsAddr     string
	HashSuite       string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel:        "info",
		FieldPolicy:     ledger.Reject,
		MaxTransactions: ledger.DefaultMaxTransactions,
		HashSuite:       "Ed25519",
	}
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyFieldPolicy, d.FieldPolicy.String())
	v.SetDefault(KeyMaxTransactions, d.MaxTransactions)
	v.SetDefault(KeyVerifyWorkers, d.VerifyWorkers)
	v.SetDefault(KeyMetricsAddr, d.MetricsAddr)
	v.SetDefault(KeyHashSuite, d.HashSuite)
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	policy, err := ledger.ParseFieldPolicy(v.GetString(KeyFieldPolicy))
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid configuration")
	}
	c := Config{
		LogLevel:        strings.ToLower(v.GetString(KeyLogLevel)),
		FieldPolicy:     policy,
		MaxTransactions: v.GetInt(KeyMaxTransactions),
		VerifyWorkers:   v.GetInt(KeyVerifyWorkers),
		MetricsAddr:     v.GetString(KeyMetricsAddr),
		HashSuite:       v.GetString(KeyHashSuite),
	}
	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid configuration")
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, ok := validLogLevels[c.LogLevel]; !ok {
		return fmt.Errorf("invalid log level: %s. Valid log levels are: %s", c.LogLevel, ValidLogLevels)
	}
	if c.MaxTransactions < 1 {
		return fmt.Errorf("max-transactions must be at least 1, got %d", c.MaxTransactions)
	}
	if c.VerifyWorkers < 0 {
		return fmt.Errorf("verify-workers must not be negative, got %d", c.VerifyWorkers)
	}
	if _, err := digest.FromSuite(c.HashSuite); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	return validLogLevels[c.LogLevel]
}

// LedgerOptions translates the configuration into ledger options.
func (c Config) LedgerOptions() ([]ledger.Option, error) {
	h, err := digest.FromSuite(c.HashSuite)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hash suite")
	}
	return []ledger.Option{
		ledger.WithHasher(h),
		ledger.WithFieldPolicy(c.FieldPolicy),
		ledger.WithMaxTransactions(c.MaxTransactions),
	}, nil
}
