package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is loaded once at startup and passed by value. Matching rules
// are part of it so the engine never reads mutable global state.
type Config struct {
	ServerAddr     string
	DatabaseURL    string
	AllowOrigins   []string
	ChunkSize      int
	AuditFeedLimit int
	Matching       MatchingRules
}

// MatchingRules drives the classification pipeline. Each rule can be
// switched off independently; a disabled rule is skipped entirely.
type MatchingRules struct {
	ExactMatch     RuleConfig
	DuplicateCheck RuleConfig
	PartialMatch   PartialMatchConfig
}

type RuleConfig struct {
	Enabled bool
}

type PartialMatchConfig struct {
	Enabled  bool
	Variance float64 // relative amount variance, inclusive bound
}

// Load reads configuration from config.yaml (optional) and env. Env
// overrides use prefix RECON_, e.g. RECON_DATABASE_URL.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.url", "host=localhost user=postgres password=postgres dbname=reconciliation port=5432 sslmode=disable")
	v.SetDefault("ingest.chunk_size", 5000)
	v.SetDefault("audit.feed_limit", 100)
	v.SetDefault("matching.exact_match.enabled", true)
	v.SetDefault("matching.duplicate_check.enabled", true)
	v.SetDefault("matching.partial_match.enabled", true)
	v.SetDefault("matching.partial_match.variance", 0.02)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("RECON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return Config{
		ServerAddr:     v.GetString("server.addr"),
		DatabaseURL:    v.GetString("database.url"),
		AllowOrigins:   v.GetStringSlice("server.allow_origins"),
		ChunkSize:      v.GetInt("ingest.chunk_size"),
		AuditFeedLimit: v.GetInt("audit.feed_limit"),
		Matching: MatchingRules{
			ExactMatch:     RuleConfig{Enabled: v.GetBool("matching.exact_match.enabled")},
			DuplicateCheck: RuleConfig{Enabled: v.GetBool("matching.duplicate_check.enabled")},
			PartialMatch: PartialMatchConfig{
				Enabled:  v.GetBool("matching.partial_match.enabled"),
				Variance: v.GetFloat64("matching.partial_match.variance"),
			},
		},
	}, nil
}

// DefaultMatchingRules mirrors the Load defaults: all rules on, 2%
// partial-match variance.
func DefaultMatchingRules() MatchingRules {
	return MatchingRules{
		ExactMatch:     RuleConfig{Enabled: true},
		DuplicateCheck: RuleConfig{Enabled: true},
		PartialMatch:   PartialMatchConfig{Enabled: true, Variance: 0.02},
	}
}
