// Package config loads the resolver's tunables from a YAML file via viper,
// then applies bounded AMS_* environment overrides, the teacher's config
// idiom generalized from a single global struct to the address-matching
// domain.
package config

import (
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds every tunable named in spec.md §6 plus the ambient wiring
// (bind address, database, cache, search) needed to stand the service up.
type Config struct {
	StructuredMinConfidence float64 `yaml:"structured_min_confidence" json:"structured_min_confidence"`
	FuzzyMinConfidence      float64 `yaml:"fuzzy_min_confidence" json:"fuzzy_min_confidence"`
	LLMMinConfidence        float64 `yaml:"llm_min_confidence" json:"llm_min_confidence"`
	MaxCandidates           int     `yaml:"max_candidates" json:"max_candidates"`
	LLMCommand              string  `yaml:"llm_command" json:"llm_command"`

	BindAddress  string `yaml:"bind_address" json:"bind_address"`
	BindPort     int    `yaml:"bind_port" json:"bind_port"`
	DBConnection string `yaml:"db_connection" json:"db_connection"`
	AllowedCIDR  string `yaml:"allowed_cidr" json:"allowed_cidr"`

	RedisAddress string `yaml:"redis_address" json:"redis_address"`
	CacheTTLSecs int    `yaml:"cache_ttl_seconds" json:"cache_ttl_seconds"`
	L1CacheSize  int    `yaml:"l1_cache_size" json:"l1_cache_size"`

	MeiliHost   string `yaml:"meili_host" json:"meili_host"`
	MeiliAPIKey string `yaml:"meili_api_key" json:"meili_api_key"`
}

// defaults mirror spec.md §6 and original_source's DEFAULT_* constants.
func defaults() Config {
	return Config{
		StructuredMinConfidence: 0.65,
		FuzzyMinConfidence:      0.55,
		LLMMinConfidence:        0.70,
		MaxCandidates:           5,
		BindAddress:             "192.168.1.10",
		BindPort:                8080,
		DBConnection:            "postgresql://localhost/address_matcher",
		AllowedCIDR:             "192.168.1.0/24",
		CacheTTLSecs:            300,
		L1CacheSize:             10000,
	}
}

// Load reads a YAML config file at path (missing file is not an error — the
// built-in defaults apply), then layers bounded AMS_* environment overrides
// on top.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	cfg := defaults()
	v.SetDefault("structured_min_confidence", cfg.StructuredMinConfidence)
	v.SetDefault("fuzzy_min_confidence", cfg.FuzzyMinConfidence)
	v.SetDefault("llm_min_confidence", cfg.LLMMinConfidence)
	v.SetDefault("max_candidates", cfg.MaxCandidates)
	v.SetDefault("bind_address", cfg.BindAddress)
	v.SetDefault("bind_port", cfg.BindPort)
	v.SetDefault("db_connection", cfg.DBConnection)
	v.SetDefault("allowed_cidr", cfg.AllowedCIDR)
	v.SetDefault("cache_ttl_seconds", cfg.CacheTTLSecs)
	v.SetDefault("l1_cache_size", cfg.L1CacheSize)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return cfg, err
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides layers the AMS_* environment family on top of cfg,
// accepting each value only within its legal range (spec.md §6); an
// out-of-range or unparseable override is ignored, leaving the prior value
// in place.
func applyEnvOverrides(cfg *Config) {
	if f, ok := envFloat("AMS_STRUCTURED_THRESHOLD"); ok && inUnitRange(f) {
		cfg.StructuredMinConfidence = f
	}
	if f, ok := envFloat("AMS_FUZZY_THRESHOLD"); ok && inUnitRange(f) {
		cfg.FuzzyMinConfidence = f
	}
	if f, ok := envFloat("AMS_LLM_THRESHOLD"); ok && inUnitRange(f) {
		cfg.LLMMinConfidence = f
	}
	if n, ok := envInt("AMS_MAX_CANDIDATES"); ok && n > 0 && n <= 16 {
		cfg.MaxCandidates = n
	}
	if v, ok := os.LookupEnv("AMS_LLM_COMMAND"); ok && v != "" {
		cfg.LLMCommand = v
	}
	if v, ok := os.LookupEnv("AMS_BIND_ADDRESS"); ok && v != "" {
		cfg.BindAddress = v
	}
	if n, ok := envInt("AMS_BIND_PORT"); ok && n > 0 && n <= 65535 {
		cfg.BindPort = n
	}
	if v, ok := os.LookupEnv("AMS_DB_CONNECTION"); ok && v != "" {
		cfg.DBConnection = v
	}
	if v, ok := os.LookupEnv("AMS_ALLOWED_CIDR"); ok && v != "" {
		cfg.AllowedCIDR = v
	}
	if v, ok := os.LookupEnv("AMS_REDIS_ADDRESS"); ok && v != "" {
		cfg.RedisAddress = v
	}
	if v, ok := os.LookupEnv("AMS_MEILI_HOST"); ok && v != "" {
		cfg.MeiliHost = v
	}
	if v, ok := os.LookupEnv("AMS_MEILI_API_KEY"); ok && v != "" {
		cfg.MeiliAPIKey = v
	}
}

func inUnitRange(f float64) bool {
	return f > 0.0 && f < 1.0
}

func envFloat(name string) (float64, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func envInt(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// OracleEnabled reports whether an oracle command has been configured.
func (c Config) OracleEnabled() bool {
	return c.LLMCommand != ""
}
