package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const DefaultPath = "config.toml"

type ServerConfig struct {
	Port string `toml:"port"`
}

type FeedConfig struct {
	Source     string `toml:"source"`
	Delimiter  string `toml:"delimiter"`
	SheetsOnly bool   `toml:"sheets_only"`
	Timeout    string `toml:"timeout"`
}

type ResolverConfig struct {
	Source  string `toml:"source"`
	BaseURL string `toml:"base_url"`
}

type SearchConfig struct {
	Threshold float64 `toml:"threshold"`
	Fuzzy     bool    `toml:"fuzzy"`
}

type ProviderConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	MaxTokens int    `toml:"max_tokens"`
}

type AIConfig struct {
	Primary    ProviderConfig `toml:"primary"`
	Secondary  ProviderConfig `toml:"secondary"`
	MaxResults int            `toml:"max_results"`
	CacheSize  int            `toml:"cache_size"`
	CacheTTL   string         `toml:"cache_ttl"`
}

type Prompts struct {
	SemanticSearch string `toml:"semantic_search"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Feed     FeedConfig     `toml:"feed"`
	Resolver ResolverConfig `toml:"resolver"`
	Search   SearchConfig   `toml:"search"`
	AI       AIConfig       `toml:"ai"`
	Prompts  Prompts        `toml:"prompts"`
	Memgraph MemgraphConfig `toml:"memgraph"`
}

// Default returns a configuration that runs without a config file.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Feed:   FeedConfig{Timeout: "30s"},
		Search: SearchConfig{Threshold: 0.35, Fuzzy: true},
		AI: AIConfig{
			Primary:    ProviderConfig{Provider: "gemini", Model: "gemini-2.5-flash"},
			Secondary:  ProviderConfig{Provider: "claude", Model: "claude-3-5-haiku-latest"},
			MaxResults: 30,
			CacheSize:  128,
			CacheTTL:   "10m",
		},
	}
}

// Load reads the TOML file at path on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Config file %s not found, using defaults", path)
		return Default(), nil
	}
	return Load(path)
}

// ApplyEnv overrides file values with any set environment variables.
func (c *Config) ApplyEnv() error {
	setString("PORT", &c.Server.Port)
	setString("FEED_SOURCE", &c.Feed.Source)
	setString("RESOLVER_SOURCE", &c.Resolver.Source)
	setString("RESOLVER_BASE_URL", &c.Resolver.BaseURL)

	if v := os.Getenv("SEARCH_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SEARCH_THRESHOLD %q: %w", v, err)
		}
		c.Search.Threshold = f
	}

	setString("PRIMARY_PROVIDER", &c.AI.Primary.Provider)
	setString("PRIMARY_MODEL", &c.AI.Primary.Model)
	setString("PRIMARY_API_KEY", &c.AI.Primary.APIKey)
	setString("SECONDARY_PROVIDER", &c.AI.Secondary.Provider)
	setString("SECONDARY_MODEL", &c.AI.Secondary.Model)
	setString("SECONDARY_API_KEY", &c.AI.Secondary.APIKey)

	setString("MEMGRAPH_URI", &c.Memgraph.URI)
	setString("MEMGRAPH_USER", &c.Memgraph.User)
	setString("MEMGRAPH_PASSWORD", &c.Memgraph.Password)
	return nil
}

// DelimiterRune returns the configured feed delimiter, zero meaning auto.
func (f FeedConfig) DelimiterRune() rune {
	switch strings.ToLower(f.Delimiter) {
	case "", "auto":
		return 0
	case "tab", `\t`:
		return '\t'
	default:
		return []rune(f.Delimiter)[0]
	}
}

func (f FeedConfig) FetchTimeout() time.Duration {
	return parseDuration(f.Timeout, 30*time.Second)
}

func (a AIConfig) TTL() time.Duration {
	return parseDuration(a.CacheTTL, 10*time.Minute)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid duration %q, using %s", s, def)
		return def
	}
	return d
}

func setString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
