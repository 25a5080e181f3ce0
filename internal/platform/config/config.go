package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const secretMask = "********"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Vendor    VendorConfig    `mapstructure:"vendor"`
	Store     StoreConfig     `mapstructure:"store"`
	Webhooks  WebhooksConfig  `mapstructure:"webhooks"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Handoff   HandoffConfig   `mapstructure:"handoff"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type VendorConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKeyHeader string        `mapstructure:"api_key_header"`
	Timeout      time.Duration `mapstructure:"timeout"`
	PublicKey    string        `mapstructure:"public_key"`
	Sandbox      bool          `mapstructure:"sandbox"`
	CrossCheck   ProductConfig `mapstructure:"crosscheck"`
	DOB          ProductConfig `mapstructure:"dob"`
	SSN          ProductConfig `mapstructure:"ssn"`
}

// ProductConfig is the upstream path and secret for one verification product.
type ProductConfig struct {
	Path   string       `mapstructure:"path"`
	APIKey SecretString `mapstructure:"api_key"`
}

type StoreConfig struct {
	Driver        string        `mapstructure:"driver"` // memory, sqlite, redis
	URL           string        `mapstructure:"url"`
	Token         SecretString  `mapstructure:"token"`
	SQLitePath    string        `mapstructure:"sqlite_path"`
	MaxEntries    int64         `mapstructure:"max_entries"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

type WebhooksConfig struct {
	MaxRecords     int           `mapstructure:"max_records"`
	TTL            time.Duration `mapstructure:"ttl"`
	ListKey        string        `mapstructure:"list_key"`
	IndexPrefix    string        `mapstructure:"index_prefix"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	SigningSecret  SecretString  `mapstructure:"signing_secret"`
	AdminTokenHash string        `mapstructure:"admin_token_hash"`
}

type RateLimitConfig struct {
	VerificationPerMinute int `mapstructure:"verification_per_minute"`
	WebhookPerMinute      int `mapstructure:"webhook_per_minute"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

type HandoffConfig struct {
	AllowedHosts []string `mapstructure:"allowed_hosts"`
	DefaultSize  int      `mapstructure:"default_size"`
}

var defaults = map[string]interface{}{
	"server.host":             "0.0.0.0",
	"server.port":             8080,
	"server.read_timeout":     "15s",
	"server.write_timeout":    "60s",
	"server.idle_timeout":     "120s",
	"server.shutdown_timeout": "10s",

	"vendor.base_url":       "https://verify.vouched.id",
	"vendor.api_key_header": "X-API-Key",
	"vendor.timeout":        "30s",
	"vendor.public_key":     "",
	"vendor.sandbox":        true,

	"vendor.crosscheck.path":    "/api/identity/crosscheck",
	"vendor.crosscheck.api_key": "",
	"vendor.dob.path":           "/api/identity/dob",
	"vendor.dob.api_key":        "",
	"vendor.ssn.path":           "/api/identity/ssn",
	"vendor.ssn.api_key":        "",

	"store.driver":         "memory",
	"store.url":            "",
	"store.token":          "",
	"store.sqlite_path":    "data/idvdemo.db",
	"store.max_entries":    10000,
	"store.purge_interval": "1m",

	"webhooks.max_records":      10,
	"webhooks.ttl":              "600s",
	"webhooks.list_key":         "webhook_responses",
	"webhooks.index_prefix":     "webhook_job:",
	"webhooks.max_body_bytes":   1 << 20,
	"webhooks.signing_secret":   "",
	"webhooks.admin_token_hash": "",

	"rate_limit.verification_per_minute": 30,
	"rate_limit.webhook_per_minute":      600,

	"logging.level":     "info",
	"logging.format":    "json",
	"logging.output":    "stdout",
	"logging.file_path": "",

	"handoff.allowed_hosts": []string{},
	"handoff.default_size":  256,
}

// Load reads the optional YAML file at path and overlays environment
// variables, e.g. VENDOR_CROSSCHECK_API_KEY or STORE_DRIVER.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	))); err != nil {
		return nil, err
	}

	return &config, nil
}

// SecretString keeps credentials out of logs and JSON output.
type SecretString struct {
	secret string
}

func NewSecretString(s string) SecretString {
	return SecretString{s}
}

func (s SecretString) RawString() string {
	return s.secret
}

func (s SecretString) IsSet() bool {
	return s.secret != ""
}

func (s SecretString) String() string {
	return secretMask
}

func (s SecretString) MarshalJSON() ([]byte, error) {
	return []byte(`"` + secretMask + `"`), nil
}

func (s SecretString) MarshalText() ([]byte, error) {
	return []byte(secretMask), nil
}

func (s *SecretString) UnmarshalText(text []byte) error {
	s.secret = string(text)
	return nil
}
