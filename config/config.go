package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported vendors
const (
	VendorWeatherAPI     = "weatherapi"
	VendorOpenWeatherMap = "openweathermap"
)

// Config represents the application configuration
type Config struct {
	// Vendor selects the weather API adapter
	Vendor  string `json:"vendor"`
	APIKey  string `json:"-"`
	BaseURL string `json:"baseURL"`

	// Cities kept warm by the background refresher
	Cities []string `json:"cities"`

	HTTPAddr        string        `json:"-"`
	LogLevel        slog.Level    `json:"-"`
	LogFormat       string        `json:"-"`
	FetchTimeout    time.Duration `json:"-"`
	ProbeTimeout    time.Duration `json:"-"`
	RefreshInterval time.Duration `json:"-"`
	CacheTTL        time.Duration `json:"-"`
	ShutdownTimeout time.Duration `json:"-"`

	// Token bucket in front of the vendor; RateLimitRPS <= 0 disables it.
	// The effective burst is never below len(Cities), so one refresh pass
	// over every watched city fits in a single burst.
	RateLimitRPS   float64 `json:"-"`
	RateLimitBurst int     `json:"-"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Vendor:          VendorWeatherAPI,
		Cities:          []string{"Chennai"},
		HTTPAddr:        ":8080",
		LogLevel:        slog.LevelInfo,
		LogFormat:       "json",
		FetchTimeout:    10 * time.Second,
		ProbeTimeout:    5 * time.Second,
		RefreshInterval: 10 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
		RateLimitRPS:    0.4,
		RateLimitBurst:  3,
	}
}

// Load reads the optional JSON file at path, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	switch cfg.Vendor {
	case VendorWeatherAPI, VendorOpenWeatherMap:
	default:
		return nil, fmt.Errorf("invalid WEATHER_VENDOR %q (allowed: %s, %s)", cfg.Vendor, VendorWeatherAPI, VendorOpenWeatherMap)
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst <= 0 {
		return nil, errors.New("RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}

	return cfg, nil
}

// HasCredential reports whether a vendor key is configured.
func (c *Config) HasCredential() bool {
	return c.APIKey != ""
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := envTrimmed("WEATHER_VENDOR"); v != "" {
		cfg.Vendor = strings.ToLower(v)
	}
	cfg.APIKey = envTrimmed("WEATHER_API_KEY")
	if v := envTrimmed("WEATHER_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := envTrimmed("WEATHER_CITIES"); v != "" {
		cfg.Cities = splitList(v)
	}
	if v := envTrimmed("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := envTrimmed("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if v := envTrimmed("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.LogFormat = v
		default:
			return fmt.Errorf("invalid LOG_FORMAT %q (allowed: json, text)", v)
		}
	}

	durations := []struct {
		name     string
		dst      *time.Duration
		zeroOkay bool
	}{
		{"FETCH_TIMEOUT", &cfg.FetchTimeout, false},
		{"PROBE_TIMEOUT", &cfg.ProbeTimeout, false},
		{"REFRESH_INTERVAL", &cfg.RefreshInterval, false},
		{"CACHE_TTL", &cfg.CacheTTL, true},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout, false},
	}
	for _, d := range durations {
		if err := parseDuration(d.name, d.dst, d.zeroOkay); err != nil {
			return err
		}
	}

	if v := envTrimmed("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
		cfg.RateLimitRPS = rps
	}
	if v := envTrimmed("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
		cfg.RateLimitBurst = burst
	}

	return nil
}

func parseDuration(name string, dst *time.Duration, zeroOkay bool) error {
	v := envTrimmed(name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	if d < 0 || (d == 0 && !zeroOkay) {
		return fmt.Errorf("invalid %s %q: must be positive", name, v)
	}
	*dst = d
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envTrimmed(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}
