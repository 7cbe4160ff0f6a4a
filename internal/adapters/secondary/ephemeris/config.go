package ephemeris

import "time"

type Config struct {
	BaseURL    string        `envconfig:"BASE_URL"`
	ApiVersion string        `envconfig:"VERSION"`
	ApiKey     string        `envconfig:"API_KEY"`
	SkipSSL    string        `envconfig:"SKIP_SSL"` // Railway требует строки вместо bool
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"30s"`
	CacheTTL   time.Duration `envconfig:"CACHE_TTL" default:"168h"`
}

func (c *Config) ShouldSkipSSL() bool {
	return c.SkipSSL == "true" || c.SkipSSL == "1" || c.SkipSSL == "True"
}

func (c *Config) IsEnabled() bool {
	return c != nil && c.BaseURL != ""
}
