package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the API origin used when none is configured.
const DefaultBaseURL = "http://localhost:5000"

// API remote task API config struct
type API struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Breaker   *Breaker
}

// Breaker circuit breaker config struct
type Breaker struct {
	Enabled      bool
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// getAPIConfig returns the api config.
func getAPIConfig(v *viper.Viper) *API {
	return &API{
		BaseURL:   strings.TrimRight(getStringOrDefault(v, "api.base_url", DefaultBaseURL), "/"),
		Timeout:   getDurationOrDefault(v, "api.timeout", 15*time.Second),
		UserAgent: getStringOrDefault(v, "api.user_agent", "taskmate"),
		Breaker: &Breaker{
			Enabled:      v.GetBool("api.breaker.enabled"),
			MaxRequests:  getUint32OrDefault(v, "api.breaker.max_requests", 1),
			Interval:     getDurationOrDefault(v, "api.breaker.interval", 60*time.Second),
			Timeout:      getDurationOrDefault(v, "api.breaker.timeout", 30*time.Second),
			MinRequests:  getUint32OrDefault(v, "api.breaker.min_requests", 3),
			FailureRatio: getFloat64OrDefault(v, "api.breaker.failure_ratio", 0.6),
		},
	}
}

// Validate checks that BaseURL is an absolute http(s) URL.
func (a *API) Validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url: missing host")
	}
	return nil
}
