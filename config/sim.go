package config

import (
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// SimConfig wholly determines producer behavior. It is an immutable value
// passed in at construction; the JSON document loader is only its source.
// Prices are raw fixed-point (dollars x 10,000).
type SimConfig struct {
	MulticastAddress  string            `json:"multicast_address"`
	Port              int               `json:"port"`
	Symbols           []string          `json:"symbols"`
	MessagesPerSecond uint64            `json:"messages_per_second"`
	DurationSeconds   uint64            `json:"duration_seconds"`
	Seed              int64             `json:"seed"`
	InitialPrices     map[string]uint32 `json:"initial_prices"`
}

// DefaultSimConfig is the stream produced when no document is given.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		MulticastAddress:  "239.1.1.1",
		Port:              12345,
		Symbols:           []string{"AAPL", "TSLA", "MSFT", "AMZN", "NVDA"},
		MessagesPerSecond: 100_000,
		DurationSeconds:   10,
		Seed:              42,
		InitialPrices: map[string]uint32{
			"AAPL": 1_850_000,
			"TSLA": 2_500_000,
			"MSFT": 4_100_000,
			"AMZN": 1_780_000,
			"NVDA": 8_750_000,
		},
	}
}

// LoadSimConfig reads a JSON document, filling unset fields from the
// defaults, and validates the result. A document's initial_prices replaces
// the default map; without one, the default prices of the configured
// symbols are kept.
func LoadSimConfig(path string) (SimConfig, error) {
	cfg := DefaultSimConfig()
	defaultPrices := cfg.InitialPrices
	cfg.InitialPrices = nil
	data, err := os.ReadFile(path)
	if err != nil {
		return SimConfig{}, errors.WithMessage(err, "read sim config")
	}
	if err := jsoniter.Unmarshal(data, &cfg); err != nil {
		return SimConfig{}, errors.WithMessage(err, "decode sim config")
	}
	if cfg.InitialPrices == nil {
		cfg.InitialPrices = make(map[string]uint32, len(cfg.Symbols))
		for _, s := range cfg.Symbols {
			if p, ok := defaultPrices[s]; ok {
				cfg.InitialPrices[s] = p
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return SimConfig{}, err
	}
	return cfg, nil
}

func (c SimConfig) Validate() error {
	if c.MulticastAddress == "" {
		return errors.New("sim config: multicast_address is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("sim config: bad port %d", c.Port)
	}
	if len(c.Symbols) == 0 {
		return errors.New("sim config: at least one symbol is required")
	}
	known := make(map[string]bool, len(c.Symbols))
	for _, s := range c.Symbols {
		if s == "" || len(s) > 8 {
			return errors.Errorf("sim config: bad symbol %q", s)
		}
		known[s] = true
	}
	for s := range c.InitialPrices {
		if !known[s] {
			return errors.Errorf("sim config: initial price for unknown symbol %q", s)
		}
	}
	if c.MessagesPerSecond == 0 {
		return errors.New("sim config: messages_per_second must be positive")
	}
	if c.DurationSeconds == 0 {
		return errors.New("sim config: duration_seconds must be positive")
	}
	return nil
}
