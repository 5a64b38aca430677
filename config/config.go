package config

import (
	"os"
	"strconv"
)

// Consumer holds the feed consumer's settings. Flags parsed in cmd override
// these env-derived defaults.
type Consumer struct {
	Group          string // multicast group to join
	Port           int
	Listen         string // local bind address
	NoDisplay      bool   // suppress the live table; stats still emitted
	MetricsAddress string // prometheus /metrics listen address, empty = off
	LogLevel       string
}

// Load builds the consumer config from the environment.
func Load() (*Consumer, error) {
	port, err := strconv.Atoi(getEnv("UDP_PORT", "12345"))
	if err != nil {
		return nil, err
	}
	return &Consumer{
		Group:          getEnv("MULTICAST_GROUP", "239.1.1.1"),
		Port:           port,
		Listen:         getEnv("LISTEN_ADDRESS", "0.0.0.0"),
		MetricsAddress: getEnv("METRICS_ADDRESS", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
