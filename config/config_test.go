package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		ServerPort:           8080,
		JWTSecret:            "secret",
		SchedulerEnabled:     true,
		RebalanceAt:          DefaultRebalanceAt,
		RebalanceHorizonDays: DefaultRebalanceHorizonDays,
		DefaultDailyJobLimit: DefaultDailyJobLimit,
		MaxJobPhotos:         DefaultMaxJobPhotos,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "invalid port", mutate: func(c *Config) { c.ServerPort = 0 }, wantError: true},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantError: true},
		{name: "zero daily limit", mutate: func(c *Config) { c.DefaultDailyJobLimit = 0 }, wantError: true},
		{name: "zero photo bound", mutate: func(c *Config) { c.MaxJobPhotos = 0 }, wantError: true},
		{name: "negative horizon", mutate: func(c *Config) { c.RebalanceHorizonDays = -1 }, wantError: true},
		{name: "malformed rebalance time", mutate: func(c *Config) { c.RebalanceAt = "1am" }, wantError: true},
		{
			name: "malformed rebalance time ignored when scheduler disabled",
			mutate: func(c *Config) {
				c.SchedulerEnabled = false
				c.RebalanceAt = "1am"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(&config)

			err := Validate(config)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
