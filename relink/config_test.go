package relink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.True(t, cfg.Reconnect)
	require.Equal(t, time.Second, cfg.ReconnectDelay)
	require.Equal(t, 5, cfg.MaxReconnectAttempts)
	require.Positive(t, cfg.HandshakeTimeout)
	require.Positive(t, cfg.WriteTimeout)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty address", mutate: func(c *Config) { c.Address = "" }, wantErr: true},
		{name: "malformed address", mutate: func(c *Config) { c.Address = "ws://bad\x7f" }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.ReconnectDelay = -time.Second }, wantErr: true},
		{name: "negative max attempts", mutate: func(c *Config) { c.MaxReconnectAttempts = -1 }, wantErr: true},
		{name: "zero delay is allowed", mutate: func(c *Config) { c.ReconnectDelay = 0 }},
		{name: "zero max attempts is allowed", mutate: func(c *Config) { c.MaxReconnectAttempts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Address = "ws://localhost:8080/ws"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, &Error{Code: ErrorInvalidConfig})
			} else {
				require.NoError(t, err)
			}
		})
	}
}
