package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_SOURCE", "postgres://cashier@db.internal:5432/cashier")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "postgres://cashier@db.internal:5432/cashier", cfg.DB.Source)
	require.Equal(t, "s3cret", cfg.DB.Password)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	require.Equal(t, "cashier.events", cfg.MQ.Queue)
	require.True(t, cfg.DB.Configured())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, time.Hour, cfg.JWT.TTL)
	require.True(t, cfg.WS.Enabled)
	require.False(t, cfg.DB.Configured())
}

func TestDBConfig_Configured(t *testing.T) {
	tests := []struct {
		name string
		cfg  DBConfig
		want bool
	}{
		{"both set", DBConfig{Source: "postgres://db/cashier", Password: "x"}, true},
		{"no source", DBConfig{Password: "x"}, false},
		{"no password", DBConfig{Source: "postgres://db/cashier"}, false},
		{"blank password", DBConfig{Source: "postgres://db/cashier", Password: "   "}, false},
		{"placeholder", DBConfig{Source: "postgres://REPLACE-WITH-HOST/cashier", Password: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.cfg.Configured())
		})
	}
}
