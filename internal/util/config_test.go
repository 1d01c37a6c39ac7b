package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeEnvFile(t, `STORE_DRIVER=memory
REDIS_SERVER_ADDRESS=localhost:6379
TOKEN_SECRET_KEY=12345678901234567890123456789012
SWEEP_INTERVAL=250ms
MIN_BID_INCREMENT=100
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, StoreDriverMemory, config.StoreDriver)
	require.Equal(t, 250*time.Millisecond, config.SweepInterval)
	require.Equal(t, 64, config.SubscriberQueueSize)
	require.Equal(t, "0.0.0.0:8080", config.HTTPServerAddress)
	require.True(t, config.BidIncrement.Equal(decimal.NewFromInt(100)))
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "postgres_without_url",
			content: `REDIS_SERVER_ADDRESS=localhost:6379
TOKEN_SECRET_KEY=secret
`,
		},
		{
			name: "negative_increment",
			content: `STORE_DRIVER=memory
REDIS_SERVER_ADDRESS=localhost:6379
TOKEN_SECRET_KEY=secret
MIN_BID_INCREMENT=-1
`,
		},
		{
			name: "unknown_driver",
			content: `STORE_DRIVER=sqlite
REDIS_SERVER_ADDRESS=localhost:6379
TOKEN_SECRET_KEY=secret
`,
		},
		{
			name: "unknown_key",
			content: `STORE_DRIVER=memory
REDIS_SERVER_ADDRESS=localhost:6379
TOKEN_SECRET_KEY=secret
CLOUDINARY_URL=cloudinary://x
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeEnvFile(t, tc.content))
			require.Error(t, err)
		})
	}
}
