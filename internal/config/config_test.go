package config

import (
	"testing"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, model.NetworkTestnet, cfg.Network.Default)
	assert.Equal(t, "https://mainnet-public.mirrornode.hedera.com", cfg.Mirror.MainnetBaseURL)
	assert.Equal(t, "https://testnet.mirrornode.hedera.com", cfg.Mirror.TestnetBaseURL)
	assert.Equal(t, 15*time.Second, cfg.Mirror.Timeout)
	assert.Equal(t, float64(10), cfg.Mirror.RPS)
	assert.Equal(t, 20, cfg.Mirror.Burst)
	assert.Empty(t, cfg.Bridge.RedisURL)
	assert.Equal(t, "node", cfg.Decoder.Command)
	assert.Equal(t, "scripts/transaction-parser.js", cfg.Decoder.ScriptPath)
	assert.Equal(t, 5*time.Second, cfg.Poller.Interval)
	assert.Equal(t, 2*time.Second, cfg.Enrich.SettleDelay)
	assert.Equal(t, 15*time.Second, cfg.Enrich.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Approval.SigningHold)
	assert.Equal(t, time.Second, cfg.Approval.ConfirmingHold)
	assert.Empty(t, cfg.Notify.WebhookURL)
	assert.Equal(t, 8080, cfg.Server.StatusPort)
	assert.Empty(t, cfg.Tracing.Endpoint)
	assert.True(t, cfg.Tracing.Insecure)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HEDERA_NETWORK", "mainnet")
	t.Setenv("BRIDGE_REDIS_URL", "redis://localhost:6379")
	t.Setenv("SCHEDULE_POLL_INTERVAL_MS", "250")
	t.Setenv("APPROVAL_SIGNING_HOLD_MS", "0")
	t.Setenv("STATUS_PORT", "9090")
	t.Setenv("OTLP_ENDPOINT", "collector:4317")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, model.NetworkMainnet, cfg.Network.Default)
	assert.Equal(t, "redis://localhost:6379", cfg.Bridge.RedisURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Poller.Interval)
	assert.Equal(t, time.Duration(0), cfg.Approval.SigningHold)
	assert.Equal(t, 9090, cfg.Server.StatusPort)
	assert.Equal(t, "collector:4317", cfg.Tracing.Endpoint)
}

func TestLoad_UnknownNetworkRejected(t *testing.T) {
	t.Setenv("HEDERA_NETWORK", "previewnet")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidPortRejected(t *testing.T) {
	t.Setenv("STATUS_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATUS_PORT")
}

func TestGetEnvInt_MalformedFallsBack(t *testing.T) {
	t.Setenv("MIRROR_RPS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, float64(10), cfg.Mirror.RPS)
}
