package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashgraph-online/desktop-bridge/internal/domain/model"
)

type Config struct {
	Network  NetworkConfig
	Mirror   MirrorConfig
	Bridge   BridgeConfig
	Decoder  DecoderConfig
	Poller   PollerConfig
	Enrich   EnrichConfig
	Approval ApprovalConfig
	Notify   NotifyConfig
	Server   ServerConfig
	Tracing  TracingConfig
	Log      LogConfig
}

type NetworkConfig struct {
	Default model.Network
}

type MirrorConfig struct {
	MainnetBaseURL string
	TestnetBaseURL string
	Timeout        time.Duration
	RPS            float64
	Burst          int
}

type BridgeConfig struct {
	// RedisURL selects the split-process transport; empty means the
	// in-memory transport (single-process deployment).
	RedisURL string
}

type DecoderConfig struct {
	Command    string
	ScriptPath string
}

type PollerConfig struct {
	Interval time.Duration
}

type EnrichConfig struct {
	SettleDelay time.Duration
	Timeout     time.Duration
}

type ApprovalConfig struct {
	SigningHold    time.Duration
	ConfirmingHold time.Duration
}

type NotifyConfig struct {
	WebhookURL string
}

type ServerConfig struct {
	StatusPort int
}

type TracingConfig struct {
	Endpoint string
	Insecure bool
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	defaultNetwork, err := model.ParseNetwork(getEnv("HEDERA_NETWORK", "testnet"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Network: NetworkConfig{
			Default: defaultNetwork,
		},
		Mirror: MirrorConfig{
			MainnetBaseURL: getEnv("MIRROR_MAINNET_URL", "https://mainnet-public.mirrornode.hedera.com"),
			TestnetBaseURL: getEnv("MIRROR_TESTNET_URL", "https://testnet.mirrornode.hedera.com"),
			Timeout:        time.Duration(getEnvInt("MIRROR_TIMEOUT_SEC", 15)) * time.Second,
			RPS:            float64(getEnvInt("MIRROR_RPS", 10)),
			Burst:          getEnvInt("MIRROR_BURST", 20),
		},
		Bridge: BridgeConfig{
			RedisURL: getEnv("BRIDGE_REDIS_URL", ""),
		},
		Decoder: DecoderConfig{
			Command:    getEnv("DECODER_COMMAND", "node"),
			ScriptPath: getEnv("DECODER_SCRIPT", "scripts/transaction-parser.js"),
		},
		Poller: PollerConfig{
			Interval: time.Duration(getEnvInt("SCHEDULE_POLL_INTERVAL_MS", 5000)) * time.Millisecond,
		},
		Enrich: EnrichConfig{
			SettleDelay: time.Duration(getEnvInt("ENRICH_SETTLE_DELAY_MS", 2000)) * time.Millisecond,
			Timeout:     time.Duration(getEnvInt("ENRICH_TIMEOUT_SEC", 15)) * time.Second,
		},
		Approval: ApprovalConfig{
			SigningHold:    time.Duration(getEnvInt("APPROVAL_SIGNING_HOLD_MS", 500)) * time.Millisecond,
			ConfirmingHold: time.Duration(getEnvInt("APPROVAL_CONFIRMING_HOLD_MS", 1000)) * time.Millisecond,
		},
		Notify: NotifyConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Server: ServerConfig{
			StatusPort: getEnvInt("STATUS_PORT", 8080),
		},
		Tracing: TracingConfig{
			Endpoint: getEnv("OTLP_ENDPOINT", ""),
			Insecure: getEnvBool("OTLP_INSECURE", true),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Mirror.MainnetBaseURL == "" {
		return fmt.Errorf("MIRROR_MAINNET_URL is required")
	}
	if c.Mirror.TestnetBaseURL == "" {
		return fmt.Errorf("MIRROR_TESTNET_URL is required")
	}
	if c.Decoder.Command == "" {
		return fmt.Errorf("DECODER_COMMAND is required")
	}
	if c.Decoder.ScriptPath == "" {
		return fmt.Errorf("DECODER_SCRIPT is required")
	}
	if c.Server.StatusPort <= 0 || c.Server.StatusPort > 65535 {
		return fmt.Errorf("STATUS_PORT must be a valid port, got %d", c.Server.StatusPort)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
