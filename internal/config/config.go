// Package config loads the pipeline's environment configuration into one
// immutable value, adapted from the teacher's viper-based loader
// (internal/config/config.go) down to spec §6's required environment set
// plus the tunables §5/§9 leave as "tunable" (debounce window, channel
// capacities, worker-pool sizes, rate limits, dedup TTL, deadlines).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the immutable, once-loaded environment configuration. No field
// is mutated after Load returns (spec §5's "Global configuration... loaded
// once at startup into an immutable value; no runtime mutation").
type Config struct {
	DatabaseURL    string
	GRPCURL        string
	GRPCToken      string
	SolanaRPCURL   string
	SolanaWSURL    string
	WalletFilePath string
	EnableSendTx   bool
	MEVProgramID   string
	JitoEndpoint   string
	JitoAuthToken  string

	DesiredMints []string

	DebounceWindow      time.Duration
	StageChannelCap     int
	StageWorkers        int
	RPCRateLimit        float64
	RPCRateBurst        int
	SimulationRateLimit float64
	SimulationRateBurst int
	FireRateLimit       float64
	FireRateBurst       int
	DedupTTL            time.Duration
	SimulateDeadline    time.Duration
	SubmitDeadline      time.Duration
	ShutdownDrain       time.Duration
	TipCacheRefresh     time.Duration
	TipPercentile       int
}

const envPrefix = "ARBOT"

var defaults = map[string]interface{}{
	"mev_program_id":        "11111111111111111111111111111111",
	"jito_endpoint":         "https://mainnet.block-engine.jito.wtf/api/v1",
	"desired_mints":         []string{"So11111111111111111111111111111111111111112", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"},
	"debounce_window_ms":    1,
	"stage_channel_cap":     1024,
	"stage_workers":         4,
	"rpc_rate_limit":        50.0,
	"rpc_rate_burst":        70,
	"simulation_rate_limit": 20.0,
	"simulation_rate_burst": 30,
	"fire_rate_limit":       6.0,
	"fire_rate_burst":       10,
	"dedup_ttl_s":           60,
	"simulate_deadline_ms":  300,
	"submit_deadline_ms":    400,
	"shutdown_drain_s":      2,
	"tip_cache_refresh_s":   30,
	"tip_percentile":        75,
}

// Load reads the environment into a Config, applying defaults for every
// tunable the spec leaves unspecified. The required set (DATABASE_URL,
// GRPC_URL, GRPC_TOKEN, SOLANA_RPC_URL, WALLET_FILE_PATH, ENABLE_SEND_TX)
// must all be present; their absence is a Fatal-class error (spec §7).
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	required := []string{"database_url", "grpc_url", "grpc_token", "solana_rpc_url", "wallet_file_path", "enable_send_tx"}
	for _, key := range required {
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("missing required environment variable %s%s", envPrefix+"_", strings.ToUpper(key))
		}
	}

	cfg := &Config{
		DatabaseURL:         v.GetString("database_url"),
		GRPCURL:             v.GetString("grpc_url"),
		GRPCToken:           v.GetString("grpc_token"),
		SolanaRPCURL:        v.GetString("solana_rpc_url"),
		SolanaWSURL:         v.GetString("solana_ws_url"),
		WalletFilePath:      v.GetString("wallet_file_path"),
		EnableSendTx:        v.GetBool("enable_send_tx"),
		MEVProgramID:        v.GetString("mev_program_id"),
		JitoEndpoint:        v.GetString("jito_endpoint"),
		JitoAuthToken:       v.GetString("jito_auth_token"),
		DesiredMints:        v.GetStringSlice("desired_mints"),
		DebounceWindow:      time.Duration(v.GetInt("debounce_window_ms")) * time.Millisecond,
		StageChannelCap:     v.GetInt("stage_channel_cap"),
		StageWorkers:        v.GetInt("stage_workers"),
		RPCRateLimit:        v.GetFloat64("rpc_rate_limit"),
		RPCRateBurst:        v.GetInt("rpc_rate_burst"),
		SimulationRateLimit: v.GetFloat64("simulation_rate_limit"),
		SimulationRateBurst: v.GetInt("simulation_rate_burst"),
		FireRateLimit:       v.GetFloat64("fire_rate_limit"),
		FireRateBurst:       v.GetInt("fire_rate_burst"),
		DedupTTL:            time.Duration(v.GetInt("dedup_ttl_s")) * time.Second,
		SimulateDeadline:    time.Duration(v.GetInt("simulate_deadline_ms")) * time.Millisecond,
		SubmitDeadline:      time.Duration(v.GetInt("submit_deadline_ms")) * time.Millisecond,
		ShutdownDrain:       time.Duration(v.GetInt("shutdown_drain_s")) * time.Second,
		TipCacheRefresh:     time.Duration(v.GetInt("tip_cache_refresh_s")) * time.Second,
		TipPercentile:       v.GetInt("tip_percentile"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.DesiredMints) == 0 {
		return fmt.Errorf("desired_mints must not be empty")
	}
	if cfg.StageChannelCap <= 0 || cfg.StageWorkers <= 0 {
		return fmt.Errorf("stage_channel_cap and stage_workers must be positive")
	}
	return nil
}
