package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	env := map[string]string{
		"ARBOT_DATABASE_URL":    "postgres://localhost/arbot",
		"ARBOT_GRPC_URL":        "grpc.example.com:443",
		"ARBOT_GRPC_TOKEN":      "tok",
		"ARBOT_SOLANA_RPC_URL":  "https://api.mainnet-beta.solana.com",
		"ARBOT_WALLET_FILE_PATH": "/tmp/keypair.json",
		"ARBOT_ENABLE_SEND_TX":   "false",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 70, cfg.RPCRateBurst)
	require.Equal(t, 75, cfg.TipPercentile)
	require.Len(t, cfg.DesiredMints, 2)
}

func TestLoadFailsWithoutRequiredVar(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("ARBOT_WALLET_FILE_PATH")

	_, err := Load()
	require.Error(t, err)
}
