package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func writeKeygenFile(t *testing.T, pk solana.PrivateKey) string {
	t.Helper()
	raw, err := json.Marshal([]byte(pk))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "keypair.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestLoadRoundTripsKeypair(t *testing.T) {
	pk, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	path := writeKeygenFile(t, pk)

	w, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, pk.PublicKey(), w.PublicKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestSignAddsWalletSignature(t *testing.T) {
	pk, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	w := &Wallet{PrivateKey: pk, PublicKey: pk.PublicKey()}

	tx := &solana.Transaction{
		Message: solana.Message{
			Header:      solana.MessageHeader{NumRequiredSignatures: 1},
			AccountKeys: []solana.PublicKey{w.PublicKey},
		},
	}
	require.NoError(t, w.Sign(tx))
	require.Len(t, tx.Signatures, 1)
}
