// Package relayer is the thin seam over the bundle relayer: send a signed
// transaction as a single-tx bundle and look up a tip account to pay into
// (spec §6's bundle relayer wire protocol). Grounded on nick199910-SolRoute's
// pkg/sol/jito.go and pkg/sol/send.go, which show the real jito-go-rpc
// SendBundle shape: a [][]string of base64-encoded signed transactions in,
// raw JSON bytes (a quoted bundle id) out.
package relayer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	jitorpc "github.com/jito-labs/jito-go-rpc"
	"go.uber.org/zap"
)

// Relayer is the interface the submit pipeline depends on.
type Relayer interface {
	// SendBundle submits one already-signed transaction as a single-tx
	// bundle, returning the relayer-assigned bundle id.
	SendBundle(ctx context.Context, tx *solana.Transaction) (string, error)
	// TipAccount returns a tip account to pay into; jito rotates these to
	// spread load across its tip-collection accounts.
	TipAccount() solana.PublicKey
}

// jitoRelayer is the jito-go-rpc-backed Relayer implementation.
type jitoRelayer struct {
	rpc        *jitorpc.JitoJsonRpcClient
	tipAccount solana.PublicKey
	logger     *zap.Logger
}

// New dials endpoint and picks an initial tip account.
func New(ctx context.Context, endpoint, authToken string, logger *zap.Logger) (Relayer, error) {
	rpcClient := jitorpc.NewJitoJsonRpcClient(endpoint, authToken)

	tip, err := rpcClient.GetRandomTipAccount()
	if err != nil {
		return nil, fmt.Errorf("get random tip account: %w", err)
	}
	tipAccount, err := solana.PublicKeyFromBase58(tip.Address)
	if err != nil {
		return nil, fmt.Errorf("parse tip account %q: %w", tip.Address, err)
	}

	return &jitoRelayer{rpc: rpcClient, tipAccount: tipAccount, logger: logger.Named("relayer")}, nil
}

func (r *jitoRelayer) TipAccount() solana.PublicKey {
	return r.tipAccount
}

func (r *jitoRelayer) SendBundle(ctx context.Context, tx *solana.Transaction) (string, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("marshal transaction: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	bundleRequest := [][]string{{encoded}}
	bundleIDRaw, err := r.rpc.SendBundle(bundleRequest)
	if err != nil {
		r.logger.Error("send bundle failed", zap.Error(err))
		return "", fmt.Errorf("send bundle: %w", err)
	}

	var bundleID string
	if err := json.Unmarshal(bundleIDRaw, &bundleID); err != nil {
		return "", fmt.Errorf("unmarshal bundle id: %w", err)
	}
	return bundleID, nil
}
