// Package rpcclient is the thin seam around the Solana JSON-RPC endpoint:
// read account, simulate transaction, send transaction, get blockhash (spec
// §5's four RPC suspension points). It wraps gagliardetto/solana-go/rpc the
// way the teacher's internal/blockchain.Client interface does, trimmed to a
// single endpoint since this pipeline is configured with one SOLANA_RPC_URL.
package rpcclient

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// TokenBalance mirrors the unified TokenBalance shape consumed from
// transaction metadata and simulation results.
type TokenBalance struct {
	Mint     string
	Owner    string
	Amount   string
	Decimals uint8
}

// SimulationResult is the normalized view of a simulateTransaction response,
// extended past the teacher's blockchain.SimulationResult with the pre/post
// token balances the submit pipeline needs to compute the payer's
// wrapped-SOL delta.
type SimulationResult struct {
	Err               interface{}
	Logs              []string
	UnitsConsumed     uint64
	PreTokenBalances  []TokenBalance
	PostTokenBalances []TokenBalance
}

// Client is the interface the rest of the pipeline depends on, never the
// concrete *rpc.Client directly, so tests can substitute a fake.
type Client interface {
	GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error)
	GetMultipleAccounts(ctx context.Context, pubkeys []solana.PublicKey) ([]*rpc.Account, error)
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	SimulateTransaction(ctx context.Context, tx *solana.Transaction) (*SimulationResult, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// client is the solana-go-backed Client implementation.
type client struct {
	rpc    *rpc.Client
	logger *zap.Logger
}

// New builds a Client against a single RPC endpoint.
func New(endpoint string, logger *zap.Logger) Client {
	return &client{rpc: rpc.New(endpoint), logger: logger.Named("rpcclient")}
}

func (c *client) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	res, err := c.rpc.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		c.logger.Debug("get account info failed", zap.String("pubkey", pubkey.String()), zap.Error(err))
		return nil, fmt.Errorf("get account info %s: %w", pubkey, err)
	}
	return res, nil
}

func (c *client) GetMultipleAccounts(ctx context.Context, pubkeys []solana.PublicKey) ([]*rpc.Account, error) {
	res, err := c.rpc.GetMultipleAccountsWithOpts(ctx, pubkeys, &rpc.GetMultipleAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, fmt.Errorf("get multiple accounts: %w", err)
	}
	accounts := make([]*rpc.Account, len(res.Value))
	for i, v := range res.Value {
		if v == nil {
			continue
		}
		accounts[i] = v
	}
	return accounts, nil
}

func (c *client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	res, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		c.logger.Error("get latest blockhash failed", zap.Error(err))
		return solana.Hash{}, fmt.Errorf("get latest blockhash: %w", err)
	}
	return res.Value.Blockhash, nil
}

func (c *client) SimulateTransaction(ctx context.Context, tx *solana.Transaction) (*SimulationResult, error) {
	res, err := c.rpc.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:              false,
		ReplaceRecentBlockhash: false,
		Commitment:             rpc.CommitmentProcessed,
	})
	if err != nil {
		return nil, fmt.Errorf("simulate transaction: %w", err)
	}
	if res.Value == nil {
		return nil, fmt.Errorf("simulate transaction: empty response")
	}

	out := &SimulationResult{Logs: res.Value.Logs}
	if res.Value.Err != nil {
		out.Err = res.Value.Err
	}
	if res.Value.UnitsConsumed != nil {
		out.UnitsConsumed = *res.Value.UnitsConsumed
	}
	out.PreTokenBalances = toTokenBalances(res.Value.PreTokenBalances)
	out.PostTokenBalances = toTokenBalances(res.Value.PostTokenBalances)
	return out, nil
}

func toTokenBalances(in []rpc.TokenBalance) []TokenBalance {
	out := make([]TokenBalance, 0, len(in))
	for _, b := range in {
		owner := ""
		if b.Owner != nil {
			owner = b.Owner.String()
		}
		out = append(out, TokenBalance{
			Mint:     b.Mint.String(),
			Owner:    owner,
			Amount:   b.UiTokenAmount.Amount,
			Decimals: b.UiTokenAmount.Decimals,
		})
	}
	return out
}

func (c *client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       true,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		c.logger.Error("send transaction failed", zap.Error(err))
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}
	return sig, nil
}
