package subscription

import (
	"context"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"go.uber.org/zap"
)

// Instruction is one instruction within a normalized Transaction (spec §6).
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []solana.PublicKey
	Data      []byte
}

// TokenBalance mirrors the unified TokenBalance shape from spec §6.
type TokenBalance struct {
	Mint     solana.PublicKey
	Owner    solana.PublicKey
	Amount   string
	Decimals uint8
}

// Meta is the normalized transaction metadata subset carried on each
// update: the error, log messages, and pre/post token balances.
type Meta struct {
	Err               interface{}
	LogMessages       []string
	PreTokenBalances  []TokenBalance
	PostTokenBalances []TokenBalance
}

// TransactionUpdate is one observation from the transaction subscription
// contract (spec §4.2): filtered by program id, normalized to the unified
// shape.
type TransactionUpdate struct {
	Signature    solana.Signature
	Slot         uint64
	AccountKeys  []solana.PublicKey
	Instructions []Instruction
	Meta         *Meta
}

// TransactionHandler processes one TransactionUpdate.
type TransactionHandler func(TransactionUpdate)

// TransactionFilter selects which transactions to surface.
type TransactionFilter struct {
	ProgramID     solana.PublicKey
	IncludeFailed bool
	IncludeVotes  bool
}

// TransactionSubscription streams transactions mentioning a program id until
// ctx is cancelled, reconnecting on transport failure.
type TransactionSubscription interface {
	Run(ctx context.Context, filter TransactionFilter, handler TransactionHandler) error
}

// wsTransactionSubscription implements TransactionSubscription by combining
// a logsSubscribe (which the standard Solana websocket API actually offers)
// with a follow-up getTransaction call per signature, the same two-step
// shape as ac3470b0_hadydotai-raydium-client's waitForTransactionResult +
// tokenDeltaFromResult.
type wsTransactionSubscription struct {
	wsEndpoint  string
	rpcEndpoint string
	rpcClient   *rpc.Client
	logger      *zap.Logger
}

// NewTransactionSubscription builds a TransactionSubscription. rpcEndpoint
// is used for the getTransaction follow-up fetch after each logs event.
func NewTransactionSubscription(wsEndpoint, rpcEndpoint string, logger *zap.Logger) TransactionSubscription {
	return &wsTransactionSubscription{
		wsEndpoint:  wsEndpoint,
		rpcEndpoint: rpcEndpoint,
		rpcClient:   rpc.New(rpcEndpoint),
		logger:      logger.Named("subscription.transaction"),
	}
}

func (s *wsTransactionSubscription) Run(ctx context.Context, filter TransactionFilter, handler TransactionHandler) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = backoffInitial
	policy.MaxInterval = backoffMax

	op := func() (struct{}, error) {
		err := s.runOnce(ctx, filter, handler)
		if err != nil {
			s.logger.Warn("transaction subscription dropped, reconnecting", zap.Error(err))
		}
		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, op, backoff.WithBackOff(policy))
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *wsTransactionSubscription) runOnce(ctx context.Context, filter TransactionFilter, handler TransactionHandler) error {
	client, err := ws.Connect(ctx, s.wsEndpoint)
	if err != nil {
		return err
	}
	defer client.Close()

	sub, err := client.LogsSubscribeMentions(filter.ProgramID, rpc.CommitmentConfirmed)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	for {
		got, err := sub.Recv(ctx)
		if err != nil {
			return err
		}
		if got.Value.Err != nil && !filter.IncludeFailed {
			continue
		}
		s.fetchAndEmit(ctx, got.Value.Signature, handler)
	}
}

func (s *wsTransactionSubscription) fetchAndEmit(ctx context.Context, sig solana.Signature, handler TransactionHandler) {
	maxVersion := uint64(0)
	res, err := s.rpcClient.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil || res == nil {
		s.logger.Debug("get transaction for logs event failed", zap.String("signature", sig.String()), zap.Error(err))
		return
	}
	tx, err := res.Transaction.GetTransaction()
	if err != nil || tx == nil {
		return
	}

	update := TransactionUpdate{
		Signature:   sig,
		Slot:        res.Slot,
		AccountKeys: tx.Message.AccountKeys,
	}
	keys := tx.Message.AccountKeys
	for _, ix := range tx.Message.Instructions {
		if int(ix.ProgramIDIndex) >= len(keys) {
			continue
		}
		accounts := make([]solana.PublicKey, 0, len(ix.Accounts))
		for _, idx := range ix.Accounts {
			if int(idx) < len(keys) {
				accounts = append(accounts, keys[idx])
			}
		}
		update.Instructions = append(update.Instructions, Instruction{
			ProgramID: keys[ix.ProgramIDIndex],
			Accounts:  accounts,
			Data:      ix.Data,
		})
	}

	if res.Meta != nil {
		meta := &Meta{LogMessages: res.Meta.LogMessages}
		if res.Meta.Err != nil {
			meta.Err = res.Meta.Err
		}
		meta.PreTokenBalances = toSubscriptionTokenBalances(res.Meta.PreTokenBalances)
		meta.PostTokenBalances = toSubscriptionTokenBalances(res.Meta.PostTokenBalances)
		update.Meta = meta
	}

	handler(update)
}

func toSubscriptionTokenBalances(in []rpc.TokenBalance) []TokenBalance {
	out := make([]TokenBalance, 0, len(in))
	for _, b := range in {
		var owner solana.PublicKey
		if b.Owner != nil {
			owner = *b.Owner
		}
		out = append(out, TokenBalance{
			Mint:     b.Mint,
			Owner:    owner,
			Amount:   b.UiTokenAmount.Amount,
			Decimals: b.UiTokenAmount.Decimals,
		})
	}
	return out
}
