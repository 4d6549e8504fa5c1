// Package subscription is the streaming ingest seam spec §1 calls "the
// streaming account/transaction source": an abstract subscription producing
// typed updates with slot and signature. It owns a minimal in-repo
// implementation against gagliardetto/solana-go's websocket client so the
// pipeline can run end-to-end against a real endpoint, auto-reconnecting
// with exponential backoff the way the teacher's enhanced RPC client
// retries RPC nodes (internal/blockchain/solbc/rpc/enhanced_client.go).
package subscription

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"go.uber.org/zap"
)

// AccountUpdate is one observation of an account owned by a program in the
// subscribed set (spec §4.2's account subscription contract).
type AccountUpdate struct {
	Account      solana.PublicKey
	Owner        solana.PublicKey
	Slot         uint64
	Lamports     uint64
	Data         []byte
	WriteVersion uint64
}

// AccountHandler processes one AccountUpdate. It must not block for long;
// slow work belongs downstream of the debouncer.
type AccountHandler func(AccountUpdate)

// AccountSubscription streams account updates for a set of owner programs
// until ctx is cancelled, reconnecting on transport failure.
type AccountSubscription interface {
	Run(ctx context.Context, owners []solana.PublicKey, handler AccountHandler) error
}

const (
	backoffInitial = 250 * time.Millisecond
	backoffMax     = 5 * time.Second
)

// wsAccountSubscription is the websocket-backed AccountSubscription.
type wsAccountSubscription struct {
	endpoint string
	logger   *zap.Logger
}

// NewAccountSubscription builds an AccountSubscription against a Solana
// websocket endpoint.
func NewAccountSubscription(endpoint string, logger *zap.Logger) AccountSubscription {
	return &wsAccountSubscription{endpoint: endpoint, logger: logger.Named("subscription.account")}
}

func (s *wsAccountSubscription) Run(ctx context.Context, owners []solana.PublicKey, handler AccountHandler) error {
	var writeVersion uint64

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = backoffInitial
	policy.MaxInterval = backoffMax

	op := func() (struct{}, error) {
		err := s.runOnce(ctx, owners, handler, &writeVersion)
		if err != nil {
			s.logger.Warn("account subscription dropped, reconnecting", zap.Error(err))
		}
		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, op, backoff.WithBackOff(policy))
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// runOnce subscribes once per owner program and fans updates into handler
// until the connection dies or ctx is cancelled.
func (s *wsAccountSubscription) runOnce(ctx context.Context, owners []solana.PublicKey, handler AccountHandler, writeVersion *uint64) error {
	client, err := ws.Connect(ctx, s.endpoint)
	if err != nil {
		return err
	}
	defer client.Close()

	errCh := make(chan error, len(owners))
	for _, owner := range owners {
		owner := owner
		sub, err := client.ProgramSubscribeWithOpts(owner, rpc.CommitmentConfirmed, solana.EncodingBase64, nil)
		if err != nil {
			return err
		}
		go func() {
			defer sub.Unsubscribe()
			for {
				got, err := sub.Recv(ctx)
				if err != nil {
					errCh <- err
					return
				}
				handler(AccountUpdate{
					Account:      got.Value.Pubkey,
					Owner:        owner,
					Slot:         got.Context.Slot,
					Lamports:     got.Value.Account.Lamports,
					Data:         got.Value.Account.Data.GetBinary(),
					WriteVersion: atomic.AddUint64(writeVersion, 1),
				})
			}
		}()
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}
