package indexer

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/solarbx/mevcore/internal/dex"
	"github.com/solarbx/mevcore/internal/index"
	"github.com/solarbx/mevcore/internal/rpcclient"
	"github.com/solarbx/mevcore/internal/store/models"
	"github.com/solarbx/mevcore/internal/subscription"
)

type fakeRPC struct {
	getAccountInfoCalls int
}

func (f *fakeRPC) GetAccountInfo(context.Context, solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	f.getAccountInfoCalls++
	return nil, nil
}
func (f *fakeRPC) GetMultipleAccounts(context.Context, []solana.PublicKey) ([]*rpc.Account, error) {
	return nil, nil
}
func (f *fakeRPC) GetLatestBlockhash(context.Context) (solana.Hash, error) { return solana.Hash{}, nil }
func (f *fakeRPC) SendTransaction(context.Context, *solana.Transaction) (solana.Signature, error) {
	return solana.Signature{}, nil
}
func (f *fakeRPC) SimulateTransaction(context.Context, *solana.Transaction) (*rpcclient.SimulationResult, error) {
	return nil, nil
}

type fakePoolStore struct {
	upserted []*models.Pool
}

func (s *fakePoolStore) UpsertPool(_ context.Context, p *models.Pool) error {
	s.upserted = append(s.upserted, p)
	return nil
}
func (s *fakePoolStore) GetPool(context.Context, string) (*models.Pool, error) { return nil, nil }
func (s *fakePoolStore) ListPools(context.Context) ([]*models.Pool, error)    { return nil, nil }

func TestHandleSkipsUnrecognizedProgram(t *testing.T) {
	rpcFake := &fakeRPC{}
	idx := index.New()
	st := &fakePoolStore{}
	ix := New(rpcFake, idx, st, solana.NewWallet().PublicKey(), zap.NewNop())

	update := subscription.TransactionUpdate{
		Instructions: []subscription.Instruction{
			{ProgramID: solana.NewWallet().PublicKey(), Accounts: []solana.PublicKey{solana.NewWallet().PublicKey()}},
		},
	}

	ix.Handle(context.Background(), update)

	assert.Equal(t, 0, rpcFake.getAccountInfoCalls)
	assert.Empty(t, st.upserted)
}

func TestHandleSkipsAlreadyKnownPool(t *testing.T) {
	rpcFake := &fakeRPC{}
	idx := index.New()
	st := &fakePoolStore{}

	pool := solana.NewWallet().PublicKey()
	require := assert.New(t)
	require.NoError(idx.Register(index.PoolRecord{
		Pool: pool, BaseMint: solana.NewWallet().PublicKey(), QuoteMint: solana.NewWallet().PublicKey(),
		BaseVault: solana.NewWallet().PublicKey(), QuoteVault: solana.NewWallet().PublicKey(), MinorMint: solana.NewWallet().PublicKey(),
	}))

	ix := New(rpcFake, idx, st, solana.NewWallet().PublicKey(), zap.NewNop())

	accounts := make([]solana.PublicKey, 2)
	accounts[1] = pool
	update := subscription.TransactionUpdate{
		Instructions: []subscription.Instruction{
			{ProgramID: dex.RaydiumV4Program, Accounts: accounts},
		},
	}

	ix.Handle(context.Background(), update)

	assert.Equal(t, 0, rpcFake.getAccountInfoCalls)
}
