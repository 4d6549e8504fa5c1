package submit

import (
	"context"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/solarbx/mevcore/internal/mevtx"
	"github.com/solarbx/mevcore/internal/rpcclient"
	"github.com/solarbx/mevcore/internal/store/models"
	"github.com/solarbx/mevcore/internal/trace"
	"github.com/solarbx/mevcore/internal/wallet"
)

type fakeRPC struct {
	sim *rpcclient.SimulationResult
}

func (f *fakeRPC) GetAccountInfo(context.Context, solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	return nil, nil
}
func (f *fakeRPC) GetMultipleAccounts(context.Context, []solana.PublicKey) ([]*rpc.Account, error) {
	return nil, nil
}
func (f *fakeRPC) GetLatestBlockhash(context.Context) (solana.Hash, error) {
	return solana.Hash{1, 2, 3}, nil
}
func (f *fakeRPC) SimulateTransaction(context.Context, *solana.Transaction) (*rpcclient.SimulationResult, error) {
	return f.sim, nil
}
func (f *fakeRPC) SendTransaction(context.Context, *solana.Transaction) (solana.Signature, error) {
	return solana.Signature{}, nil
}

type fakeBuilder struct{}

func (fakeBuilder) Build(ctx context.Context, req mevtx.Request) (*solana.Transaction, error) {
	return &solana.Transaction{}, nil
}

type fakeRelayer struct {
	tip       solana.PublicKey
	bundleID  string
	sendError error
}

func (r *fakeRelayer) SendBundle(context.Context, *solana.Transaction) (string, error) {
	return r.bundleID, r.sendError
}
func (r *fakeRelayer) TipAccount() solana.PublicKey { return r.tip }

type fakeStore struct {
	entries []*models.MevSimulationLog
	kv      map[string]string
}

func (s *fakeStore) LogSimulation(_ context.Context, entry *models.MevSimulationLog) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *fakeStore) Read(_ context.Context, cacheType, key string) (string, bool, error) {
	v, ok := s.kv[cacheType+"/"+key]
	return v, ok, nil
}

func (s *fakeStore) Write(_ context.Context, cacheType, key, value string, _ time.Time) error {
	if s.kv == nil {
		s.kv = make(map[string]string)
	}
	s.kv[cacheType+"/"+key] = value
	return nil
}

func testWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	pk, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return &wallet.Wallet{PrivateKey: pk, PublicKey: pk.PublicKey()}
}

func TestPipelineAbortsOnUnprofitableDelta(t *testing.T) {
	w := testWallet(t)
	rpc := &fakeRPC{sim: &rpcclient.SimulationResult{
		PreTokenBalances:  []rpcclient.TokenBalance{{Mint: WrappedSolMint.String(), Owner: w.PublicKey.String(), Amount: "100"}},
		PostTokenBalances: []rpcclient.TokenBalance{{Mint: WrappedSolMint.String(), Owner: w.PublicKey.String(), Amount: "100"}},
	}}
	relay := &fakeRelayer{tip: solana.NewWallet().PublicKey()}
	st := &fakeStore{}
	tipCache := NewTipCache(75, time.Minute, st)

	p := New(rpc, relay, fakeBuilder{}, w, tipCache, st, 300*time.Millisecond, 400*time.Millisecond, true, zap.NewNop())

	req := Request{MinorMint: solana.NewWallet().PublicKey(), Pools: []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()}, Trace: trace.New(1)}
	require.NoError(t, p.Run(context.Background(), req))
	require.Len(t, st.entries, 1)
	assert.False(t, st.entries[0].Submitted)
	assert.Equal(t, int64(0), st.entries[0].AnchorDeltaLamports)
}

func TestPipelineSubmitsOnProfitableDelta(t *testing.T) {
	w := testWallet(t)
	rpc := &fakeRPC{sim: &rpcclient.SimulationResult{
		PreTokenBalances:  []rpcclient.TokenBalance{{Mint: WrappedSolMint.String(), Owner: w.PublicKey.String(), Amount: "100"}},
		PostTokenBalances: []rpcclient.TokenBalance{{Mint: WrappedSolMint.String(), Owner: w.PublicKey.String(), Amount: "500"}},
	}}
	relay := &fakeRelayer{tip: solana.NewWallet().PublicKey(), bundleID: "bundle-123"}
	st := &fakeStore{}
	tipCache := NewTipCache(75, time.Minute, st)

	p := New(rpc, relay, fakeBuilder{}, w, tipCache, st, 300*time.Millisecond, 400*time.Millisecond, true, zap.NewNop())

	req := Request{MinorMint: solana.NewWallet().PublicKey(), Pools: []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()}, Trace: trace.New(1)}
	require.NoError(t, p.Run(context.Background(), req))
	require.Len(t, st.entries, 1)
	assert.True(t, st.entries[0].Submitted)
	assert.Equal(t, "bundle-123", st.entries[0].BundleID)
	assert.Equal(t, int64(400), st.entries[0].AnchorDeltaLamports)
}

func TestPipelineSkipsSubmitWhenSendDisabled(t *testing.T) {
	w := testWallet(t)
	rpc := &fakeRPC{sim: &rpcclient.SimulationResult{
		PreTokenBalances:  []rpcclient.TokenBalance{{Mint: WrappedSolMint.String(), Owner: w.PublicKey.String(), Amount: "100"}},
		PostTokenBalances: []rpcclient.TokenBalance{{Mint: WrappedSolMint.String(), Owner: w.PublicKey.String(), Amount: "500"}},
	}}
	relay := &fakeRelayer{tip: solana.NewWallet().PublicKey(), bundleID: "bundle-123"}
	st := &fakeStore{}
	tipCache := NewTipCache(75, time.Minute, st)

	p := New(rpc, relay, fakeBuilder{}, w, tipCache, st, 300*time.Millisecond, 400*time.Millisecond, false, zap.NewNop())

	req := Request{MinorMint: solana.NewWallet().PublicKey(), Pools: []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()}, Trace: trace.New(1)}
	require.NoError(t, p.Run(context.Background(), req))
	require.Len(t, st.entries, 1)
	assert.False(t, st.entries[0].Submitted)
	assert.Empty(t, st.entries[0].BundleID)
	assert.Equal(t, int64(400), st.entries[0].AnchorDeltaLamports)
}
