// Package submit implements the simulate-then-submit fire stage: given a
// MevBotFire opportunity, build the MEV transaction, simulate it, check
// profitability, and submit it as a Jito bundle within the 300ms/400ms
// deadlines (spec §4.7).
package submit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solarbx/mevcore/internal/mevtx"
	"github.com/solarbx/mevcore/internal/relayer"
	"github.com/solarbx/mevcore/internal/rpcclient"
	"github.com/solarbx/mevcore/internal/store"
	"github.com/solarbx/mevcore/internal/store/models"
	"github.com/solarbx/mevcore/internal/trace"
	"github.com/solarbx/mevcore/internal/wallet"
)

// WrappedSolMint is the anchor mint the profitability check is computed
// against (spec §4.7 step 3).
var WrappedSolMint = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

// Request is one fire task's input: the opportunity plus the trace that
// has been accumulating since the originating account update.
type Request struct {
	MinorMint solana.PublicKey
	Pools     []solana.PublicKey
	Trace     *trace.Trace
}

const fallbackTipLamports = 10_000

// Pipeline is the fire stage: one instance is shared by every worker in
// the fire pubsub.Stage.
type Pipeline struct {
	rpc              rpcclient.Client
	relayer          relayer.Relayer
	builder          mevtx.Builder
	wallet           *wallet.Wallet
	tipCache         *TipCache
	store            store.SimulationLogStore
	simulateDeadline time.Duration
	submitDeadline   time.Duration
	sendEnabled      bool
	logger           *zap.Logger
}

// New builds a Pipeline. When sendEnabled is false (ENABLE_SEND_TX=false),
// every opportunity is simulated and scored but never submitted as a
// bundle — the dry-run mode spec §5 requires for the global config flag.
func New(rpc rpcclient.Client, rl relayer.Relayer, builder mevtx.Builder, w *wallet.Wallet, tipCache *TipCache, st store.SimulationLogStore, simulateDeadline, submitDeadline time.Duration, sendEnabled bool, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		rpc: rpc, relayer: rl, builder: builder, wallet: w, tipCache: tipCache, store: st,
		simulateDeadline: simulateDeadline, submitDeadline: submitDeadline, sendEnabled: sendEnabled,
		logger: logger.Named("submit"),
	}
}

// Run executes one fire task end to end, logging its Outcome to the
// SimulationLogStore before returning. It never returns an error for a
// properly-aborted opportunity — aborts are a normal outcome, not a
// pipeline failure — only for store/logging failures.
func (p *Pipeline) Run(ctx context.Context, req Request) error {
	outcome := p.run(ctx, req)
	return p.log(ctx, req, outcome)
}

func (p *Pipeline) run(ctx context.Context, req Request) Outcome {
	req.Trace.Append(trace.StepSimulationStarted, nil)

	if req.Trace.ElapsedSince() > p.simulateDeadline {
		req.Trace.Append(trace.StepDeadlineAborted, map[string]string{"gate": "simulate"})
		return Outcome{State: StateAborted, AbortReason: AbortDeadline}
	}

	blockhash, err := p.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return Outcome{State: StateAborted, AbortReason: AbortSimError, SubmitError: err}
	}

	tipLamports := p.tipCache.TipLamports(ctx, fallbackTipLamports)
	tx, err := p.builder.Build(ctx, mevtx.Request{
		Payer:       p.wallet,
		MinorMint:   req.MinorMint,
		Pools:       req.Pools,
		TipAccount:  p.relayer.TipAccount(),
		TipLamports: tipLamports,
		Blockhash:   blockhash,
	})
	if err != nil {
		return Outcome{State: StateAborted, AbortReason: AbortSimError, SubmitError: err}
	}

	sim, err := p.rpc.SimulateTransaction(ctx, tx)
	req.Trace.Append(trace.StepSimulationReturned, nil)
	if err != nil {
		return Outcome{State: StateAborted, AbortReason: AbortSimError, SubmitError: err}
	}
	if sim.Err != nil {
		return Outcome{State: StateAborted, AbortReason: AbortSimError, SubmitError: fmt.Errorf("simulation returned error: %v", sim.Err)}
	}

	delta := anchorDelta(sim, p.wallet.PublicKey)
	if delta <= 0 {
		return Outcome{State: StateAborted, AbortReason: AbortUnprofitable, AnchorDeltaLamports: delta}
	}

	if req.Trace.ElapsedSince() > p.submitDeadline {
		req.Trace.Append(trace.StepDeadlineAborted, map[string]string{"gate": "submit"})
		return Outcome{State: StateAborted, AbortReason: AbortDeadline, AnchorDeltaLamports: delta}
	}

	if !p.sendEnabled {
		p.logger.Info("profitable opportunity found, send disabled", zap.Int64("anchor_delta_lamports", delta))
		return Outcome{State: StateSimulationReturned, AnchorDeltaLamports: delta}
	}

	bundleID, err := p.relayer.SendBundle(ctx, tx)
	if err != nil {
		return Outcome{State: StateRejected, AnchorDeltaLamports: delta, SubmitError: err}
	}

	req.Trace.Append(trace.StepMevRealTxRpcReturned, map[string]string{"bundle_id": bundleID})
	return Outcome{State: StateAccepted, BundleID: bundleID, AnchorDeltaLamports: delta}
}

// anchorDelta computes the wrapped-SOL balance delta for owner between
// pre and post simulation token balances (spec §4.7 step 3).
func anchorDelta(sim *rpcclient.SimulationResult, owner solana.PublicKey) int64 {
	pre := anchorAmount(sim.PreTokenBalances, owner)
	post := anchorAmount(sim.PostTokenBalances, owner)
	return post - pre
}

func anchorAmount(balances []rpcclient.TokenBalance, owner solana.PublicKey) int64 {
	for _, b := range balances {
		if b.Mint != WrappedSolMint.String() || b.Owner != owner.String() {
			continue
		}
		var amount int64
		_, err := fmt.Sscanf(b.Amount, "%d", &amount)
		if err != nil {
			return 0
		}
		return amount
	}
	return 0
}

func (p *Pipeline) log(ctx context.Context, req Request, outcome Outcome) error {
	addrs := make([]string, len(req.Pools))
	for i, pool := range req.Pools {
		addrs[i] = pool.String()
	}

	entry := &models.MevSimulationLog{
		TraceID:             req.Trace.ID,
		MinorMint:           req.MinorMint.String(),
		PoolAddresses:       strings.Join(addrs, ","),
		SimulatedAt:         time.Now(),
		AnchorDeltaLamports: outcome.AnchorDeltaLamports,
		Submitted:           outcome.State == StateAccepted || outcome.State == StateRejected,
		BundleID:            outcome.BundleID,
		ElapsedMs:           req.Trace.ElapsedSince().Milliseconds(),
	}
	if outcome.SubmitError != nil {
		entry.ErrorMessage = outcome.SubmitError.Error()
	}

	if err := p.store.LogSimulation(ctx, entry); err != nil {
		p.logger.Warn("simulation log write failed", zap.Error(err), zap.String("trace_id", req.Trace.ID))
		return err
	}
	return nil
}
