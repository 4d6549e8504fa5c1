// Package mevtx is the seam spec §1 carves out for "the wallet, keypair
// handling, and final instruction encoding for the MEV program": a builder
// taking a payer, a minor mint, and an ordered list of pools, yielding a
// signed transaction ready to submit. The MEV program's own instruction
// layout is out of scope; this builds the tip transfer the same way the
// teacher's jito helper does (nick199910-SolRoute/pkg/sol/jito.go's
// createTipTransaction) and appends a placeholder invocation of this
// package's MevProgramID carrying the pool route as instruction accounts.
package mevtx

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/solarbx/mevcore/internal/blockchain/solana/programs/computebudget"
	"github.com/solarbx/mevcore/internal/wallet"
)

// Builder constructs a signed arbitrage transaction: a tip transfer to the
// relayer's tip account followed by the MEV-program invocation.
type Builder interface {
	Build(ctx context.Context, req Request) (*solana.Transaction, error)
}

// Request carries everything the builder needs for one fire attempt.
type Request struct {
	Payer        *wallet.Wallet
	MinorMint    solana.PublicKey
	Pools        []solana.PublicKey
	TipAccount   solana.PublicKey
	TipLamports  uint64
	Blockhash    solana.Hash
	ComputeUnits uint32
}

// MevProgramID is the on-chain program this pipeline's transactions invoke.
// The program's own instruction encoding is out of scope (spec §1); this
// package only needs its address to shape the account list and discriminator
// prefix for the placeholder invocation below.
var MevProgramID = solana.MustPublicKeyFromBase58("Mev1111111111111111111111111111111111111111")

type builder struct{}

// New returns the default Builder.
func New() Builder {
	return &builder{}
}

func (b *builder) Build(ctx context.Context, req Request) (*solana.Transaction, error) {
	if req.Payer == nil {
		return nil, fmt.Errorf("build arbitrage tx: payer required")
	}
	if len(req.Pools) < 2 {
		return nil, fmt.Errorf("build arbitrage tx: need at least 2 pools, got %d", len(req.Pools))
	}

	units := req.ComputeUnits
	if units == 0 {
		units = computebudget.StandardUnits
	}
	budgetInstructions, err := computebudget.BuildInstructions(computebudget.Config{Units: units})
	if err != nil {
		return nil, fmt.Errorf("build compute budget instructions: %w", err)
	}

	tipIx := system.NewTransferInstruction(req.TipLamports, req.Payer.PublicKey, req.TipAccount).Build()
	mevIx := newMevInvocation(req.Payer.PublicKey, req.MinorMint, req.Pools)

	instructions := make([]solana.Instruction, 0, len(budgetInstructions)+2)
	instructions = append(instructions, budgetInstructions...)
	instructions = append(instructions, tipIx, mevIx)

	tx, err := solana.NewTransaction(instructions, req.Blockhash, solana.TransactionPayer(req.Payer.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("build arbitrage tx: %w", err)
	}
	if err := req.Payer.Sign(tx); err != nil {
		return nil, fmt.Errorf("sign arbitrage tx: %w", err)
	}
	return tx, nil
}

// newMevInvocation builds the placeholder MEV-program instruction: the
// payer as signer/writable account, the minor mint read-only, then each
// pool address read-only, with the pool count (u16 LE) as instruction data.
func newMevInvocation(payer, minorMint solana.PublicKey, pools []solana.PublicKey) solana.Instruction {
	accounts := []*solana.AccountMeta{
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(minorMint, false, false),
	}
	for _, p := range pools {
		accounts = append(accounts, solana.NewAccountMeta(p, false, false))
	}

	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, uint16(len(pools)))

	return solana.NewInstruction(MevProgramID, accounts, data)
}
