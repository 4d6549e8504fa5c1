package dex

import "github.com/gagliardetto/solana-go"

// SwapInstruction is an enriched view of a raw instruction that the
// indexer has confirmed targets a known dex program with a well-formed
// account list. Mints are filled in by the caller once the pool's
// PoolConfig has been resolved (from the pool index or a fresh decode);
// an instruction alone does not carry mint pubkeys for every dex kind.
type SwapInstruction struct {
	DexKind     Kind
	PoolAddress solana.PublicKey
	Accounts    []solana.PublicKey
	BaseMint    solana.PublicKey
	QuoteMint   solana.PublicKey
}

// poolAccountIndex is the position of the pool-state account within a
// well-formed swap instruction's account list, by dex kind. Every
// Anchor-style program in this registry places the pool state account
// immediately after the signer/authority accounts; Pump AMM is the one
// kind this module's account-extraction is contractually committed to
// (see Open Question decision (a)).
var poolAccountIndex = map[Kind]int{
	KindRaydiumV4:     1,
	KindRaydiumCpmm:   2,
	KindRaydiumClmm:   2,
	KindPump:          1,
	KindPumpAmm:       2,
	KindMeteoraDlmm:   1,
	KindMeteoraDamm:   1,
	KindMeteoraDammV2: 1,
	KindWhirlpool:     1,
	KindSolFi:         1,
	KindVertigo:       1,
}

// FromInstruction extracts (dex_kind, pool_address, accounts) from a raw
// instruction, filtering out unknown program owners and instructions whose
// account count is below the dex-specific minimum (spec §4.1). Returns
// (nil, nil) — not an error — when the instruction does not target a
// known dex program or fails the minimum-account-count filter; this is the
// expected shape of "most instructions in a transaction," not a fault.
func FromInstruction(owner solana.PublicKey, accounts []solana.PublicKey) (*SwapInstruction, error) {
	kind := DexKindOf(owner)
	if kind == KindUnknown {
		return nil, nil
	}
	if len(accounts) < MinAccountsForIx(kind) {
		return nil, nil
	}

	idx, ok := poolAccountIndex[kind]
	if !ok || idx >= len(accounts) {
		return nil, nil
	}

	return &SwapInstruction{
		DexKind:     kind,
		PoolAddress: accounts[idx],
		Accounts:    accounts,
	}, nil
}
