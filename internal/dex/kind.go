package dex

import (
	"crypto/sha256"

	"github.com/gagliardetto/solana-go"
)

// Kind identifies a decentralized exchange's account layout family.
type Kind string

const (
	KindRaydiumV4     Kind = "raydium_v4"
	KindRaydiumCpmm   Kind = "raydium_cpmm"
	KindRaydiumClmm   Kind = "raydium_clmm"
	KindPump          Kind = "pump"
	KindPumpAmm       Kind = "pump_amm"
	KindMeteoraDlmm   Kind = "meteora_dlmm"
	KindMeteoraDamm   Kind = "meteora_damm"
	KindMeteoraDammV2 Kind = "meteora_damm_v2"
	KindWhirlpool     Kind = "whirlpool"
	KindSolFi         Kind = "solfi"
	KindVertigo       Kind = "vertigo"
	KindUnknown       Kind = ""
)

// programSeed derives a stable placeholder program address for a named
// program. Deployments override these via RegisterProgramOwner; the
// seed keeps the zero-config default deterministic across runs and tests
// without depending on a hardcoded mainnet address staying pinned.
func programSeed(label string) solana.PublicKey {
	sum := sha256.Sum256([]byte(label))
	return solana.PublicKeyFromBytes(sum[:])
}

var (
	RaydiumV4Program     = programSeed("raydium-amm-v4")
	RaydiumCpmmProgram   = programSeed("raydium-cpmm")
	RaydiumClmmProgram   = programSeed("raydium-clmm")
	PumpProgram          = programSeed("pump-bonding-curve")
	PumpAmmProgram       = programSeed("pump-amm")
	MeteoraDlmmProgram   = programSeed("meteora-dlmm")
	MeteoraDammProgram   = programSeed("meteora-damm-v1")
	MeteoraDammV2Program = programSeed("meteora-damm-v2")
	WhirlpoolProgram     = programSeed("orca-whirlpool")
	SolFiProgram         = programSeed("solfi")
	VertigoProgram       = programSeed("vertigo")
)

// programOwners is the closed mapping from a pool account's owning program
// to the dex kind that knows how to decode it.
var programOwners = map[solana.PublicKey]Kind{
	RaydiumV4Program:     KindRaydiumV4,
	RaydiumCpmmProgram:   KindRaydiumCpmm,
	RaydiumClmmProgram:   KindRaydiumClmm,
	PumpProgram:          KindPump,
	PumpAmmProgram:       KindPumpAmm,
	MeteoraDlmmProgram:   KindMeteoraDlmm,
	MeteoraDammProgram:   KindMeteoraDamm,
	MeteoraDammV2Program: KindMeteoraDammV2,
	WhirlpoolProgram:     KindWhirlpool,
	SolFiProgram:         KindSolFi,
	VertigoProgram:       KindVertigo,
}

// RegisterProgramOwner lets deployment config point a dex kind at the real
// mainnet program address without editing source.
func RegisterProgramOwner(owner solana.PublicKey, kind Kind) {
	programOwners[owner] = kind
}

// KnownProgramOwners returns every program address the registry currently
// recognizes, the set the account subscription watches.
func KnownProgramOwners() []solana.PublicKey {
	owners := make([]solana.PublicKey, 0, len(programOwners))
	for owner := range programOwners {
		owners = append(owners, owner)
	}
	return owners
}

// DexKindOf maps a pool account's owner program to its dex kind, or
// KindUnknown when the owner is not one of the known DEX programs.
func DexKindOf(owner solana.PublicKey) Kind {
	if kind, ok := programOwners[owner]; ok {
		return kind
	}
	return KindUnknown
}

// MinAccountsForIx is the minimum account count a swap instruction for this
// dex kind must carry to be considered well-formed; see spec §4.1.
func MinAccountsForIx(kind Kind) int {
	switch kind {
	case KindMeteoraDlmm:
		return 15
	case KindMeteoraDammV2:
		return 14
	case KindPumpAmm:
		return 5
	default:
		return 0
	}
}
