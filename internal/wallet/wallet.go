// Package wallet loads the single payer keypair the submit pipeline signs
// transactions with, adapted from the teacher's internal/wallet.Wallet type
// down to the one-payer shape this pipeline needs (spec §1's WALLET_FILE_PATH
// config entry, §5's "blocking calls... must be offloaded" note for the file
// read itself).
package wallet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Wallet is the signing payer used to build and submit the arbitrage
// transaction.
type Wallet struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
}

// Load reads a solana-keygen JSON keypair file from path.
func Load(path string) (*Wallet, error) {
	pk, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("load keypair file %s: %w", path, err)
	}
	return &Wallet{PrivateKey: pk, PublicKey: pk.PublicKey()}, nil
}

// Sign signs tx with the wallet's private key, as the sole signer.
func (w *Wallet) Sign(tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.PublicKey) {
			return &w.PrivateKey
		}
		return nil
	})
	return err
}

// ATA returns the wallet's associated token account address for mint.
func (w *Wallet) ATA(mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(w.PublicKey, mint)
	return ata, err
}

func (w *Wallet) String() string {
	return w.PublicKey.String()
}
