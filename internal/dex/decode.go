package dex

import bin "github.com/gagliardetto/binary"

// decodeBorsh skips the 8-byte Anchor discriminator and positionally
// decodes the remaining bytes into v. Every per-dex pool record is a
// fixed-size struct behind that discriminator; there is no variable-length
// self-describing framing (spec §4.1).
func decodeBorsh(kind Kind, data []byte, minPayload int, v interface{}) error {
	if len(data) < 8+minPayload {
		return &ErrInvalidLayout{Kind: kind, Got: len(data), Want: 8 + minPayload}
	}
	dec := bin.NewBinDecoder(data[8:])
	return dec.Decode(v)
}
