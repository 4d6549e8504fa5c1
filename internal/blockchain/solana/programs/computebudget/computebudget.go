// Package computebudget builds ComputeBudget111111... program instructions
// for capping compute units and bidding a priority fee on a transaction.
package computebudget

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var ProgramID = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")

const (
	RequestUnitsDeprecated uint8 = 0
	RequestHeapFrame       uint8 = 1
	SetComputeUnitLimit    uint8 = 2
	SetComputeUnitPrice    uint8 = 3
)

// StandardUnits is the compute unit cap for a fire transaction: a tip
// transfer plus one MEV-program invocation, twice the default 200k
// per-instruction budget to leave headroom for the program's own swap path.
const StandardUnits uint32 = 400_000

// Config carries the compute-budget instructions to attach to a transaction.
type Config struct {
	Units         uint32  // compute unit limit
	PriorityFee   float64 // priority fee, in SOL
	HeapFrameSize uint32  // extra heap memory requested, if any
}

// ConvertSolToMicrolamports converts a SOL amount to the microlamports unit
// SetComputeUnitPrice expects.
func ConvertSolToMicrolamports(sol float64) uint64 {
	return uint64(sol * 1e15)
}

// BuildInstructions returns the compute-budget instructions config calls for.
func BuildInstructions(config Config) ([]solana.Instruction, error) {
	var instructions []solana.Instruction

	if config.Units > 0 {
		limitInstr, err := createSetComputeUnitLimitInstruction(config.Units)
		if err != nil {
			return nil, fmt.Errorf("failed to create unit limit instruction: %w", err)
		}
		instructions = append(instructions, limitInstr)
	}

	if config.PriorityFee > 0 {
		priceInstr, err := createSetComputeUnitPriceInstruction(config.PriorityFee)
		if err != nil {
			return nil, fmt.Errorf("failed to create unit price instruction: %w", err)
		}
		instructions = append(instructions, priceInstr)
	}

	if config.HeapFrameSize > 0 {
		heapInstr, err := createRequestHeapFrameInstruction(config.HeapFrameSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create heap frame instruction: %w", err)
		}
		instructions = append(instructions, heapInstr)
	}

	return instructions, nil
}

func createSetComputeUnitLimitInstruction(units uint32) (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, SetComputeUnitLimit); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, units); err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{}, buf.Bytes()), nil
}

func createSetComputeUnitPriceInstruction(priorityFee float64) (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, SetComputeUnitPrice); err != nil {
		return nil, err
	}
	microLamports := ConvertSolToMicrolamports(priorityFee)
	if err := binary.Write(buf, binary.LittleEndian, microLamports); err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{}, buf.Bytes()), nil
}

func createRequestHeapFrameInstruction(heapSize uint32) (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, RequestHeapFrame); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, heapSize); err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, []*solana.AccountMeta{}, buf.Bytes()), nil
}
