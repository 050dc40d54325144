// Package pda derives the program addresses of a pool and its sub-objects.
//
// Every address is computed off curve from a namespace seed plus the parent
// keys, so any party can reconstruct it without a registry lookup. The same
// inputs always produce the same address and bump.
package pda

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
)

// Seeds used by the pool program. They must match the on-chain program
// byte for byte or the derived addresses diverge.
const (
	PoolSeed            = "pool"
	PoolVaultSeed       = "pool_vault"
	ObservationSeed     = "observation"
	TickArrayBitmapSeed = "pool_tick_array_bitmap_extension"
	SupportMintSeed     = "support_mint"
	PositionSeed        = "position"
	TickArraySeed       = "tick_array"
)

// ClmmProgramID is the default pool program the addresses are derived under.
var ClmmProgramID = solana.MustPublicKeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK")

// PoolAddress derives the pool account for a (config, mint0, mint1) tuple.
// Mint order is part of the seed, so the strict mint0 < mint1 convention
// guarantees one pool per unordered pair.
func PoolAddress(programID, ammConfig, mint0, mint1 solana.PublicKey) (solana.PublicKey, uint8, error) {
	return derive(programID, [][]byte{
		[]byte(PoolSeed),
		ammConfig.Bytes(),
		mint0.Bytes(),
		mint1.Bytes(),
	})
}

// VaultAddress derives the reserve token account for one side of a pool.
func VaultAddress(programID, pool, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return derive(programID, [][]byte{
		[]byte(PoolVaultSeed),
		pool.Bytes(),
		mint.Bytes(),
	})
}

// ObservationAddress derives the oracle ring buffer account of a pool.
func ObservationAddress(programID, pool solana.PublicKey) (solana.PublicKey, uint8, error) {
	return derive(programID, [][]byte{
		[]byte(ObservationSeed),
		pool.Bytes(),
	})
}

// TickArrayBitmapAddress derives the tick-presence bitmap extension of a pool.
func TickArrayBitmapAddress(programID, pool solana.PublicKey) (solana.PublicKey, uint8, error) {
	return derive(programID, [][]byte{
		[]byte(TickArrayBitmapSeed),
		pool.Bytes(),
	})
}

// SupportMintAddress derives the association record that marks a token-2022
// mint as explicitly supported.
func SupportMintAddress(programID, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return derive(programID, [][]byte{
		[]byte(SupportMintSeed),
		mint.Bytes(),
	})
}

// PositionAddress derives the personal position account for a position NFT.
func PositionAddress(programID, nftMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return derive(programID, [][]byte{
		[]byte(PositionSeed),
		nftMint.Bytes(),
	})
}

// TickArrayAddress derives the tick array page starting at startIndex.
// The index is rendered in decimal, matching the on-chain seed encoding.
func TickArrayAddress(programID, pool solana.PublicKey, startIndex int32) (solana.PublicKey, uint8, error) {
	return derive(programID, [][]byte{
		[]byte(TickArraySeed),
		pool.Bytes(),
		[]byte(strconv.FormatInt(int64(startIndex), 10)),
	})
}

func derive(programID solana.PublicKey, seeds [][]byte) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("find program address: %w", err)
	}
	return addr, bump, nil
}
