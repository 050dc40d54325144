package clmm

import (
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// PoolCreatedEvent is emitted once per successful bootstrap.
type PoolCreatedEvent struct {
	TokenMint0   solana.PublicKey
	TokenMint1   solana.PublicKey
	TickSpacing  uint16
	PoolState    solana.PublicKey
	SqrtPriceX64 uint128.Uint128
	Tick         int32
	TokenVault0  solana.PublicKey
	TokenVault1  solana.PublicKey
}

// LiquidityLockedForeverEvent is emitted when a position is locked for good.
type LiquidityLockedForeverEvent struct {
	PositionNftMint solana.PublicKey
}
