package state

import (
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// PoolState is the primary trading-pair record. It is written exactly once
// at bootstrap; swap and liquidity instructions mutate it afterwards.
type PoolState struct {
	// Bump byte of the pool address, kept for address reconstruction.
	Bump uint8
	// Which config the pool belongs to.
	AmmConfig solana.PublicKey
	// Address that paid for the bootstrap. Can be anyone.
	Owner solana.PublicKey

	// Mint0 key is strictly smaller than mint1 key.
	TokenMint0 solana.PublicKey
	TokenMint1 solana.PublicKey

	// Reserve vaults, one per mint, authority is the pool itself.
	TokenVault0 solana.PublicKey
	TokenVault1 solana.PublicKey

	// Oracle ring buffer and tick-presence bitmap extension, both 1:1.
	ObservationKey     solana.PublicKey
	TickArrayBitmapKey solana.PublicKey

	MintDecimals0 uint8
	MintDecimals1 uint8
	// Tick granularity, copied from the config at bootstrap and frozen.
	TickSpacing uint16

	Liquidity    uint128.Uint128
	SqrtPriceX64 uint128.Uint128
	TickCurrent  int32

	ObservationIndex          uint16
	ObservationUpdateDuration uint16

	FeeGrowthGlobal0X64 uint128.Uint128
	FeeGrowthGlobal1X64 uint128.Uint128
	ProtocolFeesToken0  uint64
	ProtocolFeesToken1  uint64

	SwapInAmountToken0  uint128.Uint128
	SwapOutAmountToken1 uint128.Uint128
	SwapInAmountToken1  uint128.Uint128
	SwapOutAmountToken0 uint128.Uint128

	Status uint8

	// Presence bits for the tick-array pages closest to the current price.
	// Pages further out live in the bitmap extension account.
	TickArrayBitmap [16]uint64

	TotalFeesToken0        uint64
	TotalFeesClaimedToken0 uint64
	TotalFeesToken1        uint64
	TotalFeesClaimedToken1 uint64
	FundFeesToken0         uint64
	FundFeesToken1         uint64

	// Scheduled open time the pool was created with.
	OpenTime uint64
	// Wall-clock time of the bootstrap itself.
	CreationTime uint64
}

// PoolInit carries everything Initialize needs to seed a new pool record.
type PoolInit struct {
	Bump               uint8
	Creator            solana.PublicKey
	AmmConfig          solana.PublicKey
	TickSpacing        uint16
	TokenMint0         solana.PublicKey
	TokenMint1         solana.PublicKey
	MintDecimals0      uint8
	MintDecimals1      uint8
	TokenVault0        solana.PublicKey
	TokenVault1        solana.PublicKey
	ObservationKey     solana.PublicKey
	TickArrayBitmapKey solana.PublicKey
	SqrtPriceX64       uint128.Uint128
	Tick               int32
	OpenTime           uint64
	CreationTime       uint64
}

// Initialize seeds the record from init and zeroes all trade state.
func (p *PoolState) Initialize(init PoolInit) {
	*p = PoolState{
		Bump:               init.Bump,
		AmmConfig:          init.AmmConfig,
		Owner:              init.Creator,
		TokenMint0:         init.TokenMint0,
		TokenMint1:         init.TokenMint1,
		TokenVault0:        init.TokenVault0,
		TokenVault1:        init.TokenVault1,
		ObservationKey:     init.ObservationKey,
		TickArrayBitmapKey: init.TickArrayBitmapKey,
		MintDecimals0:      init.MintDecimals0,
		MintDecimals1:      init.MintDecimals1,
		TickSpacing:        init.TickSpacing,
		SqrtPriceX64:       init.SqrtPriceX64,
		TickCurrent:        init.Tick,
		OpenTime:           init.OpenTime,
		CreationTime:       init.CreationTime,
	}
}

func (p *PoolState) Marshal() ([]byte, error) {
	return marshal("pool state", p)
}

func (p *PoolState) Unmarshal(data []byte) error {
	return unmarshal("pool state", data, p)
}
