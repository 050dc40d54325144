package state

import (
	"errors"

	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// ErrAlreadyLocked is returned by Lock on a position that is already locked
// forever. A repeat lock is an error, not a no-op.
var ErrAlreadyLocked = errors.New("state: position already locked forever")

// LockState is the lock lifecycle of a position. The only transition is
// Unlocked to LockedForever; there is no way back.
type LockState uint8

const (
	LockStateUnlocked LockState = iota
	LockStateLockedForever
)

func (s LockState) String() string {
	switch s {
	case LockStateUnlocked:
		return "unlocked"
	case LockStateLockedForever:
		return "locked_forever"
	default:
		return "unknown"
	}
}

// PersonalPosition is a liquidity stake identified by its NFT mint. Whoever
// holds exactly one unit of the NFT controls the position.
type PersonalPosition struct {
	Bump    uint8
	NftMint solana.PublicKey
	PoolID  solana.PublicKey

	TickLowerIndex int32
	TickUpperIndex int32
	Liquidity      uint128.Uint128

	FeeGrowthInside0LastX64 uint128.Uint128
	FeeGrowthInside1LastX64 uint128.Uint128
	TokenFeesOwed0          uint64
	TokenFeesOwed1          uint64

	LockState LockState
}

// Lock moves the position to LockedForever. Only the Unlocked state accepts
// the transition.
func (p *PersonalPosition) Lock() error {
	switch p.LockState {
	case LockStateUnlocked:
		p.LockState = LockStateLockedForever
		return nil
	case LockStateLockedForever:
		return ErrAlreadyLocked
	default:
		return ErrAlreadyLocked
	}
}

func (p *PersonalPosition) Marshal() ([]byte, error) {
	return marshal("personal position", p)
}

func (p *PersonalPosition) Unmarshal(data []byte) error {
	return unmarshal("personal position", data, p)
}
