package clmm

import (
	"errors"

	"github.com/Solana-ZH/clmmcore/pkg/clmm/state"
)

var (
	// ErrNotSupportMint rejects a mint the pool program cannot hold.
	ErrNotSupportMint = errors.New("clmm: mint not supported")
	// ErrInvalidMintOrder rejects a pair where mint0 is not strictly smaller
	// than mint1.
	ErrInvalidMintOrder = errors.New("clmm: token mint 0 must be smaller than token mint 1")
	// ErrInvalidOpenTime rejects an open time that has not elapsed yet at
	// creation.
	ErrInvalidOpenTime = errors.New("clmm: open time must be earlier than the current time")
	// ErrInvalidNftOwnership rejects a lock whose ownership proof does not
	// resolve to exactly one unit of the position NFT held by the caller.
	ErrInvalidNftOwnership = errors.New("clmm: nft account does not prove position ownership")

	// ErrAlreadyLocked re-exports the position transition error so callers
	// only need this package to classify failures.
	ErrAlreadyLocked = state.ErrAlreadyLocked
)
