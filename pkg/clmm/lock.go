package clmm

import (
	"fmt"

	"github.com/Solana-ZH/clmmcore/pkg/clmm/state"
	"github.com/Solana-ZH/clmmcore/pkg/runtime"
	"github.com/Solana-ZH/clmmcore/pkg/token"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// LockLiquidityParams identify the position to lock and the ownership proof.
type LockLiquidityParams struct {
	// Position account to lock.
	Position solana.PublicKey
	// Token account holding the position NFT.
	NftAccount solana.PublicKey
	// Caller presenting the proof; must be the NFT account's authority.
	Owner solana.PublicKey
}

// LockLiquidityForever flips a position to locked-forever. The caller must
// hold exactly one unit of the position's NFT; the check runs before any
// mutation, so a failed proof leaves the position untouched. Locking twice
// fails with ErrAlreadyLocked.
func (e *Engine) LockLiquidityForever(params LockLiquidityParams) (*LiquidityLockedForeverEvent, error) {
	posAcct, ok := e.store.Get(params.Position)
	if !ok {
		return nil, fmt.Errorf("position %s: %w", params.Position, runtime.ErrAccountNotFound)
	}
	var position state.PersonalPosition
	if err := position.Unmarshal(posAcct.Data); err != nil {
		return nil, err
	}

	nftAcct, ok := e.store.Get(params.NftAccount)
	if !ok {
		return nil, fmt.Errorf("%w: nft account %s missing", ErrInvalidNftOwnership, params.NftAccount)
	}
	var holding token.Account
	if err := holding.Unmarshal(nftAcct.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNftOwnership, err)
	}
	if !holding.Mint.Equals(position.NftMint) {
		return nil, fmt.Errorf("%w: mint mismatch", ErrInvalidNftOwnership)
	}
	if holding.Amount != 1 {
		return nil, fmt.Errorf("%w: amount %d, want exactly 1", ErrInvalidNftOwnership, holding.Amount)
	}
	if !holding.Authority.Equals(params.Owner) {
		return nil, fmt.Errorf("%w: authority mismatch", ErrInvalidNftOwnership)
	}

	if err := position.Lock(); err != nil {
		return nil, err
	}

	data, err := position.Marshal()
	if err != nil {
		return nil, err
	}
	txn := e.store.Begin()
	if err := txn.Put(params.Position, runtime.Account{Owner: posAcct.Owner, Data: data}); err != nil {
		return nil, err
	}
	if err := txn.Commit(); err != nil {
		return nil, err
	}

	event := &LiquidityLockedForeverEvent{PositionNftMint: position.NftMint}
	e.log.Info("liquidity locked forever",
		zap.Stringer("position", params.Position),
		zap.Stringer("position_nft_mint", event.PositionNftMint),
	)
	return event, nil
}
