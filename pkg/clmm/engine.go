// Package clmm implements the bootstrap core of the concentrated-liquidity
// pool program: creating a pool with its reserve vaults, oracle buffer and
// tick bitmap in one atomic unit, and the irreversible lock of a position.
package clmm

import (
	"fmt"
	"time"

	"github.com/Solana-ZH/clmmcore/pkg/clmm/pda"
	"github.com/Solana-ZH/clmmcore/pkg/clmm/state"
	"github.com/Solana-ZH/clmmcore/pkg/runtime"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Engine executes pool-program instructions against a host account store.
type Engine struct {
	store     *runtime.Store
	programID solana.PublicKey
	now       func() int64
	log       *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithProgramID overrides the pool program the engine derives addresses under.
func WithProgramID(programID solana.PublicKey) Option {
	return func(e *Engine) { e.programID = programID }
}

// WithClock overrides the wall-clock source, unix seconds.
func WithClock(now func() int64) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger overrides the engine logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine returns an engine over store. Defaults: the mainnet program id,
// the system clock, a nop logger.
func NewEngine(store *runtime.Store, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		programID: pda.ClmmProgramID,
		now:       func() int64 { return time.Now().Unix() },
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProgramID returns the pool program the engine operates.
func (e *Engine) ProgramID() solana.PublicKey {
	return e.programID
}

// Store exposes the underlying account store, mainly for fixtures and tools.
func (e *Engine) Store() *runtime.Store {
	return e.store
}

// RegisterAmmConfig materializes a fee-tier config record, a prerequisite of
// CreatePool. Config accounts are normally created by the protocol admin.
func (e *Engine) RegisterAmmConfig(key solana.PublicKey, cfg *state.AmmConfig) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	txn := e.store.Begin()
	if err := txn.Create(key, runtime.Account{Owner: e.programID, Data: data}); err != nil {
		return fmt.Errorf("register amm config: %w", err)
	}
	return txn.Commit()
}

// RegisterSupportMint materializes the association record that whitelists a
// token-2022 mint beyond the built-in extension allow-list.
func (e *Engine) RegisterSupportMint(mint solana.PublicKey) error {
	key, bump, err := pda.SupportMintAddress(e.programID, mint)
	if err != nil {
		return err
	}
	txn := e.store.Begin()
	if err := txn.Create(key, runtime.Account{Owner: e.programID, Data: []byte{bump}}); err != nil {
		return fmt.Errorf("register support mint: %w", err)
	}
	return txn.Commit()
}

// hasSupportAssociation probes the store for the mint's association record,
// the same way the on-chain program probes its remaining accounts.
func (e *Engine) hasSupportAssociation(mint solana.PublicKey) (bool, error) {
	key, _, err := pda.SupportMintAddress(e.programID, mint)
	if err != nil {
		return false, err
	}
	return e.store.Exists(key), nil
}
