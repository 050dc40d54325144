package clmm

import (
	"fmt"

	"github.com/Solana-ZH/clmmcore/pkg/clmm/pda"
	"github.com/Solana-ZH/clmmcore/pkg/clmm/state"
	"github.com/Solana-ZH/clmmcore/pkg/clmm/tickmath"
	"github.com/Solana-ZH/clmmcore/pkg/runtime"
	"github.com/Solana-ZH/clmmcore/pkg/token"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"lukechampine.com/uint128"
)

// CreatePoolParams are the inputs of a pool bootstrap.
type CreatePoolParams struct {
	// Fee-tier config the pool belongs to; its tick spacing is copied into
	// the pool record and frozen.
	AmmConfig solana.PublicKey
	// Mint0 key must be strictly smaller than mint1 key.
	Mint0 MintInfo
	Mint1 MintInfo
	// Initial sqrt price, Q64.64.
	SqrtPriceX64 uint128.Uint128
	// Scheduled open time, unix seconds. Must already have elapsed at
	// creation time.
	OpenTime uint64
	// Creator pays for and is recorded on the pool. Can be anyone.
	Creator solana.PublicKey
}

// CreatePool bootstraps a pool and its sub-objects: two reserve vaults, the
// oracle ring buffer and the tick-presence bitmap, all created atomically
// with the pool record. Any precondition failure aborts the whole sequence
// with no state left behind; a race on the same (config, mint0, mint1)
// tuple resolves to exactly one winner, the loser observing
// runtime.ErrAccountExists.
func (e *Engine) CreatePool(params CreatePoolParams) (*PoolCreatedEvent, error) {
	if !mintOrderValid(params.Mint0.Key, params.Mint1.Key) {
		return nil, ErrInvalidMintOrder
	}

	for _, mint := range []MintInfo{params.Mint0, params.Mint1} {
		hasAssociation, err := e.hasSupportAssociation(mint.Key)
		if err != nil {
			return nil, err
		}
		if !IsSupportedMint(mint, hasAssociation) {
			return nil, fmt.Errorf("%w: %s", ErrNotSupportMint, mint.Key)
		}
	}

	// The scheduled open time must already be in the past at creation; a
	// timestamp equal to or after the current time is rejected. Pinned by
	// TestCreatePoolOpenTimeBoundary.
	blockTimestamp := e.now()
	if uint64(blockTimestamp) <= params.OpenTime {
		return nil, fmt.Errorf("%w: open_time %d, now %d", ErrInvalidOpenTime, params.OpenTime, blockTimestamp)
	}

	tick, err := tickmath.TickAtSqrtPrice(params.SqrtPriceX64)
	if err != nil {
		return nil, err
	}

	cfg, err := e.loadAmmConfig(params.AmmConfig)
	if err != nil {
		return nil, err
	}

	poolKey, poolBump, err := pda.PoolAddress(e.programID, params.AmmConfig, params.Mint0.Key, params.Mint1.Key)
	if err != nil {
		return nil, err
	}
	vault0, _, err := pda.VaultAddress(e.programID, poolKey, params.Mint0.Key)
	if err != nil {
		return nil, err
	}
	vault1, _, err := pda.VaultAddress(e.programID, poolKey, params.Mint1.Key)
	if err != nil {
		return nil, err
	}
	observationKey, _, err := pda.ObservationAddress(e.programID, poolKey)
	if err != nil {
		return nil, err
	}
	bitmapKey, _, err := pda.TickArrayBitmapAddress(e.programID, poolKey)
	if err != nil {
		return nil, err
	}

	e.log.Debug("create pool",
		zap.Stringer("pool", poolKey),
		zap.String("sqrt_price_x64", params.SqrtPriceX64.String()),
		zap.Int32("tick", tick),
	)

	txn := e.store.Begin()

	if err := e.createVault(txn, vault0, params.Mint0, poolKey); err != nil {
		return nil, err
	}
	if err := e.createVault(txn, vault1, params.Mint1, poolKey); err != nil {
		return nil, err
	}

	var observation state.ObservationState
	observation.Initialize(poolKey)
	if err := createRecord(txn, observationKey, e.programID, &observation); err != nil {
		return nil, err
	}

	var pool state.PoolState
	pool.Initialize(state.PoolInit{
		Bump:               poolBump,
		Creator:            params.Creator,
		AmmConfig:          params.AmmConfig,
		TickSpacing:        cfg.TickSpacing,
		TokenMint0:         params.Mint0.Key,
		TokenMint1:         params.Mint1.Key,
		MintDecimals0:      params.Mint0.Decimals,
		MintDecimals1:      params.Mint1.Decimals,
		TokenVault0:        vault0,
		TokenVault1:        vault1,
		ObservationKey:     observationKey,
		TickArrayBitmapKey: bitmapKey,
		SqrtPriceX64:       params.SqrtPriceX64,
		Tick:               tick,
		OpenTime:           params.OpenTime,
		CreationTime:       uint64(blockTimestamp),
	})
	if err := createRecord(txn, poolKey, e.programID, &pool); err != nil {
		return nil, err
	}

	var bitmap state.TickArrayBitmapExtension
	bitmap.Initialize(poolKey)
	if err := createRecord(txn, bitmapKey, e.programID, &bitmap); err != nil {
		return nil, err
	}

	if err := txn.Commit(); err != nil {
		return nil, fmt.Errorf("create pool %s: %w", poolKey, err)
	}

	event := &PoolCreatedEvent{
		TokenMint0:   params.Mint0.Key,
		TokenMint1:   params.Mint1.Key,
		TickSpacing:  cfg.TickSpacing,
		PoolState:    poolKey,
		SqrtPriceX64: params.SqrtPriceX64,
		Tick:         tick,
		TokenVault0:  vault0,
		TokenVault1:  vault1,
	}
	e.log.Info("pool created",
		zap.Stringer("pool", poolKey),
		zap.Stringer("token_mint_0", event.TokenMint0),
		zap.Stringer("token_mint_1", event.TokenMint1),
		zap.Uint16("tick_spacing", event.TickSpacing),
		zap.Int32("tick", event.Tick),
	)
	return event, nil
}

func (e *Engine) loadAmmConfig(key solana.PublicKey) (*state.AmmConfig, error) {
	acct, ok := e.store.Get(key)
	if !ok {
		return nil, fmt.Errorf("amm config %s: %w", key, runtime.ErrAccountNotFound)
	}
	var cfg state.AmmConfig
	if err := cfg.Unmarshal(acct.Data); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// createVault stages a zero-balance reserve with the pool as authority,
// owned by the mint's token program.
func (e *Engine) createVault(txn *runtime.Txn, key solana.PublicKey, mint MintInfo, poolKey solana.PublicKey) error {
	data, err := token.NewVault(mint.Key, poolKey).Marshal()
	if err != nil {
		return err
	}
	if err := txn.Create(key, runtime.Account{Owner: mint.TokenProgram, Data: data}); err != nil {
		return fmt.Errorf("create vault %s: %w", key, err)
	}
	return nil
}

type marshaler interface {
	Marshal() ([]byte, error)
}

func createRecord(txn *runtime.Txn, key, owner solana.PublicKey, record marshaler) error {
	data, err := record.Marshal()
	if err != nil {
		return err
	}
	if err := txn.Create(key, runtime.Account{Owner: owner, Data: data}); err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	return nil
}
