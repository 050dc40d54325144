package clmm

import (
	"bytes"
	"sync"
	"testing"

	"github.com/Solana-ZH/clmmcore/pkg/clmm/pda"
	"github.com/Solana-ZH/clmmcore/pkg/clmm/state"
	"github.com/Solana-ZH/clmmcore/pkg/clmm/tickmath"
	"github.com/Solana-ZH/clmmcore/pkg/runtime"
	"github.com/Solana-ZH/clmmcore/pkg/token"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNow = int64(1000)

type fixture struct {
	engine    *Engine
	store     *runtime.Store
	ammConfig solana.PublicKey
	mint0     MintInfo
	mint1     MintInfo
}

// orderedMints returns two random classic-token mints with key0 < key1.
func orderedMints(t *testing.T) (MintInfo, MintInfo) {
	t.Helper()
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()
	if bytes.Compare(a.Bytes(), b.Bytes()) > 0 {
		a, b = b, a
	}
	return MintInfo{Key: a, Decimals: 9, TokenProgram: token.TokenProgramID},
		MintInfo{Key: b, Decimals: 6, TokenProgram: token.TokenProgramID}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := runtime.NewStore()
	engine := NewEngine(store, WithClock(func() int64 { return testNow }))

	cfgKey := solana.NewWallet().PublicKey()
	require.NoError(t, engine.RegisterAmmConfig(cfgKey, &state.AmmConfig{
		Index:        0,
		TickSpacing:  60,
		TradeFeeRate: 2500,
	}))

	mint0, mint1 := orderedMints(t)
	return &fixture{engine: engine, store: store, ammConfig: cfgKey, mint0: mint0, mint1: mint1}
}

func (f *fixture) params() CreatePoolParams {
	price, _ := tickmath.SqrtPriceAtTick(0)
	return CreatePoolParams{
		AmmConfig:    f.ammConfig,
		Mint0:        f.mint0,
		Mint1:        f.mint1,
		SqrtPriceX64: price,
		OpenTime:     uint64(testNow - 1),
		Creator:      solana.NewWallet().PublicKey(),
	}
}

func TestCreatePool(t *testing.T) {
	f := newFixture(t)

	event, err := f.engine.CreatePool(f.params())
	require.NoError(t, err)

	assert.Equal(t, f.mint0.Key, event.TokenMint0)
	assert.Equal(t, f.mint1.Key, event.TokenMint1)
	assert.Equal(t, uint16(60), event.TickSpacing)
	assert.Equal(t, int32(0), event.Tick)

	// The pool address is recomputable from the tuple alone.
	wantPool, wantBump, err := pda.PoolAddress(f.engine.ProgramID(), f.ammConfig, f.mint0.Key, f.mint1.Key)
	require.NoError(t, err)
	assert.Equal(t, wantPool, event.PoolState)

	acct, ok := f.store.Get(event.PoolState)
	require.True(t, ok)
	var pool state.PoolState
	require.NoError(t, pool.Unmarshal(acct.Data))

	assert.Equal(t, wantBump, pool.Bump)
	assert.Equal(t, f.ammConfig, pool.AmmConfig)
	assert.Equal(t, uint16(60), pool.TickSpacing)
	assert.Equal(t, uint8(9), pool.MintDecimals0)
	assert.Equal(t, uint8(6), pool.MintDecimals1)
	assert.Equal(t, int32(0), pool.TickCurrent)
	assert.Equal(t, uint64(testNow-1), pool.OpenTime)
	assert.Equal(t, uint64(testNow), pool.CreationTime)
	assert.True(t, pool.Liquidity.IsZero())

	// Both reserves exist, empty, with the pool as authority.
	for _, vaultKey := range []solana.PublicKey{event.TokenVault0, event.TokenVault1} {
		vaultAcct, ok := f.store.Get(vaultKey)
		require.True(t, ok)
		var vault token.Account
		require.NoError(t, vault.Unmarshal(vaultAcct.Data))
		assert.Equal(t, event.PoolState, vault.Authority)
		assert.Zero(t, vault.Amount)
	}

	// Oracle buffer exists, zeroed, bound to the pool.
	obsAcct, ok := f.store.Get(pool.ObservationKey)
	require.True(t, ok)
	var obs state.ObservationState
	require.NoError(t, obs.Unmarshal(obsAcct.Data))
	assert.Equal(t, event.PoolState, obs.PoolID)
	assert.Zero(t, obs.Initialized)

	// Bitmap extension exists, cleared, bound to the pool.
	bitmapAcct, ok := f.store.Get(pool.TickArrayBitmapKey)
	require.True(t, ok)
	var bitmap state.TickArrayBitmapExtension
	require.NoError(t, bitmap.Unmarshal(bitmapAcct.Data))
	assert.Equal(t, event.PoolState, bitmap.PoolID)
}

func TestCreatePoolRejectsUnorderedMints(t *testing.T) {
	f := newFixture(t)

	params := f.params()
	params.Mint0, params.Mint1 = params.Mint1, params.Mint0
	_, err := f.engine.CreatePool(params)
	assert.ErrorIs(t, err, ErrInvalidMintOrder)

	params = f.params()
	params.Mint1 = params.Mint0
	_, err = f.engine.CreatePool(params)
	assert.ErrorIs(t, err, ErrInvalidMintOrder)

	assert.Equal(t, 1, f.store.Len()) // only the amm config
}

func TestCreatePoolRejectsUnsupportedMint(t *testing.T) {
	f := newFixture(t)

	params := f.params()
	params.Mint1.TokenProgram = token.Token2022ProgramID
	params.Mint1.Extensions = []ExtensionType{ExtensionTransferHook}
	_, err := f.engine.CreatePool(params)
	assert.ErrorIs(t, err, ErrNotSupportMint)
	assert.Equal(t, 1, f.store.Len())

	// An association record makes the same mint acceptable.
	require.NoError(t, f.engine.RegisterSupportMint(params.Mint1.Key))
	_, err = f.engine.CreatePool(params)
	require.NoError(t, err)
}

// Pinned behavior: the scheduled open time must lie strictly in the past at
// creation, the inverse of schedule-a-future-launch semantics.
func TestCreatePoolOpenTimeBoundary(t *testing.T) {
	f := newFixture(t)

	params := f.params()
	params.OpenTime = uint64(testNow) // equal to now
	_, err := f.engine.CreatePool(params)
	assert.ErrorIs(t, err, ErrInvalidOpenTime)

	params.OpenTime = uint64(testNow + 1) // in the future
	_, err = f.engine.CreatePool(params)
	assert.ErrorIs(t, err, ErrInvalidOpenTime)

	params.OpenTime = uint64(testNow - 1) // already elapsed
	_, err = f.engine.CreatePool(params)
	assert.NoError(t, err)
}

func TestCreatePoolRejectsPriceOutOfDomain(t *testing.T) {
	f := newFixture(t)

	params := f.params()
	params.SqrtPriceX64 = tickmath.MinSqrtPriceX64.Sub64(1)
	_, err := f.engine.CreatePool(params)
	assert.ErrorIs(t, err, tickmath.ErrSqrtPriceOutOfBounds)

	params.SqrtPriceX64 = tickmath.MaxSqrtPriceX64.Add64(1)
	_, err = f.engine.CreatePool(params)
	assert.ErrorIs(t, err, tickmath.ErrSqrtPriceOutOfBounds)
	assert.Equal(t, 1, f.store.Len())
}

func TestCreatePoolRequiresConfigRecord(t *testing.T) {
	f := newFixture(t)

	params := f.params()
	params.AmmConfig = solana.NewWallet().PublicKey()
	_, err := f.engine.CreatePool(params)
	assert.ErrorIs(t, err, runtime.ErrAccountNotFound)
}

func TestCreatePoolDuplicateTuple(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.CreatePool(f.params())
	require.NoError(t, err)

	_, err = f.engine.CreatePool(f.params())
	assert.ErrorIs(t, err, runtime.ErrAccountExists)
}

func TestCreatePoolRace(t *testing.T) {
	f := newFixture(t)

	const attempts = 16
	events := make([]*PoolCreatedEvent, attempts)
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			events[i], errs[i] = f.engine.CreatePool(f.params())
		}(i)
	}
	wg.Wait()

	winners := 0
	for i := range errs {
		if errs[i] == nil {
			winners++
			require.NotNil(t, events[i])
		} else {
			assert.ErrorIs(t, errs[i], runtime.ErrAccountExists)
		}
	}
	assert.Equal(t, 1, winners)
}

// A failed bootstrap leaves nothing behind, so the same tuple can be retried.
func TestCreatePoolFailureLeavesNoState(t *testing.T) {
	f := newFixture(t)

	params := f.params()
	params.OpenTime = uint64(testNow + 10)
	_, err := f.engine.CreatePool(params)
	require.ErrorIs(t, err, ErrInvalidOpenTime)
	assert.Equal(t, 1, f.store.Len())

	poolKey, _, err := pda.PoolAddress(f.engine.ProgramID(), f.ammConfig, f.mint0.Key, f.mint1.Key)
	require.NoError(t, err)
	assert.False(t, f.store.Exists(poolKey))

	// The subsequent valid call with the same tuple succeeds.
	_, err = f.engine.CreatePool(f.params())
	assert.NoError(t, err)
}
