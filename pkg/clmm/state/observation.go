package state

import (
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// ObservationNum is the fixed capacity of the oracle ring buffer.
const ObservationNum = 100

// Observation is one price/time sample.
type Observation struct {
	BlockTimestamp                   uint32
	TickCumulative                   int64
	SecondsPerLiquidityCumulativeX64 uint128.Uint128
}

// ObservationState is the oracle ring buffer bound 1:1 to a pool. Bootstrap
// only establishes the zeroed state; sampling and time-weighted queries are
// driven by later instructions.
type ObservationState struct {
	// Set by the first oracle update, never by bootstrap.
	Initialized  uint8
	PoolID       solana.PublicKey
	Observations [ObservationNum]Observation
}

// Initialize binds the buffer to its pool with every slot zeroed.
func (o *ObservationState) Initialize(poolID solana.PublicKey) {
	*o = ObservationState{PoolID: poolID}
}

func (o *ObservationState) Marshal() ([]byte, error) {
	return marshal("observation state", o)
}

func (o *ObservationState) Unmarshal(data []byte) error {
	return unmarshal("observation state", data, o)
}
