package state

import (
	"github.com/gagliardetto/solana-go"
)

// AmmConfig is the fee-tier configuration a pool is created under. It is a
// read-only input to bootstrap; only its identity and tick spacing matter
// here, the fee rates are consumed by the swap path.
type AmmConfig struct {
	Bump            uint8
	Index           uint16
	Owner           solana.PublicKey
	ProtocolFeeRate uint32
	TradeFeeRate    uint32
	TickSpacing     uint16
	FundFeeRate     uint32
	FundOwner       solana.PublicKey
}

func (c *AmmConfig) Marshal() ([]byte, error) {
	return marshal("amm config", c)
}

func (c *AmmConfig) Unmarshal(data []byte) error {
	return unmarshal("amm config", data, c)
}
