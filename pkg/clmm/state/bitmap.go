package state

import (
	"github.com/gagliardetto/solana-go"
)

// ExtensionBitmapPages is the number of 512-bit bitmap pages kept on each
// side of the price range covered by the pool's inline bitmap.
const ExtensionBitmapPages = 14

// TickArrayBitmapExtension records which tick-array pages outside the inline
// range have been materialized. Bootstrap creates it with every bit cleared;
// liquidity instructions flip bits as tick arrays are created.
type TickArrayBitmapExtension struct {
	PoolID                  solana.PublicKey
	PositiveTickArrayBitmap [ExtensionBitmapPages][8]uint64
	NegativeTickArrayBitmap [ExtensionBitmapPages][8]uint64
}

// Initialize binds the bitmap to its pool with all bits cleared.
func (b *TickArrayBitmapExtension) Initialize(poolID solana.PublicKey) {
	*b = TickArrayBitmapExtension{PoolID: poolID}
}

func (b *TickArrayBitmapExtension) Marshal() ([]byte, error) {
	return marshal("tick array bitmap extension", b)
}

func (b *TickArrayBitmapExtension) Unmarshal(data []byte) error {
	return unmarshal("tick array bitmap extension", data, b)
}
