package tickmath

import (
	"math/big"

	cosmath "cosmossdk.io/math"
	"lukechampine.com/uint128"
)

var (
	decUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	one     = big.NewInt(1)
)

// Price converts a Q64.64 sqrt price into the human-readable token_1/token_0
// exchange rate, adjusted for mint decimals.
func Price(sqrtPriceX64 uint128.Uint128, decimals0, decimals1 uint8) cosmath.LegacyDec {
	num := sqrtPriceX64.Big()
	num.Mul(num, num)
	num.Mul(num, decUnit)
	num.Mul(num, pow10(int(decimals0)))
	num.Rsh(num, 128)
	num.Div(num, pow10(int(decimals1)))
	return cosmath.LegacyNewDecFromBigIntWithPrec(num, 18)
}

// SqrtPriceX64FromPrice is the inverse of Price: it converts a decimal
// exchange rate into the Q64.64 sqrt price a new pool is seeded with.
func SqrtPriceX64FromPrice(price cosmath.LegacyDec, decimals0, decimals1 uint8) (uint128.Uint128, error) {
	if !price.IsPositive() {
		return uint128.Zero, ErrSqrtPriceOutOfBounds
	}
	v := price.BigInt()
	v.Mul(v, pow10(int(decimals1)))
	v.Lsh(v, 128)
	v.Div(v, decUnit)
	v.Div(v, pow10(int(decimals0)))
	s := v.Sqrt(v)
	if s.BitLen() > 128 {
		return uint128.Zero, ErrSqrtPriceOutOfBounds
	}
	return uint128.FromBig(s), nil
}

func pow10(n int) *big.Int {
	if n == 0 {
		return one
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
