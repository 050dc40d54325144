// Package tickmath converts between tick indexes and Q64.64 sqrt prices.
//
// A tick is the integer exponent of the price grid: price(tick) = 1.0001^tick.
// Sqrt prices are the square root of the token_1/token_0 exchange rate in
// X64 fixed point, the representation the pool account stores on chain.
package tickmath

import (
	"errors"
	"math/big"

	"lukechampine.com/uint128"
)

const (
	// MinTick is the minimum tick that may be passed to SqrtPriceAtTick.
	MinTick = int32(-443636)
	// MaxTick is the maximum tick that may be passed to SqrtPriceAtTick.
	MaxTick = int32(443636)
)

var (
	// MinSqrtPriceX64 is SqrtPriceAtTick(MinTick).
	MinSqrtPriceX64 = uint128.From64(4295048016)
	// MaxSqrtPriceX64 is SqrtPriceAtTick(MaxTick).
	MaxSqrtPriceX64 = uint128.FromBig(mustBig("79226673515401279992447579061"))

	ErrTickOutOfBounds      = errors.New("tickmath: tick out of bounds")
	ErrSqrtPriceOutOfBounds = errors.New("tickmath: sqrt price out of bounds")
)

// ratioConstants[0] is sqrt(1.0001) in UQ128.128, ratioConstants[1] is one,
// and each following entry is sqrt(1.0001^2^(i-1)).
var ratioConstants = [21]*big.Int{
	mustHex("fffcb933bd6fad37aa2d162d1a594001"),
	mustHex("100000000000000000000000000000000"),
	mustHex("fff97272373d413259a46990580e213a"),
	mustHex("fff2e50f5f656932ef12357cf3c7fdcc"),
	mustHex("ffe5caca7e10e4e61c3624eaa0941cd0"),
	mustHex("ffcb9843d60f6159c9db58835c926644"),
	mustHex("ff973b41fa98c081472e6896dfb254c0"),
	mustHex("ff2ea16466c96a3843ec78b326b52861"),
	mustHex("fe5dee046a99a2a811c461f1969c3053"),
	mustHex("fcbe86c7900a88aedcffc83b479aa3a4"),
	mustHex("f987a7253ac413176f2b074cf7815e54"),
	mustHex("f3392b0822b70005940c7a398e4b70f3"),
	mustHex("e7159475a2c29b7443b29c7fa6e889d9"),
	mustHex("d097f3bdfd2022b8845ad8f792aa5825"),
	mustHex("a9f746462d870fdf8a65dc1f90e061e5"),
	mustHex("70d869a156d2a1b890bb3df62baf32f7"),
	mustHex("31be135f97d08fd981231505542fcfa6"),
	mustHex("9aa508b5b7a84e1c677de54f3e99bc9"),
	mustHex("5d6af8dedb81196699c329225ee604"),
	mustHex("2216e584f5fa1ea926041bedfe98"),
	mustHex("48a170391f7dc42444e8fa2"),
}

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// SqrtPriceAtTick returns sqrt(1.0001^tick) in Q64.64 fixed point.
// The product is accumulated in UQ128.128 and truncated to X64 at the end,
// so results are exact for the whole tick range.
func SqrtPriceAtTick(tick int32) (uint128.Uint128, error) {
	if tick < MinTick || tick > MaxTick {
		return uint128.Zero, ErrTickOutOfBounds
	}

	absTick := int64(tick)
	if absTick < 0 {
		absTick = -absTick
	}

	ratio := new(big.Int)
	if absTick&0x1 != 0 {
		ratio.Set(ratioConstants[0])
	} else {
		ratio.Set(ratioConstants[1])
	}
	for i := 2; i < 21; i++ {
		if absTick&(1<<(i-1)) != 0 {
			ratio.Mul(ratio, ratioConstants[i]).Rsh(ratio, 128)
		}
	}
	if tick > 0 {
		ratio.Div(maxUint256, ratio)
	}

	return uint128.FromBig(ratio.Rsh(ratio, 64)), nil
}

// TickAtSqrtPrice returns the greatest tick t such that
// SqrtPriceAtTick(t) <= sqrtPriceX64. The search is a plain binary search
// over the valid tick range, which keeps the floor law exact by
// construction: SqrtPriceAtTick(TickAtSqrtPrice(p)) <= p and
// TickAtSqrtPrice(SqrtPriceAtTick(t)) == t.
func TickAtSqrtPrice(sqrtPriceX64 uint128.Uint128) (int32, error) {
	if sqrtPriceX64.Cmp(MinSqrtPriceX64) < 0 || sqrtPriceX64.Cmp(MaxSqrtPriceX64) > 0 {
		return 0, ErrSqrtPriceOutOfBounds
	}

	low, high := MinTick, MaxTick
	tick := MinTick
	for low <= high {
		mid := (low + high) / 2
		midPrice, err := SqrtPriceAtTick(mid)
		if err != nil {
			return 0, err
		}
		if midPrice.Cmp(sqrtPriceX64) <= 0 {
			tick = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return tick, nil
}

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("tickmath: bad hex constant " + s)
	}
	return n
}

func mustBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("tickmath: bad decimal constant " + s)
	}
	return n
}
