// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package primitives

import (
	"errors"

	"github.com/ethereum/go-ethereum/common/math"
)

// MaxCoin is the largest representable Coin value: 10^16 luna, matching the
// supply cap used throughout the source (there is always strictly less total
// supply than this bound, leaving headroom for intermediate sums).
const MaxCoin Coin = 1e16

// ErrCoinOverflow is returned by Add when the result would exceed MaxCoin.
var ErrCoinOverflow = errors.New("coin: arithmetic overflow")

// ErrCoinUnderflow is returned by Sub when the result would be negative.
var ErrCoinUnderflow = errors.New("coin: arithmetic underflow")

// Coin is a non-negative amount, always <= MaxCoin. All arithmetic on it is
// checked; there is no implicit wraparound.
type Coin uint64

// ZeroCoin is the zero amount.
const ZeroCoin Coin = 0

// IsZero reports whether the amount is zero.
func (c Coin) IsZero() bool {
	return c == ZeroCoin
}

// Add returns c+other, or ErrCoinOverflow if the sum would exceed MaxCoin.
func (c Coin) Add(other Coin) (Coin, error) {
	sum, overflow := math.SafeAdd(uint64(c), uint64(other))
	if overflow || Coin(sum) > MaxCoin {
		return 0, ErrCoinOverflow
	}
	return Coin(sum), nil
}

// Sub returns c-other, or ErrCoinUnderflow if other > c.
func (c Coin) Sub(other Coin) (Coin, error) {
	diff, underflow := math.SafeSub(uint64(c), uint64(other))
	if underflow {
		return 0, ErrCoinUnderflow
	}
	return Coin(diff), nil
}
