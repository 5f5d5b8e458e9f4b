// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package primitives

// BlockHeight is a block number.
type BlockHeight = uint32

// Protocol constants. These mirror the `policy` module referenced throughout
// spec.md; values are the ones used by the source's own test fixtures.
const (
	// EpochLength is the number of blocks per epoch.
	EpochLength BlockHeight = 100

	// BatchLength is the number of blocks between two macro blocks.
	BatchLength BlockHeight = 10

	// Slots is the number of validator slot assignments produced by
	// selection each epoch.
	Slots = 512

	// UnstakingDelay is the number of macro blocks an inactive stake must
	// wait before it becomes withdrawable.
	UnstakingDelay BlockHeight = 2

	// DropDelay is the number of macro blocks an inactive validator must
	// wait before it can be dropped.
	DropDelay BlockHeight = 2
)

// MacroBlockAfter returns the height of the first macro (batch-boundary)
// block at or after h.
func MacroBlockAfter(h BlockHeight) BlockHeight {
	rem := h % BatchLength
	if rem == 0 {
		return h
	}
	return h + (BatchLength - rem)
}
