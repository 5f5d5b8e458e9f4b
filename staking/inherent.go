// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/albatross-pos/staking/primitives"
)

// InherentType identifies what a block-level, consensus-generated inherent
// does to the staking contract. Inherents carry no signature: the block
// producer is trusted to only include ones the protocol itself demands.
type InherentType byte

const (
	// InherentSlash parks a validator for misbehaving in the current
	// epoch by adding its key to the current-epoch parking set, whether or
	// not it is also parked from the previous epoch.
	InherentSlash InherentType = iota
	// InherentFinalizeEpoch rotates the parking sets at an epoch boundary
	// and retires every validator still parked from two epochs ago.
	InherentFinalizeEpoch
)

// Inherent is a block-level staking contract mutation.
type Inherent struct {
	Type         InherentType
	ValidatorKey primitives.BlsPublicKey // only meaningful for InherentSlash
}

func (t InherentType) String() string {
	switch t {
	case InherentSlash:
		return "Slash"
	case InherentFinalizeEpoch:
		return "FinalizeEpoch"
	default:
		return "Unknown"
	}
}
