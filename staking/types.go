// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"sort"

	"github.com/albatross-pos/staking/primitives"
)

// Validator is a registered validator: its balance, reward address, key,
// and the stake delegated to it by stakers. A Validator is shared by
// reference between the by-key map and the balance-sorted slice that index
// it — there is never more than one Validator record per key.
type Validator struct {
	Balance              primitives.Coin // LockedStake + sum of ActiveStakeByAddress values
	LockedStake          primitives.Coin // initial stake from creation, unattributed until drop
	RewardAddress        primitives.Address
	ValidatorKey         primitives.BlsPublicKey
	ActiveStakeByAddress map[primitives.Address]primitives.Coin // never holds a zero entry
}

func newValidator(key primitives.BlsPublicKey, rewardAddress primitives.Address, lockedStake primitives.Coin) *Validator {
	return &Validator{
		Balance:              lockedStake,
		LockedStake:          lockedStake,
		RewardAddress:        rewardAddress,
		ValidatorKey:         key,
		ActiveStakeByAddress: make(map[primitives.Address]primitives.Coin),
	}
}

// sortedAddresses returns the validator's delegator addresses in ascending
// order, used by the canonical serializer.
func (v *Validator) sortedAddresses() []primitives.Address {
	addrs := make([]primitives.Address, 0, len(v.ActiveStakeByAddress))
	for addr := range v.ActiveStakeByAddress {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return addressLess(addrs[i], addrs[j])
	})
	return addrs
}

// InactiveValidator is a validator that has been retired: it keeps the full
// Validator record (including any stake never unwound) plus the height at
// which it retired.
type InactiveValidator struct {
	Validator  *Validator
	RetireTime primitives.BlockHeight
}

// InactiveStake is stake that has been retired from a validator but is
// still held inside the contract, subject to the unstaking cooldown.
// Balance is never zero: a zero balance means the entry is removed.
type InactiveStake struct {
	Balance    primitives.Coin
	RetireTime primitives.BlockHeight
}

func addressLess(a, b primitives.Address) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func blsKeyLess(a, b primitives.BlsPublicKey) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
