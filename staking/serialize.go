// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"encoding/binary"
	"sort"

	"github.com/albatross-pos/staking/primitives"
)

// Serialize produces the canonical byte encoding of the entire contract
// state. Two contracts are state-identical if and only if their canonical
// encodings are byte-identical — this is what commit/revert symmetry is
// checked against, and what every node must agree on bit-for-bit.
//
// This is deliberately hand-rolled rather than RLP-encoded: RLP's
// variable-width length framing does not reproduce the fixed-width u32
// length prefixes this format specifies, and since the entire purpose of
// canonical serialization is agreement between independent
// implementations, the wire shape is itself part of the contract — not an
// implementation detail free to vary by library choice.
func (s *StakingContract) Serialize() []byte {
	var out []byte

	var balanceBytes [8]byte
	binary.BigEndian.PutUint64(balanceBytes[:], uint64(s.Balance))
	out = append(out, balanceBytes[:]...)

	out = appendU32(out, uint32(len(s.activeValidatorsSorted)))
	for _, v := range s.activeValidatorsSorted {
		out = appendValidator(out, v)
	}

	inactiveKeys := s.sortedInactiveValidatorKeys()
	out = appendU32(out, uint32(len(inactiveKeys)))
	for _, key := range inactiveKeys {
		iv := s.inactiveValidatorsByKey[key]
		out = appendValidator(out, iv.Validator)
		out = appendU32(out, iv.RetireTime)
	}

	inactiveStakeAddrs := s.sortedInactiveStakeAddresses()
	out = appendU32(out, uint32(len(inactiveStakeAddrs)))
	for _, addr := range inactiveStakeAddrs {
		is := s.InactiveStakeByAddress[addr]
		out = append(out, addr.Bytes()...)
		out = appendCoin(out, is.Balance)
		out = appendU32(out, is.RetireTime)
	}

	out = appendKeySet(out, s.CurrentEpochParking)
	out = appendKeySet(out, s.PreviousEpochParking)

	return out
}

func appendValidator(out []byte, v *Validator) []byte {
	out = append(out, v.ValidatorKey.Bytes()...)
	out = append(out, v.RewardAddress.Bytes()...)
	out = appendCoin(out, v.Balance)
	addrs := v.sortedAddresses()
	out = appendU32(out, uint32(len(addrs)))
	for _, addr := range addrs {
		out = append(out, addr.Bytes()...)
		out = appendCoin(out, v.ActiveStakeByAddress[addr])
	}
	return out
}

func appendKeySet(out []byte, set map[primitives.BlsPublicKey]struct{}) []byte {
	keys := make([]primitives.BlsPublicKey, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return blsKeyLess(keys[i], keys[j]) })
	out = appendU32(out, uint32(len(keys)))
	for _, k := range keys {
		out = append(out, k.Bytes()...)
	}
	return out
}

func appendU32(out []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(out, b[:]...)
}

func appendCoin(out []byte, c primitives.Coin) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(c))
	return append(out, b[:]...)
}

func (s *StakingContract) sortedInactiveValidatorKeys() []primitives.BlsPublicKey {
	keys := make([]primitives.BlsPublicKey, 0, len(s.inactiveValidatorsByKey))
	for k := range s.inactiveValidatorsByKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return blsKeyLess(keys[i], keys[j]) })
	return keys
}

func (s *StakingContract) sortedInactiveStakeAddresses() []primitives.Address {
	addrs := make([]primitives.Address, 0, len(s.InactiveStakeByAddress))
	for a := range s.InactiveStakeByAddress {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addressLess(addrs[i], addrs[j]) })
	return addrs
}
