// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"encoding/binary"
	"fmt"

	"github.com/albatross-pos/staking/primitives"
)

// Receipts carry whatever pre-commit state a Commit* method needs to undo
// itself, since Revert* is never given anything beyond the original
// transaction/inherent and the receipt. They are opaque byte strings to
// callers and are only ever produced and consumed by this package.

// UpdateValidatorReceipt restores the fields UpdateValidator overwrote.
// HadRewardAddress is false when the update left RewardAddress untouched.
type UpdateValidatorReceipt struct {
	HadRewardAddress bool
	OldRewardAddress primitives.Address
}

func (r *UpdateValidatorReceipt) Bytes() []byte {
	out := make([]byte, 0, 1+primitives.AddressLength)
	out = append(out, boolByte(r.HadRewardAddress))
	out = append(out, r.OldRewardAddress.Bytes()...)
	return out
}

func parseUpdateValidatorReceipt(data []byte) (*UpdateValidatorReceipt, error) {
	if len(data) != 1+primitives.AddressLength {
		return nil, errInvalidReceipt("update validator receipt: want %d bytes, got %d", 1+primitives.AddressLength, len(data))
	}
	return &UpdateValidatorReceipt{
		HadRewardAddress: data[0] != 0,
		OldRewardAddress: primitives.BytesToAddress(data[1:]),
	}, nil
}

// StakerRetirement pairs a delegator address and the amount swept out of
// its active delegation with the InactiveStakeReceipt that sweep produced,
// so reverting can restore the exact prior inactive-stake entry (or lack
// of one) rather than assuming it was always freshly created.
type StakerRetirement struct {
	Address primitives.Address
	Balance primitives.Coin
	Receipt InactiveStakeReceipt
}

// DropValidatorReceipt restores a dropped validator record (its reward
// address, locked stake, and retire time) and remembers every staker whose
// active stake was automatically swept into inactive stake via
// CommitRetireRecipient, so reverting the drop can recreate the validator
// and undo each staker's sweep through RevertRetireRecipient exactly.
type DropValidatorReceipt struct {
	RewardAddress primitives.Address
	RetireTime    primitives.BlockHeight
	LockedStake   primitives.Coin
	Stakers       []StakerRetirement
}

func (r *DropValidatorReceipt) Bytes() []byte {
	out := make([]byte, primitives.AddressLength+4+8+4)
	off := 0
	copy(out[off:], r.RewardAddress.Bytes())
	off += primitives.AddressLength
	binary.BigEndian.PutUint32(out[off:], r.RetireTime)
	off += 4
	binary.BigEndian.PutUint64(out[off:], uint64(r.LockedStake))
	off += 8
	binary.BigEndian.PutUint32(out[off:], uint32(len(r.Stakers)))
	for _, sr := range r.Stakers {
		out = append(out, sr.Address.Bytes()...)
		var amt [8]byte
		binary.BigEndian.PutUint64(amt[:], uint64(sr.Balance))
		out = append(out, amt[:]...)
		out = append(out, sr.Receipt.Bytes()...)
	}
	return out
}

func parseDropValidatorReceipt(data []byte) (*DropValidatorReceipt, error) {
	const headerLen = primitives.AddressLength + 4 + 8 + 4
	if len(data) < headerLen {
		return nil, errInvalidReceipt("drop validator receipt: truncated header")
	}
	off := 0
	rewardAddress := primitives.BytesToAddress(data[off : off+primitives.AddressLength])
	off += primitives.AddressLength
	retireTime := binary.BigEndian.Uint32(data[off : off+4])
	off += 4
	lockedStake := binary.BigEndian.Uint64(data[off : off+8])
	off += 8
	n := binary.BigEndian.Uint32(data[off:headerLen])
	data = data[headerLen:]

	const entryLen = primitives.AddressLength + 8 + 5
	stakers := make([]StakerRetirement, 0, n)
	for i := uint32(0); i < n; i++ {
		if len(data) < entryLen {
			return nil, errInvalidReceipt("drop validator receipt: truncated entry %d", i)
		}
		addr := primitives.BytesToAddress(data[:primitives.AddressLength])
		amt := binary.BigEndian.Uint64(data[primitives.AddressLength : primitives.AddressLength+8])
		innerReceipt, err := parseInactiveStakeReceipt(data[primitives.AddressLength+8 : entryLen])
		if err != nil {
			return nil, err
		}
		stakers = append(stakers, StakerRetirement{Address: addr, Balance: primitives.Coin(amt), Receipt: *innerReceipt})
		data = data[entryLen:]
	}
	return &DropValidatorReceipt{
		RewardAddress: rewardAddress,
		RetireTime:    retireTime,
		LockedStake:   primitives.Coin(lockedStake),
		Stakers:       stakers,
	}, nil
}

// UnparkReceipt records which of the two parking sets a validator was
// removed from, so reverting unpark restores exactly those memberships.
type UnparkReceipt struct {
	WasCurrentEpoch  bool
	WasPreviousEpoch bool
}

func (r *UnparkReceipt) Bytes() []byte {
	return []byte{boolByte(r.WasCurrentEpoch), boolByte(r.WasPreviousEpoch)}
}

func parseUnparkReceipt(data []byte) (*UnparkReceipt, error) {
	if len(data) != 2 {
		return nil, errInvalidReceipt("unpark receipt: want 2 bytes, got %d", len(data))
	}
	return &UnparkReceipt{WasCurrentEpoch: data[0] != 0, WasPreviousEpoch: data[1] != 0}, nil
}

// InactiveStakeReceipt records how an operation changed an address's
// inactive-stake entry. From RetireRecipient, WasNewEntry means the entry
// was freshly created, and otherwise OldRetireTime is the retire time the
// existing entry had before. From ReactivateSender and Unstake, WasNewEntry
// means the entry was removed, and OldRetireTime is its retire time.
type InactiveStakeReceipt struct {
	WasNewEntry   bool
	OldRetireTime primitives.BlockHeight
}

func (r *InactiveStakeReceipt) Bytes() []byte {
	out := make([]byte, 5)
	out[0] = boolByte(r.WasNewEntry)
	binary.BigEndian.PutUint32(out[1:], r.OldRetireTime)
	return out
}

func parseInactiveStakeReceipt(data []byte) (*InactiveStakeReceipt, error) {
	if len(data) != 5 {
		return nil, errInvalidReceipt("inactive stake receipt: want 5 bytes, got %d", len(data))
	}
	return &InactiveStakeReceipt{
		WasNewEntry:   data[0] != 0,
		OldRetireTime: binary.BigEndian.Uint32(data[1:5]),
	}, nil
}

// ReactivateValidatorReceipt restores the retire time a validator had
// before ReactivateValidator moved it back to the active set.
type ReactivateValidatorReceipt struct {
	OldRetireTime primitives.BlockHeight
}

func (r *ReactivateValidatorReceipt) Bytes() []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, r.OldRetireTime)
	return out
}

func parseReactivateValidatorReceipt(data []byte) (*ReactivateValidatorReceipt, error) {
	if len(data) != 4 {
		return nil, errInvalidReceipt("reactivate validator receipt: want 4 bytes, got %d", len(data))
	}
	return &ReactivateValidatorReceipt{OldRetireTime: binary.BigEndian.Uint32(data)}, nil
}

// SlashReceipt records whether a slashed validator was already parked
// before the slash inherent, so reverting it only un-parks validators the
// slash itself newly parked.
type SlashReceipt struct {
	WasAlreadyParked bool
}

func (r *SlashReceipt) Bytes() []byte {
	return []byte{boolByte(r.WasAlreadyParked)}
}

func parseSlashReceipt(data []byte) (*SlashReceipt, error) {
	if len(data) != 1 {
		return nil, errInvalidReceipt("slash receipt: want 1 byte, got %d", len(data))
	}
	return &SlashReceipt{WasAlreadyParked: data[0] != 0}, nil
}

// FinalizeEpochReceipt is a list of validator keys swept out of the
// previous epoch's parking set. CommitInherent does not build it:
// FinalizeEpoch returns no receipt and is never reverted.
type FinalizeEpochReceipt struct {
	Parked []primitives.BlsPublicKey
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// receiptError wraps a parse failure with the operation name as an
// InvalidReceipt error.
func receiptError(op string, err error) error {
	return errInvalidReceipt("%s: %s", op, fmt.Sprint(err))
}
