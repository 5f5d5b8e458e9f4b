// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/albatross-pos/staking/primitives"
)

// CreateValidator registers a new validator keyed by key with an initial
// stake that is locked until the validator is dropped — it is never
// attributed to any staker's active delegation. key must not already be
// active or inactive.
func (s *StakingContract) CheckCreateValidator(key primitives.BlsPublicKey, value primitives.Coin) error {
	if value.IsZero() {
		return errInvalidForRecipient("initial stake must be non-zero")
	}
	if s.GetValidator(key) != nil {
		return errInvalidForRecipient("validator %s already exists", key)
	}
	return nil
}

func (s *StakingContract) CommitCreateValidator(key primitives.BlsPublicKey, rewardAddress primitives.Address, value primitives.Coin) error {
	if err := s.CheckCreateValidator(key, value); err != nil {
		return err
	}
	newBalance, err := s.Balance.Add(value)
	if err != nil {
		return errArithmetic(err)
	}

	v := newValidator(key, rewardAddress, value)
	s.insertActive(v)
	s.Balance = newBalance
	logger.Debug("created validator", "key", key, "locked stake", value)
	return nil
}

// RevertCreateValidator undoes CommitCreateValidator. It requires the
// validator's balance to still equal exactly the initial stake (no other
// operation may have touched it since).
func (s *StakingContract) RevertCreateValidator(key primitives.BlsPublicKey, value primitives.Coin) error {
	v := s.GetValidator(key)
	if v == nil || !s.IsActiveValidator(key) {
		return errInvalidReceipt("revert create validator: %s is not an active validator", key)
	}
	if v.Balance != value {
		return errInvalidReceipt("revert create validator: balance %d does not match initial stake %d", v.Balance, value)
	}
	newBalance, err := s.Balance.Sub(value)
	if err != nil {
		return errArithmetic(err)
	}
	s.removeActive(key)
	s.Balance = newBalance
	return nil
}

// UpdateValidator changes an existing validator's reward address.
// newRewardAddress == nil leaves the field untouched (a no-op update is
// still valid — it may exist purely to re-sign a validator's details).
func (s *StakingContract) CheckUpdateValidator(key primitives.BlsPublicKey) error {
	if s.GetValidator(key) == nil {
		return errInvalidForRecipient("validator %s does not exist", key)
	}
	return nil
}

func (s *StakingContract) CommitUpdateValidator(key primitives.BlsPublicKey, newRewardAddress *primitives.Address) (*UpdateValidatorReceipt, error) {
	v := s.GetValidator(key)
	if v == nil {
		return nil, errInvalidForRecipient("validator %s does not exist", key)
	}
	receipt := &UpdateValidatorReceipt{}
	if newRewardAddress != nil {
		receipt.HadRewardAddress = true
		receipt.OldRewardAddress = v.RewardAddress
		v.RewardAddress = *newRewardAddress
	}
	return receipt, nil
}

func (s *StakingContract) RevertUpdateValidator(key primitives.BlsPublicKey, receipt *UpdateValidatorReceipt) error {
	v := s.GetValidator(key)
	if v == nil {
		return errInvalidReceipt("revert update validator: %s does not exist", key)
	}
	if receipt.HadRewardAddress {
		v.RewardAddress = receipt.OldRewardAddress
	}
	return nil
}

// RetireValidator moves an active validator to the inactive set. Its
// stakers keep their delegations unchanged; they simply stop earning
// selection weight until the validator reactivates.
func (s *StakingContract) CheckRetireValidator(key primitives.BlsPublicKey) error {
	if !s.IsActiveValidator(key) {
		return errInvalidForSender("validator %s is not active", key)
	}
	return nil
}

func (s *StakingContract) CommitRetireValidator(key primitives.BlsPublicKey, blockHeight primitives.BlockHeight) error {
	if err := s.CheckRetireValidator(key); err != nil {
		return err
	}
	v := s.removeActive(key)
	s.inactiveValidatorsByKey[key] = &InactiveValidator{Validator: v, RetireTime: blockHeight}
	logger.Debug("retired validator", "key", key, "height", blockHeight)
	return nil
}

func (s *StakingContract) RevertRetireValidator(key primitives.BlsPublicKey) error {
	iv, ok := s.inactiveValidatorsByKey[key]
	if !ok {
		return errInvalidReceipt("revert retire validator: %s is not inactive", key)
	}
	delete(s.inactiveValidatorsByKey, key)
	s.insertActive(iv.Validator)
	return nil
}

// ReactivateValidator moves an inactive validator back to the active set.
// Unlike dropping, reactivation has no cooldown: a validator may change its
// mind at any time before it is dropped.
func (s *StakingContract) CheckReactivateValidator(key primitives.BlsPublicKey) error {
	if !s.IsInactiveValidator(key) {
		return errInvalidForSender("validator %s is not inactive", key)
	}
	return nil
}

func (s *StakingContract) CommitReactivateValidator(key primitives.BlsPublicKey) (*ReactivateValidatorReceipt, error) {
	iv, ok := s.inactiveValidatorsByKey[key]
	if !ok {
		return nil, errInvalidForSender("validator %s is not inactive", key)
	}
	delete(s.inactiveValidatorsByKey, key)
	s.insertActive(iv.Validator)
	logger.Debug("reactivated validator", "key", key)
	return &ReactivateValidatorReceipt{OldRetireTime: iv.RetireTime}, nil
}

func (s *StakingContract) RevertReactivateValidator(key primitives.BlsPublicKey, receipt *ReactivateValidatorReceipt) error {
	v := s.removeActive(key)
	if v == nil {
		return errInvalidReceipt("revert reactivate validator: %s is not active", key)
	}
	s.inactiveValidatorsByKey[key] = &InactiveValidator{Validator: v, RetireTime: receipt.OldRetireTime}
	return nil
}

// DropValidator removes an inactive validator once its cooldown has
// elapsed. value must equal the validator's locked initial stake — that is
// what the outgoing transaction pays out to its recipient. Every remaining
// staker's delegation is separately swept into inactive stake (starting a
// fresh unstaking cooldown for each of them); it never reaches the drop
// transaction's recipient.
func (s *StakingContract) CheckDropValidator(key primitives.BlsPublicKey, value primitives.Coin, blockHeight primitives.BlockHeight) error {
	iv, ok := s.inactiveValidatorsByKey[key]
	if !ok {
		return errInvalidForSender("validator %s is not inactive", key)
	}
	if blockHeight < iv.RetireTime+primitives.DropDelay*primitives.BatchLength {
		return errInvalidForSender("validator %s has not cleared its drop cooldown", key)
	}
	if value != iv.Validator.LockedStake {
		return errInvalidForSender("validator %s drop value %d does not match locked stake %d", key, value, iv.Validator.LockedStake)
	}
	return nil
}

func (s *StakingContract) CommitDropValidator(key primitives.BlsPublicKey, value primitives.Coin, blockHeight primitives.BlockHeight) (*DropValidatorReceipt, error) {
	if err := s.CheckDropValidator(key, value, blockHeight); err != nil {
		return nil, err
	}
	iv := s.inactiveValidatorsByKey[key]
	v := iv.Validator

	newContractBalance, err := s.Balance.Sub(value)
	if err != nil {
		return nil, errArithmetic(err)
	}
	retirements, err := s.sweepStakersToInactive(v, blockHeight)
	if err != nil {
		return nil, err
	}

	delete(s.inactiveValidatorsByKey, key)
	s.Balance = newContractBalance
	logger.Debug("dropped validator", "key", key, "stakers", len(retirements))
	return &DropValidatorReceipt{
		RewardAddress: v.RewardAddress,
		RetireTime:    iv.RetireTime,
		LockedStake:   value,
		Stakers:       retirements,
	}, nil
}

func (s *StakingContract) RevertDropValidator(key primitives.BlsPublicKey, receipt *DropValidatorReceipt) error {
	if s.GetValidator(key) != nil {
		return errInvalidReceipt("revert drop validator: %s already exists", key)
	}
	newContractBalance, err := s.Balance.Add(receipt.LockedStake)
	if err != nil {
		return errArithmetic(err)
	}

	v := newValidator(key, receipt.RewardAddress, receipt.LockedStake)
	for _, sr := range receipt.Stakers {
		r := sr.Receipt
		if err := s.RevertRetireRecipient(sr.Address, sr.Balance, &r); err != nil {
			return err
		}
		v.ActiveStakeByAddress[sr.Address] = sr.Balance
		v.Balance, _ = v.Balance.Add(sr.Balance)
	}
	s.inactiveValidatorsByKey[key] = &InactiveValidator{Validator: v, RetireTime: receipt.RetireTime}
	s.Balance = newContractBalance
	return nil
}

// UnparkValidator clears a validator out of the current and/or previous
// epoch parking sets, e.g. after it has proven it is back online.
func (s *StakingContract) CheckUnparkValidator(key primitives.BlsPublicKey) error {
	_, inCurrent := s.CurrentEpochParking[key]
	_, inPrevious := s.PreviousEpochParking[key]
	if !inCurrent && !inPrevious {
		return errInvalidForRecipient("validator %s is not parked", key)
	}
	return nil
}

func (s *StakingContract) CommitUnparkValidator(key primitives.BlsPublicKey) (*UnparkReceipt, error) {
	_, inCurrent := s.CurrentEpochParking[key]
	_, inPrevious := s.PreviousEpochParking[key]
	if !inCurrent && !inPrevious {
		return nil, errInvalidForRecipient("validator %s is not parked", key)
	}
	delete(s.CurrentEpochParking, key)
	delete(s.PreviousEpochParking, key)
	return &UnparkReceipt{WasCurrentEpoch: inCurrent, WasPreviousEpoch: inPrevious}, nil
}

func (s *StakingContract) RevertUnparkValidator(key primitives.BlsPublicKey, receipt *UnparkReceipt) error {
	if receipt.WasCurrentEpoch {
		s.CurrentEpochParking[key] = struct{}{}
	}
	if receipt.WasPreviousEpoch {
		s.PreviousEpochParking[key] = struct{}{}
	}
	return nil
}

// sweepIntoInactiveStake merges amount into address's existing inactive
// stake (if any) or creates a new entry, resetting its retire time.
func (s *StakingContract) sweepIntoInactiveStake(address primitives.Address, amount primitives.Coin, blockHeight primitives.BlockHeight) error {
	if existing, ok := s.InactiveStakeByAddress[address]; ok {
		newBalance, err := existing.Balance.Add(amount)
		if err != nil {
			return errArithmetic(err)
		}
		existing.Balance = newBalance
		existing.RetireTime = blockHeight
		return nil
	}
	s.InactiveStakeByAddress[address] = &InactiveStake{Balance: amount, RetireTime: blockHeight}
	return nil
}

// sweepStakersToInactive moves every one of v's active delegations into
// inactive stake via CommitRetireRecipient (the same mechanism a staker's
// own RetireStake self-transaction uses), clearing v's active-stake map and
// reducing v's balance by each swept amount, which leaves it equal to
// v.LockedStake. Used both by CommitDropValidator and by
// CommitInherent's FinalizeEpoch handling of a twice-parked validator.
func (s *StakingContract) sweepStakersToInactive(v *Validator, blockHeight primitives.BlockHeight) ([]StakerRetirement, error) {
	var retirements []StakerRetirement
	for _, addr := range v.sortedAddresses() {
		amount := v.ActiveStakeByAddress[addr]
		receipt, err := s.CommitRetireRecipient(addr, amount, blockHeight)
		if err != nil {
			return nil, err
		}
		delete(v.ActiveStakeByAddress, addr)
		v.Balance, _ = v.Balance.Sub(amount)
		retirements = append(retirements, StakerRetirement{Address: addr, Balance: amount, Receipt: *receipt})
	}
	return retirements, nil
}
