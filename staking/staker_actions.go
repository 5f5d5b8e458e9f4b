// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/albatross-pos/staking/primitives"
)

// Stake delegates value from staker to the validator keyed by key. The
// validator may be active or inactive; delegating to an inactive validator
// is allowed, it simply earns no selection weight until it reactivates.
func (s *StakingContract) CheckStake(key primitives.BlsPublicKey, value primitives.Coin) error {
	if value.IsZero() {
		return errInvalidForRecipient("stake must be non-zero")
	}
	if s.GetValidator(key) == nil {
		return errInvalidForRecipient("validator %s does not exist", key)
	}
	return nil
}

func (s *StakingContract) CommitStake(key primitives.BlsPublicKey, staker primitives.Address, value primitives.Coin) error {
	if err := s.CheckStake(key, value); err != nil {
		return err
	}
	v := s.GetValidator(key)
	newStake, err := v.ActiveStakeByAddress[staker].Add(value)
	if err != nil {
		return errArithmetic(err)
	}
	newValidatorBalance, err := v.Balance.Add(value)
	if err != nil {
		return errArithmetic(err)
	}
	newContractBalance, err := s.Balance.Add(value)
	if err != nil {
		return errArithmetic(err)
	}

	v.ActiveStakeByAddress[staker] = newStake
	v.Balance = newValidatorBalance
	if s.IsActiveValidator(key) {
		s.reorderActive(v)
	}
	s.Balance = newContractBalance
	logger.Debug("staked", "validator", key, "staker", staker, "value", value)
	return nil
}

func (s *StakingContract) RevertStake(key primitives.BlsPublicKey, staker primitives.Address, value primitives.Coin) error {
	v := s.GetValidator(key)
	if v == nil {
		return errInvalidReceipt("revert stake: validator %s does not exist", key)
	}
	newStake, err := v.ActiveStakeByAddress[staker].Sub(value)
	if err != nil {
		return errArithmetic(err)
	}
	newValidatorBalance, err := v.Balance.Sub(value)
	if err != nil {
		return errArithmetic(err)
	}
	newContractBalance, err := s.Balance.Sub(value)
	if err != nil {
		return errArithmetic(err)
	}

	if newStake.IsZero() {
		delete(v.ActiveStakeByAddress, staker)
	} else {
		v.ActiveStakeByAddress[staker] = newStake
	}
	v.Balance = newValidatorBalance
	if s.IsActiveValidator(key) {
		s.reorderActive(v)
	}
	s.Balance = newContractBalance
	return nil
}

// RetireSender is the sender half of retiring a staker's delegation: value
// is removed from the validator's active stake. RetireRecipient is the
// independent recipient half that parks the same value as inactive stake.
// They are committed and reverted independently, as two half-actions of
// one self-transaction.
func (s *StakingContract) CheckRetireSender(key primitives.BlsPublicKey, staker primitives.Address, value primitives.Coin) error {
	v := s.GetValidator(key)
	if v == nil {
		return errInvalidForSender("validator %s does not exist", key)
	}
	return balanceSufficient(v.ActiveStakeByAddress[staker], value)
}

func (s *StakingContract) CommitRetireSender(key primitives.BlsPublicKey, staker primitives.Address, value primitives.Coin) error {
	if err := s.CheckRetireSender(key, staker, value); err != nil {
		return err
	}
	v := s.GetValidator(key)
	newStake, _ := v.ActiveStakeByAddress[staker].Sub(value)
	newValidatorBalance, _ := v.Balance.Sub(value)

	if newStake.IsZero() {
		delete(v.ActiveStakeByAddress, staker)
	} else {
		v.ActiveStakeByAddress[staker] = newStake
	}
	v.Balance = newValidatorBalance
	if s.IsActiveValidator(key) {
		s.reorderActive(v)
	}
	return nil
}

func (s *StakingContract) RevertRetireSender(key primitives.BlsPublicKey, staker primitives.Address, value primitives.Coin) error {
	v := s.GetValidator(key)
	if v == nil {
		return errInvalidReceipt("revert retire sender: validator %s does not exist", key)
	}
	newStake, err := v.ActiveStakeByAddress[staker].Add(value)
	if err != nil {
		return errArithmetic(err)
	}
	newValidatorBalance, err := v.Balance.Add(value)
	if err != nil {
		return errArithmetic(err)
	}
	v.ActiveStakeByAddress[staker] = newStake
	v.Balance = newValidatorBalance
	if s.IsActiveValidator(key) {
		s.reorderActive(v)
	}
	return nil
}

func (s *StakingContract) CommitRetireRecipient(staker primitives.Address, value primitives.Coin, blockHeight primitives.BlockHeight) (*InactiveStakeReceipt, error) {
	if value.IsZero() {
		return nil, errInvalidForRecipient("retired stake must be non-zero")
	}
	existing, ok := s.InactiveStakeByAddress[staker]
	if !ok {
		if err := s.sweepIntoInactiveStake(staker, value, blockHeight); err != nil {
			return nil, err
		}
		return &InactiveStakeReceipt{WasNewEntry: true}, nil
	}
	receipt := &InactiveStakeReceipt{WasNewEntry: false, OldRetireTime: existing.RetireTime}
	if err := s.sweepIntoInactiveStake(staker, value, blockHeight); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *StakingContract) RevertRetireRecipient(staker primitives.Address, value primitives.Coin, receipt *InactiveStakeReceipt) error {
	existing, ok := s.InactiveStakeByAddress[staker]
	if !ok {
		return errInvalidReceipt("revert retire recipient: %s has no inactive stake", staker)
	}
	newBalance, err := existing.Balance.Sub(value)
	if err != nil {
		return errArithmetic(err)
	}
	if receipt.WasNewEntry {
		if !newBalance.IsZero() {
			return errInvalidReceipt("revert retire recipient: %s balance did not return to zero", staker)
		}
		delete(s.InactiveStakeByAddress, staker)
		return nil
	}
	existing.Balance = newBalance
	existing.RetireTime = receipt.OldRetireTime
	return nil
}

// ReactivateSender is the sender half of moving stake out of the inactive
// set and back to active delegation: value leaves InactiveStakeByAddress.
// ReactivateRecipient is the independent recipient half that re-delegates
// the same value to a validator.
func (s *StakingContract) CheckReactivateSender(staker primitives.Address, value primitives.Coin) error {
	existing, ok := s.InactiveStakeByAddress[staker]
	if !ok {
		return errInvalidForSender("%s has no inactive stake", staker)
	}
	return balanceSufficient(existing.Balance, value)
}

func (s *StakingContract) CommitReactivateSender(staker primitives.Address, value primitives.Coin) (*InactiveStakeReceipt, error) {
	if err := s.CheckReactivateSender(staker, value); err != nil {
		return nil, err
	}
	existing := s.InactiveStakeByAddress[staker]
	receipt := &InactiveStakeReceipt{OldRetireTime: existing.RetireTime}
	newBalance, _ := existing.Balance.Sub(value)
	if newBalance.IsZero() {
		delete(s.InactiveStakeByAddress, staker)
		receipt.WasNewEntry = true
	} else {
		existing.Balance = newBalance
	}
	return receipt, nil
}

func (s *StakingContract) RevertReactivateSender(staker primitives.Address, value primitives.Coin, receipt *InactiveStakeReceipt) error {
	if receipt.WasNewEntry {
		s.InactiveStakeByAddress[staker] = &InactiveStake{Balance: value, RetireTime: receipt.OldRetireTime}
		return nil
	}
	existing, ok := s.InactiveStakeByAddress[staker]
	if !ok {
		return errInvalidReceipt("revert reactivate sender: %s has no inactive stake", staker)
	}
	newBalance, err := existing.Balance.Add(value)
	if err != nil {
		return errArithmetic(err)
	}
	existing.Balance = newBalance
	return nil
}

func (s *StakingContract) CheckReactivateRecipient(key primitives.BlsPublicKey, value primitives.Coin) error {
	if value.IsZero() {
		return errInvalidForRecipient("reactivated stake must be non-zero")
	}
	if s.GetValidator(key) == nil {
		return errInvalidForRecipient("validator %s does not exist", key)
	}
	return nil
}

func (s *StakingContract) CommitReactivateRecipient(key primitives.BlsPublicKey, staker primitives.Address, value primitives.Coin) error {
	if err := s.CheckReactivateRecipient(key, value); err != nil {
		return err
	}
	v := s.GetValidator(key)
	newStake, err := v.ActiveStakeByAddress[staker].Add(value)
	if err != nil {
		return errArithmetic(err)
	}
	newValidatorBalance, err := v.Balance.Add(value)
	if err != nil {
		return errArithmetic(err)
	}
	v.ActiveStakeByAddress[staker] = newStake
	v.Balance = newValidatorBalance
	if s.IsActiveValidator(key) {
		s.reorderActive(v)
	}
	return nil
}

func (s *StakingContract) RevertReactivateRecipient(key primitives.BlsPublicKey, staker primitives.Address, value primitives.Coin) error {
	v := s.GetValidator(key)
	if v == nil {
		return errInvalidReceipt("revert reactivate recipient: validator %s does not exist", key)
	}
	newStake, err := v.ActiveStakeByAddress[staker].Sub(value)
	if err != nil {
		return errArithmetic(err)
	}
	newValidatorBalance, err := v.Balance.Sub(value)
	if err != nil {
		return errArithmetic(err)
	}
	if newStake.IsZero() {
		delete(v.ActiveStakeByAddress, staker)
	} else {
		v.ActiveStakeByAddress[staker] = newStake
	}
	v.Balance = newValidatorBalance
	if s.IsActiveValidator(key) {
		s.reorderActive(v)
	}
	return nil
}

// Unstake withdraws value out of the contract entirely, once staker's
// inactive stake has cleared the unstaking cooldown.
func (s *StakingContract) CheckUnstake(staker primitives.Address, value primitives.Coin, blockHeight primitives.BlockHeight) error {
	existing, ok := s.InactiveStakeByAddress[staker]
	if !ok {
		return errInvalidForSender("%s has no inactive stake", staker)
	}
	if err := balanceSufficient(existing.Balance, value); err != nil {
		return err
	}
	if blockHeight < existing.RetireTime+primitives.UnstakingDelay*primitives.BatchLength {
		return errInvalidForSender("%s has not cleared the unstaking cooldown", staker)
	}
	return nil
}

func (s *StakingContract) CommitUnstake(staker primitives.Address, value primitives.Coin, blockHeight primitives.BlockHeight) (*InactiveStakeReceipt, error) {
	if err := s.CheckUnstake(staker, value, blockHeight); err != nil {
		return nil, err
	}
	existing := s.InactiveStakeByAddress[staker]
	receipt := &InactiveStakeReceipt{OldRetireTime: existing.RetireTime}
	newContractBalance, err := s.Balance.Sub(value)
	if err != nil {
		return nil, errArithmetic(err)
	}
	newBalance, _ := existing.Balance.Sub(value)
	if newBalance.IsZero() {
		delete(s.InactiveStakeByAddress, staker)
		receipt.WasNewEntry = true
	} else {
		existing.Balance = newBalance
	}
	s.Balance = newContractBalance
	logger.Debug("unstaked", "staker", staker, "value", value)
	return receipt, nil
}

func (s *StakingContract) RevertUnstake(staker primitives.Address, value primitives.Coin, receipt *InactiveStakeReceipt) error {
	newContractBalance, err := s.Balance.Add(value)
	if err != nil {
		return errArithmetic(err)
	}
	if receipt.WasNewEntry {
		s.InactiveStakeByAddress[staker] = &InactiveStake{Balance: value, RetireTime: receipt.OldRetireTime}
	} else {
		existing, ok := s.InactiveStakeByAddress[staker]
		if !ok {
			return errInvalidReceipt("revert unstake: %s has no inactive stake", staker)
		}
		newBalance, err := existing.Balance.Add(value)
		if err != nil {
			return errArithmetic(err)
		}
		existing.Balance = newBalance
	}
	s.Balance = newContractBalance
	return nil
}
