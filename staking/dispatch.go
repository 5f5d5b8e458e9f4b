// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/albatross-pos/staking/primitives"
)

// Incoming, outgoing, and self transactions are classified by the caller
// (the transaction/block processor) by comparing sender and recipient
// against the staking contract's address; dispatch.go only needs the
// already-classified halves. Every Commit* below returns a receipt byte
// string prefixed with its own tag byte, so Revert* can recover which
// sub-receipt to parse without being told again.

// CheckIncomingTransaction statically validates an incoming transaction
// without mutating state.
func (s *StakingContract) CheckIncomingTransaction(value primitives.Coin, data []byte) error {
	d, err := parseIncomingData(data)
	if err != nil {
		return err
	}
	switch d.Tag {
	case TagCreateValidator:
		return s.CheckCreateValidator(d.ValidatorKey, value)
	case TagStake:
		return s.CheckStake(d.ValidatorKey, value)
	case TagUpdateValidator:
		return s.CheckUpdateValidator(d.ValidatorKey)
	case TagRetireValidator:
		return s.CheckRetireValidator(d.ValidatorKey)
	case TagReactivateValidator:
		return s.CheckReactivateValidator(d.ValidatorKey)
	default:
		return errInvalidForRecipient("unhandled incoming tag %d", d.Tag)
	}
}

// CommitIncomingTransaction applies an incoming transaction and returns its
// revert receipt.
func (s *StakingContract) CommitIncomingTransaction(sender primitives.Address, value primitives.Coin, data []byte, blockHeight primitives.BlockHeight) ([]byte, error) {
	d, err := parseIncomingData(data)
	if err != nil {
		return nil, err
	}
	switch d.Tag {
	case TagCreateValidator:
		if err := s.CommitCreateValidator(d.ValidatorKey, d.RewardAddress, value); err != nil {
			return nil, err
		}
		return []byte{byte(d.Tag)}, nil
	case TagStake:
		if err := s.CommitStake(d.ValidatorKey, sender, value); err != nil {
			return nil, err
		}
		return []byte{byte(d.Tag)}, nil
	case TagUpdateValidator:
		var newAddr *primitives.Address
		if d.HasRewardAddress {
			newAddr = &d.RewardAddress
		}
		receipt, err := s.CommitUpdateValidator(d.ValidatorKey, newAddr)
		if err != nil {
			return nil, err
		}
		return append([]byte{byte(d.Tag)}, receipt.Bytes()...), nil
	case TagRetireValidator:
		if err := s.CommitRetireValidator(d.ValidatorKey, blockHeight); err != nil {
			return nil, err
		}
		return []byte{byte(d.Tag)}, nil
	case TagReactivateValidator:
		receipt, err := s.CommitReactivateValidator(d.ValidatorKey)
		if err != nil {
			return nil, err
		}
		return append([]byte{byte(d.Tag)}, receipt.Bytes()...), nil
	default:
		return nil, errInvalidForRecipient("unhandled incoming tag %d", d.Tag)
	}
}

// RevertIncomingTransaction undoes CommitIncomingTransaction.
func (s *StakingContract) RevertIncomingTransaction(sender primitives.Address, value primitives.Coin, data []byte, receipt []byte) error {
	d, err := parseIncomingData(data)
	if err != nil {
		return err
	}
	if len(receipt) < 1 || IncomingTag(receipt[0]) != d.Tag {
		return errInvalidReceipt("incoming receipt tag does not match transaction tag")
	}
	body := receipt[1:]

	switch d.Tag {
	case TagCreateValidator:
		return s.RevertCreateValidator(d.ValidatorKey, value)
	case TagStake:
		return s.RevertStake(d.ValidatorKey, sender, value)
	case TagUpdateValidator:
		r, err := parseUpdateValidatorReceipt(body)
		if err != nil {
			return err
		}
		return s.RevertUpdateValidator(d.ValidatorKey, r)
	case TagRetireValidator:
		return s.RevertRetireValidator(d.ValidatorKey)
	case TagReactivateValidator:
		r, err := parseReactivateValidatorReceipt(body)
		if err != nil {
			return err
		}
		return s.RevertReactivateValidator(d.ValidatorKey, r)
	default:
		return errInvalidForRecipient("unhandled incoming tag %d", d.Tag)
	}
}

// CheckOutgoingTransaction statically validates an outgoing transaction.
func (s *StakingContract) CheckOutgoingTransaction(recipient primitives.Address, value primitives.Coin, data []byte, blockHeight primitives.BlockHeight) error {
	d, err := parseOutgoingData(data)
	if err != nil {
		return err
	}
	switch d.Tag {
	case TagDropValidator:
		return s.CheckDropValidator(d.ValidatorKey, value, blockHeight)
	case TagUnstake:
		return s.CheckUnstake(recipient, value, blockHeight)
	default:
		return errInvalidForSender("unhandled outgoing tag %d", d.Tag)
	}
}

// CommitOutgoingTransaction applies an outgoing transaction and returns its
// revert receipt.
func (s *StakingContract) CommitOutgoingTransaction(recipient primitives.Address, value primitives.Coin, data []byte, blockHeight primitives.BlockHeight) ([]byte, error) {
	d, err := parseOutgoingData(data)
	if err != nil {
		return nil, err
	}
	switch d.Tag {
	case TagDropValidator:
		receipt, err := s.CommitDropValidator(d.ValidatorKey, value, blockHeight)
		if err != nil {
			return nil, err
		}
		return append([]byte{byte(d.Tag)}, receipt.Bytes()...), nil
	case TagUnstake:
		receipt, err := s.CommitUnstake(recipient, value, blockHeight)
		if err != nil {
			return nil, err
		}
		return append([]byte{byte(d.Tag)}, receipt.Bytes()...), nil
	default:
		return nil, errInvalidForSender("unhandled outgoing tag %d", d.Tag)
	}
}

// RevertOutgoingTransaction undoes CommitOutgoingTransaction.
func (s *StakingContract) RevertOutgoingTransaction(recipient primitives.Address, value primitives.Coin, data []byte, receipt []byte) error {
	d, err := parseOutgoingData(data)
	if err != nil {
		return err
	}
	if len(receipt) < 1 || OutgoingTag(receipt[0]) != d.Tag {
		return errInvalidReceipt("outgoing receipt tag does not match transaction tag")
	}
	body := receipt[1:]

	switch d.Tag {
	case TagDropValidator:
		r, err := parseDropValidatorReceipt(body)
		if err != nil {
			return err
		}
		return s.RevertDropValidator(d.ValidatorKey, r)
	case TagUnstake:
		r, err := parseInactiveStakeReceipt(body)
		if err != nil {
			return err
		}
		return s.RevertUnstake(recipient, value, r)
	default:
		return errInvalidForSender("unhandled outgoing tag %d", d.Tag)
	}
}

// CheckSelfTransaction statically validates either half of a self
// transaction; it is identical for sender and recipient halves since both
// name the same validator and staker.
func (s *StakingContract) CheckSelfTransaction(value primitives.Coin, data []byte) error {
	d, err := parseSelfData(data)
	if err != nil {
		return err
	}
	switch d.Tag {
	case TagRetireStake:
		return s.CheckRetireSender(d.ValidatorKey, d.Staker, value)
	case TagReactivateStake:
		return s.CheckReactivateSender(d.Staker, value)
	case TagUnparkSelf:
		return s.CheckUnparkValidator(d.ValidatorKey)
	default:
		return errInvalidForTarget("unhandled self tag %d", d.Tag)
	}
}

// CommitSelfTransactionSenderHalf applies the sender half of a self
// transaction: stake leaving its current pocket. Unpark has no pocket to
// leave — its real work happens here regardless, since value and a
// recipient half are artifacts of the self-transaction shape rather than
// anything Unpark itself uses (mirrored by its unused total_value/fee
// arguments).
func (s *StakingContract) CommitSelfTransactionSenderHalf(value primitives.Coin, data []byte) ([]byte, error) {
	d, err := parseSelfData(data)
	if err != nil {
		return nil, err
	}
	switch d.Tag {
	case TagRetireStake:
		if err := s.CommitRetireSender(d.ValidatorKey, d.Staker, value); err != nil {
			return nil, err
		}
		return []byte{byte(d.Tag)}, nil
	case TagReactivateStake:
		receipt, err := s.CommitReactivateSender(d.Staker, value)
		if err != nil {
			return nil, err
		}
		return append([]byte{byte(d.Tag)}, receipt.Bytes()...), nil
	case TagUnparkSelf:
		receipt, err := s.CommitUnparkValidator(d.ValidatorKey)
		if err != nil {
			return nil, err
		}
		return append([]byte{byte(d.Tag)}, receipt.Bytes()...), nil
	default:
		return nil, errInvalidForTarget("unhandled self tag %d", d.Tag)
	}
}

// RevertSelfTransactionSenderHalf undoes CommitSelfTransactionSenderHalf.
func (s *StakingContract) RevertSelfTransactionSenderHalf(value primitives.Coin, data []byte, receipt []byte) error {
	d, err := parseSelfData(data)
	if err != nil {
		return err
	}
	if len(receipt) < 1 || SelfTag(receipt[0]) != d.Tag {
		return errInvalidReceipt("self-transaction sender receipt tag does not match")
	}
	body := receipt[1:]

	switch d.Tag {
	case TagRetireStake:
		return s.RevertRetireSender(d.ValidatorKey, d.Staker, value)
	case TagReactivateStake:
		r, err := parseInactiveStakeReceipt(body)
		if err != nil {
			return err
		}
		return s.RevertReactivateSender(d.Staker, value, r)
	case TagUnparkSelf:
		r, err := parseUnparkReceipt(body)
		if err != nil {
			return err
		}
		return s.RevertUnparkValidator(d.ValidatorKey, r)
	default:
		return errInvalidForTarget("unhandled self tag %d", d.Tag)
	}
}

// CommitSelfTransactionRecipientHalf applies the recipient half of a self
// transaction: stake arriving in its destination pocket. Unpark's recipient
// half is a true no-op — all of its work already happened in the sender
// half.
func (s *StakingContract) CommitSelfTransactionRecipientHalf(value primitives.Coin, data []byte, blockHeight primitives.BlockHeight) ([]byte, error) {
	d, err := parseSelfData(data)
	if err != nil {
		return nil, err
	}
	switch d.Tag {
	case TagRetireStake:
		receipt, err := s.CommitRetireRecipient(d.Staker, value, blockHeight)
		if err != nil {
			return nil, err
		}
		return append([]byte{byte(d.Tag)}, receipt.Bytes()...), nil
	case TagReactivateStake:
		if err := s.CommitReactivateRecipient(d.ValidatorKey, d.Staker, value); err != nil {
			return nil, err
		}
		return []byte{byte(d.Tag)}, nil
	case TagUnparkSelf:
		return []byte{byte(d.Tag)}, nil
	default:
		return nil, errInvalidForTarget("unhandled self tag %d", d.Tag)
	}
}

// RevertSelfTransactionRecipientHalf undoes
// CommitSelfTransactionRecipientHalf.
func (s *StakingContract) RevertSelfTransactionRecipientHalf(value primitives.Coin, data []byte, receipt []byte) error {
	d, err := parseSelfData(data)
	if err != nil {
		return err
	}
	if len(receipt) < 1 || SelfTag(receipt[0]) != d.Tag {
		return errInvalidReceipt("self-transaction recipient receipt tag does not match")
	}
	body := receipt[1:]

	switch d.Tag {
	case TagRetireStake:
		r, err := parseInactiveStakeReceipt(body)
		if err != nil {
			return err
		}
		return s.RevertRetireRecipient(d.Staker, value, r)
	case TagReactivateStake:
		return s.RevertReactivateRecipient(d.ValidatorKey, d.Staker, value)
	case TagUnparkSelf:
		return nil
	default:
		return errInvalidForTarget("unhandled self tag %d", d.Tag)
	}
}

// CheckInherent statically validates a block-level inherent.
func (s *StakingContract) CheckInherent(inherent Inherent) error {
	switch inherent.Type {
	case InherentSlash:
		if !s.IsActiveValidator(inherent.ValidatorKey) {
			return errInvalidInherent("cannot slash %s: not an active validator", inherent.ValidatorKey)
		}
		return nil
	case InherentFinalizeEpoch:
		return nil
	default:
		return errInvalidInherent("unknown inherent type %d", inherent.Type)
	}
}

// CommitInherent applies a block-level inherent and returns its revert
// receipt. FinalizeEpoch returns a nil receipt: it can never be reverted.
func (s *StakingContract) CommitInherent(inherent Inherent, blockHeight primitives.BlockHeight) ([]byte, error) {
	if err := s.CheckInherent(inherent); err != nil {
		return nil, err
	}
	switch inherent.Type {
	case InherentSlash:
		_, alreadyParked := s.CurrentEpochParking[inherent.ValidatorKey]
		s.CurrentEpochParking[inherent.ValidatorKey] = struct{}{}
		logger.Debug("slashed validator", "key", inherent.ValidatorKey, "height", blockHeight)
		receipt := &SlashReceipt{WasAlreadyParked: alreadyParked}
		return append([]byte{byte(InherentSlash)}, receipt.Bytes()...), nil
	case InherentFinalizeEpoch:
		for key := range s.PreviousEpochParking {
			if s.IsActiveValidator(key) {
				if err := s.CommitRetireValidator(key, blockHeight); err != nil {
					return nil, err
				}
				iv := s.inactiveValidatorsByKey[key]
				if _, err := s.sweepStakersToInactive(iv.Validator, blockHeight); err != nil {
					return nil, err
				}
			}
		}
		s.PreviousEpochParking = s.CurrentEpochParking
		s.CurrentEpochParking = make(map[primitives.BlsPublicKey]struct{})
		logger.Debug("finalized epoch", "height", blockHeight)
		return nil, nil
	default:
		return nil, errInvalidInherent("unknown inherent type %d", inherent.Type)
	}
}

// RevertInherent undoes CommitInherent. FinalizeEpoch can never be
// reverted: the parking sets it rotates are not individually reversible
// once the sweep has retired validators out of the active set.
func (s *StakingContract) RevertInherent(inherent Inherent, receipt []byte) error {
	switch inherent.Type {
	case InherentSlash:
		if len(receipt) < 2 || InherentType(receipt[0]) != InherentSlash {
			return errInvalidReceipt("slash receipt tag does not match")
		}
		r, err := parseSlashReceipt(receipt[1:])
		if err != nil {
			return err
		}
		if !r.WasAlreadyParked {
			delete(s.CurrentEpochParking, inherent.ValidatorKey)
		}
		return nil
	case InherentFinalizeEpoch:
		return errInvalidForTarget("finalize epoch cannot be reverted")
	default:
		return errInvalidInherent("unknown inherent type %d", inherent.Type)
	}
}
