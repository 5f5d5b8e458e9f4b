// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/log"

	"github.com/albatross-pos/staking/primitives"
)

var logger = log.New("pkg", "staking")

// SetLogger overrides the package-level logger, e.g. to attach it to a
// node's own handler chain.
func SetLogger(l log.Logger) {
	logger = l
}

// StakingContract is the singleton staking account. Balance always equals
// the sum of every validator's balance (active and inactive) plus every
// inactive stake's balance — the master invariant checked by Invariant().
type StakingContract struct {
	Balance primitives.Coin

	activeValidatorsSorted []*Validator                                   // (balance desc, key asc)
	activeValidatorsByKey  map[primitives.BlsPublicKey]*Validator
	inactiveValidatorsByKey map[primitives.BlsPublicKey]*InactiveValidator

	CurrentEpochParking  map[primitives.BlsPublicKey]struct{}
	PreviousEpochParking map[primitives.BlsPublicKey]struct{}

	InactiveStakeByAddress map[primitives.Address]*InactiveStake
}

// New returns an empty staking contract.
func New() *StakingContract {
	return &StakingContract{
		activeValidatorsByKey:   make(map[primitives.BlsPublicKey]*Validator),
		inactiveValidatorsByKey: make(map[primitives.BlsPublicKey]*InactiveValidator),
		CurrentEpochParking:     make(map[primitives.BlsPublicKey]struct{}),
		PreviousEpochParking:    make(map[primitives.BlsPublicKey]struct{}),
		InactiveStakeByAddress:  make(map[primitives.Address]*InactiveStake),
	}
}

// GetValidator returns the validator for key, searching active then
// inactive validators, or nil if it does not exist in either.
func (s *StakingContract) GetValidator(key primitives.BlsPublicKey) *Validator {
	if v, ok := s.activeValidatorsByKey[key]; ok {
		return v
	}
	if iv, ok := s.inactiveValidatorsByKey[key]; ok {
		return iv.Validator
	}
	return nil
}

// IsActiveValidator reports whether key is in the active validator set.
func (s *StakingContract) IsActiveValidator(key primitives.BlsPublicKey) bool {
	_, ok := s.activeValidatorsByKey[key]
	return ok
}

// IsInactiveValidator reports whether key is in the inactive validator set.
func (s *StakingContract) IsInactiveValidator(key primitives.BlsPublicKey) bool {
	_, ok := s.inactiveValidatorsByKey[key]
	return ok
}

// GetInactiveValidator returns the inactive validator record for key, or
// nil if key is not currently inactive.
func (s *StakingContract) GetInactiveValidator(key primitives.BlsPublicKey) *InactiveValidator {
	return s.inactiveValidatorsByKey[key]
}

// ActiveValidatorsSorted returns the active validators in canonical order
// (balance desc, key asc). Callers must not mutate the returned slice.
func (s *StakingContract) ActiveValidatorsSorted() []*Validator {
	return s.activeValidatorsSorted
}

// GetBalance returns the total (active + inactive) stake held for address.
func (s *StakingContract) GetBalance(address primitives.Address) primitives.Coin {
	// Coin.Add cannot overflow here: both summands are already bounded by
	// the contract's own balance invariant.
	sum, _ := s.GetActiveBalance(address).Add(s.GetInactiveBalance(address))
	return sum
}

// GetActiveBalance returns the sum of address's active stake across every
// validator it delegates to.
func (s *StakingContract) GetActiveBalance(address primitives.Address) primitives.Coin {
	var total primitives.Coin
	for _, v := range s.activeValidatorsByKey {
		if stake, ok := v.ActiveStakeByAddress[address]; ok {
			total, _ = total.Add(stake)
		}
	}
	for _, iv := range s.inactiveValidatorsByKey {
		if stake, ok := iv.Validator.ActiveStakeByAddress[address]; ok {
			total, _ = total.Add(stake)
		}
	}
	return total
}

// GetInactiveBalance returns address's inactive (cooling down) stake.
func (s *StakingContract) GetInactiveBalance(address primitives.Address) primitives.Coin {
	if is, ok := s.InactiveStakeByAddress[address]; ok {
		return is.Balance
	}
	return 0
}

// insertActive adds v to both the by-key map and the sorted slice.
// Precondition: v.ValidatorKey is not already present in either map.
func (s *StakingContract) insertActive(v *Validator) {
	s.activeValidatorsByKey[v.ValidatorKey] = v
	s.insertSorted(v)
}

// removeActive removes key from both the by-key map and the sorted slice,
// returning the removed record (or nil if absent).
func (s *StakingContract) removeActive(key primitives.BlsPublicKey) *Validator {
	v, ok := s.activeValidatorsByKey[key]
	if !ok {
		return nil
	}
	delete(s.activeValidatorsByKey, key)
	s.removeSorted(v)
	return v
}

// reorderActive re-establishes v's position in the sorted slice after its
// balance changed. Must be called whenever an active validator's balance
// is mutated in place.
func (s *StakingContract) reorderActive(v *Validator) {
	s.removeSorted(v)
	s.insertSorted(v)
}

func (s *StakingContract) insertSorted(v *Validator) {
	idx := sort.Search(len(s.activeValidatorsSorted), func(i int) bool {
		return validatorLess(v, s.activeValidatorsSorted[i])
	})
	s.activeValidatorsSorted = append(s.activeValidatorsSorted, nil)
	copy(s.activeValidatorsSorted[idx+1:], s.activeValidatorsSorted[idx:])
	s.activeValidatorsSorted[idx] = v
}

func (s *StakingContract) removeSorted(v *Validator) {
	for i, cur := range s.activeValidatorsSorted {
		if cur == v {
			s.activeValidatorsSorted = append(s.activeValidatorsSorted[:i], s.activeValidatorsSorted[i+1:]...)
			return
		}
	}
}

// validatorLess implements the canonical active-set order: balance
// descending, then validator key ascending.
func validatorLess(a, b *Validator) bool {
	if a.Balance != b.Balance {
		return a.Balance > b.Balance
	}
	return blsKeyLess(a.ValidatorKey, b.ValidatorKey)
}

// Invariant checks the five global invariants every mutation must
// preserve, returning the first violation found (or nil). It is not on
// any hot path — tests call it after a sequence of commits/reverts to
// catch a broken invariant close to its cause.
func (s *StakingContract) Invariant() error {
	var total primitives.Coin
	seen := make(map[primitives.BlsPublicKey]struct{}, len(s.activeValidatorsByKey)+len(s.inactiveValidatorsByKey))

	for key, v := range s.activeValidatorsByKey {
		if _, dup := seen[key]; dup {
			return fmt.Errorf("invariant: key %s present in both active and inactive sets", key)
		}
		seen[key] = struct{}{}
		if err := validatorBalanceInvariant(v); err != nil {
			return err
		}
		total, _ = total.Add(v.Balance)
	}
	if len(s.activeValidatorsByKey) != len(s.activeValidatorsSorted) {
		return fmt.Errorf("invariant: active by-key map and sorted slice sizes differ (%d vs %d)", len(s.activeValidatorsByKey), len(s.activeValidatorsSorted))
	}
	for _, v := range s.activeValidatorsSorted {
		if _, ok := s.activeValidatorsByKey[v.ValidatorKey]; !ok {
			return fmt.Errorf("invariant: sorted slice contains key %s absent from by-key map", v.ValidatorKey)
		}
	}

	for key, iv := range s.inactiveValidatorsByKey {
		if _, dup := seen[key]; dup {
			return fmt.Errorf("invariant: key %s present in both active and inactive sets", key)
		}
		seen[key] = struct{}{}
		if err := validatorBalanceInvariant(iv.Validator); err != nil {
			return err
		}
		total, _ = total.Add(iv.Validator.Balance)
	}

	for addr, is := range s.InactiveStakeByAddress {
		if is.Balance.IsZero() {
			return fmt.Errorf("invariant: zero-balance inactive stake entry for %s", addr)
		}
		total, _ = total.Add(is.Balance)
	}

	for key := range s.CurrentEpochParking {
		if _, ok := s.activeValidatorsByKey[key]; !ok {
			return fmt.Errorf("invariant: parked key %s is not an active validator", key)
		}
	}
	for key := range s.PreviousEpochParking {
		if _, ok := s.activeValidatorsByKey[key]; !ok {
			return fmt.Errorf("invariant: parked key %s is not an active validator", key)
		}
	}

	if total != s.Balance {
		return fmt.Errorf("invariant: balance conservation violated: tracked %d, computed %d", s.Balance, total)
	}
	return nil
}

func validatorBalanceInvariant(v *Validator) error {
	sum := v.LockedStake
	for addr, stake := range v.ActiveStakeByAddress {
		if stake.IsZero() {
			return fmt.Errorf("invariant: zero-balance stake entry for %s on validator %s", addr, v.ValidatorKey)
		}
		var err error
		sum, err = sum.Add(stake)
		if err != nil {
			return err
		}
	}
	if sum != v.Balance {
		return fmt.Errorf("invariant: validator %s balance %d does not match locked stake + sum of stakes %d", v.ValidatorKey, v.Balance, sum)
	}
	return nil
}
