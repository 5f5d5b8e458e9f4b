// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albatross-pos/staking/primitives"
)

func TestCreateValidatorCommitRevertSymmetry(t *testing.T) {
	s := New()
	key := testKey(1)
	reward := testAddr(2)

	before := s.Serialize()

	require.NoError(t, s.CommitCreateValidator(key, reward, 1000))
	assert.True(t, s.IsActiveValidator(key))
	assert.Equal(t, primitives.Coin(1000), s.Balance)
	// the initial stake is locked, not attributed to any staker.
	assert.Equal(t, primitives.Coin(1000), s.GetValidator(key).LockedStake)
	assert.Empty(t, s.GetValidator(key).ActiveStakeByAddress)

	require.NoError(t, s.RevertCreateValidator(key, 1000))
	assert.False(t, s.IsActiveValidator(key))
	assert.Equal(t, before, s.Serialize())
}

func TestCreateValidatorRejectsDuplicateKey(t *testing.T) {
	s := New()
	key := testKey(1)
	require.NoError(t, s.CommitCreateValidator(key, testAddr(2), 1000))

	err := s.CommitCreateValidator(key, testAddr(4), 1000)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidForRecipient))
}

func TestRetireThenDropSweepsStakersAndCommitRevertSymmetric(t *testing.T) {
	s := New()
	key := testKey(1)
	staker1 := testAddr(10)
	staker2 := testAddr(11)
	dropRecipient := testAddr(2)

	require.NoError(t, s.CommitCreateValidator(key, dropRecipient, 1000))
	require.NoError(t, s.CommitStake(key, staker1, 400))
	require.NoError(t, s.CommitStake(key, staker2, 500))

	snapshotBeforeRetire := s.Serialize()
	require.NoError(t, s.CommitRetireValidator(key, 100))
	assert.True(t, s.IsInactiveValidator(key))
	require.NoError(t, s.RevertRetireValidator(key))
	assert.Equal(t, snapshotBeforeRetire, s.Serialize())

	require.NoError(t, s.CommitRetireValidator(key, 100))

	dropHeight := 100 + primitives.DropDelay*primitives.BatchLength
	err := s.CheckDropValidator(key, 1000, dropHeight-1)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidForSender))

	snapshotBeforeDrop := s.Serialize()
	receipt, err := s.CommitDropValidator(key, 1000, dropHeight)
	require.NoError(t, err)
	assert.Nil(t, s.GetValidator(key))
	// the locked initial stake leaves with the drop transaction, never
	// touching either staker's inactive stake.
	assert.Equal(t, primitives.Coin(400), s.GetInactiveBalance(staker1))
	assert.Equal(t, primitives.Coin(500), s.GetInactiveBalance(staker2))
	// total contract balance drops by exactly the locked stake that paid
	// out; the stakers' 900 combined moved to inactive stake, still tracked.
	assert.Equal(t, primitives.Coin(900), s.Balance)

	require.NoError(t, s.RevertDropValidator(key, receipt))
	assert.Equal(t, snapshotBeforeDrop, s.Serialize())
}

func TestUnparkValidatorRequiresParkedState(t *testing.T) {
	s := New()
	key := testKey(1)
	err := s.CheckUnparkValidator(key)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidForRecipient))

	s.CurrentEpochParking[key] = struct{}{}
	receipt, err := s.CommitUnparkValidator(key)
	require.NoError(t, err)
	assert.NotContains(t, s.CurrentEpochParking, key)

	require.NoError(t, s.RevertUnparkValidator(key, receipt))
	assert.Contains(t, s.CurrentEpochParking, key)
}

func TestSlashThenFinalizeEpochTwiceRetiresParkedValidator(t *testing.T) {
	s := New()
	key := testKey(1)
	staker := testAddr(3)
	require.NoError(t, s.CommitCreateValidator(key, testAddr(2), 1000))
	require.NoError(t, s.CommitStake(key, staker, 700))

	_, err := s.CommitInherent(Inherent{Type: InherentSlash, ValidatorKey: key}, 50)
	require.NoError(t, err)
	assert.Contains(t, s.CurrentEpochParking, key)
	assert.True(t, s.IsActiveValidator(key), "slashing alone never retires a validator")

	// First FinalizeEpoch rotates current -> previous; the validator is
	// still active, only parked.
	_, err = s.CommitInherent(Inherent{Type: InherentFinalizeEpoch}, 100)
	require.NoError(t, err)
	assert.True(t, s.IsActiveValidator(key))
	assert.Contains(t, s.PreviousEpochParking, key)
	assert.Zero(t, s.GetInactiveBalance(staker), "not yet force-retired, stake still active")

	// Second FinalizeEpoch sweeps anyone still parked from the previous
	// epoch: two consecutive parked epochs retire the validator, and every
	// one of its stakers' delegations sweeps into inactive stake the same
	// way a manual drop would.
	_, err = s.CommitInherent(Inherent{Type: InherentFinalizeEpoch}, 200)
	require.NoError(t, err)
	assert.False(t, s.IsActiveValidator(key))
	assert.True(t, s.IsInactiveValidator(key))
	assert.Equal(t, primitives.Coin(700), s.GetInactiveBalance(staker))
	assert.Empty(t, s.GetInactiveValidator(key).Validator.ActiveStakeByAddress)
	require.NoError(t, s.Invariant())
}

func TestFinalizeEpochCannotBeReverted(t *testing.T) {
	s := New()
	_, err := s.CommitInherent(Inherent{Type: InherentFinalizeEpoch}, 100)
	require.NoError(t, err)

	err = s.RevertInherent(Inherent{Type: InherentFinalizeEpoch}, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidForTarget))
}
