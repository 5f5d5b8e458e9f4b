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

func TestStakeCommitRevertSymmetry(t *testing.T) {
	s := New()
	key := testKey(1)
	staker := testAddr(3)
	require.NoError(t, s.CommitCreateValidator(key, testAddr(9), 1000))

	snapshot := s.Serialize()
	require.NoError(t, s.CommitStake(key, staker, 250))
	assert.Equal(t, primitives.Coin(250), s.GetActiveBalance(staker))

	require.NoError(t, s.RevertStake(key, staker, 250))
	assert.Equal(t, snapshot, s.Serialize())
}

func TestRetireStakeThenUnstakeRespectsCooldown(t *testing.T) {
	s := New()
	key := testKey(1)
	staker := testAddr(3)
	require.NoError(t, s.CommitCreateValidator(key, testAddr(9), 1000))
	require.NoError(t, s.CommitStake(key, staker, 1000))

	const retireHeight = 100
	require.NoError(t, s.CommitRetireSender(key, staker, 400))
	receipt, err := s.CommitRetireRecipient(staker, 400, retireHeight)
	require.NoError(t, err)
	assert.Equal(t, primitives.Coin(400), s.GetInactiveBalance(staker))
	assert.Equal(t, primitives.Coin(600), s.GetActiveBalance(staker))

	cooldownEnd := retireHeight + primitives.UnstakingDelay*primitives.BatchLength
	err = s.CheckUnstake(staker, 400, cooldownEnd-1)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidForSender))

	unstakeReceipt, err := s.CommitUnstake(staker, 400, cooldownEnd)
	require.NoError(t, err)
	assert.Equal(t, primitives.Coin(0), s.GetInactiveBalance(staker))
	// 1000 locked initial stake + 1000 delegated - 400 unstaked.
	assert.Equal(t, primitives.Coin(1600), s.Balance)

	require.NoError(t, s.RevertUnstake(staker, 400, unstakeReceipt))
	require.NoError(t, s.RevertRetireRecipient(staker, 400, receipt))
	require.NoError(t, s.RevertRetireSender(key, staker, 400))
	assert.Equal(t, primitives.Coin(1000), s.GetActiveBalance(staker))
	assert.Equal(t, primitives.Coin(0), s.GetInactiveBalance(staker))
}

func TestReactivateStakeRoundTrip(t *testing.T) {
	s := New()
	key := testKey(1)
	staker := testAddr(3)
	require.NoError(t, s.CommitCreateValidator(key, testAddr(9), 1000))
	require.NoError(t, s.CommitStake(key, staker, 1000))
	require.NoError(t, s.CommitRetireSender(key, staker, 300))
	inactiveReceipt, err := s.CommitRetireRecipient(staker, 300, 50)
	require.NoError(t, err)

	senderReceipt, err := s.CommitReactivateSender(staker, 300)
	require.NoError(t, err)
	assert.Equal(t, primitives.Coin(0), s.GetInactiveBalance(staker))

	require.NoError(t, s.CommitReactivateRecipient(key, staker, 300))
	assert.Equal(t, primitives.Coin(1000), s.GetActiveBalance(staker))

	require.NoError(t, s.RevertReactivateRecipient(key, staker, 300))
	require.NoError(t, s.RevertReactivateSender(staker, 300, senderReceipt))
	assert.Equal(t, primitives.Coin(300), s.GetInactiveBalance(staker))
	require.NoError(t, s.RevertRetireRecipient(staker, 300, inactiveReceipt))
	require.NoError(t, s.RevertRetireSender(key, staker, 300))
	assert.Equal(t, primitives.Coin(1000), s.GetActiveBalance(staker))
}

func TestUnstakeWithoutInactiveStakeFails(t *testing.T) {
	s := New()
	staker := testAddr(1)
	err := s.CheckUnstake(staker, 1, 0)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidForSender))
}
