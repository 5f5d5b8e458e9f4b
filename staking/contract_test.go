// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvariantHoldsAcrossLifecycle(t *testing.T) {
	s := New()
	require.NoError(t, s.Invariant())

	key := testKey(1)
	staker1 := testAddr(10)
	staker2 := testAddr(11)

	require.NoError(t, s.CommitCreateValidator(key, testAddr(2), 1000))
	require.NoError(t, s.Invariant())

	require.NoError(t, s.CommitStake(key, staker1, 1000))
	require.NoError(t, s.Invariant())

	require.NoError(t, s.CommitStake(key, staker2, 500))
	require.NoError(t, s.Invariant())

	require.NoError(t, s.CommitRetireValidator(key, 10))
	require.NoError(t, s.Invariant())

	_, err := s.CommitInherent(Inherent{Type: InherentFinalizeEpoch}, 10)
	require.NoError(t, err)
	require.NoError(t, s.Invariant())

	require.NoError(t, s.CommitRetireSender(key, staker1, 1000))
	require.NoError(t, s.Invariant())
	_, err = s.CommitRetireRecipient(staker1, 1000, 10)
	require.NoError(t, err)
	require.NoError(t, s.Invariant())
}

func TestGetValidatorLooksUpActiveAndInactive(t *testing.T) {
	s := New()
	key := testKey(1)
	require.NoError(t, s.CommitCreateValidator(key, testAddr(2), 1000))
	assert.NotNil(t, s.GetValidator(key))

	require.NoError(t, s.CommitRetireValidator(key, 0))
	assert.NotNil(t, s.GetValidator(key))
	assert.False(t, s.IsActiveValidator(key))
	assert.True(t, s.IsInactiveValidator(key))
}

func TestGetBalanceSumsActiveAndInactive(t *testing.T) {
	s := New()
	key := testKey(1)
	staker := testAddr(3)
	require.NoError(t, s.CommitCreateValidator(key, testAddr(2), 1000))
	require.NoError(t, s.CommitStake(key, staker, 1000))
	require.NoError(t, s.CommitRetireSender(key, staker, 300))
	_, err := s.CommitRetireRecipient(staker, 300, 0)
	require.NoError(t, err)

	assert.Equal(t, uint64(700), uint64(s.GetActiveBalance(staker)))
	assert.Equal(t, uint64(300), uint64(s.GetInactiveBalance(staker)))
	assert.Equal(t, uint64(1000), uint64(s.GetBalance(staker)))
}
