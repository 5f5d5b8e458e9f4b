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

func incomingCreateValidator(key primitives.BlsPublicKey, reward primitives.Address) []byte {
	data := []byte{byte(TagCreateValidator)}
	data = append(data, key.Bytes()...)
	data = append(data, reward.Bytes()...)
	return data
}

func incomingStake(key primitives.BlsPublicKey) []byte {
	data := []byte{byte(TagStake)}
	return append(data, key.Bytes()...)
}

func TestIncomingTransactionDispatchCommitRevertSymmetry(t *testing.T) {
	s := New()
	key := testKey(1)
	reward := testAddr(2)
	sender := testAddr(3)

	before := s.Serialize()
	receipt, err := s.CommitIncomingTransaction(sender, 1000, incomingCreateValidator(key, reward), 0)
	require.NoError(t, err)
	assert.True(t, s.IsActiveValidator(key))

	require.NoError(t, s.RevertIncomingTransaction(sender, 1000, incomingCreateValidator(key, reward), receipt))
	assert.Equal(t, before, s.Serialize())

	_, err = s.CommitIncomingTransaction(sender, 1000, incomingCreateValidator(key, reward), 0)
	require.NoError(t, err)
	snapshot := s.Serialize()
	staker := testAddr(4)
	stakeReceipt, err := s.CommitIncomingTransaction(staker, 300, incomingStake(key), 0)
	require.NoError(t, err)
	require.NoError(t, s.RevertIncomingTransaction(staker, 300, incomingStake(key), stakeReceipt))
	assert.Equal(t, snapshot, s.Serialize())
}

func TestOutgoingUnstakeDispatch(t *testing.T) {
	s := New()
	key := testKey(1)
	staker := testAddr(3)
	require.NoError(t, s.CommitCreateValidator(key, testAddr(9), 1000))
	require.NoError(t, s.CommitStake(key, staker, 400))
	require.NoError(t, s.CommitRetireSender(key, staker, 400))
	_, err := s.CommitRetireRecipient(staker, 400, 50)
	require.NoError(t, err)

	data := []byte{byte(TagUnstake)}
	cooldownEnd := primitives.BlockHeight(50) + primitives.UnstakingDelay*primitives.BatchLength

	err = s.CheckOutgoingTransaction(staker, 400, data, cooldownEnd-1)
	require.Error(t, err)

	receipt, err := s.CommitOutgoingTransaction(staker, 400, data, cooldownEnd)
	require.NoError(t, err)
	assert.Equal(t, primitives.Coin(0), s.GetInactiveBalance(staker))

	require.NoError(t, s.RevertOutgoingTransaction(staker, 400, data, receipt))
	assert.Equal(t, primitives.Coin(400), s.GetInactiveBalance(staker))
}

func TestSelfTransactionRetireStakeDispatch(t *testing.T) {
	s := New()
	key := testKey(1)
	staker := testAddr(3)
	require.NoError(t, s.CommitCreateValidator(key, testAddr(9), 1000))
	require.NoError(t, s.CommitStake(key, staker, 1000))

	data := []byte{byte(TagRetireStake)}
	data = append(data, key.Bytes()...)
	data = append(data, staker.Bytes()...)

	senderReceipt, err := s.CommitSelfTransactionSenderHalf(400, data)
	require.NoError(t, err)
	recipientReceipt, err := s.CommitSelfTransactionRecipientHalf(400, data, 50)
	require.NoError(t, err)

	assert.Equal(t, primitives.Coin(400), s.GetInactiveBalance(staker))
	assert.Equal(t, primitives.Coin(600), s.GetActiveBalance(staker))

	require.NoError(t, s.RevertSelfTransactionRecipientHalf(400, data, recipientReceipt))
	require.NoError(t, s.RevertSelfTransactionSenderHalf(400, data, senderReceipt))
	assert.Equal(t, primitives.Coin(1000), s.GetActiveBalance(staker))
	assert.Equal(t, primitives.Coin(0), s.GetInactiveBalance(staker))
}

func TestSelfTransactionUnparkDispatch(t *testing.T) {
	s := New()
	key := testKey(1)
	require.NoError(t, s.CommitCreateValidator(key, testAddr(9), 1000))
	s.CurrentEpochParking[key] = struct{}{}

	data := []byte{byte(TagUnparkSelf)}
	data = append(data, key.Bytes()...)

	require.NoError(t, s.CheckSelfTransaction(0, data))

	senderReceipt, err := s.CommitSelfTransactionSenderHalf(0, data)
	require.NoError(t, err)
	assert.NotContains(t, s.CurrentEpochParking, key)

	recipientReceipt, err := s.CommitSelfTransactionRecipientHalf(0, data, 0)
	require.NoError(t, err)

	require.NoError(t, s.RevertSelfTransactionRecipientHalf(0, data, recipientReceipt))
	require.NoError(t, s.RevertSelfTransactionSenderHalf(0, data, senderReceipt))
	assert.Contains(t, s.CurrentEpochParking, key)
}
