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

func TestSelectValidatorsIsDeterministic(t *testing.T) {
	s := New()
	require.NoError(t, s.CommitCreateValidator(testKey(1), testAddr(9), 1000))
	require.NoError(t, s.CommitCreateValidator(testKey(2), testAddr(9), 3000))
	require.NoError(t, s.CommitCreateValidator(testKey(3), testAddr(9), 500))

	seed := primitives.BytesToVrfSeed([]byte("deterministic-seed-for-testing!"))

	first, err := s.SelectValidators(seed)
	require.NoError(t, err)
	second, err := s.SelectValidators(seed)
	require.NoError(t, err)

	assert.Equal(t, primitives.Slots, len(first))
	assert.Equal(t, first, second)
}

func TestSelectValidatorsWeightsTowardHigherStake(t *testing.T) {
	s := New()
	require.NoError(t, s.CommitCreateValidator(testKey(1), testAddr(9), 100))
	require.NoError(t, s.CommitCreateValidator(testKey(2), testAddr(9), 10000))

	seed := primitives.BytesToVrfSeed([]byte("another-deterministic-seed-abc!"))
	assignments, err := s.SelectValidators(seed)
	require.NoError(t, err)

	counts := make(map[primitives.BlsPublicKey]int)
	for _, a := range assignments {
		counts[a.ValidatorKey]++
	}
	assert.Greater(t, counts[testKey(2)], counts[testKey(1)])
}

func TestSelectValidatorsRequiresActiveValidators(t *testing.T) {
	s := New()
	_, err := s.SelectValidators(primitives.VrfSeed{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidForTarget))
}
