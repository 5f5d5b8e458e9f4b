// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"encoding/binary"
	"math/rand"

	"golang.org/x/crypto/blake2b"

	"github.com/albatross-pos/staking/primitives"
	"github.com/albatross-pos/staking/staking/alias"
)

// SlotAssignment is one of the primitives.Slots slots produced by
// SelectValidators: which validator holds it.
type SlotAssignment struct {
	ValidatorKey primitives.BlsPublicKey
}

// SelectValidators deterministically samples primitives.Slots validator
// slots from the current active validator set, weighted by stake, seeded
// from a VRF output. The same seed always produces the same assignment:
// selection is a pure function of (active set, seed), never of wall-clock
// or map iteration order.
func (s *StakingContract) SelectValidators(seed primitives.VrfSeed) ([]SlotAssignment, error) {
	active := s.activeValidatorsSorted
	if len(active) == 0 {
		return nil, errInvalidForTarget("cannot select validators: no active validators")
	}

	weights := make([]float64, len(active))
	for i, v := range active {
		weights[i] = float64(v.Balance)
	}

	table := alias.New(weights)
	rng := rand.New(rand.NewSource(seedToInt64(seed, primitives.UseCaseValidatorSelection, 0)))

	assignments := make([]SlotAssignment, primitives.Slots)
	for i := 0; i < primitives.Slots; i++ {
		idx := table.Sample(rng)
		assignments[i] = SlotAssignment{ValidatorKey: active[idx].ValidatorKey}
	}
	return assignments, nil
}

// seedToInt64 derives a deterministic RNG seed from a VRF seed, a use-case
// tag (so the same VRF output can be safely reused for unrelated draws),
// and a nonce (for drawing more than one independent sequence from the
// same seed and use case).
func seedToInt64(seed primitives.VrfSeed, useCase primitives.VrfUseCase, nonce uint64) int64 {
	h, _ := blake2b.New512(nil)
	h.Write(seed.Bytes())
	h.Write([]byte{byte(useCase)})
	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], nonce)
	h.Write(nonceBytes[:])
	digest := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(digest[:8]))
}
