// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package alias

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleStaysInRange(t *testing.T) {
	table := New([]float64{1, 2, 3, 4})
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		idx := table.Sample(rng)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, table.Len())
	}
}

func TestSampleApproximatesWeights(t *testing.T) {
	table := New([]float64{1, 9})
	rng := rand.New(rand.NewSource(7))
	counts := make([]int, 2)
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[table.Sample(rng)]++
	}
	ratio := float64(counts[1]) / float64(draws)
	assert.InDelta(t, 0.9, ratio, 0.03)
}

func TestNewPanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
