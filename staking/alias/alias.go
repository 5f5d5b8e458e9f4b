// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package alias implements Vose's alias method: O(n) preprocessing of a
// discrete weighted distribution, then O(1) sampling per draw. It is used
// to turn a validator's stake-proportional weight into repeated slot
// assignments without re-walking a cumulative distribution on every draw.
package alias

import "math/rand"

// Method is a preprocessed alias table over n outcomes with weights
// proportional to the probabilities passed to New.
type Method struct {
	prob  []float64
	alias []int
}

// New builds an alias table from probabilities, which need not sum to 1 —
// they are treated as relative weights and normalized internally. It
// panics if probabilities is empty or contains a negative weight.
func New(probabilities []float64) *Method {
	n := len(probabilities)
	if n == 0 {
		panic("alias: probabilities must be non-empty")
	}

	var sum float64
	for _, p := range probabilities {
		if p < 0 {
			panic("alias: negative weight")
		}
		sum += p
	}

	scaled := make([]float64, n)
	for i, p := range probabilities {
		if sum == 0 {
			scaled[i] = 1
		} else {
			scaled[i] = p / sum * float64(n)
		}
	}

	m := &Method{
		prob:  make([]float64, n),
		alias: make([]int, n),
	}

	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, p := range scaled {
		if p < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		l := small[len(small)-1]
		small = small[:len(small)-1]
		g := large[len(large)-1]
		large = large[:len(large)-1]

		m.prob[l] = scaled[l]
		m.alias[l] = g

		scaled[g] = scaled[g] + scaled[l] - 1
		if scaled[g] < 1 {
			small = append(small, g)
		} else {
			large = append(large, g)
		}
	}

	for len(large) > 0 {
		g := large[len(large)-1]
		large = large[:len(large)-1]
		m.prob[g] = 1
	}
	for len(small) > 0 {
		l := small[len(small)-1]
		small = small[:len(small)-1]
		m.prob[l] = 1
	}

	return m
}

// Sample draws one outcome index in [0, n) using rng.
func (m *Method) Sample(rng *rand.Rand) int {
	i := rng.Intn(len(m.prob))
	if rng.Float64() < m.prob[i] {
		return i
	}
	return m.alias[i]
}

// Len returns the number of outcomes the table was built over.
func (m *Method) Len() int {
	return len(m.prob)
}
