// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package primitives

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blsPublicKeyFixtureHex is a fixed 96-byte compressed BLS public key value
// used to check that round-tripping the same bytes through
// BytesToBlsPublicKey/Bytes/String reproduces them exactly.
const blsPublicKeyFixtureHex = "fdee35f230d6b4d99403f25c2a0eb2f4bc9750fcbb9df5569e62c73eb473755" +
	"c1a5adc1eabdefce2083206c2d3a95b6dbaf52a2b8d6c51c98d2942471828c5" +
	"21d1cbf768d399179549699664d5b199051f53299b6ff779998641d20843fa000e"

func TestBlsPublicKeyHexRoundTrip(t *testing.T) {
	raw, err := hex.DecodeString(blsPublicKeyFixtureHex)
	require.NoError(t, err)
	require.Len(t, raw, BlsPublicKeyLength)

	key := BytesToBlsPublicKey(raw)
	assert.Equal(t, blsPublicKeyFixtureHex, key.String())
	assert.Equal(t, raw, key.Bytes())

	reparsed := BytesToBlsPublicKey(key.Bytes())
	assert.Equal(t, key, reparsed)
}

func TestBlsPublicKeyIsZero(t *testing.T) {
	var k BlsPublicKey
	assert.True(t, k.IsZero())
	k[0] = 1
	assert.False(t, k.IsZero())
}
