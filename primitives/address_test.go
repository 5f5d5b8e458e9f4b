// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package primitives

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressJSONRoundTrip(t *testing.T) {
	original := BytesToAddress([]byte{0x01, 0x02, 0x03})

	data, err := json.Marshal(original)
	assert.NoError(t, err)

	var decoded Address
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestAddressTruncatesOverflow(t *testing.T) {
	src := make([]byte, AddressLength+5)
	for i := range src {
		src[i] = byte(i)
	}
	a := BytesToAddress(src)
	assert.Equal(t, src[5:], a.Bytes())
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, ZeroAddress.IsZero())
	assert.False(t, BytesToAddress([]byte{1}).IsZero())
}
