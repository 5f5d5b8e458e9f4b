// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/albatross-pos/staking/primitives"
)

func testKey(b byte) primitives.BlsPublicKey {
	var k primitives.BlsPublicKey
	k[0] = b
	return k
}

func testAddr(b byte) primitives.Address {
	var a primitives.Address
	a[0] = b
	return a
}
