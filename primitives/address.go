// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package primitives

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// AddressLength is the size in bytes of an Address.
const AddressLength = 20

// Address identifies a staker or validator endorser. Its derivation from a
// public key is an external collaborator's concern; here it is an opaque
// fixed-size value.
type Address [AddressLength]byte

// ZeroAddress is the empty address, used as a sentinel for "unset".
var ZeroAddress = Address{}

// BytesToAddress right-aligns src into an Address, truncating on overflow.
func BytesToAddress(src []byte) Address {
	var a Address
	if len(src) > AddressLength {
		src = src[len(src)-AddressLength:]
	}
	copy(a[AddressLength-len(src):], src)
	return a
}

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Bytes returns a copy of the underlying bytes.
func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

// String renders the address as a 0x-prefixed hex string.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalJSON implements json.Marshaler.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dec, err := decodeHexPrefixed(s)
	if err != nil {
		return fmt.Errorf("address: %w", err)
	}
	if len(dec) != AddressLength {
		return errors.New("address: wrong length")
	}
	copy(a[:], dec)
	return nil
}

func decodeHexPrefixed(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return hex.DecodeString(s)
}
