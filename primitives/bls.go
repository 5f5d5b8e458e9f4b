// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package primitives

import (
	"encoding/hex"
	"encoding/json"
)

// BlsPublicKeyLength is the size of a compressed BLS12-381 public key.
const BlsPublicKeyLength = 96

// BlsPublicKey is a compressed BLS public key identifying a validator.
// Verifying a proof-of-knowledge against it is the BLS collaborator's job;
// this contract only ever compares and stores the compressed bytes.
type BlsPublicKey [BlsPublicKeyLength]byte

// BytesToBlsPublicKey copies src (expected to be BlsPublicKeyLength bytes)
// into a BlsPublicKey.
func BytesToBlsPublicKey(src []byte) BlsPublicKey {
	var k BlsPublicKey
	copy(k[:], src)
	return k
}

// IsZero reports whether the key is all-zero (never a valid key in practice,
// used as an "unset" sentinel).
func (k BlsPublicKey) IsZero() bool {
	return k == BlsPublicKey{}
}

// Bytes returns a copy of the underlying bytes.
func (k BlsPublicKey) Bytes() []byte {
	return append([]byte(nil), k[:]...)
}

// String renders the key as a hex string (no 0x prefix, matching the
// source's compressed-key fixtures).
func (k BlsPublicKey) String() string {
	return hex.EncodeToString(k[:])
}

// MarshalJSON implements json.Marshaler.
func (k BlsPublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *BlsPublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dec, err := decodeHexPrefixed(s)
	if err != nil {
		return err
	}
	copy(k[:], dec)
	return nil
}
