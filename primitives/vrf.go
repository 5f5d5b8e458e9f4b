// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package primitives

// VrfSeedLength matches the beta output of the secp256k1-sha256-tai VRF
// construction used by the external VRF collaborator (see
// github.com/vechain/go-ecvrf). Proving and verifying VRF outputs is that
// collaborator's job; this package only ever carries the resulting bytes.
const VrfSeedLength = 32

// VrfSeed is the per-epoch random beacon consumed (never produced) by this
// package.
type VrfSeed [VrfSeedLength]byte

// BytesToVrfSeed copies src (expected to be VrfSeedLength bytes) into a
// VrfSeed.
func BytesToVrfSeed(src []byte) VrfSeed {
	var s VrfSeed
	copy(s[:], src)
	return s
}

// Bytes returns the seed's raw bytes.
func (s VrfSeed) Bytes() []byte {
	return s[:]
}

// VrfUseCase namespaces the RNG derived from a VrfSeed so that unrelated
// consumers of the same seed never accidentally share a random stream.
type VrfUseCase byte

const (
	// UseCaseValidatorSelection is the use case for epoch slot selection.
	UseCaseValidatorSelection VrfUseCase = 1
)
