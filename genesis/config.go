// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds an initial StakingContract and its surrounding
// genesis block from a declarative JSON genesis file: a flat list of
// stakes (one per staker-to-validator delegation, the first for a given
// validator key implicitly creating it) plus a list of plain non-staking
// accounts.
package genesis

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/albatross-pos/staking/primitives"
	"github.com/albatross-pos/staking/staking"
)

// HexBytes decodes as a JSON string holding hex, with an optional 0x/0X
// prefix, e.g. a BLS secret key that (unlike BlsPublicKey) has no
// dedicated primitives type of its own.
type HexBytes []byte

func (h HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + hex.EncodeToString(h))
}

func (h *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("genesis: decode hex bytes: %w", err)
	}
	*h = b
	return nil
}

// StakeConfig describes one staker's delegation to a validator. The first
// stake seen for a given ValidatorKey implicitly creates that validator,
// locking its Balance as unattributed initial stake; every later stake for
// the same key is a plain delegation. RewardAddress is only meaningful on
// that first occurrence; when nil it defaults to StakerAddress.
type StakeConfig struct {
	StakerAddress primitives.Address      `json:"staker_address"`
	RewardAddress *primitives.Address     `json:"reward_address,omitempty"`
	Balance       primitives.Coin         `json:"balance"`
	ValidatorKey  primitives.BlsPublicKey `json:"validator_key"`
}

// AccountConfig describes one plain, non-staking genesis account.
type AccountConfig struct {
	Address primitives.Address `json:"address"`
	Balance primitives.Coin    `json:"balance"`
}

// Config is the root of a genesis file.
type Config struct {
	SigningKey  HexBytes        `json:"signing_key,omitempty"`
	SeedMessage string          `json:"seed_message,omitempty"`
	Timestamp   *time.Time      `json:"timestamp,omitempty"`
	Stakes      []StakeConfig   `json:"stakes"`
	Accounts    []AccountConfig `json:"accounts"`
}

// Load decodes a genesis config from r. Unknown fields are accepted rather
// than rejected: a genesis file is hand-authored input, not a wire
// transaction, and forward-compatible fields should not fail an older
// binary.
func Load(r io.Reader) (*Config, error) {
	var cfg Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("genesis: decode: %w", err)
	}
	return &cfg, nil
}

// BuildContract constructs a StakingContract from the config by issuing the
// same CreateValidator/Stake commits a running chain would process for its
// first block, so the genesis contract is reachable by the exact same code
// path as every later state transition.
func (c *Config) BuildContract() (*staking.StakingContract, error) {
	contract := staking.New()
	created := make(map[primitives.BlsPublicKey]bool, len(c.Stakes))

	for _, sc := range c.Stakes {
		if !created[sc.ValidatorKey] {
			reward := sc.StakerAddress
			if sc.RewardAddress != nil {
				reward = *sc.RewardAddress
			}
			if err := contract.CommitCreateValidator(sc.ValidatorKey, reward, sc.Balance); err != nil {
				return nil, fmt.Errorf("genesis: create validator %s: %w", sc.ValidatorKey, err)
			}
			created[sc.ValidatorKey] = true
			continue
		}
		if err := contract.CommitStake(sc.ValidatorKey, sc.StakerAddress, sc.Balance); err != nil {
			return nil, fmt.Errorf("genesis: stake for validator %s: %w", sc.ValidatorKey, err)
		}
	}

	return contract, nil
}

// Block is the genesis block wrapping a freshly built StakingContract: the
// seed material a chain's first VRF draw derives from, plus the contract's
// canonical state root.
type Block struct {
	Timestamp   time.Time
	SeedMessage string
	SigningKey  HexBytes
	StateRoot   []byte
}

// BuildGenesis builds the genesis block and its staking contract together,
// along with the plain account balances that sit alongside it. Timestamp
// defaults to the Unix epoch when the config does not specify one, keeping
// the block deterministic for configs that omit it entirely.
func (c *Config) BuildGenesis() (*Block, *staking.StakingContract, []AccountConfig, error) {
	contract, err := c.BuildContract()
	if err != nil {
		return nil, nil, nil, err
	}
	timestamp := time.Unix(0, 0).UTC()
	if c.Timestamp != nil {
		timestamp = *c.Timestamp
	}
	block := &Block{
		Timestamp:   timestamp,
		SeedMessage: c.SeedMessage,
		SigningKey:  c.SigningKey,
		StateRoot:   contract.Serialize(),
	}
	return block, contract, c.Accounts, nil
}

// Hash derives the genesis block's hash from its timestamp, seed message,
// signing key, and state root, the same blake2b-based pattern selection.go
// uses for deriving deterministic RNG seeds from a VRF output.
func (b *Block) Hash() [32]byte {
	h, _ := blake2b.New256(nil)
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(b.Timestamp.Unix()))
	h.Write(ts[:])
	h.Write([]byte(b.SeedMessage))
	h.Write(b.SigningKey)
	h.Write(b.StateRoot)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
