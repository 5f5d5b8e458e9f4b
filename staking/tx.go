// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/albatross-pos/staking/primitives"
)

// Transactions against the staking contract carry a one-byte tag
// identifying which operation their data encodes. Incoming transactions
// (recipient == contract) create or grow state; outgoing transactions
// (sender == contract) shrink it and carry the affected validator's proof
// of authorization instead of a signature; self transactions (both ends
// == contract) move value between two internal pockets and are modeled as
// two independent half-actions.

// IncomingTag identifies the shape of an incoming transaction's data.
type IncomingTag byte

const (
	TagCreateValidator     IncomingTag = 0x00
	TagStake               IncomingTag = 0x01
	TagUpdateValidator     IncomingTag = 0x02
	TagRetireValidator     IncomingTag = 0x03
	TagReactivateValidator IncomingTag = 0x04
)

// OutgoingTag identifies the shape of an outgoing transaction's proof data.
type OutgoingTag byte

const (
	TagDropValidator OutgoingTag = 0x00
	TagUnstake       OutgoingTag = 0x01
)

// SelfTag identifies the shape of a self transaction's data: both halves
// are executed independently against the same contract.
type SelfTag byte

const (
	TagRetireStake     SelfTag = 0x00
	TagReactivateStake SelfTag = 0x01
	TagUnparkSelf      SelfTag = 0x02
)

// IncomingData is the parsed payload of an incoming staking transaction.
// Only the fields relevant to Tag are populated.
type IncomingData struct {
	Tag               IncomingTag
	ValidatorKey      primitives.BlsPublicKey
	RewardAddress     primitives.Address
	HasRewardAddress  bool
}

func parseIncomingData(data []byte) (*IncomingData, error) {
	if len(data) < 1 {
		return nil, errInvalidForRecipient("incoming transaction data is empty")
	}
	tag := IncomingTag(data[0])
	body := data[1:]
	const keyLen = 96

	switch tag {
	case TagCreateValidator:
		if len(body) != keyLen+primitives.AddressLength {
			return nil, errInvalidForRecipient("create validator: want %d bytes, got %d", keyLen+primitives.AddressLength, len(body))
		}
		return &IncomingData{
			Tag:           tag,
			ValidatorKey:  primitives.BytesToBlsPublicKey(body[:keyLen]),
			RewardAddress: primitives.BytesToAddress(body[keyLen:]),
		}, nil
	case TagStake, TagRetireValidator, TagReactivateValidator:
		if len(body) != keyLen {
			return nil, errInvalidForRecipient("%v: want %d bytes, got %d", tag, keyLen, len(body))
		}
		return &IncomingData{Tag: tag, ValidatorKey: primitives.BytesToBlsPublicKey(body)}, nil
	case TagUpdateValidator:
		if len(body) != keyLen+1+primitives.AddressLength {
			return nil, errInvalidForRecipient("update validator: want %d bytes, got %d", keyLen+1+primitives.AddressLength, len(body))
		}
		d := &IncomingData{
			Tag:              tag,
			ValidatorKey:     primitives.BytesToBlsPublicKey(body[:keyLen]),
			HasRewardAddress: body[keyLen] != 0,
		}
		if d.HasRewardAddress {
			d.RewardAddress = primitives.BytesToAddress(body[keyLen+1:])
		}
		return d, nil
	default:
		return nil, errInvalidForRecipient("unknown incoming transaction tag %d", tag)
	}
}

// OutgoingData is the parsed proof payload of an outgoing staking
// transaction.
type OutgoingData struct {
	Tag          OutgoingTag
	ValidatorKey primitives.BlsPublicKey
}

func parseOutgoingData(data []byte) (*OutgoingData, error) {
	if len(data) < 1 {
		return nil, errInvalidForSender("outgoing transaction data is empty")
	}
	tag := OutgoingTag(data[0])
	body := data[1:]
	const keyLen = 96

	switch tag {
	case TagDropValidator:
		if len(body) != keyLen {
			return nil, errInvalidForSender("drop validator: want %d bytes, got %d", keyLen, len(body))
		}
		return &OutgoingData{Tag: tag, ValidatorKey: primitives.BytesToBlsPublicKey(body)}, nil
	case TagUnstake:
		if len(body) != 0 {
			return nil, errInvalidForSender("unstake: expected no proof payload, got %d bytes", len(body))
		}
		return &OutgoingData{Tag: tag}, nil
	default:
		return nil, errInvalidForSender("unknown outgoing transaction tag %d", tag)
	}
}

// SelfData is the parsed payload of a self transaction. Since both sender
// and recipient are the contract itself, the staker the value moves for
// must travel inside the data rather than in either address field. Unpark
// is validator-level, not staker-level, so its payload carries only a
// validator key and leaves Staker at its zero value.
type SelfData struct {
	Tag          SelfTag
	ValidatorKey primitives.BlsPublicKey
	Staker       primitives.Address
}

func parseSelfData(data []byte) (*SelfData, error) {
	if len(data) < 1 {
		return nil, errInvalidForTarget("self transaction data is empty")
	}
	tag := SelfTag(data[0])
	body := data[1:]
	const keyLen = 96
	const wantLen = keyLen + primitives.AddressLength

	switch tag {
	case TagRetireStake, TagReactivateStake:
		if len(body) != wantLen {
			return nil, errInvalidForTarget("%v: want %d bytes, got %d", tag, wantLen, len(body))
		}
		return &SelfData{
			Tag:          tag,
			ValidatorKey: primitives.BytesToBlsPublicKey(body[:keyLen]),
			Staker:       primitives.BytesToAddress(body[keyLen:]),
		}, nil
	case TagUnparkSelf:
		if len(body) != keyLen {
			return nil, errInvalidForTarget("%v: want %d bytes, got %d", tag, keyLen, len(body))
		}
		return &SelfData{Tag: tag, ValidatorKey: primitives.BytesToBlsPublicKey(body)}, nil
	default:
		return nil, errInvalidForTarget("unknown self transaction tag %d", tag)
	}
}
