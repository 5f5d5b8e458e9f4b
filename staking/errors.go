// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"errors"
	"fmt"

	"github.com/albatross-pos/staking/primitives"
)

// Kind classifies a staking contract error. The block validator rejects an
// enclosing transaction/block based on the kind alone; the message is for
// humans and debug logs only.
type Kind int

const (
	// KindInvalidForRecipient covers failed preconditions on the receiving
	// side of an operation (e.g. a validator key already/not existing).
	KindInvalidForRecipient Kind = iota
	// KindInvalidForSender covers failed preconditions on the sending
	// side (e.g. a cooldown not yet elapsed, no active stake).
	KindInvalidForSender
	// KindInvalidForTarget covers a shape mismatch: wrong self-transaction
	// data length, a reward inherent, reverting FinalizeEpoch.
	KindInvalidForTarget
	// KindInvalidInherent covers a malformed or non-applicable inherent.
	KindInvalidInherent
	// KindInvalidReceipt covers a missing or corrupt revert receipt.
	KindInvalidReceipt
	// KindInsufficientFunds covers an operation whose value exceeds the
	// available balance.
	KindInsufficientFunds
	// KindArithmeticOverflow covers any Coin add/sub that would breach
	// bounds.
	KindArithmeticOverflow
)

func (k Kind) String() string {
	switch k {
	case KindInvalidForRecipient:
		return "InvalidForRecipient"
	case KindInvalidForSender:
		return "InvalidForSender"
	case KindInvalidForTarget:
		return "InvalidForTarget"
	case KindInvalidInherent:
		return "InvalidInherent"
	case KindInvalidReceipt:
		return "InvalidReceipt"
	case KindInsufficientFunds:
		return "InsufficientFunds"
	case KindArithmeticOverflow:
		return "ArithmeticOverflow"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by every Check*/Commit*/Revert*
// method. Needed and Balance are only meaningful for KindInsufficientFunds.
type Error struct {
	Kind    Kind
	Message string
	Needed  primitives.Coin
	Balance primitives.Coin
}

func (e *Error) Error() string {
	if e.Kind == KindInsufficientFunds {
		return fmt.Sprintf("%s: needed %d, have %d", e.Kind, e.Needed, e.Balance)
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newErr(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func errInvalidForRecipient(format string, args ...any) *Error {
	return newErr(KindInvalidForRecipient, format, args...)
}

func errInvalidForSender(format string, args ...any) *Error {
	return newErr(KindInvalidForSender, format, args...)
}

func errInvalidForTarget(format string, args ...any) *Error {
	return newErr(KindInvalidForTarget, format, args...)
}

func errInvalidInherent(format string, args ...any) *Error {
	return newErr(KindInvalidInherent, format, args...)
}

func errInvalidReceipt(format string, args ...any) *Error {
	return newErr(KindInvalidReceipt, format, args...)
}

func errInsufficientFunds(needed, balance primitives.Coin) *Error {
	return &Error{Kind: KindInsufficientFunds, Needed: needed, Balance: balance}
}

func errArithmetic(err error) *Error {
	return &Error{Kind: KindArithmeticOverflow, Message: err.Error()}
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

func balanceSufficient(balance, needed primitives.Coin) error {
	if balance < needed {
		return errInsufficientFunds(needed, balance)
	}
	return nil
}
