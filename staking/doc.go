// Copyright (c) 2025 The Albatross developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

// Package staking implements the staking contract: the singleton account
// that tracks validators and stakers, applies transactions and inherents,
// and selects an epoch's slot assignment from a VRF seed.
//
// It contains three kinds of mutating methods:
//  1. Check* — static validation only, called before a transaction/inherent
//     is allowed into a block.
//  2. Commit* — applies the mutation. Follows a guard-prologue /
//     infallible-epilogue split: every fallible check and arithmetic
//     operation happens before the first state write.
//  3. Revert* — undoes a prior Commit*, given the same inputs plus the
//     receipt (if any) that Commit* returned. Every Commit*/Revert* pair is
//     symmetric except FinalizeEpoch, which cannot be reverted.
//
// Validators are tracked validator-centric: active validators live in both
// a by-key map and a balance-sorted slice, both referencing the same
// *Validator record (see contract.go). Stake amounts live inside the
// Validator they're delegated to; there is no separate stake-centric index.
