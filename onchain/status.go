// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package onchain models the reconciliation of externally observed chain
// data against a wallet's own address space: confirmation status,
// per-address value aggregation, transaction history entries, unspent
// outputs and the balances derived from them. The package performs no
// network I/O; it is a pure fold over records handed in by a chain data
// source.
package onchain

import (
	"bytes"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Block time extrapolation reference: the wall-clock time of a known block
// height, from which confirmation times are estimated at 600 seconds per
// block when no precise timestamp was observed.
const (
	refHeight   = 733961
	refUnixTime = 1651158666
	blockTime   = 600
)

// OnchainStatus is the confirmation status of an observed transaction:
// either in the mempool or confirmed at a block height. The mempool is
// modeled as pseudo-height zero, so the natural ordering places mempool
// entries before any confirmed height. Callers must not confuse this
// status order with recency.
type OnchainStatus uint32

// Mempool is the status of an observed but unconfirmed transaction.
const Mempool OnchainStatus = 0

// StatusFromU32 converts a reported height into a status; height zero
// means the mempool.
func StatusFromU32(height uint32) OnchainStatus {
	return OnchainStatus(height)
}

// StatusFromI32 converts a signed reported height into a status. Electrum
// servers report unconfirmed transactions with zero or negative heights;
// all of those collapse to the mempool.
func StatusFromI32(height int32) OnchainStatus {
	if height <= 0 {
		return Mempool
	}
	return OnchainStatus(height)
}

// IntoU32 returns the block height, with zero standing for the mempool.
func (s OnchainStatus) IntoU32() uint32 {
	return uint32(s)
}

// IntoI32 returns the block height as a signed integer, with zero standing
// for the mempool.
func (s OnchainStatus) IntoI32() int32 {
	return int32(s)
}

// InMempool reports whether the transaction is unconfirmed.
func (s OnchainStatus) InMempool() bool {
	return s == Mempool
}

// IsMined reports whether the transaction is confirmed in a block.
func (s OnchainStatus) IsMined() bool {
	return s != Mempool
}

// DateTimeEst estimates the wall-clock time of the confirmation by
// extrapolating from a fixed reference block at 600 seconds per block.
// This is an estimate only and is overridden by a precisely observed
// timestamp wherever one is present on the record. For mempool entries
// the current time is returned.
func (s OnchainStatus) DateTimeEst() time.Time {
	if s.InMempool() {
		return time.Now()
	}
	diff := int64(s.IntoI32()) - refHeight
	return time.Unix(refUnixTime+diff*blockTime, 0).UTC()
}

// String renders the status as "mempool" or the confirmation height.
func (s OnchainStatus) String() string {
	if s.InMempool() {
		return "mempool"
	}
	return "block " + strconv.FormatUint(uint64(s), 10)
}

// OnchainTxid is a single observation of a transaction on the chain: its
// id, confirmation status and, when available, the precise time the
// observation was made.
type OnchainTxid struct {
	// Txid is the transaction id.
	Txid chainhash.Hash

	// Status is the confirmation status at observation time.
	Status OnchainStatus

	// DateTime is the precisely observed timestamp, when one is known.
	DateTime fn.Option[time.Time]
}

// Compare imposes a total order on observations: primary key is the
// confirmation status, ties are broken by transaction id. This order is
// suitable for sorting any multiset of records.
func (o OnchainTxid) Compare(other OnchainTxid) int {
	switch {
	case o.Status < other.Status:
		return -1
	case o.Status > other.Status:
		return 1
	}
	return bytes.Compare(o.Txid[:], other.Txid[:])
}

// PartialCompare is the partial-order counterpart of Compare: two
// observations of the same transaction with different confirmation status
// are incomparable, since a transaction's own status changing does not
// make one observation greater than another. For all other pairs the
// total order applies.
func (o OnchainTxid) PartialCompare(other OnchainTxid) fn.Option[int] {
	if o.Txid == other.Txid && o.Status != other.Status {
		return fn.None[int]()
	}
	return fn.Some(o.Compare(other))
}

// DateTimeEst returns the precisely observed timestamp when present, and
// the height-extrapolated estimate otherwise.
func (o OnchainTxid) DateTimeEst() time.Time {
	return o.DateTime.UnwrapOrFunc(o.Status.DateTimeEst)
}

// MiningInfo returns a short display string: "pending" for mempool
// observations and the estimated confirmation time otherwise.
func (o OnchainTxid) MiningInfo() string {
	if o.Status.InMempool() {
		return "pending"
	}
	return o.DateTimeEst().Format("2006-01-02 3 pm")
}

// TxidMeta pairs a transaction observation with the fee reported for it,
// when the reporting backend knows one.
type TxidMeta struct {
	Onchain OnchainTxid
	Fee     fn.Option[btcutil.Amount]
}
