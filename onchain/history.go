// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package onchain

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// Comment is a user-supplied label on a history entry, together with the
// time it was set.
type Comment struct {
	Label     string
	Timestamp time.Time
}

// Payer describes the counterparty behind one input of a transaction, as
// far as it could be attributed: an optional display label and, when the
// input spends one of the wallet's own outputs, the address and value
// spent.
type Payer struct {
	Label fn.Option[string]
	Value fn.Option[AddressValue]
}

// HistoryEntry is one transaction of the wallet's history.
//
// For spending, it records the transaction spending wallet funds; for
// incoming payments, including change operations, the transaction placing
// funds on an address of the wallet. Credit lists the output values that
// left the wallet's control by output index; Debit lists the wallet-owned
// output indices that received funds.
//
// The identity of an entry is the transaction id alone: a change of
// confirmation status never changes membership in sets or maps keyed by
// the entry.
type HistoryEntry struct {
	Onchain       OnchainTxid
	Tx            *wire.MsgTx
	Credit        map[uint32]AddressValue
	Debit         map[uint32]AddressSource
	Payers        map[uint32]Payer
	Beneficiaries map[uint32]string
	Fee           fn.Option[btcutil.Amount]
	Comment       fn.Option[Comment]
}

// TxHash returns the transaction id, the identity of the entry.
func (e *HistoryEntry) TxHash() chainhash.Hash {
	return e.Tx.TxHash()
}

// SameTx reports whether both entries describe the same transaction,
// irrespective of confirmation status or any other metadata.
func (e *HistoryEntry) SameTx(other *HistoryEntry) bool {
	return e.TxHash() == other.TxHash()
}

// Compare orders entries by their onchain observation (status first, then
// transaction id).
func (e *HistoryEntry) Compare(other *HistoryEntry) int {
	return e.Onchain.Compare(other.Onchain)
}

// PartialCompare is the partial-order counterpart of Compare; see
// OnchainTxid.PartialCompare.
func (e *HistoryEntry) PartialCompare(other *HistoryEntry) fn.Option[int] {
	return e.Onchain.PartialCompare(other.Onchain)
}

// ValueCredited sums the values that left the wallet in this transaction.
func (e *HistoryEntry) ValueCredited() btcutil.Amount {
	var total btcutil.Amount
	for _, addr := range e.Credit {
		total += addr.Value
	}
	return total
}

// ValueDebited sums the output amounts at the wallet-owned output indices
// listed in Debit. The amounts come from the transaction outputs
// themselves, not from a stored value; a debit index with no matching
// output contributes nothing.
func (e *HistoryEntry) ValueDebited() btcutil.Amount {
	var total btcutil.Amount
	for vout := range e.Debit {
		if int(vout) < len(e.Tx.TxOut) {
			total += btcutil.Amount(e.Tx.TxOut[vout].Value)
		}
	}
	return total
}

// Balance is the signed effect of the transaction on the wallet: value
// debited minus value credited, positive when funds entered the wallet. A
// zero balance is a legitimate self-transfer (equal credit and debit),
// not an error.
func (e *HistoryEntry) Balance() int64 {
	return int64(e.ValueDebited()) - int64(e.ValueCredited())
}

// IconName returns the display icon hint for the entry, keyed on the sign
// of its balance.
func (e *HistoryEntry) IconName() string {
	switch balance := e.Balance(); {
	case balance > 0:
		return "media-playlist-consecutive-symbolic"
	case balance < 0:
		return "mail-send-symbolic"
	default:
		return "view-refresh-symbolic"
	}
}

// DateTimeEst returns the precisely observed time of the entry when
// present, and a height-extrapolated estimate otherwise.
func (e *HistoryEntry) DateTimeEst() time.Time {
	return e.Onchain.DateTimeEst()
}

// MiningInfo returns the display string of the entry's confirmation.
func (e *HistoryEntry) MiningInfo() string {
	return e.Onchain.MiningInfo()
}

// AddressSummaries expands the entry into per-address summaries for
// folding via AddressSummary.Merge: one zero summary per credited address
// (credits intentionally carry no volume) and one summary per debited
// address carrying the received output's value as volume. Every summary
// counts as a single transaction.
func (e *HistoryEntry) AddressSummaries() []AddressSummary {
	summaries := make([]AddressSummary, 0, len(e.Credit)+len(e.Debit))
	for _, addr := range e.Credit {
		summaries = append(summaries, AddressSummary{
			AddrSrc: addr.AddrSrc,
			TxCount: 1,
		})
	}
	for vout, addr := range e.Debit {
		var volume btcutil.Amount
		if int(vout) < len(e.Tx.TxOut) {
			volume = btcutil.Amount(e.Tx.TxOut[vout].Value)
		}
		summaries = append(summaries, AddressSummary{
			AddrSrc: addr,
			Volume:  volume,
			TxCount: 1,
		})
	}
	return summaries
}

// SetComment attaches a user comment to the entry, stamped with the
// current time.
func (e *HistoryEntry) SetComment(label string) {
	e.Comment = fn.Some(Comment{Label: label, Timestamp: time.Now().UTC()})
}
