// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rgb

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/pandora-prime/bpro/onchain"
)

// IssueEntry records an asset issuance: new units created by the wallet
// holder rather than received from a counterparty.
type IssueEntry struct {
	// Onchain is the witness transaction anchoring the issuance, when
	// the issuance is anchored at all.
	Onchain fn.Option[onchain.OnchainTxid]

	// Date is when the issuance happened.
	Date time.Time

	// Amount is the number of issued asset units.
	Amount uint64

	// Fee is the bitcoin fee paid by the anchoring transaction.
	Fee fn.Option[btcutil.Amount]

	// Comment is an optional user note.
	Comment string
}

// Compare orders issuances chronologically.
func (e *IssueEntry) Compare(other *IssueEntry) int {
	return e.Date.Compare(other.Date)
}

// OperationEntry is one row of the asset operation log: either an
// issuance or a transfer observed onchain.
type OperationEntry struct {
	// Issue is set for issuance rows.
	Issue *IssueEntry

	// Transfer is set for transfer rows.
	Transfer *onchain.HistoryEntry
}

// IssueOperation wraps an issuance as a log row.
func IssueOperation(issue IssueEntry) OperationEntry {
	return OperationEntry{Issue: &issue}
}

// TransferOperation wraps an onchain transfer as a log row.
func TransferOperation(entry *onchain.HistoryEntry) OperationEntry {
	return OperationEntry{Transfer: entry}
}

// IconName returns the symbolic icon representing the operation.
func (o OperationEntry) IconName() string {
	if o.Issue != nil {
		return "application-certificate-symbolic"
	}
	return o.Transfer.IconName()
}

// DateTime returns the confirmed operation time, when one is known.
func (o OperationEntry) DateTime() fn.Option[time.Time] {
	if o.Issue != nil {
		return fn.Some(o.Issue.Date)
	}
	return o.Transfer.Onchain.DateTime
}

// DateTimeEst returns the best known or estimated operation time.
func (o OperationEntry) DateTimeEst() time.Time {
	if o.Issue != nil {
		return o.Issue.Date
	}
	return o.Transfer.DateTimeEst()
}

// MiningInfo renders the mining state of the operation.
func (o OperationEntry) MiningInfo() string {
	if o.Issue != nil {
		return "issue"
	}
	return o.Transfer.MiningInfo()
}

// ValueCredited returns the asset units leaving the wallet. Issuances
// never credit.
func (o OperationEntry) ValueCredited() uint64 {
	if o.Issue != nil {
		return 0
	}
	return uint64(o.Transfer.ValueCredited())
}

// ValueDebited returns the asset units entering the wallet. For an
// issuance this is the full issued amount.
func (o OperationEntry) ValueDebited() uint64 {
	if o.Issue != nil {
		return o.Issue.Amount
	}
	return uint64(o.Transfer.ValueDebited())
}

// Balance returns the net effect of the operation on the wallet.
func (o OperationEntry) Balance() int64 {
	if o.Issue != nil {
		return int64(o.Issue.Amount)
	}
	return o.Transfer.Balance()
}
