// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rgb

import (
	"sort"

	"github.com/pandora-prime/bpro/onchain"
)

// WitnessIndex is an ordered set of witness transaction ids, sorted by
// mining status first and txid second so pending witnesses group
// together.
type WitnessIndex struct {
	txids []onchain.OnchainTxid
}

// Add inserts a witness txid, keeping the index sorted and duplicate
// free. It reports whether the entry was new.
func (w *WitnessIndex) Add(txid onchain.OnchainTxid) bool {
	i := sort.Search(len(w.txids), func(i int) bool {
		return w.txids[i].Compare(txid) >= 0
	})
	if i < len(w.txids) && w.txids[i].Compare(txid) == 0 {
		return false
	}

	w.txids = append(w.txids, onchain.OnchainTxid{})
	copy(w.txids[i+1:], w.txids[i:])
	w.txids[i] = txid
	return true
}

// Remove deletes a witness txid, reporting whether it was present.
func (w *WitnessIndex) Remove(txid onchain.OnchainTxid) bool {
	i := sort.Search(len(w.txids), func(i int) bool {
		return w.txids[i].Compare(txid) >= 0
	})
	if i >= len(w.txids) || w.txids[i].Compare(txid) != 0 {
		return false
	}

	w.txids = append(w.txids[:i], w.txids[i+1:]...)
	return true
}

// Contains reports whether the txid is in the index.
func (w *WitnessIndex) Contains(txid onchain.OnchainTxid) bool {
	i := sort.Search(len(w.txids), func(i int) bool {
		return w.txids[i].Compare(txid) >= 0
	})
	return i < len(w.txids) && w.txids[i].Compare(txid) == 0
}

// Len returns the number of indexed witnesses.
func (w *WitnessIndex) Len() int {
	return len(w.txids)
}

// Txids returns the indexed witnesses in order. The slice is a copy.
func (w *WitnessIndex) Txids() []onchain.OnchainTxid {
	return append([]onchain.OnchainTxid(nil), w.txids...)
}

// Equal reports whether both indexes hold the same entries.
func (w *WitnessIndex) Equal(other *WitnessIndex) bool {
	if len(w.txids) != len(other.txids) {
		return false
	}
	for i := range w.txids {
		if w.txids[i].Compare(other.txids[i]) != 0 {
			return false
		}
	}
	return true
}
