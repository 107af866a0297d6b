// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package onchain

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// HistoryRecord is one entry of a per-script transaction history as
// reported by an electrum-style chain data backend. Unconfirmed
// transactions are reported with zero or negative heights.
type HistoryRecord struct {
	TxHash chainhash.Hash
	Height int32
	Fee    fn.Option[btcutil.Amount]
}

// TxidMeta converts the raw record into a transaction observation with
// fee metadata.
func (r HistoryRecord) TxidMeta() TxidMeta {
	return TxidMeta{
		Onchain: OnchainTxid{
			Txid:   r.TxHash,
			Status: StatusFromI32(r.Height),
		},
		Fee: r.Fee,
	}
}

// UnspentRecord is one entry of a per-script unspent output listing as
// reported by an electrum-style chain data backend.
type UnspentRecord struct {
	TxHash chainhash.Hash
	Height uint32
	TxPos  uint32
	Value  btcutil.Amount
}

// OnchainTxid converts the raw record into a transaction observation.
func (r UnspentRecord) OnchainTxid() OnchainTxid {
	return OnchainTxid{
		Txid:   r.TxHash,
		Status: StatusFromU32(r.Height),
	}
}

// Utxo converts the raw record into a wallet UTXO attributed to the given
// address source.
func (r UnspentRecord) Utxo(addrSrc AddressSource) UtxoTxid {
	return UtxoTxid{
		Onchain: r.OnchainTxid(),
		Value:   r.Value,
		Vout:    r.TxPos,
		AddrSrc: addrSrc,
	}
}
