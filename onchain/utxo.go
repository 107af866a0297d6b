// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package onchain

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/pandora-prime/bpro/hdpath"
)

// UtxoTxid is an unspent transaction output owned by the wallet, together
// with the observation it was learned from.
type UtxoTxid struct {
	Onchain OnchainTxid
	Value   btcutil.Amount
	Vout    uint32
	AddrSrc AddressSource
}

// OutPoint returns the outpoint of the unspent output.
func (u UtxoTxid) OutPoint() wire.OutPoint {
	return *wire.NewOutPoint(&u.Onchain.Txid, u.Vout)
}

// DateTimeEst returns the precisely observed time of the UTXO when
// present, and a height-extrapolated estimate otherwise.
func (u UtxoTxid) DateTimeEst() time.Time {
	return u.Onchain.DateTimeEst()
}

// MiningInfo returns the display string of the UTXO's confirmation.
func (u UtxoTxid) MiningInfo() string {
	return u.Onchain.MiningInfo()
}

// Prevout projects the UTXO into the form used for downstream spend
// construction.
func (u UtxoTxid) Prevout() Prevout {
	return Prevout{
		OutPoint: u.OutPoint(),
		Amount:   u.Value,
		Change:   u.AddrSrc.Change,
		Index:    u.AddrSrc.Index,
	}
}

// PsbtInput builds a partially signed transaction input spending the
// UTXO, carrying the witness UTXO data a signer needs.
func (u UtxoTxid) PsbtInput(params *chaincfg.Params) (psbt.PInput, error) {
	addr, err := u.AddrSrc.DecodeAddress(params)
	if err != nil {
		return psbt.PInput{}, err
	}
	pkScript, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return psbt.PInput{}, err
	}
	return psbt.PInput{
		WitnessUtxo: &wire.TxOut{
			Value:    int64(u.Value),
			PkScript: pkScript,
		},
	}, nil
}

// Prevout is a previous output being spent: its outpoint, amount and the
// terminal derivation of the owning address.
type Prevout struct {
	OutPoint wire.OutPoint
	Amount   btcutil.Amount
	Change   uint32
	Index    uint32
}

// Terminal returns the unhardened terminal derivation steps of the owning
// address, i.e. /change/index.
func (p Prevout) Terminal() hdpath.DerivationPath {
	return hdpath.DerivationPath{
		hdpath.ChildNumber(p.Change),
		hdpath.ChildNumber(p.Index),
	}
}
