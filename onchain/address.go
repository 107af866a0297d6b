// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package onchain

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// External and internal (change) address chains of a BIP44-style account.
const (
	ExternalChain uint32 = 0
	InternalChain uint32 = 1
)

// AddressSource identifies one address of the wallet's own address space:
// the encoded address together with its terminal derivation, i.e. the
// chain (0 external, 1 internal) and the address index within the chain.
type AddressSource struct {
	// Address is the address in its canonical string encoding.
	Address string

	// Change is the address chain, 0 for external and 1 for internal.
	Change uint32

	// Index is the address index within the chain.
	Index uint32
}

// NewAddressSource resolves an output script into an address source.
//
// It panics when the script cannot be represented as an address, which
// indicates the caller fed a script that was never part of the wallet's
// address space.
func NewAddressSource(pkScript []byte, index uint32, change bool,
	params *chaincfg.Params) AddressSource {

	_, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, params)
	if err != nil || len(addrs) == 0 {
		panic(fmt.Sprintf("script %x cannot be represented as a "+
			"wallet address", pkScript))
	}

	chain := ExternalChain
	if change {
		chain = InternalChain
	}
	return AddressSource{
		Address: addrs[0].EncodeAddress(),
		Change:  chain,
		Index:   index,
	}
}

// DecodeAddress decodes the stored address string for the given network.
func (a AddressSource) DecodeAddress(params *chaincfg.Params) (btcutil.Address,
	error) {

	return btcutil.DecodeAddress(a.Address, params)
}

// IsChange reports whether the address belongs to the internal chain.
func (a AddressSource) IsChange() bool {
	return a.Change == InternalChain
}

// IconName returns the display icon hint for the address, non-empty only
// for internal chain addresses.
func (a AddressSource) IconName() string {
	if a.IsChange() {
		return "view-refresh-symbolic"
	}
	return ""
}

// TerminalString renders the terminal derivation as "/change/index".
func (a AddressSource) TerminalString() string {
	return fmt.Sprintf("/%d/%d", a.Change, a.Index)
}

// AddressValue attaches a value to an address source.
type AddressValue struct {
	AddrSrc AddressSource
	Value   btcutil.Amount
}

// IconName returns the display icon hint of the underlying address.
func (v AddressValue) IconName() string {
	return v.AddrSrc.IconName()
}

// TerminalString renders the terminal derivation of the underlying
// address.
func (v AddressValue) TerminalString() string {
	return v.AddrSrc.TerminalString()
}

// AddressSummary is the aggregate of everything observed for one address:
// its current balance, the total volume that has flowed through it and the
// number of transactions it took part in.
type AddressSummary struct {
	AddrSrc AddressSource
	Balance btcutil.Amount
	Volume  btcutil.Amount
	TxCount uint32
}

// Merge folds another summary into this one. Balance and volume
// accumulate; the transaction count increments by exactly one per merge
// call, so a sequence of merges over per-transaction summaries counts
// transactions, not the counters carried by the merged values.
func (s *AddressSummary) Merge(other AddressSummary) {
	s.Balance += other.Balance
	s.Volume += other.Volume
	s.TxCount++
}

// IconName returns the display icon hint of the underlying address.
func (s AddressSummary) IconName() string {
	return s.AddrSrc.IconName()
}

// TerminalString renders the terminal derivation of the underlying
// address.
func (s AddressSummary) TerminalString() string {
	return s.AddrSrc.TerminalString()
}
