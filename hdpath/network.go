// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdpath

import (
	"github.com/btcsuite/btcd/chaincfg"
)

// PublicNetwork is the set of bitcoin networks a wallet may publicly
// operate on. Regression test networks are deliberately excluded.
type PublicNetwork uint8

const (
	// Mainnet is the main bitcoin network.
	Mainnet PublicNetwork = iota

	// Testnet is the test network (version 3).
	Testnet

	// Signet is the default signed test network.
	Signet
)

// ChainParams returns the chaincfg parameters for the network.
func (n PublicNetwork) ChainParams() *chaincfg.Params {
	switch n {
	case Testnet:
		return &chaincfg.TestNet3Params
	case Signet:
		return &chaincfg.SigNetParams
	default:
		return &chaincfg.MainNetParams
	}
}

// CoinType returns the SLIP44 coin type child index used at the coin type
// level of standard derivation paths. All test networks share coin type 1.
func (n PublicNetwork) CoinType() uint32 {
	if n == Mainnet {
		return 0
	}
	return 1
}

// IsTestnet reports whether the network is any of the test networks.
func (n PublicNetwork) IsTestnet() bool {
	return n != Mainnet
}

// String returns the lowercase network name.
func (n PublicNetwork) String() string {
	switch n {
	case Testnet:
		return "testnet"
	case Signet:
		return "signet"
	default:
		return "mainnet"
	}
}
