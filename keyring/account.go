// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyring

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"github.com/pandora-prime/bpro/hdpath"
)

// TrackingAccount is a descriptor-ready reference to an account-level
// extended public key: the (possibly unknown) master it descends from,
// the hardened path down to the account key, and the unhardened terminal
// path appended when deriving addresses.
type TrackingAccount struct {
	// Master references the master key, when its fingerprint is known.
	Master XpubRef

	// AccountPath is the hardened derivation from master to account.
	AccountPath hdpath.DerivationPath

	// AccountXpub is the account-level extended public key.
	AccountXpub *hdkeychain.ExtendedKey

	// TerminalPath is the unhardened suffix used for address
	// derivation, typically chain and index placeholders.
	TerminalPath hdpath.DerivationPath
}

// String renders the account in descriptor key-origin form:
// [fingerprint/account'/path]xpub/terminal/steps. The origin brackets are
// emitted even when the master is unknown, mirroring how descriptors
// spell partially known origins.
func (a TrackingAccount) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(a.Master.String())
	for _, step := range a.AccountPath {
		b.WriteString("/")
		b.WriteString(step.String())
	}
	b.WriteString("]")
	b.WriteString(a.AccountXpub.String())
	for _, step := range a.TerminalPath {
		b.WriteString("/")
		b.WriteString(step.String())
	}
	return b.String()
}
