// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdpath

import (
	"fmt"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// Purpose child indices of the known derivation standards.
const (
	purposeBip44 = 44 // single-sig P2PKH
	purposeBip45 = 45 // legacy sorted multisig
	purposeBip48 = 48 // script-typed multisig accounts
	purposeBip49 = 49 // single-sig nested witness
	purposeBip84 = 84 // single-sig native witness
	purposeBip86 = 86 // single-sig taproot
	purposeBip87 = 87 // multisig with descriptors
)

// BIP48 script type arms, derived as a hardened step right after the
// account index.
const (
	bip48ArmNested = 1
	bip48ArmNative = 2
)

// Bip43 identifies a BIP43-based derivation standard: the purpose of the
// first derivation step plus, for BIP48, the script type arm. The zero
// value is not a valid standard; use one of the constructors.
type Bip43 struct {
	purpose   uint32
	scriptArm uint32
}

// SinglesigPKH is the BIP44 standard: m/44'/coin'/account'.
func SinglesigPKH() Bip43 { return Bip43{purpose: purposeBip44} }

// MultisigOrderedSh is the BIP45 standard for legacy sorted multisig:
// m/45'.
func MultisigOrderedSh() Bip43 { return Bip43{purpose: purposeBip45} }

// MultisigNested0 is the BIP48 standard with the nested witness script
// arm: m/48'/coin'/account'/1'.
func MultisigNested0() Bip43 {
	return Bip43{purpose: purposeBip48, scriptArm: bip48ArmNested}
}

// MultisigSegwit0 is the BIP48 standard with the native witness script
// arm: m/48'/coin'/account'/2'.
func MultisigSegwit0() Bip43 {
	return Bip43{purpose: purposeBip48, scriptArm: bip48ArmNative}
}

// SinglesigNested0 is the BIP49 standard: m/49'/coin'/account'.
func SinglesigNested0() Bip43 { return Bip43{purpose: purposeBip49} }

// SinglesigSegwit0 is the BIP84 standard: m/84'/coin'/account'.
func SinglesigSegwit0() Bip43 { return Bip43{purpose: purposeBip84} }

// SinglesigTaproot is the BIP86 standard: m/86'/coin'/account'.
func SinglesigTaproot() Bip43 { return Bip43{purpose: purposeBip86} }

// MultisigDescriptor is the BIP87 standard for descriptor-based multisig
// accounts: m/87'/coin'/account'.
func MultisigDescriptor() Bip43 { return Bip43{purpose: purposeBip87} }

// PurposeOnly is the generic BIP43 fallback deriving everything under a
// single custom hardened purpose: m/purpose'.
func PurposeOnly(purpose HardenedIndex) Bip43 {
	return Bip43{purpose: uint32(purpose)}
}

// DeduceBip43 matches a derivation path against the known standards. The
// path must start with a hardened purpose step; BIP48 additionally needs
// its script type step present to disambiguate the two arms. The second
// return value is false when no standard matches.
func DeduceBip43(path DerivationPath) (Bip43, bool) {
	if len(path) == 0 || !path[0].IsHardened() {
		return Bip43{}, false
	}

	switch path[0].Index() {
	case purposeBip44:
		return SinglesigPKH(), true
	case purposeBip45:
		return MultisigOrderedSh(), true
	case purposeBip49:
		return SinglesigNested0(), true
	case purposeBip84:
		return SinglesigSegwit0(), true
	case purposeBip86:
		return SinglesigTaproot(), true
	case purposeBip87:
		return MultisigDescriptor(), true
	case purposeBip48:
		// The script type arm lives after the account index.
		if len(path) < 4 || !path[3].IsHardened() {
			return Bip43{}, false
		}
		switch path[3].Index() {
		case bip48ArmNested:
			return MultisigNested0(), true
		case bip48ArmNative:
			return MultisigSegwit0(), true
		}
	}
	return Bip43{}, false
}

// Purpose returns the hardened purpose step of the standard.
func (b Bip43) Purpose() ChildNumber {
	return Harden(b.purpose)
}

// usesCoinType reports whether the standard keeps a coin type step between
// the purpose and the account index.
func (b Bip43) usesCoinType() bool {
	switch b.purpose {
	case purposeBip44, purposeBip48, purposeBip49, purposeBip84,
		purposeBip86, purposeBip87:

		return true
	}
	return false
}

// AccountDepth returns the one-based depth of the account index step, or
// none when the standard has no account notion (the generic purpose-only
// fallback).
func (b Bip43) AccountDepth() fn.Option[uint8] {
	switch {
	case b.purpose == purposeBip45:
		return fn.Some[uint8](2)
	case b.usesCoinType():
		return fn.Some[uint8](3)
	}
	return fn.None[uint8]()
}

// CoinTypeDepth returns the one-based depth of the coin type step, or none
// when the standard has no coin type step.
func (b Bip43) CoinTypeDepth() fn.Option[uint8] {
	if b.usesCoinType() {
		return fn.Some[uint8](2)
	}
	return fn.None[uint8]()
}

// OriginDerivation returns the fixed origin prefix of the standard on the
// given network, i.e. the path up to but excluding the account index.
func (b Bip43) OriginDerivation(network PublicNetwork) DerivationPath {
	if b.usesCoinType() {
		return DerivationPath{b.Purpose(), Harden(network.CoinType())}
	}
	return DerivationPath{b.Purpose()}
}

// AccountDerivation returns the full account-level derivation path for the
// given account index on the given network.
func (b Bip43) AccountDerivation(account HardenedIndex,
	network PublicNetwork) DerivationPath {

	path := b.OriginDerivation(network).Extend(account.ChildNumber())
	if b.scriptArm != 0 {
		path = path.Extend(Harden(b.scriptArm))
	}
	return path
}

// ExtractAccountIndex recovers the account index from a path known to
// match this standard. It returns none when the path is too shallow to
// carry an account step or when the step is not hardened.
func (b Bip43) ExtractAccountIndex(path DerivationPath) fn.Option[HardenedIndex] {
	var account fn.Option[HardenedIndex]
	b.AccountDepth().WhenSome(func(depth uint8) {
		if int(depth) > len(path) {
			return
		}
		if index, ok := HardenedIndexFromChild(path[depth-1]); ok {
			account = fn.Some(index)
		}
	})
	return account
}

// String returns the conventional lowercase name of the standard.
func (b Bip43) String() string {
	switch b.purpose {
	case purposeBip44:
		return "bip44"
	case purposeBip45:
		return "bip45"
	case purposeBip49:
		return "bip49"
	case purposeBip84:
		return "bip84"
	case purposeBip86:
		return "bip86"
	case purposeBip87:
		return "bip87"
	case purposeBip48:
		if b.scriptArm == bip48ArmNested {
			return "bip48-nested"
		}
		return "bip48-native"
	}
	return fmt.Sprintf("bip43/%d'", b.purpose)
}
