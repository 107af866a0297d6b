// Copyright (c) 2022-2024 The bpro developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keyring tracks signer identities of a wallet: hardware-backed
// and watch-only extended public keys, their derivation origins, and the
// fail-soft enumeration of attached signing devices.
package keyring

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/lightningnetwork/lnd/fn/v2"

	"github.com/pandora-prime/bpro/hdpath"
)

// Ownership distinguishes the wallet's own keys from externally supplied
// cosigner keys.
type Ownership uint8

const (
	// Mine marks keys derived from or held by this wallet's devices.
	Mine Ownership = iota

	// External marks cosigner keys imported from elsewhere.
	External
)

// String returns the lowercase ownership name.
func (o Ownership) String() string {
	if o == External {
		return "external"
	}
	return "mine"
}

// XpubCore is the public-key material a signer's identity is derived
// from: the serialized compressed public key of the extended key, with
// all derivation metadata stripped. Two extended keys with the same core
// are the same key regardless of how they were discovered.
type XpubCore [33]byte

// Compare orders cores bytewise.
func (c XpubCore) Compare(other XpubCore) int {
	return bytes.Compare(c[:], other[:])
}

// XpubRef is a reference to a master extended key: either its fingerprint
// or explicitly unknown.
type XpubRef struct {
	known bool
	fp    hdpath.Fingerprint
}

// XpubRefUnknown marks an unknown master key.
func XpubRefUnknown() XpubRef {
	return XpubRef{}
}

// XpubRefFingerprint references a master key by its fingerprint.
func XpubRefFingerprint(fp hdpath.Fingerprint) XpubRef {
	return XpubRef{known: true, fp: fp}
}

// IsKnown reports whether the master key was actually observed.
func (r XpubRef) IsKnown() bool {
	return r.known
}

// Fingerprint returns the referenced fingerprint; zero when unknown.
func (r XpubRef) Fingerprint() hdpath.Fingerprint {
	return r.fp
}

// String renders the fingerprint in hex, or the empty string for an
// unknown master.
func (r XpubRef) String() string {
	if !r.known {
		return ""
	}
	return r.fp.String()
}

// Signer is one key-origin participating in a wallet policy: a master
// fingerprint, the derivation path of the account-level key, the extended
// public key itself and descriptive metadata.
//
// Identity, equality and ordering are defined solely on the public key
// material of the xpub (see XpubCore): two signers holding the same key
// collapse to one identity even when their metadata differs.
type Signer struct {
	// MasterFP is the fingerprint of the master key the origin starts
	// from. Zero means the master is unknown (see IsMasterKnown).
	MasterFP hdpath.Fingerprint

	// Origin is the derivation path from the master to the xpub. It may
	// be partial when reconstructed from a bare xpub.
	Origin hdpath.DerivationPath

	// Account is the account index, when one is recoverable.
	Account fn.Option[hdpath.HardenedIndex]

	// Xpub is the account-level extended public key.
	Xpub *hdkeychain.ExtendedKey

	// Device is the device type for hardware-backed signers.
	Device fn.Option[string]

	// Name is a user-facing signer name.
	Name string

	// Ownership marks whether the key is the wallet's own.
	Ownership Ownership
}

// fingerprintOf computes the BIP32 fingerprint of the extended key
// itself.
func fingerprintOf(xpub *hdkeychain.ExtendedKey) hdpath.Fingerprint {
	pubKey, err := xpub.ECPubKey()
	if err != nil {
		panic(fmt.Sprintf("extended key carries invalid public key "+
			"material: %v", err))
	}
	var fp hdpath.Fingerprint
	copy(fp[:], btcutil.Hash160(pubKey.SerializeCompressed())[:4])
	return fp
}

// NewSignerWithDevice constructs a signer from an enumerated hardware
// device. The scheme and network fully determine the account-level origin
// path, so no reconstruction is needed.
func NewSignerWithDevice(fingerprint hdpath.Fingerprint,
	device HardwareDevice, scheme hdpath.Bip43,
	network hdpath.PublicNetwork) *Signer {

	return &Signer{
		MasterFP: fingerprint,
		Origin: scheme.AccountDerivation(
			device.DefaultAccount, network,
		),
		Account: fn.Some(device.DefaultAccount),
		Xpub:    device.DefaultXpub,
		Device:  fn.Some(device.DeviceType),
		Name: fmt.Sprintf("%s_%s", fingerprint,
			fingerprintOf(device.DefaultXpub)),
		Ownership: Mine,
	}
}

// NewSignerWithXpub constructs a signer from a bare extended public key.
//
// A bare xpub carries no explicit origin, so the origin is inferred from
// the key's depth, a best-effort heuristic over incomplete information:
//
//   - depth 0: the key is a master key with an empty origin;
//   - depth 1: the origin is the single child number and the parent
//     fingerprint is the master fingerprint;
//   - depth equal to the scheme's account depth with a hardened child:
//     the origin is rebuilt by placing the network's coin type and the
//     child number at their standard slots, with the master unknown.
//     When the scheme's coin type and account depths are not adjacent
//     only the child number is kept, the deliberately conservative
//     ambiguous case;
//   - any other depth: the origin is the single child number with the
//     master unknown.
//
// The guesses never masquerade as confirmed origins: IsMasterKnown
// reports whether the master fingerprint was actually observed.
func NewSignerWithXpub(xpub *hdkeychain.ExtendedKey, scheme hdpath.Bip43,
	network hdpath.PublicNetwork) *Signer {

	child := hdpath.ChildNumber(xpub.ChildIndex())
	childAccount := fn.None[hdpath.HardenedIndex]()
	if index, ok := hdpath.HardenedIndexFromChild(child); ok {
		childAccount = fn.Some(index)
	}

	var (
		masterFP hdpath.Fingerprint
		origin   hdpath.DerivationPath
		account  fn.Option[hdpath.HardenedIndex]
	)

	depth := xpub.Depth()
	accountDepth := scheme.AccountDepth()

	switch {
	case depth == 0:
		masterFP = fingerprintOf(xpub)

	case depth == 1:
		masterFP = hdpath.FingerprintFromUint32(
			xpub.ParentFingerprint(),
		)
		origin = hdpath.DerivationPath{child}
		account = childAccount

	case child.IsHardened() &&
		accountDepth.UnwrapOr(0) == depth:

		coinDepth := scheme.CoinTypeDepth().UnwrapOr(
			accountDepth.UnwrapOr(0),
		)
		acctDepth := accountDepth.UnwrapOr(0)
		minDepth, maxDepth := coinDepth, acctDepth
		if minDepth > maxDepth {
			minDepth, maxDepth = maxDepth, minDepth
		}
		if maxDepth-minDepth != 1 {
			origin = hdpath.DerivationPath{child}
		} else {
			origin = make(hdpath.DerivationPath, 2)
			origin[coinDepth-minDepth] = hdpath.Harden(
				network.CoinType(),
			)
			origin[acctDepth-minDepth] = child
		}
		account = childAccount

	default:
		origin = hdpath.DerivationPath{child}
		account = childAccount
	}

	return &Signer{
		MasterFP:  masterFP,
		Origin:    origin,
		Account:   account,
		Xpub:      xpub,
		Ownership: External,
	}
}

// IsMasterKnown reports whether the master fingerprint was actually
// observed, as opposed to synthesized as unknown during origin
// reconstruction.
func (s *Signer) IsMasterKnown() bool {
	return !s.MasterFP.IsZero()
}

// PubKey returns the public key of the signer's account-level xpub.
func (s *Signer) PubKey() (*btcec.PublicKey, error) {
	return s.Xpub.ECPubKey()
}

// XpubCore returns the public-key material defining the signer's
// identity.
func (s *Signer) XpubCore() XpubCore {
	pubKey, err := s.Xpub.ECPubKey()
	if err != nil {
		panic(fmt.Sprintf("signer %q carries invalid public key "+
			"material: %v", s.Name, err))
	}
	var core XpubCore
	copy(core[:], pubKey.SerializeCompressed())
	return core
}

// Fingerprint returns the fingerprint of the signer's own xpub (not of
// the master key).
func (s *Signer) Fingerprint() hdpath.Fingerprint {
	return fingerprintOf(s.Xpub)
}

// MasterXpub returns a reference to the master key: its fingerprint when
// known, unknown otherwise.
func (s *Signer) MasterXpub() XpubRef {
	if s.IsMasterKnown() {
		return XpubRefFingerprint(s.MasterFP)
	}
	return XpubRefUnknown()
}

// AccountString renders the account index, or "n/a" when no account is
// recoverable.
func (s *Signer) AccountString() string {
	return fn.MapOption(hdpath.HardenedIndex.String)(s.Account).
		UnwrapOr("n/a")
}

// OriginFormat classifies the signer's origin against the known
// derivation standards.
func (s *Signer) OriginFormat(network hdpath.PublicNetwork) hdpath.OriginFormat {
	return hdpath.ClassifyOrigin(s.Origin, s.Xpub.Depth(), network)
}

// Equal reports whether both signers hold the same key.
func (s *Signer) Equal(other *Signer) bool {
	return s.XpubCore() == other.XpubCore()
}

// Compare orders signers by their public key material.
func (s *Signer) Compare(other *Signer) int {
	return s.XpubCore().Compare(other.XpubCore())
}

// ToTrackingAccount projects the signer into a descriptor-ready account
// reference with the given terminal derivation.
//
// It panics when the signer's origin cannot be expressed as account-level
// steps (an unhardened step in the origin), which indicates an internal
// inconsistency in how the signer was constructed, not user error.
func (s *Signer) ToTrackingAccount(
	terminalPath hdpath.DerivationPath) TrackingAccount {

	accountPath := make(hdpath.DerivationPath, 0, len(s.Origin))
	for _, step := range s.Origin {
		if !step.IsHardened() {
			panic(fmt.Sprintf("inconsistency in constructed "+
				"derivation path: unhardened step %s in "+
				"signer origin %s", step, s.Origin))
		}
		accountPath = append(accountPath, step)
	}

	return TrackingAccount{
		Master:       s.MasterXpub(),
		AccountPath:  accountPath,
		AccountXpub:  s.Xpub,
		TerminalPath: terminalPath,
	}
}
